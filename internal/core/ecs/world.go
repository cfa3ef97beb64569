package ecs

import (
	"time"

	"simcore/internal/core/ecs/controller"
	"simcore/internal/core/ecs/entity"
	"simcore/internal/core/ecs/eventbus"
	"simcore/internal/core/ecs/profiler"
	"simcore/internal/core/ecs/storage"
	"simcore/internal/core/ecs/variant"

	"github.com/KimMachineGun/automemlimit/memlimit"
	"go.uber.org/automaxprocs/maxprocs"
)

// Canonical §4.8 adaptive-controller thresholds: scale a Scalar system up to
// SIMD once entity_count exceeds adaptiveScaleUpThreshold, and back down to
// Scalar once it drops below adaptiveScaleDownThreshold.
const (
	adaptiveScaleUpThreshold   = 500
	adaptiveScaleDownThreshold = 100
)

// World composes the entity manager, component registry, and system
// registry into the single facade §4.6 describes, plus the profiler and
// the lifecycle events a hosting application can subscribe to.
type World struct {
	entities   *entity.Manager
	components *storage.Registry
	systems    *SystemRegistry
	profiler   profiler.Profiler
	events     *eventbus.Bus[LifecycleEvent]
	adaptive   *controller.Controller

	cfg          Config
	tick         uint64
	undoMaxprocs func()
}

// LifecycleEventKind names the World-level events published on the
// lifecycle event bus.
type LifecycleEventKind int

const (
	EntityCreated LifecycleEventKind = iota
	EntityDestroyed
	SystemInitialized
	SystemShutdown
	VariantSwitched
)

// LifecycleEvent is published on World.Events for the kinds above. From/To
// are only meaningful for VariantSwitched.
type LifecycleEvent struct {
	Kind   LifecycleEventKind
	Entity Entity
	System string
	From   Variant
	To     Variant
}

// New constructs a World. Resource tuning (GOMAXPROCS/GOMEMLIMIT) is
// applied once here, best-effort: failures are logged (if a Logger is
// configured) and never fatal, per the bootstrap design note.
func New(opts ...Option) *World {
	cfg := DefaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	w := &World{
		entities:   entity.NewManager(),
		components: storage.NewRegistry(),
		systems:    NewSystemRegistry(cfg.Logger),
		events:     eventbus.New[LifecycleEvent](),
		adaptive:   controller.New(),
		cfg:        cfg,
	}
	w.adaptive.SetLogger(cfg.Logger)
	w.profiler.Init(cfg.HistorySize)
	w.profiler.SetLogger(cfg.Logger)

	if cfg.TuneResources {
		w.tuneResources()
	}

	return w
}

func (w *World) tuneResources() {
	undo, err := maxprocs.Set()
	if err != nil && w.cfg.Logger != nil {
		w.cfg.Logger.Warning().Err(err).Log("automaxprocs: failed to set GOMAXPROCS")
	}
	w.undoMaxprocs = undo

	if _, err := memlimit.SetGoMemLimitWithOpts(
		memlimit.WithRatio(0.9),
		memlimit.WithProvider(memlimit.FromCgroup),
	); err != nil && w.cfg.Logger != nil {
		w.cfg.Logger.Warning().Err(err).Log("automemlimit: failed to set GOMEMLIMIT")
	}
}

// Events exposes the lifecycle event bus so a hosting application can
// subscribe to entity/system lifecycle notifications.
func (w *World) Events() *eventbus.Bus[LifecycleEvent] { return w.events }

// Profiler exposes the frame/zone profiler owned by this World.
func (w *World) Profiler() *profiler.Profiler { return &w.profiler }

// Systems exposes the system registry for registration and hot-swap calls
// that need a *World reference (ReplaceByType, ReplaceByName).
func (w *World) Systems() *SystemRegistry { return w.systems }

// CreateEntity allocates a fresh entity id, recycling a destroyed slot's
// index with a bumped generation when one is available.
func (w *World) CreateEntity() Entity {
	e := w.entities.Create()
	w.events.Publish(LifecycleEvent{Kind: EntityCreated, Entity: e})
	return e
}

// DestroyEntity destroys e in the entity manager first; only if it was
// alive does it fan out the destruction to the component registry, per
// §4.6.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.Destroy(e) {
		return false
	}
	w.components.OnEntityDestroyed(e)
	w.events.Publish(LifecycleEvent{Kind: EntityDestroyed, Entity: e})
	return true
}

func (w *World) IsAlive(e Entity) bool { return w.entities.IsAlive(e) }
func (w *World) EntityCount() int      { return w.entities.Count() }
func (w *World) ReserveEntities(n int) { w.entities.Reserve(n) }

// AddComponent and the functions below are free functions, not methods, so
// they can introduce the component type parameter T that a method on World
// cannot.
func AddComponent[T any](w *World, e Entity, value T) *T {
	return storage.ArrayFor[T](w.components).Set(e, value)
}

func GetComponent[T any](w *World, e Entity) (*T, bool) {
	return storage.ArrayFor[T](w.components).Get(e)
}

func HasComponent[T any](w *World, e Entity) bool {
	return storage.ArrayFor[T](w.components).Has(e)
}

func RemoveComponent[T any](w *World, e Entity) bool {
	return storage.ArrayFor[T](w.components).Remove(e)
}

// Components exposes the underlying component registry for package query
// constructors (query.New2[A, B](w.Components()), etc).
func (w *World) Components() *storage.Registry { return w.components }

// RegisterSystem appends sys to the system registry and initializes it
// immediately, matching the teacher's register<T> eagerly-initializing
// contract.
func RegisterSystem[T System](w *World, sys T) T {
	w.systems.Register(sys)
	sys.Init(w)
	w.events.Publish(LifecycleEvent{Kind: SystemInitialized, System: sys.Name()})
	return sys
}

// GetSystem returns the first registered system of type T.
func GetSystem[T System](w *World) (T, bool) {
	return Get[T](w.systems)
}

// ReplaceSystem hot-swaps the first system of type Old for replacement,
// preserving registration order. See SystemRegistry.ReplaceByType.
func ReplaceSystem[Old System](w *World, replacement System) System {
	return ReplaceByType[Old](w.systems, w, replacement)
}

// Init runs InitAll; World.New already constructs the registries, so this
// is only needed if systems were registered without RegisterSystem's
// eager-init path (e.g. constructed directly and appended).
func (w *World) Init() { w.systems.InitAll(w) }

// Tick runs one simulation frame: begin_frame, update_all(dt), end_frame,
// matching §4.6 exactly. Every ControllerCadence ticks it also runs the
// AdaptiveController over the currently registered variant-capable systems,
// per §2 and §4.8.
func (w *World) Tick(dt time.Duration) {
	w.profiler.BeginFrame()
	entityCount := w.entities.Count()
	w.profiler.SetEntityCount(entityCount)
	w.profiler.SetSystemCount(w.systems.Len())

	start := time.Now()
	w.systems.UpdateAll(w, dt)
	w.profiler.SetUpdateTime(time.Since(start))

	w.profiler.EndFrame()
	w.tick++

	if w.tick%uint64(w.cfg.ControllerCadence) == 0 {
		w.runAdaptiveController(entityCount)
	}
}

// runAdaptiveController rebuilds the controller's target list from the
// system registry's current membership (tolerating hot-swapped systems)
// and evaluates it once against the latest profiler stats.
func (w *World) runAdaptiveController(entityCount int) {
	var targets []*controller.Target
	for _, sys := range w.systems.All() {
		capable, ok := sys.(variant.Capable)
		if !ok {
			continue
		}
		targets = append(targets, &controller.Target{
			Name:     sys.Name(),
			System:   capable,
			UpRule:   controller.ScaleUpOnHighEntityCount(adaptiveScaleUpThreshold),
			DownRule: controller.ScaleDownOnLowEntityCount(adaptiveScaleDownThreshold),
		})
	}
	if len(targets) == 0 {
		return
	}
	w.adaptive.SetTargets(targets...)

	for _, d := range w.adaptive.Tick(entityCount, w.profiler.ProfilerStats()) {
		w.events.Publish(LifecycleEvent{Kind: VariantSwitched, System: d.Target, From: d.From, To: d.To})
	}
}

// TickCount reports how many ticks have completed.
func (w *World) TickCount() uint64 { return w.tick }

// Shutdown runs ShutdownAll in reverse registration order and stops the
// profiler.
func (w *World) Shutdown() {
	w.systems.ShutdownAll(w)
	w.profiler.Shutdown()
	if w.undoMaxprocs != nil {
		w.undoMaxprocs()
	}
}

// Clear removes all entities, components, and event subscribers, but
// leaves registered systems and the profiler's initialized state intact.
func (w *World) Clear() {
	w.entities.Clear()
	w.components.Clear()
	w.events.Clear()
}
