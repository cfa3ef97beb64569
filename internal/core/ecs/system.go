package ecs

import (
	"reflect"
	"sync"
	"time"
)

// System is a unit of per-tick behavior registered on a World. Identity for
// replace_by_type is the dynamic type of the System value; display name is
// independent and used by replace_by_name.
type System interface {
	Name() string
	Init(w *World)
	Update(w *World, dt time.Duration)
	Shutdown(w *World)
}

// Enabler is an optional extension: a system that implements it can be
// disabled without being removed from the registry. update_all skips
// disabled systems; init_all and shutdown_all do not.
type Enabler interface {
	Enabled() bool
}

type slot struct {
	sys  System
	typ  reflect.Type
	name string
}

// SystemRegistry holds an ordered, slot-preserving list of Systems,
// grounded on the host application's SystemManager: registration order is
// the update order, shutdown runs in reverse, and hot-swap (replace_by_type
// / replace_by_name) reuses the original slot rather than appending.
type SystemRegistry struct {
	mu     sync.Mutex
	slots  []slot
	logger *Logger
}

// NewSystemRegistry constructs an empty registry. logger may be nil, in
// which case hot-swap replacement is silent.
func NewSystemRegistry(logger *Logger) *SystemRegistry {
	return &SystemRegistry{logger: logger}
}

// SetLogger installs the optional structured-logging collaborator.
func (r *SystemRegistry) SetLogger(l *Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = l
}

func (r *SystemRegistry) logReplacement(old System, replacement System, keyedBy string) {
	if r.logger == nil {
		return
	}
	b := r.logger.Info().
		Str("replaced_by", keyedBy).
		Str("new_system", replacement.Name())
	if old != nil {
		b = b.Str("old_system", old.Name())
	} else {
		b = b.Str("old_system", "<none, appended>")
	}
	b.Log("system replaced")
}

// Register appends sys to the registry without initializing it. Init is the
// caller's responsibility via InitAll (or an explicit sys.Init call before
// a World is fully constructed).
func (r *SystemRegistry) Register(sys System) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots = append(r.slots, slot{sys: sys, typ: reflect.TypeOf(sys), name: sys.Name()})
}

// Get returns the first registered system whose dynamic type matches T, and
// whether one was found.
func Get[T System](r *SystemRegistry) (zero T, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := reflect.TypeFor[T]()
	for _, s := range r.slots {
		if s.typ == want {
			if typed, match := s.sys.(T); match {
				return typed, true
			}
		}
	}
	return zero, false
}

// ReplaceByType finds the first system whose dynamic type is Old, shuts it
// down, installs replacement in its slot, and initializes it. If no system
// of type Old exists, replacement is appended and initialized instead.
// Ordering of the other systems is preserved either way.
func ReplaceByType[Old System](r *SystemRegistry, w *World, replacement System) System {
	r.mu.Lock()
	want := reflect.TypeFor[Old]()
	idx := -1
	for i, s := range r.slots {
		if s.typ == want {
			idx = i
			break
		}
	}
	var old System
	if idx >= 0 {
		old = r.slots[idx].sys
	}
	r.mu.Unlock()

	if idx < 0 {
		old = nil
	}
	if old != nil {
		old.Shutdown(w)
	}

	r.mu.Lock()
	if idx >= 0 {
		r.slots[idx] = slot{sys: replacement, typ: reflect.TypeOf(replacement), name: replacement.Name()}
	} else {
		r.slots = append(r.slots, slot{sys: replacement, typ: reflect.TypeOf(replacement), name: replacement.Name()})
	}
	r.mu.Unlock()

	r.logReplacement(old, replacement, "type")
	replacement.Init(w)
	return replacement
}

// ReplaceByName is the name-keyed analogue of ReplaceByType: first match,
// stable order, append-on-miss.
func (r *SystemRegistry) ReplaceByName(w *World, name string, replacement System) System {
	r.mu.Lock()
	idx := -1
	for i, s := range r.slots {
		if s.name == name {
			idx = i
			break
		}
	}
	var old System
	if idx >= 0 {
		old = r.slots[idx].sys
	}
	r.mu.Unlock()

	if old != nil {
		old.Shutdown(w)
	}

	r.mu.Lock()
	if idx >= 0 {
		r.slots[idx] = slot{sys: replacement, typ: reflect.TypeOf(replacement), name: replacement.Name()}
	} else {
		r.slots = append(r.slots, slot{sys: replacement, typ: reflect.TypeOf(replacement), name: replacement.Name()})
	}
	r.mu.Unlock()

	r.logReplacement(old, replacement, "name")
	replacement.Init(w)
	return replacement
}

// All returns a snapshot of the currently registered systems in
// registration order, usable by callers (such as World's adaptive
// controller wiring) that need to enumerate systems by capability rather
// than by a statically known type.
func (r *SystemRegistry) All() []System {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]System, len(r.slots))
	for i, s := range r.slots {
		out[i] = s.sys
	}
	return out
}

// InitAll calls Init on every registered system in registration order.
func (r *SystemRegistry) InitAll(w *World) {
	for _, s := range r.All() {
		s.Init(w)
	}
}

// UpdateAll calls Update on every enabled system in registration order.
func (r *SystemRegistry) UpdateAll(w *World, dt time.Duration) {
	for _, s := range r.All() {
		if en, ok := s.(Enabler); ok && !en.Enabled() {
			continue
		}
		s.Update(w, dt)
	}
}

// ShutdownAll calls Shutdown on every registered system in reverse
// registration order.
func (r *SystemRegistry) ShutdownAll(w *World) {
	systems := r.All()
	for i := len(systems) - 1; i >= 0; i-- {
		systems[i].Shutdown(w)
	}
}

// Len reports the number of registered systems.
func (r *SystemRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

// Names returns the display names of registered systems in registration
// order, primarily useful for tests and diagnostics.
func (r *SystemRegistry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.slots))
	for i, s := range r.slots {
		out[i] = s.name
	}
	return out
}
