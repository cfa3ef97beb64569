// Package systems ships the concrete systems that exercise the ECS core
// end to end: movement (variant-capable Scalar/SIMD) and cleanup
// (collect-then-act), plus the BaseSystem embed both build on, grounded on
// the host application's internal/core/systems/base_system.go.
package systems

import (
	"time"

	"simcore/internal/core/ecs"
)

// BaseSystem supplies the bookkeeping every concrete system needs (display
// name, enabled flag, last-update timing) so each system only has to
// implement its actual per-tick behavior. Embed it and override Update.
type BaseSystem struct {
	name       string
	enabled    bool
	lastUpdate time.Duration
}

// NewBaseSystem constructs an enabled BaseSystem under the given name.
func NewBaseSystem(name string) BaseSystem {
	return BaseSystem{name: name, enabled: true}
}

func (b *BaseSystem) Name() string { return b.name }

func (b *BaseSystem) Enabled() bool     { return b.enabled }
func (b *BaseSystem) SetEnabled(v bool) { b.enabled = v }

// LastUpdate reports how long the most recent Update call took, as measured
// by TimedUpdate.
func (b *BaseSystem) LastUpdate() time.Duration { return b.lastUpdate }

// TimedUpdate wraps fn, recording its wall-clock duration into LastUpdate
// and into a named zone on w's profiler for the current frame.
func (b *BaseSystem) TimedUpdate(w *ecs.World, fn func()) {
	zoneID := w.Profiler().BeginZone(b.name, "", 0)
	start := time.Now()
	fn()
	b.lastUpdate = time.Since(start)
	w.Profiler().EndZone(zoneID)
}

func (b *BaseSystem) Init(*ecs.World)     {}
func (b *BaseSystem) Shutdown(*ecs.World) {}
