package systems

import (
	"time"

	"simcore/internal/core/components"
	"simcore/internal/core/ecs"
	"simcore/internal/core/ecs/query"
	"simcore/internal/core/ecs/storage"
	"simcore/internal/core/ecs/variant"
)

// MovementSystem integrates Transform by Velocity each tick. It is
// variant-capable: the Scalar path walks Query<Transform,Velocity>, the
// SIMD path rebuilds a SoA MotionStore and integrates over contiguous
// slices, letting the compiler's auto-vectorizer do the actual vector work
// (see §4.10 / §9's design note on this Go rendition of "SIMD").
type MovementSystem struct {
	BaseSystem

	current variant.Variant
	motion  *storage.MotionStore
}

// NewMovementSystem constructs a MovementSystem starting in the Scalar
// variant.
func NewMovementSystem() *MovementSystem {
	return &MovementSystem{
		BaseSystem: NewBaseSystem("Movement"),
		current:    variant.Scalar,
		motion:     storage.NewMotionStore(),
	}
}

func (m *MovementSystem) AvailableVariants() []variant.Variant {
	return []variant.Variant{variant.Scalar, variant.SIMD}
}

func (m *MovementSystem) CurrentVariant() variant.Variant { return m.current }

func (m *MovementSystem) SwitchVariant(v variant.Variant) bool {
	switch v {
	case variant.Scalar, variant.SIMD:
		m.current = v
		return true
	default:
		return false
	}
}

func (m *MovementSystem) Update(w *ecs.World, dt time.Duration) {
	m.TimedUpdate(w, func() {
		seconds := dt.Seconds()
		switch m.current {
		case variant.SIMD:
			m.updateSIMD(w, seconds)
		default:
			m.updateScalar(w, seconds)
		}
	})
}

func (m *MovementSystem) updateScalar(w *ecs.World, dt float64) {
	q := query.New2[components.Transform, components.Velocity](w.Components())
	q.ForEach(func(_ query.Entity, t *components.Transform, v *components.Velocity) {
		t.X += v.VX * dt
		t.Y += v.VY * dt
	})
}

func (m *MovementSystem) updateSIMD(w *ecs.World, dt float64) {
	transforms := storage.ArrayFor[components.Transform](w.Components())
	velocities := storage.ArrayFor[components.Velocity](w.Components())
	m.motion.Rebuild(transforms, velocities)
	m.motion.Integrate(dt)
	m.motion.WriteBack(transforms)
}
