package systems

import (
	"time"

	"simcore/internal/core/components"
	"simcore/internal/core/ecs"
	"simcore/internal/core/ecs/storage"
)

// CleanupSystem implements the collect-then-act pattern §5 mandates for
// structural mutation during iteration: it gathers every entity whose
// Health has been depleted during one pass over the Health array, then
// destroys each one only after that pass completes.
type CleanupSystem struct {
	BaseSystem

	scratch []ecs.Entity
}

func NewCleanupSystem() *CleanupSystem {
	return &CleanupSystem{BaseSystem: NewBaseSystem("Cleanup")}
}

func (c *CleanupSystem) Update(w *ecs.World, _ time.Duration) {
	c.TimedUpdate(w, func() {
		healths := storage.ArrayFor[components.Health](w.Components())

		c.scratch = c.scratch[:0]
		healths.ForEach(func(e ecs.Entity, h *components.Health) {
			if h.Dead() {
				c.scratch = append(c.scratch, e)
			}
		})

		for _, e := range c.scratch {
			w.DestroyEntity(e)
		}
	})
}
