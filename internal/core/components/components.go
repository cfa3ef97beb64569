// Package components holds the plain per-entity data types exercised by
// the bundled systems and the test scenarios in the specification. They
// are opaque data (§4.2: "Numerical semantics: none; T is opaque") and
// deliberately carry no behavior -- no Clone/Validate/Serialize methods,
// unlike the host application's heavier Component interface, since
// persistence and validation middleware are outside this core's scope.
package components

// Transform holds an entity's position in world space.
type Transform struct {
	X, Y float64
}

// Velocity holds an entity's per-second rate of change in position.
type Velocity struct {
	VX, VY float64
}

// Health holds an entity's remaining hit points.
type Health struct {
	Current, Max float64
}

// Dead returns true once Current has been depleted.
func (h Health) Dead() bool { return h.Current <= 0 }
