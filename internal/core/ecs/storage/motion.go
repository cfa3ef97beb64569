package storage

import "simcore/internal/core/components"

// MotionStore is a structure-of-arrays mirror of matched Transform+Velocity
// pairs, used by the SIMD movement variant. Design note §9 permits either
// reproducing the source's single-Vec3-per-iteration AoS path, or adding a
// genuine SoA view for Transform/Velocity; this module takes the latter.
// It adapts the host application's optimized_component_store.go, which
// declared the same AddTransform/GetTransformArray surface but left every
// method as a "TODO: 実装予定" stub -- here the structure-of-arrays
// rebuild and write-back are real.
type MotionStore struct {
	entities   []Entity
	posX, posY []float64
	velX, velY []float64
}

func NewMotionStore() *MotionStore { return &MotionStore{} }

// Rebuild repopulates the SoA view from the two authoritative sparse-set
// arrays, driving the walk from whichever is smaller -- the same
// convention the Query join engine uses for its primary array. Returns the
// number of entities with both components.
func (m *MotionStore) Rebuild(transforms *Array[components.Transform], velocities *Array[components.Velocity]) int {
	m.entities = m.entities[:0]
	m.posX = m.posX[:0]
	m.posY = m.posY[:0]
	m.velX = m.velX[:0]
	m.velY = m.velY[:0]

	if transforms.Len() <= velocities.Len() {
		for i, e := range transforms.Entities() {
			v, ok := velocities.Get(e)
			if !ok {
				continue
			}
			t := &transforms.Data()[i]
			m.append(e, t.X, t.Y, v.VX, v.VY)
		}
	} else {
		for i, e := range velocities.Entities() {
			t, ok := transforms.Get(e)
			if !ok {
				continue
			}
			v := &velocities.Data()[i]
			m.append(e, t.X, t.Y, v.VX, v.VY)
		}
	}

	return len(m.entities)
}

func (m *MotionStore) append(e Entity, x, y, vx, vy float64) {
	m.entities = append(m.entities, e)
	m.posX = append(m.posX, x)
	m.posY = append(m.posY, y)
	m.velX = append(m.velX, vx)
	m.velY = append(m.velY, vy)
}

// Len reports how many entities are currently held in the SoA view.
func (m *MotionStore) Len() int { return len(m.entities) }

// Integrate applies pos += vel * dt across every lane in a single
// straight-line loop over contiguous slices -- the Go-native stand-in for
// hand-vectorized SIMD: the compiler's auto-vectorizer, not a hand-rolled
// one, operates on exactly this shape.
func (m *MotionStore) Integrate(dt float64) {
	for i := range m.posX {
		m.posX[i] += m.velX[i] * dt
		m.posY[i] += m.velY[i] * dt
	}
}

// WriteBack copies the (possibly just-integrated) positions back into the
// authoritative Transform array.
func (m *MotionStore) WriteBack(transforms *Array[components.Transform]) {
	for i, e := range m.entities {
		transforms.Set(e, components.Transform{X: m.posX[i], Y: m.posY[i]})
	}
}
