package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position struct{ x, y float64 }

func TestSwapRemoveIntegrity(t *testing.T) {
	arr := NewArray[position]()
	e1 := Entity{Index: 0, Generation: 1}
	e2 := Entity{Index: 1, Generation: 1}
	e3 := Entity{Index: 2, Generation: 1}

	arr.Set(e1, position{x: 1})
	arr.Set(e2, position{x: 2})
	arr.Set(e3, position{x: 3})

	require.True(t, arr.Remove(e2))

	assert.Equal(t, 2, arr.Len())
	p1, ok := arr.Get(e1)
	require.True(t, ok)
	assert.Equal(t, 1.0, p1.x)

	p3, ok := arr.Get(e3)
	require.True(t, ok)
	assert.Equal(t, 3.0, p3.x)

	assert.False(t, arr.Has(e2))
}

func TestRemoveIsIdempotent(t *testing.T) {
	arr := NewArray[position]()
	e := Entity{Index: 0, Generation: 1}
	arr.Set(e, position{x: 1})

	require.True(t, arr.Remove(e))
	sizeAfterFirst := arr.Len()

	assert.False(t, arr.Remove(e))
	assert.Equal(t, sizeAfterFirst, arr.Len())
}

func TestSetThenGetRoundTrips(t *testing.T) {
	arr := NewArray[position]()
	e := Entity{Index: 0, Generation: 1}

	arr.Set(e, position{x: 1})
	v, ok := arr.Get(e)
	require.True(t, ok)
	assert.Equal(t, position{x: 1}, *v)

	sizeBefore := arr.Len()
	arr.Set(e, position{x: 9})
	v2, ok := arr.Get(e)
	require.True(t, ok)
	assert.Equal(t, position{x: 9}, *v2)
	assert.Equal(t, sizeBefore, arr.Len())
}

func TestSparseSetInvariantHoldsAfterRandomOps(t *testing.T) {
	arr := NewArray[position]()
	var live []Entity

	for i := uint32(0); i < 20; i++ {
		e := Entity{Index: i, Generation: 1}
		arr.Set(e, position{x: float64(i)})
		live = append(live, e)
		if i%3 == 0 && i > 0 {
			victim := live[0]
			live = live[1:]
			arr.Remove(victim)
		}
	}

	for d, e := range arr.Entities() {
		assert.True(t, arr.Has(e))
		_, ok := arr.Get(e)
		assert.True(t, ok)
		assert.Equal(t, uint32(d), arr.sparse[e.Index], "sparse[dense_entities[d].index] must equal d")
	}
}

func TestForEachVisitsDenseOrder(t *testing.T) {
	arr := NewArray[position]()
	e1 := Entity{Index: 0, Generation: 1}
	e2 := Entity{Index: 1, Generation: 1}
	arr.Set(e1, position{x: 1})
	arr.Set(e2, position{x: 2})

	var got []float64
	arr.ForEach(func(e Entity, p *position) {
		p.x *= 10
		got = append(got, p.x)
	})

	assert.Equal(t, []float64{10, 20}, got)
	v1, _ := arr.Get(e1)
	assert.Equal(t, 10.0, v1.x)
}

func TestDataIsContiguousForSIMD(t *testing.T) {
	arr := NewArray[position]()
	for i := uint32(0); i < 4; i++ {
		arr.Set(Entity{Index: i, Generation: 1}, position{x: float64(i)})
	}
	data := arr.Data()
	require.Len(t, data, 4)
	for i, p := range data {
		assert.Equal(t, float64(i), p.x)
	}
}
