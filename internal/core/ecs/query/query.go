// Package query implements the manually-instantiated variadic-over-arity
// join engine §4.4 and §9 call for: a generic Query[C1..C6] that drives
// iteration from the smallest backing array and checks membership in the
// rest. The structural template is Swedeachu-go_ecs's Iterate2/Iterate3/
// Iterate4 (smallest-dense-array driver) combined with edwinsyarief-
// lazyecs' reflect.TypeFor-based generic Filter pattern.
package query

import (
	"fmt"
	"reflect"

	"simcore/internal/core/ecs/entity"
	"simcore/internal/core/ecs/storage"
)

type Entity = entity.Entity

// sizer is satisfied by every storage.Array[T] regardless of T, used only
// to compare sizes when picking the primary (driving) array.
type sizer interface{ Len() int }

func smallest(sizers ...sizer) int {
	best := 0
	for i := 1; i < len(sizers); i++ {
		if sizers[i].Len() < sizers[best].Len() {
			best = i
		}
	}
	return best
}

// distinct panics if any two of the given reflect.Types are identical. Go's
// type system cannot enforce distinctness of Query's type parameters at
// compile time the way a borrow-checker would; this is the fail-fast
// analogue the design notes call for.
func distinct(types ...reflect.Type) {
	seen := make(map[reflect.Type]bool, len(types))
	for _, t := range types {
		if seen[t] {
			panic(fmt.Sprintf("query: component type %s repeated in query type parameters", t))
		}
		seen[t] = true
	}
}

// Query2 joins two component arrays. The other arities (1 and 3-6) are in
// query_arity.go; Query4-6 omit Entities.
type Query2[A, B any] struct {
	a *storage.Array[A]
	b *storage.Array[B]
}

func New2[A, B any](r *storage.Registry) *Query2[A, B] {
	a := storage.ArrayFor[A](r)
	b := storage.ArrayFor[B](r)
	distinct(reflect.TypeFor[A](), reflect.TypeFor[B]())
	return &Query2[A, B]{a: a, b: b}
}

func (q *Query2[A, B]) ForEach(fn func(Entity, *A, *B)) {
	switch smallest(q.a, q.b) {
	case 0:
		for i, e := range q.a.Entities() {
			cb, ok := q.b.Get(e)
			if !ok {
				continue
			}
			ca := &q.a.Data()[i]
			fn(e, ca, cb)
		}
	default:
		for i, e := range q.b.Entities() {
			ca, ok := q.a.Get(e)
			if !ok {
				continue
			}
			cb := &q.b.Data()[i]
			fn(e, ca, cb)
		}
	}
}

func (q *Query2[A, B]) ForEachMut(fn func(Entity, *A, *B)) { q.ForEach(fn) }

func (q *Query2[A, B]) Entities() []Entity {
	var out []Entity
	q.ForEach(func(e Entity, _ *A, _ *B) { out = append(out, e) })
	return out
}

func (q *Query2[A, B]) Count() int {
	n := 0
	q.ForEach(func(Entity, *A, *B) { n++ })
	return n
}

func (q *Query2[A, B]) Any() bool {
	found := false
	for i, e := range q.a.Entities() {
		if found {
			break
		}
		_ = i
		if q.b.Has(e) {
			found = true
		}
	}
	return found
}
