package query

import (
	"reflect"

	"simcore/internal/core/ecs/storage"
)

// Query1 is the degenerate single-component join: a thin iteration wrapper
// over one Array, included for the sake of a uniform Query<C1..C6> surface
// across arities 1-6 as §9 calls for.
type Query1[A any] struct {
	a *storage.Array[A]
}

func New1[A any](r *storage.Registry) *Query1[A] {
	return &Query1[A]{a: storage.ArrayFor[A](r)}
}

func (q *Query1[A]) ForEach(fn func(Entity, *A))    { q.a.ForEach(fn) }
func (q *Query1[A]) ForEachMut(fn func(Entity, *A)) { q.ForEach(fn) }
func (q *Query1[A]) Entities() []Entity             { return append([]Entity(nil), q.a.Entities()...) }
func (q *Query1[A]) Count() int                     { return q.a.Len() }
func (q *Query1[A]) Any() bool                      { return q.a.Len() > 0 }

// Query3 joins three component arrays, driving iteration from the
// smallest.
type Query3[A, B, C any] struct {
	a *storage.Array[A]
	b *storage.Array[B]
	c *storage.Array[C]
}

func New3[A, B, C any](r *storage.Registry) *Query3[A, B, C] {
	a, b, c := storage.ArrayFor[A](r), storage.ArrayFor[B](r), storage.ArrayFor[C](r)
	distinct(reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]())
	return &Query3[A, B, C]{a: a, b: b, c: c}
}

func (q *Query3[A, B, C]) arrays() []sizer { return []sizer{q.a, q.b, q.c} }

func (q *Query3[A, B, C]) ForEach(fn func(Entity, *A, *B, *C)) {
	switch smallest(q.arrays()...) {
	case 0:
		for i, e := range q.a.Entities() {
			cb, ok := q.b.Get(e)
			if !ok {
				continue
			}
			cc, ok := q.c.Get(e)
			if !ok {
				continue
			}
			fn(e, &q.a.Data()[i], cb, cc)
		}
	case 1:
		for i, e := range q.b.Entities() {
			ca, ok := q.a.Get(e)
			if !ok {
				continue
			}
			cc, ok := q.c.Get(e)
			if !ok {
				continue
			}
			fn(e, ca, &q.b.Data()[i], cc)
		}
	default:
		for i, e := range q.c.Entities() {
			ca, ok := q.a.Get(e)
			if !ok {
				continue
			}
			cb, ok := q.b.Get(e)
			if !ok {
				continue
			}
			fn(e, ca, cb, &q.c.Data()[i])
		}
	}
}

func (q *Query3[A, B, C]) ForEachMut(fn func(Entity, *A, *B, *C)) { q.ForEach(fn) }

func (q *Query3[A, B, C]) Entities() []Entity {
	var out []Entity
	q.ForEach(func(e Entity, _ *A, _ *B, _ *C) { out = append(out, e) })
	return out
}

func (q *Query3[A, B, C]) Count() int {
	n := 0
	q.ForEach(func(Entity, *A, *B, *C) { n++ })
	return n
}

func (q *Query3[A, B, C]) Any() bool {
	any := false
	q.ForEach(func(Entity, *A, *B, *C) { any = true })
	return any
}

// Query4, Query5 and Query6 still drive iteration from the smallest array,
// but check membership through one shared walk closure per query rather
// than a hand-duplicated membership check for each possible driver. They
// provide ForEach, ForEachMut, Count and Any; they have no Entities method.

// Query4 joins four component arrays.
type Query4[A, B, C, D any] struct {
	a *storage.Array[A]
	b *storage.Array[B]
	c *storage.Array[C]
	d *storage.Array[D]
}

func New4[A, B, C, D any](r *storage.Registry) *Query4[A, B, C, D] {
	distinct(reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D]())
	return &Query4[A, B, C, D]{
		a: storage.ArrayFor[A](r), b: storage.ArrayFor[B](r),
		c: storage.ArrayFor[C](r), d: storage.ArrayFor[D](r),
	}
}

func (q *Query4[A, B, C, D]) ForEach(fn func(Entity, *A, *B, *C, *D)) {
	driver := smallest(q.a, q.b, q.c, q.d)
	walk := func(e Entity) bool {
		ca, ok := q.a.Get(e)
		if !ok {
			return false
		}
		cb, ok := q.b.Get(e)
		if !ok {
			return false
		}
		cc, ok := q.c.Get(e)
		if !ok {
			return false
		}
		cd, ok := q.d.Get(e)
		if !ok {
			return false
		}
		fn(e, ca, cb, cc, cd)
		return true
	}
	switch driver {
	case 0:
		for _, e := range q.a.Entities() {
			walk(e)
		}
	case 1:
		for _, e := range q.b.Entities() {
			walk(e)
		}
	case 2:
		for _, e := range q.c.Entities() {
			walk(e)
		}
	default:
		for _, e := range q.d.Entities() {
			walk(e)
		}
	}
}

func (q *Query4[A, B, C, D]) ForEachMut(fn func(Entity, *A, *B, *C, *D)) { q.ForEach(fn) }
func (q *Query4[A, B, C, D]) Count() int {
	n := 0
	q.ForEach(func(Entity, *A, *B, *C, *D) { n++ })
	return n
}
func (q *Query4[A, B, C, D]) Any() bool {
	any := false
	q.ForEach(func(Entity, *A, *B, *C, *D) { any = true })
	return any
}

// Query5 joins five component arrays.
type Query5[A, B, C, D, E any] struct {
	a *storage.Array[A]
	b *storage.Array[B]
	c *storage.Array[C]
	d *storage.Array[D]
	e *storage.Array[E]
}

func New5[A, B, C, D, E any](r *storage.Registry) *Query5[A, B, C, D, E] {
	distinct(reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D](), reflect.TypeFor[E]())
	return &Query5[A, B, C, D, E]{
		a: storage.ArrayFor[A](r), b: storage.ArrayFor[B](r), c: storage.ArrayFor[C](r),
		d: storage.ArrayFor[D](r), e: storage.ArrayFor[E](r),
	}
}

func (q *Query5[A, B, C, D, E]) ForEach(fn func(Entity, *A, *B, *C, *D, *E)) {
	driver := smallest(q.a, q.b, q.c, q.d, q.e)
	walk := func(ent Entity) {
		ca, ok := q.a.Get(ent)
		if !ok {
			return
		}
		cb, ok := q.b.Get(ent)
		if !ok {
			return
		}
		cc, ok := q.c.Get(ent)
		if !ok {
			return
		}
		cd, ok := q.d.Get(ent)
		if !ok {
			return
		}
		ce, ok := q.e.Get(ent)
		if !ok {
			return
		}
		fn(ent, ca, cb, cc, cd, ce)
	}
	sources := [][]Entity{q.a.Entities(), q.b.Entities(), q.c.Entities(), q.d.Entities(), q.e.Entities()}
	for _, ent := range sources[driver] {
		walk(ent)
	}
}

func (q *Query5[A, B, C, D, E]) ForEachMut(fn func(Entity, *A, *B, *C, *D, *E)) { q.ForEach(fn) }
func (q *Query5[A, B, C, D, E]) Count() int {
	n := 0
	q.ForEach(func(Entity, *A, *B, *C, *D, *E) { n++ })
	return n
}
func (q *Query5[A, B, C, D, E]) Any() bool {
	any := false
	q.ForEach(func(Entity, *A, *B, *C, *D, *E) { any = true })
	return any
}

// Query6 joins six component arrays -- the upper bound the design notes
// call acceptable for a manually-implemented variant.
type Query6[A, B, C, D, E, F any] struct {
	a *storage.Array[A]
	b *storage.Array[B]
	c *storage.Array[C]
	d *storage.Array[D]
	e *storage.Array[E]
	f *storage.Array[F]
}

func New6[A, B, C, D, E, F any](r *storage.Registry) *Query6[A, B, C, D, E, F] {
	distinct(
		reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](),
		reflect.TypeFor[D](), reflect.TypeFor[E](), reflect.TypeFor[F](),
	)
	return &Query6[A, B, C, D, E, F]{
		a: storage.ArrayFor[A](r), b: storage.ArrayFor[B](r), c: storage.ArrayFor[C](r),
		d: storage.ArrayFor[D](r), e: storage.ArrayFor[E](r), f: storage.ArrayFor[F](r),
	}
}

func (q *Query6[A, B, C, D, E, F]) ForEach(fn func(Entity, *A, *B, *C, *D, *E, *F)) {
	driver := smallest(q.a, q.b, q.c, q.d, q.e, q.f)
	walk := func(ent Entity) {
		ca, ok := q.a.Get(ent)
		if !ok {
			return
		}
		cb, ok := q.b.Get(ent)
		if !ok {
			return
		}
		cc, ok := q.c.Get(ent)
		if !ok {
			return
		}
		cd, ok := q.d.Get(ent)
		if !ok {
			return
		}
		ce, ok := q.e.Get(ent)
		if !ok {
			return
		}
		cf, ok := q.f.Get(ent)
		if !ok {
			return
		}
		fn(ent, ca, cb, cc, cd, ce, cf)
	}
	sources := [][]Entity{
		q.a.Entities(), q.b.Entities(), q.c.Entities(),
		q.d.Entities(), q.e.Entities(), q.f.Entities(),
	}
	for _, ent := range sources[driver] {
		walk(ent)
	}
}

func (q *Query6[A, B, C, D, E, F]) ForEachMut(fn func(Entity, *A, *B, *C, *D, *E, *F)) { q.ForEach(fn) }
func (q *Query6[A, B, C, D, E, F]) Count() int {
	n := 0
	q.ForEach(func(Entity, *A, *B, *C, *D, *E, *F) { n++ })
	return n
}
func (q *Query6[A, B, C, D, E, F]) Any() bool {
	any := false
	q.ForEach(func(Entity, *A, *B, *C, *D, *E, *F) { any = true })
	return any
}
