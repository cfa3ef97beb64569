package storage

import (
	"reflect"
	"sync"
)

// iArray is the type-erased view of an Array[T] the registry needs in
// order to fan out entity destruction without knowing T. Grounded on the
// reflect.Type-keyed heterogeneous-container idiom used for type erasure
// elsewhere in the example pack (lixenwraith-vi-fighter's engine.go,
// edwinsyarief-lazyecs' compTypeMap) in place of the source's compile-time
// type-id scheme.
type iArray interface {
	Remove(e Entity) bool
	Has(e Entity) bool
	Len() int
	Clear()
}

// Registry is the type-erased component registry: a map from a component
// type's reflect.Type to its (still concretely typed, behind the iArray
// view) Array. Arrays are created lazily on first typed access.
type Registry struct {
	mu     sync.RWMutex
	arrays map[reflect.Type]iArray
}

func NewRegistry() *Registry {
	return &Registry{arrays: make(map[reflect.Type]iArray)}
}

// ArrayFor returns the Array[T] for T, creating it on first access. This is
// a free function rather than a method because Go methods cannot introduce
// additional type parameters beyond the receiver's.
func ArrayFor[T any](r *Registry) *Array[T] {
	key := reflect.TypeFor[T]()

	r.mu.RLock()
	if existing, ok := r.arrays[key]; ok {
		r.mu.RUnlock()
		return existing.(*Array[T])
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.arrays[key]; ok {
		return existing.(*Array[T])
	}
	arr := NewArray[T]()
	r.arrays[key] = arr
	return arr
}

// IsRegistered reports whether T has ever been accessed through ArrayFor.
func IsRegistered[T any](r *Registry) bool {
	key := reflect.TypeFor[T]()
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.arrays[key]
	return ok
}

// OnEntityDestroyed fans the destruction out to every registered array.
// Iteration order among arrays is unspecified, as permitted by §4.3, but
// every array observes the removal before this call returns.
func (r *Registry) OnEntityDestroyed(e Entity) {
	r.mu.RLock()
	arrays := make([]iArray, 0, len(r.arrays))
	for _, a := range r.arrays {
		arrays = append(arrays, a)
	}
	r.mu.RUnlock()

	for _, a := range arrays {
		a.Remove(e)
	}
}

// Clear empties every registered array but keeps their type registration.
func (r *Registry) Clear() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.arrays {
		a.Clear()
	}
}

// TypeCount returns how many distinct component types have been
// registered, for diagnostics.
func (r *Registry) TypeCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.arrays)
}
