package entity

import (
	"fmt"
	"sort"
	"sync"
)

// Kind is the tag naming an entity variant in levels and the editor.
type Kind string

// Factory builds a fresh entity of one kind.
type Factory func() *Entity

var (
	factories = make(map[Kind]Factory)
	mu        sync.RWMutex
)

// Register adds a factory. Behavior packages call it from init().
// Panics if the kind is already registered.
func Register(kind Kind, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[kind]; exists {
		panic(fmt.Sprintf("entity: kind %q already registered", kind))
	}
	factories[kind] = f
}

// Create instantiates an entity of the given kind.
func Create(kind Kind) (*Entity, error) {
	mu.RLock()
	f, ok := factories[kind]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("entity: unknown kind %q", kind)
	}
	e := f()
	e.Kind = kind
	return e, nil
}

// Exists checks whether a kind is registered.
func Exists(kind Kind) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[kind]
	return ok
}

// Kinds lists the registered kinds, sorted.
func Kinds() []Kind {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]Kind, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
