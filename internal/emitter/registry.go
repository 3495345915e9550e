package emitter

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownBackend = errors.New("unknown backend")

// Registry is the lookup table of available backends keyed by name.
type Registry struct {
	emitters map[string]Emitter
}

func NewRegistry(emitters ...Emitter) *Registry {
	r := &Registry{emitters: make(map[string]Emitter, len(emitters))}
	for _, e := range emitters {
		r.Register(e)
	}
	return r
}

// Register adds e, replacing any backend with the same name.
func (r *Registry) Register(e Emitter) {
	r.emitters[e.Name()] = e
}

func (r *Registry) Lookup(name string) (Emitter, error) {
	e, ok := r.emitters[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownBackend, name, r.Names())
	}
	return e, nil
}

// Names returns the registered backend names sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.emitters))
	for name := range r.emitters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select resolves names to backends in the order given, skipping repeats.
// No names selects every backend in name order. Any unknown name fails the
// whole selection.
func (r *Registry) Select(names []string) ([]Emitter, error) {
	if len(names) == 0 {
		names = r.Names()
	}
	selected := make([]Emitter, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		e, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, e)
	}
	return selected, nil
}
