package scope

import (
	"errors"
	"sort"
	"sync"
)

// Registry tracks one Scope per (owner, event name). It is safe for
// concurrent use by different owners; each owner is expected to serialise
// its own Evaluate and Dispose calls.
type Registry struct {
	mu sync.Mutex

	config Config

	// Scopes per owner, keyed by event name.
	owners map[OwnerID]map[string]*Scope
}

// NewRegistry creates a registry with default configuration.
func NewRegistry() *Registry {
	return NewRegistryWithConfig(DefaultConfig())
}

// NewRegistryWithConfig creates a registry with custom configuration.
func NewRegistryWithConfig(config Config) *Registry {
	return &Registry{
		config: config,
		owners: make(map[OwnerID]map[string]*Scope),
	}
}

// Evaluate re-evaluates the owner's binding for eventName. See Scope.Evaluate.
func (r *Registry) Evaluate(owner OwnerID, target Target, eventName string, factory Factory, deps Deps) error {
	return r.scopeFor(owner, eventName).Evaluate(target, eventName, factory, deps)
}

// Dispose releases every binding the owner holds and forgets the owner.
// Deregistration failures are joined; every scope is disposed regardless.
// Disposing an unknown owner does nothing.
func (r *Registry) Dispose(owner OwnerID) error {
	r.mu.Lock()
	scopes := r.owners[owner]
	delete(r.owners, owner)
	r.mu.Unlock()

	var errs []error
	for _, name := range sortedNames(scopes) {
		if err := scopes[name].Dispose(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DisposeAll disposes every owner.
func (r *Registry) DisposeAll() error {
	var errs []error
	for _, owner := range r.Owners() {
		if err := r.Dispose(owner); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Scope returns the owner's scope for eventName, if one exists.
func (r *Registry) Scope(owner OwnerID, eventName string) (*Scope, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.owners[owner][eventName]
	return s, ok
}

// Owners returns the known owners in sorted order.
func (r *Registry) Owners() []OwnerID {
	r.mu.Lock()
	defer r.mu.Unlock()

	owners := make([]OwnerID, 0, len(r.owners))
	for o := range r.owners {
		owners = append(owners, o)
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i] < owners[j] })
	return owners
}

// Bindings returns the owner's active bindings ordered by event name.
func (r *Registry) Bindings(owner OwnerID) []Binding {
	r.mu.Lock()
	scopes := r.owners[owner]
	names := sortedNames(scopes)
	ordered := make([]*Scope, len(names))
	for i, name := range names {
		ordered[i] = scopes[name]
	}
	r.mu.Unlock()

	var out []Binding
	for _, s := range ordered {
		if b, ok := s.Binding(); ok {
			out = append(out, b)
		}
	}
	return out
}

// Count returns the number of active bindings across all owners.
func (r *Registry) Count() int {
	r.mu.Lock()
	var all []*Scope
	for _, scopes := range r.owners {
		for _, s := range scopes {
			all = append(all, s)
		}
	}
	r.mu.Unlock()

	n := 0
	for _, s := range all {
		if s.Active() {
			n++
		}
	}
	return n
}

// scopeFor returns the owner's scope for eventName, creating it if needed.
func (r *Registry) scopeFor(owner OwnerID, eventName string) *Scope {
	r.mu.Lock()
	defer r.mu.Unlock()

	scopes, ok := r.owners[owner]
	if !ok {
		scopes = make(map[string]*Scope)
		r.owners[owner] = scopes
	}
	s, ok := scopes[eventName]
	if !ok {
		s = newScope(owner, r.config)
		scopes[eventName] = s
	}
	return s
}

func sortedNames(scopes map[string]*Scope) []string {
	names := make([]string, 0, len(scopes))
	for name := range scopes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
