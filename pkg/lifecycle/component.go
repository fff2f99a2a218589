// Package lifecycle models the owner side of a listener scope: a component
// that is mounted, re-evaluated any number of times, then unmounted.
package lifecycle

import (
	"errors"
	"fmt"
	"sync"

	"github.com/listenscope/listenscope-go/pkg/scope"
)

// Lifecycle errors.
var (
	ErrInvalidState = errors.New("invalid lifecycle transition")
	ErrNotMounted   = errors.New("component not mounted")
)

// State is the lifecycle state of a component.
type State uint8

const (
	// StateCreated is a component that has not been mounted yet.
	StateCreated State = iota
	// StateMounted is an active component.
	StateMounted
	// StateUnmounted is a component that is permanently inactive.
	StateUnmounted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "CREATED"
	case StateMounted:
		return "MOUNTED"
	case StateUnmounted:
		return "UNMOUNTED"
	default:
		return "UNKNOWN"
	}
}

// Component is an owner of listener bindings. It forwards re-evaluations to
// a Registry while mounted and disposes its bindings exactly once on
// Unmount.
type Component struct {
	mu       sync.Mutex
	id       scope.OwnerID
	registry *scope.Registry
	state    State
}

// NewComponent creates an unmounted component with a fresh owner ID.
func NewComponent(registry *scope.Registry) *Component {
	return NewComponentWithID(registry, scope.NewOwnerID())
}

// NewComponentWithID creates an unmounted component with a given owner ID.
func NewComponentWithID(registry *scope.Registry, id scope.OwnerID) *Component {
	return &Component{
		id:       id,
		registry: registry,
		state:    StateCreated,
	}
}

// ID returns the owner ID.
func (c *Component) ID() scope.OwnerID {
	return c.id
}

// State returns the current lifecycle state.
func (c *Component) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mount activates the component.
func (c *Component) Mount() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateCreated {
		return fmt.Errorf("%w: mount from %s", ErrInvalidState, c.state)
	}
	c.state = StateMounted
	return nil
}

// UseListener re-evaluates the component's binding for eventName.
// It must be called on every render of the component.
func (c *Component) UseListener(target scope.Target, eventName string, factory scope.Factory, deps scope.Deps) error {
	if c.State() != StateMounted {
		return ErrNotMounted
	}
	return c.registry.Evaluate(c.id, target, eventName, factory, deps)
}

// Unmount deactivates the component and releases all of its bindings.
// Unmounting an already unmounted component does nothing. A component that
// was never mounted moves straight to StateUnmounted.
func (c *Component) Unmount() error {
	c.mu.Lock()
	if c.state == StateUnmounted {
		c.mu.Unlock()
		return nil
	}
	c.state = StateUnmounted
	c.mu.Unlock()

	return c.registry.Dispose(c.id)
}

// Bindings returns the component's active bindings.
func (c *Component) Bindings() []scope.Binding {
	return c.registry.Bindings(c.id)
}
