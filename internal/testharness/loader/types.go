// Package loader provides YAML scenario loading for the scope test harness.
package loader

import (
	"fmt"
)

// Known step actions.
const (
	ActionEvaluate           = "evaluate"
	ActionDispose            = "dispose"
	ActionDisposeAll         = "dispose_all"
	ActionDispatch           = "dispatch"
	ActionFailNextRegister   = "fail_next_register"
	ActionFailNextDeregister = "fail_next_deregister"
	ActionFailNextFactory    = "fail_next_factory"
)

// KnownActions lists every action a scenario may use.
var KnownActions = []string{
	ActionEvaluate,
	ActionDispose,
	ActionDisposeAll,
	ActionDispatch,
	ActionFailNextRegister,
	ActionFailNextDeregister,
	ActionFailNextFactory,
}

// Scenario is a single scripted sequence of scope operations.
type Scenario struct {
	// ID is the unique scenario identifier (e.g. "SC-DEPS-001").
	ID string `yaml:"id"`

	// Name is a human-readable name.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description"`

	// Target configures the event source the scenario runs against.
	Target TargetSpec `yaml:"target,omitempty"`

	// Steps are the actions to execute in order.
	Steps []Step `yaml:"steps"`

	// Tags for categorizing scenarios.
	Tags []string `yaml:"tags,omitempty"`
}

// TargetSpec configures the in-memory event source.
type TargetSpec struct {
	// Events restricts accepted event names. Empty accepts any name.
	Events []string `yaml:"events,omitempty"`

	// MaxHandlersPerEvent bounds registrations per event name.
	MaxHandlersPerEvent int `yaml:"max_handlers_per_event,omitempty"`
}

// Step is a single action in a scenario.
type Step struct {
	// Action is the action to perform (see KnownActions).
	Action string `yaml:"action"`

	// Params are parameters for the action. For evaluate, an absent "deps"
	// key means no snapshot was supplied.
	Params map[string]any `yaml:"params,omitempty"`

	// Expect defines expected outcomes after the action.
	Expect map[string]any `yaml:"expect,omitempty"`

	// Description explains what this step does.
	Description string `yaml:"description,omitempty"`
}

// LoadError describes a scenario that could not be loaded.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
