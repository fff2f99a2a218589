package runner

import (
	"fmt"

	"github.com/listenscope/listenscope-go/internal/testharness/loader"
	"github.com/listenscope/listenscope-go/pkg/event"
	"github.com/listenscope/listenscope-go/pkg/scope"
)

// executeAction performs a step's action and returns action-specific
// outputs.
func executeAction(step *loader.Step, state *ExecutionState) (map[string]any, error) {
	owner := stringParam(step.Params, "owner", DefaultOwner)
	eventName := stringParam(step.Params, "event", DefaultEvent)

	switch step.Action {
	case loader.ActionEvaluate:
		deps, err := depsParam(step.Params)
		if err != nil {
			return nil, err
		}
		register := boolParam(step.Params, "register", true)
		return nil, state.Registry.Evaluate(scope.OwnerID(owner), state.Recorder, eventName,
			state.factory(owner, register), deps)

	case loader.ActionDispose:
		return nil, state.Registry.Dispose(scope.OwnerID(owner))

	case loader.ActionDisposeAll:
		return nil, state.Registry.DisposeAll()

	case loader.ActionDispatch:
		n := state.Source.Dispatch(eventName, step.Params["payload"])
		return map[string]any{"dispatched": n}, nil

	case loader.ActionFailNextRegister:
		state.faults.armRegister()
		return nil, nil

	case loader.ActionFailNextDeregister:
		state.faults.armDeregister()
		return nil, nil

	case loader.ActionFailNextFactory:
		state.failFactory = true
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown action %q", step.Action)
	}
}

// factory builds the handler factory for an evaluate step. Delivered
// events are counted per owner.
func (s *ExecutionState) factory(owner string, register bool) scope.Factory {
	return func() (event.Handler, error) {
		if s.failFactory {
			s.failFactory = false
			return nil, ErrInjected
		}
		if !register {
			return nil, nil
		}
		return func(event.Event) {
			s.handled[owner]++
		}, nil
	}
}

// depsParam reads the "deps" parameter. An absent or null key yields the
// nil snapshot; a list yields its elements; a scalar is a one-element
// snapshot.
func depsParam(params map[string]any) (scope.Deps, error) {
	raw, ok := params["deps"]
	if !ok || raw == nil {
		return scope.Always(), nil
	}
	switch v := raw.(type) {
	case []any:
		return scope.On(v...), nil
	case map[string]any:
		return nil, fmt.Errorf("deps must be a list or scalar, got map")
	default:
		return scope.On(v), nil
	}
}

func stringParam(params map[string]any, key, def string) string {
	if v, ok := params[key]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return def
}

func boolParam(params map[string]any, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}
