package runner

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/listenscope/listenscope-go/internal/testharness/loader"
	"github.com/listenscope/listenscope-go/pkg/scope"
)

// errorKinds maps "error_kind" values to scope category errors.
var errorKinds = map[string]error{
	"registration":   scope.ErrRegistration,
	"deregistration": scope.ErrDeregistration,
	"factory":        scope.ErrFactory,
	"disposed":       scope.ErrScopeDisposed,
}

// checkExpectation evaluates one expect entry.
func checkExpectation(key string, expected any, actionErr error, step *loader.Step, state *ExecutionState, output map[string]any) *ExpectResult {
	er := &ExpectResult{Key: key, Expected: expected}

	switch key {
	case "error":
		want, ok := expected.(bool)
		if !ok {
			return er.fail(nil, "expected value must be a boolean")
		}
		got := actionErr != nil
		return er.compare(got, got == want)

	case "error_kind":
		name := fmt.Sprintf("%v", expected)
		kind, ok := errorKinds[name]
		if !ok {
			return er.fail(nil, fmt.Sprintf("unknown error kind %q", name))
		}
		return er.compare(errorString(actionErr), errors.Is(actionErr, kind))

	case "calls":
		want, ok := toStrings(expected)
		if !ok {
			return er.fail(nil, "expected value must be a list of call names")
		}
		got := output["calls"].([]string)
		return er.compare(got, slices.Equal(got, want))

	case "registers", "deregisters", "active", "bindings", "dispatched":
		return er.compareInt(output[key], expected)

	case "handled":
		owner := stringParam(step.Params, "owner", DefaultOwner)
		return er.compareInt(state.handled[owner], expected)

	case "owner_bindings":
		owner := stringParam(step.Params, "owner", DefaultOwner)
		return er.compareInt(len(state.Registry.Bindings(scope.OwnerID(owner))), expected)

	default:
		return er.fail(nil, fmt.Sprintf("unknown expectation %q", key))
	}
}

func (er *ExpectResult) compare(actual any, passed bool) *ExpectResult {
	er.Actual = actual
	er.Passed = passed
	if passed {
		er.Message = fmt.Sprintf("%s = %v", er.Key, actual)
	} else {
		er.Message = fmt.Sprintf("%s = %v, want %v", er.Key, actual, er.Expected)
	}
	return er
}

func (er *ExpectResult) compareInt(actual, expected any) *ExpectResult {
	want, ok := toInt(expected)
	if !ok {
		return er.fail(actual, "expected value must be an integer")
	}
	got, ok := toInt(actual)
	if !ok {
		return er.fail(actual, fmt.Sprintf("%s not available for this step", er.Key))
	}
	return er.compare(got, got == want)
}

func (er *ExpectResult) fail(actual any, msg string) *ExpectResult {
	er.Actual = actual
	er.Passed = false
	er.Message = msg
	return er
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

func toStrings(v any) ([]string, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}

func errorString(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
