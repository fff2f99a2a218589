package scope

import (
	"fmt"
	"reflect"
)

// Deps is an ordered dependency snapshot. A nil Deps means no snapshot was
// supplied and never compares equal, not even to itself. A non-nil empty
// Deps compares equal to any other empty snapshot.
type Deps []any

// On returns a snapshot of values. On() with no values is equivalent to
// Once().
func On(values ...any) Deps {
	if values == nil {
		return Deps{}
	}
	return Deps(values)
}

// Once returns the empty snapshot: establish once, keep until disposal.
func Once() Deps {
	return Deps{}
}

// Always returns the nil snapshot: re-establish on every evaluation.
func Always() Deps {
	return nil
}

// IsAlways reports whether d is the nil snapshot.
func (d Deps) IsAlways() bool {
	return d == nil
}

// Equal reports whether d and other have the same length and element-wise
// equal values.
func (d Deps) Equal(other Deps) bool {
	if d == nil || other == nil {
		return false
	}
	if len(d) != len(other) {
		return false
	}
	for i := range d {
		if !valuesEqual(d[i], other[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy so later mutation of the caller's slice cannot
// change a stored snapshot.
func (d Deps) Clone() Deps {
	if d == nil {
		return nil
	}
	out := make(Deps, len(d))
	copy(out, d)
	return out
}

// Strings renders each value with %v. Nil for the nil snapshot.
func (d Deps) Strings() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d))
	for i, v := range d {
		out[i] = fmt.Sprintf("%v", v)
	}
	return out
}

// valuesEqual compares two snapshot values.
func valuesEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch av := a.(type) {
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case uint64:
		bv, ok := b.(uint64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	}

	return reflect.DeepEqual(a, b)
}
