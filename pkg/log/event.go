package log

import "time"

// Event represents a single scope decision.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the decision was taken (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// OwnerID identifies the owning lifecycle context.
	OwnerID string `cbor:"2,keyasint,omitempty"`

	// EventName is the event the binding listens for.
	EventName string `cbor:"3,keyasint"`

	// Op is the action taken against the target.
	Op Op `cbor:"4,keyasint"`

	// Reason explains why the action was taken.
	Reason Reason `cbor:"5,keyasint"`

	// Token is the registration token involved, if any.
	Token string `cbor:"6,keyasint,omitempty"`

	// Deps is a printable rendering of the dependency snapshot.
	// Nil when the snapshot was omitted.
	Deps []string `cbor:"7,keyasint,omitempty"`

	// Error is set when the target or factory rejected the action.
	Error *ErrorEventData `cbor:"8,keyasint,omitempty"`
}

// Op identifies the action a scope took.
type Op uint8

const (
	// OpRegister indicates a handler was registered.
	OpRegister Op = 0
	// OpDeregister indicates a handler was removed.
	OpDeregister Op = 1
	// OpRetain indicates the existing binding was kept unchanged.
	OpRetain Op = 2
	// OpSkip indicates the factory declined to produce a handler.
	OpSkip Op = 3
	// OpDispose indicates the scope was disposed.
	OpDispose Op = 4
)

// String returns the op name.
func (o Op) String() string {
	switch o {
	case OpRegister:
		return "REGISTER"
	case OpDeregister:
		return "DEREGISTER"
	case OpRetain:
		return "RETAIN"
	case OpSkip:
		return "SKIP"
	case OpDispose:
		return "DISPOSE"
	default:
		return "UNKNOWN"
	}
}

// ParseOp parses an op name as printed by String (case-sensitive).
func ParseOp(s string) (Op, bool) {
	for o := OpRegister; o <= OpDispose; o++ {
		if o.String() == s {
			return o, true
		}
	}
	return 0, false
}

// Reason classifies why a decision was taken.
type Reason uint8

const (
	// ReasonInitial is the first evaluation of a scope.
	ReasonInitial Reason = 0
	// ReasonDepsChanged means the snapshot differed from the stored one.
	ReasonDepsChanged Reason = 1
	// ReasonAlways means no snapshot was supplied.
	ReasonAlways Reason = 2
	// ReasonUnchanged means the snapshot matched the stored one.
	ReasonUnchanged Reason = 3
	// ReasonConditional means the factory returned no handler.
	ReasonConditional Reason = 4
	// ReasonDispose means the owner went away.
	ReasonDispose Reason = 5
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case ReasonInitial:
		return "INITIAL"
	case ReasonDepsChanged:
		return "DEPS_CHANGED"
	case ReasonAlways:
		return "ALWAYS"
	case ReasonUnchanged:
		return "UNCHANGED"
	case ReasonConditional:
		return "CONDITIONAL"
	case ReasonDispose:
		return "DISPOSE"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures a failure reported by a collaborator.
type ErrorEventData struct {
	// Message is the error text.
	Message string `cbor:"1,keyasint"`

	// Source names the failing collaborator ("target" or "factory").
	Source string `cbor:"2,keyasint,omitempty"`
}
