package eventsource

import (
	"sync"

	"github.com/listenscope/listenscope-go/pkg/event"
	"github.com/listenscope/listenscope-go/pkg/scope"
)

// CallOp identifies a target call.
type CallOp uint8

const (
	// CallRegister is a Register call.
	CallRegister CallOp = iota
	// CallDeregister is a Deregister call.
	CallDeregister
)

// String returns the lowercase call name.
func (o CallOp) String() string {
	switch o {
	case CallRegister:
		return "register"
	case CallDeregister:
		return "deregister"
	default:
		return "unknown"
	}
}

// Call is one recorded target call.
type Call struct {
	Op        CallOp
	EventName string
	Token     event.Token
	Err       error
}

// Recorder wraps a Target and records every call made through it.
type Recorder struct {
	target scope.Target

	mu    sync.Mutex
	calls []Call
}

// NewRecorder wraps target.
func NewRecorder(target scope.Target) *Recorder {
	return &Recorder{target: target}
}

// Register forwards to the wrapped target and records the call.
func (r *Recorder) Register(eventName string, handler event.Handler) (event.Token, error) {
	token, err := r.target.Register(eventName, handler)
	r.append(Call{Op: CallRegister, EventName: eventName, Token: token, Err: err})
	return token, err
}

// Deregister forwards to the wrapped target and records the call.
func (r *Recorder) Deregister(eventName string, token event.Token) error {
	err := r.target.Deregister(eventName, token)
	r.append(Call{Op: CallDeregister, EventName: eventName, Token: token, Err: err})
	return err
}

// Calls returns a copy of all recorded calls in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Since returns calls recorded after the first n.
func (r *Recorder) Since(n int) []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n >= len(r.calls) {
		return nil
	}
	out := make([]Call, len(r.calls)-n)
	copy(out, r.calls[n:])
	return out
}

// Len returns the number of recorded calls.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Registers counts Register calls.
func (r *Recorder) Registers() int {
	return r.count(CallRegister)
}

// Deregisters counts Deregister calls.
func (r *Recorder) Deregisters() int {
	return r.count(CallDeregister)
}

// Reset drops all recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *Recorder) count(op CallOp) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (r *Recorder) append(c Call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
}

var _ scope.Target = (*Recorder)(nil)
