package scope

import (
	"log/slog"
	"sync"
	"time"

	"github.com/listenscope/listenscope-go/pkg/event"
	"github.com/listenscope/listenscope-go/pkg/log"
)

// Target is an external event source handlers are registered on.
//
// Deregister must treat an unknown token as a no-op. Registrations with
// different tokens are independent of each other.
type Target interface {
	Register(eventName string, handler event.Handler) (event.Token, error)
	Deregister(eventName string, token event.Token) error
}

// Factory produces the handler for a new binding. It is called once per
// binding established, never per evaluation. Returning (nil, nil) declines
// registration for the current snapshot.
type Factory func() (event.Handler, error)

// HandlerFunc returns a Factory that always yields h.
func HandlerFunc(h event.Handler) Factory {
	return func() (event.Handler, error) {
		return h, nil
	}
}

// When returns a Factory that yields h only if cond is true.
func When(cond bool, h event.Handler) Factory {
	return func() (event.Handler, error) {
		if !cond {
			return nil, nil
		}
		return h, nil
	}
}

// Binding is an active registration.
type Binding struct {
	// Target the handler is registered on.
	Target Target

	// EventName the handler listens for.
	EventName string

	// Handler is the exact value passed to Register.
	Handler event.Handler

	// Token was returned by Register and is presented to Deregister.
	Token event.Token
}

// Scope owns at most one Binding and keeps it in step with a dependency
// snapshot. Operations on a Scope are serialised; a Scope must not be
// evaluated from inside one of its own handlers' registration calls.
type Scope struct {
	mu sync.Mutex

	owner  OwnerID
	logger *slog.Logger
	trace  log.Logger

	binding   *Binding
	deps      Deps
	evaluated bool
	disposed  bool
}

// New creates a standalone scope.
func New(config Config) *Scope {
	return newScope("", config)
}

func newScope(owner OwnerID, config Config) *Scope {
	trace := config.TraceLogger
	if trace == nil {
		trace = log.NoopLogger{}
	}
	return &Scope{
		owner:  owner,
		logger: config.Logger,
		trace:  trace,
	}
}

// Evaluate brings the scope in line with deps.
//
// On the first call it creates a handler with factory and registers it on
// target. Later calls with an equal snapshot do nothing. Later calls with a
// different (or nil) snapshot first deregister the previous handler, then
// register a new one.
//
// If deregistration fails the error is returned, the binding is forgotten
// and no new handler is registered; the next Evaluate registers afresh.
// If the factory or registration fails no binding is stored.
func (s *Scope) Evaluate(target Target, eventName string, factory Factory, deps Deps) error {
	if target == nil {
		return s.newError(ErrNilTarget, eventName, nil)
	}
	if factory == nil {
		return s.newError(ErrNilFactory, eventName, nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return s.newError(ErrScopeDisposed, eventName, nil)
	}

	reason := log.ReasonInitial
	if s.evaluated {
		if deps.Equal(s.deps) {
			s.record(eventName, log.OpRetain, log.ReasonUnchanged, s.token(), deps, nil, "")
			return nil
		}
		reason = log.ReasonDepsChanged
		if deps.IsAlways() {
			reason = log.ReasonAlways
		}
		if err := s.release(reason); err != nil {
			return err
		}
	}

	return s.establish(target, eventName, factory, deps, reason)
}

// Dispose removes the active binding, if any, and retires the scope.
// Calling Dispose again has no effect.
func (s *Scope) Dispose() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return nil
	}
	s.disposed = true

	eventName := ""
	if s.binding != nil {
		eventName = s.binding.EventName
	}
	err := s.release(log.ReasonDispose)
	s.record(eventName, log.OpDispose, log.ReasonDispose, "", nil, nil, "")
	return err
}

// Binding returns the active binding.
func (s *Scope) Binding() (Binding, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.binding == nil {
		return Binding{}, false
	}
	return *s.binding, true
}

// Active reports whether a handler is currently registered.
func (s *Scope) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.binding != nil
}

// Deps returns a copy of the snapshot of the last successful evaluation.
func (s *Scope) Deps() Deps {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deps.Clone()
}

// Disposed reports whether Dispose has been called.
func (s *Scope) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// Owner returns the owning context, empty for a standalone scope.
func (s *Scope) Owner() OwnerID {
	return s.owner
}

// establish runs the factory and registers the result. Caller holds s.mu.
func (s *Scope) establish(target Target, eventName string, factory Factory, deps Deps, reason log.Reason) error {
	handler, err := factory()
	if err != nil {
		s.record(eventName, log.OpRegister, reason, "", deps, err, "factory")
		return s.newError(ErrFactory, eventName, err)
	}

	if handler == nil {
		s.evaluated = true
		s.deps = deps.Clone()
		s.record(eventName, log.OpSkip, log.ReasonConditional, "", deps, nil, "")
		return nil
	}

	token, err := target.Register(eventName, handler)
	if err != nil {
		s.record(eventName, log.OpRegister, reason, "", deps, err, "target")
		if s.logger != nil {
			s.logger.Debug("scope: register rejected",
				"owner", s.owner, "event", eventName, "error", err)
		}
		return s.newError(ErrRegistration, eventName, err)
	}

	s.binding = &Binding{
		Target:    target,
		EventName: eventName,
		Handler:   handler,
		Token:     token,
	}
	s.deps = deps.Clone()
	s.evaluated = true
	s.record(eventName, log.OpRegister, reason, token, deps, nil, "")
	return nil
}

// release deregisters the active binding and forgets the stored snapshot.
// State is cleared even when the target rejects the removal. Caller holds s.mu.
func (s *Scope) release(reason log.Reason) error {
	prevDeps := s.deps
	s.evaluated = false
	s.deps = nil

	if s.binding == nil {
		return nil
	}
	b := *s.binding
	s.binding = nil

	if err := b.Target.Deregister(b.EventName, b.Token); err != nil {
		s.record(b.EventName, log.OpDeregister, reason, b.Token, prevDeps, err, "target")
		if s.logger != nil {
			s.logger.Debug("scope: deregister rejected, binding dropped",
				"owner", s.owner, "event", b.EventName, "token", b.Token, "error", err)
		}
		return s.newError(ErrDeregistration, b.EventName, err)
	}

	s.record(b.EventName, log.OpDeregister, reason, b.Token, prevDeps, nil, "")
	return nil
}

func (s *Scope) token() event.Token {
	if s.binding == nil {
		return ""
	}
	return s.binding.Token
}

func (s *Scope) record(eventName string, op log.Op, reason log.Reason, token event.Token, deps Deps, err error, source string) {
	ev := log.Event{
		Timestamp: time.Now(),
		OwnerID:   string(s.owner),
		EventName: eventName,
		Op:        op,
		Reason:    reason,
		Token:     string(token),
		Deps:      deps.Strings(),
	}
	if err != nil {
		ev.Error = &log.ErrorEventData{Message: err.Error(), Source: source}
	}
	s.trace.Log(ev)
}

func (s *Scope) newError(kind error, eventName string, err error) *Error {
	return &Error{Kind: kind, Owner: s.owner, EventName: eventName, Err: err}
}
