package eventsource

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/listenscope/listenscope-go/pkg/event"
	"github.com/listenscope/listenscope-go/pkg/scope"
)

// Source errors.
var (
	ErrInvalidEventName  = errors.New("invalid event name")
	ErrNilHandler        = errors.New("nil handler")
	ErrResourceExhausted = errors.New("maximum handlers reached")
)

// DefaultMaxHandlersPerEvent bounds registrations per event name.
const DefaultMaxHandlersPerEvent = 1024

// Config holds source configuration.
type Config struct {
	// Name identifies the source in logs (e.g. "window").
	Name string

	// MaxHandlersPerEvent bounds registrations per event name.
	MaxHandlersPerEvent int

	// Events restricts registration to these names. Empty allows any
	// non-empty name.
	Events []string
}

// DefaultConfig returns the default source configuration.
func DefaultConfig() Config {
	return Config{
		Name:                "window",
		MaxHandlersPerEvent: DefaultMaxHandlersPerEvent,
	}
}

type entry struct {
	token   event.Token
	handler event.Handler
}

// Source is a concurrency-safe in-memory event target.
type Source struct {
	mu sync.RWMutex

	config  Config
	allowed map[string]struct{}

	// Handlers by event name, in registration order.
	handlers map[string][]entry
}

// New creates a source with default configuration.
func New() *Source {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a source with custom configuration.
func NewWithConfig(config Config) *Source {
	if config.MaxHandlersPerEvent <= 0 {
		config.MaxHandlersPerEvent = DefaultMaxHandlersPerEvent
	}
	var allowed map[string]struct{}
	if len(config.Events) > 0 {
		allowed = make(map[string]struct{}, len(config.Events))
		for _, name := range config.Events {
			allowed[name] = struct{}{}
		}
	}
	return &Source{
		config:   config,
		allowed:  allowed,
		handlers: make(map[string][]entry),
	}
}

// Name returns the configured source name.
func (s *Source) Name() string {
	return s.config.Name
}

// Register adds handler for eventName and returns its token.
func (s *Source) Register(eventName string, handler event.Handler) (event.Token, error) {
	if !s.validName(eventName) {
		return "", ErrInvalidEventName
	}
	if handler == nil {
		return "", ErrNilHandler
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.handlers[eventName]) >= s.config.MaxHandlersPerEvent {
		return "", ErrResourceExhausted
	}

	token := event.Token(uuid.NewString())
	s.handlers[eventName] = append(s.handlers[eventName], entry{token: token, handler: handler})
	return token, nil
}

// Deregister removes the registration identified by token. Unknown tokens
// are ignored.
func (s *Source) Deregister(eventName string, token event.Token) error {
	if !s.validName(eventName) {
		return ErrInvalidEventName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.handlers[eventName]
	for i, e := range entries {
		if e.token == token {
			s.handlers[eventName] = append(entries[:i:i], entries[i+1:]...)
			break
		}
	}
	if len(s.handlers[eventName]) == 0 {
		delete(s.handlers, eventName)
	}
	return nil
}

// Dispatch delivers an event to every handler registered for eventName at
// the time of the call and returns how many were invoked. Handlers run on
// the caller's goroutine without the source lock held, so they may
// register or deregister.
func (s *Source) Dispatch(eventName string, payload any) int {
	s.mu.RLock()
	entries := s.handlers[eventName]
	snapshot := make([]event.Handler, len(entries))
	for i, e := range entries {
		snapshot[i] = e.handler
	}
	s.mu.RUnlock()

	ev := event.Event{Name: eventName, Payload: payload, Timestamp: time.Now()}
	for _, h := range snapshot {
		h(ev)
	}
	return len(snapshot)
}

// Count returns the number of handlers registered for eventName.
func (s *Source) Count(eventName string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.handlers[eventName])
}

// Total returns the number of handlers registered for all events.
func (s *Source) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, entries := range s.handlers {
		n += len(entries)
	}
	return n
}

// Tokens returns the tokens registered for eventName in order.
func (s *Source) Tokens(eventName string) []event.Token {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.handlers[eventName]
	out := make([]event.Token, len(entries))
	for i, e := range entries {
		out[i] = e.token
	}
	return out
}

// Has reports whether token is registered for eventName.
func (s *Source) Has(eventName string, token event.Token) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.handlers[eventName] {
		if e.token == token {
			return true
		}
	}
	return false
}

func (s *Source) validName(eventName string) bool {
	if eventName == "" {
		return false
	}
	if s.allowed == nil {
		return true
	}
	_, ok := s.allowed[eventName]
	return ok
}

// Compile-time interface satisfaction check.
var _ scope.Target = (*Source)(nil)
