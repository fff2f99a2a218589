package lifecycle

import (
	"errors"
	"testing"

	"github.com/listenscope/listenscope-go/pkg/event"
	"github.com/listenscope/listenscope-go/pkg/eventsource"
	"github.com/listenscope/listenscope-go/pkg/scope"
)

func handler() scope.Factory {
	return scope.HandlerFunc(func(event.Event) {})
}

func TestComponentLifecycle(t *testing.T) {
	src := eventsource.New()
	reg := scope.NewRegistry()
	c := NewComponent(reg)

	if c.State() != StateCreated {
		t.Fatalf("State() = %s, want CREATED", c.State())
	}
	if err := c.Mount(); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	if err := c.UseListener(src, "click", handler(), scope.Once()); err != nil {
		t.Fatalf("UseListener failed: %v", err)
	}
	if src.Count("click") != 1 {
		t.Errorf("Count(click) = %d, want 1", src.Count("click"))
	}
	if len(c.Bindings()) != 1 {
		t.Errorf("Bindings() = %d, want 1", len(c.Bindings()))
	}

	if err := c.Unmount(); err != nil {
		t.Fatalf("Unmount failed: %v", err)
	}
	if c.State() != StateUnmounted {
		t.Errorf("State() = %s, want UNMOUNTED", c.State())
	}
	if src.Count("click") != 0 {
		t.Errorf("Count(click) = %d after unmount, want 0", src.Count("click"))
	}
}

func TestComponentUseListenerRequiresMount(t *testing.T) {
	src := eventsource.New()
	c := NewComponent(scope.NewRegistry())

	if err := c.UseListener(src, "click", handler(), nil); !errors.Is(err, ErrNotMounted) {
		t.Errorf("UseListener before mount = %v, want ErrNotMounted", err)
	}

	_ = c.Mount()
	_ = c.Unmount()

	if err := c.UseListener(src, "click", handler(), nil); !errors.Is(err, ErrNotMounted) {
		t.Errorf("UseListener after unmount = %v, want ErrNotMounted", err)
	}
	if src.Total() != 0 {
		t.Errorf("Total() = %d, want 0", src.Total())
	}
}

func TestComponentMountTwice(t *testing.T) {
	c := NewComponent(scope.NewRegistry())
	_ = c.Mount()

	if err := c.Mount(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("second Mount = %v, want ErrInvalidState", err)
	}
}

func TestComponentUnmountIsIdempotent(t *testing.T) {
	src := eventsource.New()
	rec := eventsource.NewRecorder(src)
	c := NewComponentWithID(scope.NewRegistry(), "fixed")
	_ = c.Mount()
	_ = c.UseListener(rec, "click", handler(), scope.On(1))

	for i := 0; i < 3; i++ {
		if err := c.Unmount(); err != nil {
			t.Fatalf("Unmount #%d failed: %v", i, err)
		}
	}
	if rec.Deregisters() != 1 {
		t.Errorf("Deregisters() = %d, want 1", rec.Deregisters())
	}
	if c.ID() != "fixed" {
		t.Errorf("ID() = %q, want fixed", c.ID())
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateCreated:   "CREATED",
		StateMounted:   "MOUNTED",
		StateUnmounted: "UNMOUNTED",
		State(7):       "UNKNOWN",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}
