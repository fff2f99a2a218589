package examples

import (
	"sync"

	"github.com/listenscope/listenscope-go/pkg/event"
	"github.com/listenscope/listenscope-go/pkg/lifecycle"
	"github.com/listenscope/listenscope-go/pkg/scope"
)

// ClickEvent is the event name the examples listen for.
const ClickEvent = "click"

// ClickCounterConfig configures a ClickCounter.
type ClickCounterConfig struct {
	// Target is the shared event source (e.g. the window).
	Target scope.Target

	// StartEnabled sets whether the counter listens from the first render.
	StartEnabled bool

	// OnClick is called after each counted click with the new total.
	OnClick func(total int)
}

// ClickCounter counts clicks on its target while enabled.
type ClickCounter struct {
	comp   *lifecycle.Component
	target scope.Target

	mu      sync.Mutex
	enabled bool
	clicks  int
	renders int
	onClick func(int)
}

// NewClickCounter creates an unmounted click counter owned by registry.
func NewClickCounter(registry *scope.Registry, config ClickCounterConfig) *ClickCounter {
	return &ClickCounter{
		comp:    lifecycle.NewComponent(registry),
		target:  config.Target,
		enabled: config.StartEnabled,
		onClick: config.OnClick,
	}
}

// Component returns the underlying lifecycle owner.
func (c *ClickCounter) Component() *lifecycle.Component {
	return c.comp
}

// Mount mounts the counter and performs its first render.
func (c *ClickCounter) Mount() error {
	if err := c.comp.Mount(); err != nil {
		return err
	}
	return c.Render()
}

// Render re-evaluates the click binding with snapshot [enabled].
func (c *ClickCounter) Render() error {
	c.mu.Lock()
	enabled := c.enabled
	c.renders++
	c.mu.Unlock()

	return c.comp.UseListener(c.target, ClickEvent, scope.When(enabled, c.handleClick), scope.On(enabled))
}

// Toggle flips the enabled flag and re-renders.
func (c *ClickCounter) Toggle() error {
	c.mu.Lock()
	c.enabled = !c.enabled
	c.mu.Unlock()
	return c.Render()
}

// SetEnabled sets the enabled flag and re-renders.
func (c *ClickCounter) SetEnabled(enabled bool) error {
	c.mu.Lock()
	c.enabled = enabled
	c.mu.Unlock()
	return c.Render()
}

// Unmount releases the click binding.
func (c *ClickCounter) Unmount() error {
	return c.comp.Unmount()
}

// Enabled reports whether the counter is listening.
func (c *ClickCounter) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Clicks returns the number of counted clicks.
func (c *ClickCounter) Clicks() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clicks
}

// Renders returns how many times Render ran.
func (c *ClickCounter) Renders() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renders
}

func (c *ClickCounter) handleClick(event.Event) {
	c.mu.Lock()
	c.clicks++
	total := c.clicks
	onClick := c.onClick
	c.mu.Unlock()

	if onClick != nil {
		onClick(total)
	}
}
