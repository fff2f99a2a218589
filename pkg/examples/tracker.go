package examples

import (
	"sync/atomic"

	"github.com/listenscope/listenscope-go/pkg/event"
	"github.com/listenscope/listenscope-go/pkg/lifecycle"
	"github.com/listenscope/listenscope-go/pkg/scope"
)

// MountTracker binds a click handler once for its whole lifetime.
type MountTracker struct {
	comp   *lifecycle.Component
	target scope.Target
	clicks atomic.Int64
}

// NewMountTracker creates an unmounted tracker.
func NewMountTracker(registry *scope.Registry, target scope.Target) *MountTracker {
	return &MountTracker{
		comp:   lifecycle.NewComponent(registry),
		target: target,
	}
}

// Mount mounts the tracker and renders it.
func (m *MountTracker) Mount() error {
	if err := m.comp.Mount(); err != nil {
		return err
	}
	return m.Render()
}

// Render re-evaluates with the empty snapshot; only the first call binds.
func (m *MountTracker) Render() error {
	return m.comp.UseListener(m.target, ClickEvent, scope.HandlerFunc(func(event.Event) {
		m.clicks.Add(1)
	}), scope.Once())
}

// Unmount releases the binding.
func (m *MountTracker) Unmount() error {
	return m.comp.Unmount()
}

// Clicks returns the number of clicks seen while mounted.
func (m *MountTracker) Clicks() int64 {
	return m.clicks.Load()
}

// EveryRenderListener supplies no snapshot, so each render replaces its
// handler with a new one.
type EveryRenderListener struct {
	comp      *lifecycle.Component
	target    scope.Target
	handlers  atomic.Int64
	delivered atomic.Int64
}

// NewEveryRenderListener creates an unmounted listener.
func NewEveryRenderListener(registry *scope.Registry, target scope.Target) *EveryRenderListener {
	return &EveryRenderListener{
		comp:   lifecycle.NewComponent(registry),
		target: target,
	}
}

// Mount mounts the listener and renders it.
func (l *EveryRenderListener) Mount() error {
	if err := l.comp.Mount(); err != nil {
		return err
	}
	return l.Render()
}

// Render replaces the handler.
func (l *EveryRenderListener) Render() error {
	return l.comp.UseListener(l.target, ClickEvent, func() (event.Handler, error) {
		l.handlers.Add(1)
		return func(event.Event) { l.delivered.Add(1) }, nil
	}, scope.Always())
}

// Unmount releases the binding.
func (l *EveryRenderListener) Unmount() error {
	return l.comp.Unmount()
}

// Handlers returns how many handlers have been created.
func (l *EveryRenderListener) Handlers() int64 {
	return l.handlers.Load()
}

// Delivered returns how many events reached any of its handlers.
func (l *EveryRenderListener) Delivered() int64 {
	return l.delivered.Load()
}
