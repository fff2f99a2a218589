package runner

import (
	"errors"
	"sync"

	"github.com/listenscope/listenscope-go/pkg/event"
	"github.com/listenscope/listenscope-go/pkg/scope"
)

// ErrInjected is returned by an injected fault.
var ErrInjected = errors.New("injected fault")

// faultTarget fails the next Register or Deregister call on request.
// Failed calls never reach the wrapped target.
type faultTarget struct {
	inner scope.Target

	mu             sync.Mutex
	failRegister   bool
	failDeregister bool
}

func (f *faultTarget) Register(eventName string, handler event.Handler) (event.Token, error) {
	f.mu.Lock()
	fail := f.failRegister
	f.failRegister = false
	f.mu.Unlock()

	if fail {
		return "", ErrInjected
	}
	return f.inner.Register(eventName, handler)
}

func (f *faultTarget) Deregister(eventName string, token event.Token) error {
	f.mu.Lock()
	fail := f.failDeregister
	f.failDeregister = false
	f.mu.Unlock()

	if fail {
		return ErrInjected
	}
	return f.inner.Deregister(eventName, token)
}

func (f *faultTarget) armRegister() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failRegister = true
}

func (f *faultTarget) armDeregister() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failDeregister = true
}
