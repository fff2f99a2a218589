package scope_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/listenscope/listenscope-go/pkg/event"
	"github.com/listenscope/listenscope-go/pkg/eventsource"
	"github.com/listenscope/listenscope-go/pkg/scope"
	"github.com/listenscope/listenscope-go/pkg/scope/mocks"
)

func noop() scope.Factory {
	return scope.HandlerFunc(func(event.Event) {})
}

func TestRegistryOneBindingPerOwnerAndEvent(t *testing.T) {
	src, rec := newTarget()
	r := scope.NewRegistry()
	owner := scope.NewOwnerID()

	require.NoError(t, r.Evaluate(owner, rec, "click", noop(), scope.Once()))
	require.NoError(t, r.Evaluate(owner, rec, "click", noop(), scope.Once()))
	require.NoError(t, r.Evaluate(owner, rec, "keydown", noop(), scope.Once()))

	assert.Equal(t, 1, src.Count("click"))
	assert.Equal(t, 1, src.Count("keydown"))
	assert.Equal(t, 2, r.Count())

	bindings := r.Bindings(owner)
	require.Len(t, bindings, 2)
	assert.Equal(t, "click", bindings[0].EventName)
	assert.Equal(t, "keydown", bindings[1].EventName)
}

func TestRegistryOwnersAreIndependent(t *testing.T) {
	src, rec := newTarget()
	r := scope.NewRegistry()

	require.NoError(t, r.Evaluate("a", rec, "click", noop(), scope.Once()))
	require.NoError(t, r.Evaluate("b", rec, "click", noop(), scope.Once()))
	require.Equal(t, 2, src.Count("click"), "owners may share a target and event")

	require.NoError(t, r.Dispose("a"))

	assert.Equal(t, 1, src.Count("click"))
	assert.Equal(t, []scope.OwnerID{"b"}, r.Owners())
	b, ok := r.Scope("b", "click")
	require.True(t, ok)
	assert.True(t, b.Active())
}

func TestRegistryDisposeReleasesEverything(t *testing.T) {
	src, rec := newTarget()
	r := scope.NewRegistry()

	for _, name := range []string{"click", "keydown", "resize"} {
		require.NoError(t, r.Evaluate("a", rec, name, noop(), scope.On(name)))
	}
	require.NoError(t, r.Dispose("a"))

	assert.Equal(t, 0, src.Total())
	assert.Empty(t, r.Owners())
	assert.Empty(t, r.Bindings("a"))

	// Second dispose and unknown owner: no calls.
	mark := rec.Len()
	require.NoError(t, r.Dispose("a"))
	require.NoError(t, r.Dispose("nobody"))
	assert.Equal(t, mark, rec.Len())
}

func TestRegistryOwnerCanComeBack(t *testing.T) {
	src, rec := newTarget()
	r := scope.NewRegistry()

	require.NoError(t, r.Evaluate("a", rec, "click", noop(), scope.Once()))
	require.NoError(t, r.Dispose("a"))
	require.NoError(t, r.Evaluate("a", rec, "click", noop(), scope.Once()))

	assert.Equal(t, 1, src.Count("click"))
	assert.Equal(t, 2, rec.Registers())
}

func TestRegistryDisposeJoinsErrors(t *testing.T) {
	target := mocks.NewMockTarget(t)
	target.EXPECT().Register(mock.Anything, mock.Anything).Return(event.Token("tok"), nil).Times(2)
	target.EXPECT().Deregister("click", event.Token("tok")).Return(errors.New("click stuck")).Once()
	target.EXPECT().Deregister("keydown", event.Token("tok")).Return(errors.New("keydown stuck")).Once()

	r := scope.NewRegistry()
	require.NoError(t, r.Evaluate("a", target, "click", noop(), scope.Once()))
	require.NoError(t, r.Evaluate("a", target, "keydown", noop(), scope.Once()))

	err := r.Dispose("a")

	require.Error(t, err)
	assert.ErrorIs(t, err, scope.ErrDeregistration)
	assert.Contains(t, err.Error(), "click stuck")
	assert.Contains(t, err.Error(), "keydown stuck")
	assert.Equal(t, 0, r.Count())
}

func TestRegistryErrorCarriesOwner(t *testing.T) {
	r := scope.NewRegistry()
	src := eventsource.NewWithConfig(eventsource.Config{Events: []string{"click"}})

	err := r.Evaluate("owner-7", src, "scroll", noop(), scope.Once())

	var serr *scope.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, scope.OwnerID("owner-7"), serr.Owner)
}

func TestRegistryDisposeAll(t *testing.T) {
	src, rec := newTarget()
	r := scope.NewRegistry()

	for _, owner := range []scope.OwnerID{"a", "b", "c"} {
		require.NoError(t, r.Evaluate(owner, rec, "click", noop(), scope.Always()))
	}
	require.NoError(t, r.DisposeAll())

	assert.Equal(t, 0, src.Total())
	assert.Empty(t, r.Owners())
}

func TestRegistryConcurrentOwners(t *testing.T) {
	src := eventsource.New()
	r := scope.NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			owner := scope.NewOwnerID()
			for j := 0; j < 20; j++ {
				if err := r.Evaluate(owner, src, "click", noop(), scope.On(j%3)); err != nil {
					t.Errorf("Evaluate: %v", err)
					return
				}
			}
			if err := r.Dispose(owner); err != nil {
				t.Errorf("Dispose: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, src.Total())
	assert.Equal(t, 0, r.Count())
}
