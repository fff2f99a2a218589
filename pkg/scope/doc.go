// Package scope ties the registration of an external event handler to the
// lifetime of an owner.
//
// A Scope holds at most one Binding: a handler registered on a Target for a
// named event. Each time the owner re-evaluates, it passes a dependency
// snapshot (Deps). The scope keeps the existing binding when the snapshot
// is unchanged, and otherwise removes the old registration before adding
// the new one. Disposing the scope removes the registration for good.
//
// # Dependency Snapshots
//
//   - scope.On(a, b): rebind whenever a or b changes
//   - scope.Once(): bind on the first evaluation, keep until Dispose
//   - scope.Always() (nil): rebind on every evaluation
//
// # Conditional Registration
//
// A Factory may return a nil handler with a nil error to decline
// registration for the current snapshot. The previous binding is still
// removed when the snapshot changed.
//
// # Owners
//
// Registry keys scopes by (OwnerID, event name), so that one owner holds at
// most one binding per event, and Dispose(owner) releases all of them.
// Different owners may bind the same target and event independently.
package scope
