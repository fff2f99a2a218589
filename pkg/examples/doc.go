// Package examples provides reference owners demonstrating how to tie a
// global event listener to a component's lifetime with listenscope-go.
//
// Available examples:
//   - ClickCounter: counts clicks on a shared target while enabled; the
//     listener is swapped whenever the enabled flag changes
//   - MountTracker: binds once on mount and keeps the same handler until
//     unmount
//   - EveryRenderListener: supplies no dependency snapshot, so its handler
//     is replaced on every render
//
// These examples drive the same triggers a UI runtime would: Mount, Render
// (any number of times), Unmount.
package examples
