// Package eventsource provides an in-memory event target for scopes.
//
// Source plays the role of a global object such as a browser window:
// handlers are registered and removed by event name, and Dispatch delivers
// an event to every handler currently registered for it. Recorder wraps any
// scope.Target and records the exact sequence of register and deregister
// calls, which is what the scope invariants are stated in terms of.
package eventsource
