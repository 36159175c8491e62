// Package events provides an in-process event registry.
//
// A Registry holds named channels, each with an ordered list of listeners.
// Emitting on a channel calls its listeners synchronously on the caller's
// goroutine, in the order they were registered. Duplicate registrations are
// kept and each one fires.
//
// The first listener to return an error stops dispatch: the error is returned
// to the Emit caller wrapped in a *ListenerError and the remaining listeners
// are not called.
//
// The primary components are:
// - Registry: channel-to-listener mapping with On, AddListener, Emit and ListenerCount
// - Listener: the callback signature accepted by the registry
// - ListenerError: the error returned when a listener fails during Emit
package events
