package events

import (
	"errors"
	"fmt"
)

// ErrListenerFailed is matched by every *ListenerError via errors.Is.
var ErrListenerFailed = errors.New("event listener failed")

// ListenerError reports a listener that returned an error during Emit.
type ListenerError struct {
	// Channel is the channel that was being emitted
	Channel string
	// Index is the listener's position in registration order
	Index int
	// Err is the error returned by the listener
	Err error
}

// Error implements the error interface.
func (e *ListenerError) Error() string {
	return fmt.Sprintf("listener %d on channel %q: %v", e.Index, e.Channel, e.Err)
}

// Unwrap returns the listener's own error.
func (e *ListenerError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrListenerFailed.
func (e *ListenerError) Is(target error) bool {
	return target == ErrListenerFailed
}
