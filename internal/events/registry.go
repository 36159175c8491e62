package events

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// DefaultMaxListeners is the per-channel listener count above which a
// possible leak is reported.
const DefaultMaxListeners = 10

// Listener is a callback registered on a channel. It receives the context and
// arguments passed to Emit.
type Listener func(ctx context.Context, args ...any) error

// Option configures a Registry.
type Option func(*Registry)

// WithMaxListeners sets the per-channel listener count above which a leak
// warning is logged. Zero disables the warning.
func WithMaxListeners(n int) Option {
	return func(r *Registry) {
		if n >= 0 {
			r.maxListeners = n
		}
	}
}

// Registry maps channel names to ordered listener lists and dispatches
// events to them synchronously. It is safe for concurrent use.
type Registry struct {
	channels     map[string][]Listener
	warned       map[string]bool
	maxListeners int
	mu           sync.RWMutex
	logger       *slog.Logger
}

// NewRegistry creates an empty Registry.
func NewRegistry(logger *slog.Logger, opts ...Option) *Registry {
	r := &Registry{
		channels:     make(map[string][]Listener),
		warned:       make(map[string]bool),
		maxListeners: DefaultMaxListeners,
		logger:       logger.With("component", "event_registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// On appends listener to the channel's listener list, creating the channel
// if it does not exist yet. Registering the same listener twice stores it
// twice.
func (r *Registry) On(channel string, listener Listener) {
	if listener == nil {
		r.logger.Warn("ignoring nil listener", "channel", channel)
		return
	}

	r.mu.Lock()
	r.channels[channel] = append(r.channels[channel], listener)
	count := len(r.channels[channel])
	leak := r.maxListeners > 0 && count > r.maxListeners && !r.warned[channel]
	if leak {
		r.warned[channel] = true
	}
	r.mu.Unlock()

	r.logger.Debug("registered listener", "channel", channel, "listener_count", count)

	if leak {
		r.logger.Warn("possible listener leak detected",
			"channel", channel,
			"listener_count", count,
			"max_listeners", r.maxListeners)
	}
}

// AddListener is an alias for On.
func (r *Registry) AddListener(channel string, listener Listener) {
	r.On(channel, listener)
}

// Emit calls every listener registered on channel, in registration order,
// passing ctx and args. It reports whether at least one listener was called.
//
// Listeners registered while Emit is running are not called by that Emit.
// If a listener returns an error, dispatch stops and the error is returned
// wrapped in a *ListenerError; later listeners are not called.
func (r *Registry) Emit(ctx context.Context, channel string, args ...any) (bool, error) {
	r.mu.RLock()
	listeners := make([]Listener, len(r.channels[channel]))
	copy(listeners, r.channels[channel])
	r.mu.RUnlock()

	if len(listeners) == 0 {
		r.logger.Debug("no listeners registered for channel", "channel", channel)
		return false, nil
	}

	emitID := uuid.New()
	r.logger.Debug("emitting event",
		"emit_id", emitID,
		"channel", channel,
		"arg_count", len(args),
		"listener_count", len(listeners))

	for i, listener := range listeners {
		if err := listener(ctx, args...); err != nil {
			r.logger.Debug("listener failed, stopping dispatch",
				"emit_id", emitID,
				"channel", channel,
				"listener_index", i,
				"skipped", len(listeners)-i-1,
				"error", err)
			return true, &ListenerError{Channel: channel, Index: i, Err: err}
		}
	}

	return true, nil
}

// ListenerCount returns the number of listeners registered on channel.
func (r *Registry) ListenerCount(channel string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels[channel])
}

// ChannelNames returns the names of all channels with registered listeners,
// sorted.
func (r *Registry) ChannelNames() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.channels))
	for name, listeners := range r.channels {
		if len(listeners) > 0 {
			names = append(names, name)
		}
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}
