// Package api implements the HTTP handlers that expose the event registry:
// listing channels, reporting listener counts and emitting events.
package api
