// Package diag defines the diagnostic side channel for render instrumentation.
//
// A [Sink] registered on an engine receives [Event] values synchronously on
// the rendering goroutine. A slow sink therefore stalls the render; sinks
// that need to do real work should hand events off themselves.
package diag

import "fmt"

// Event is the sealed variant of diagnostic events. New kinds may be added;
// sinks should ignore kinds they do not recognize.
type Event interface {
	diagEvent()
}

// ReflowTimeMs reports the wall-clock duration of one chapter reflow,
// in milliseconds.
type ReflowTimeMs float64

func (ReflowTimeMs) diagEvent() {}

// String returns a string representation of the event.
func (e ReflowTimeMs) String() string {
	return fmt.Sprintf("reflow-time %.3fms", float64(e))
}

// Sink receives diagnostic events.
type Sink interface {
	Receive(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// Receive calls f.
func (f SinkFunc) Receive(e Event) {
	f(e)
}
