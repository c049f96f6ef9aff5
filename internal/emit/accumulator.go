// Package emit provides the default in-process boundary between the event
// core and whatever transport ships records to a backend.
package emit

import (
	"sync"

	"github.com/spanwatch/spanwatch/internal/event"
)

// Emitter receives finalized event representations. The network transport
// implements this interface outside the core.
type Emitter interface {
	Record(rep map[string]any)
}

// Accumulator collects representations in order. It is the default Emitter
// and doubles as a capture sink in tests. Safe for concurrent use.
type Accumulator struct {
	mu      sync.Mutex
	traceID string
	events  []map[string]any
}

// NewAccumulator creates an empty Accumulator bound to the process trace ID.
func NewAccumulator() *Accumulator {
	return &Accumulator{traceID: event.ProcessTraceID()}
}

// Record appends a representation.
func (a *Accumulator) Record(rep map[string]any) {
	a.mu.Lock()
	a.events = append(a.events, rep)
	a.mu.Unlock()
}

// Events returns a snapshot of everything recorded so far.
func (a *Accumulator) Events() []map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]map[string]any, len(a.events))
	copy(out, a.events)
	return out
}

// Len reports how many events were recorded.
func (a *Accumulator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.events)
}

// ToJSON returns a snapshot for debugging / export.
func (a *Accumulator) ToJSON() map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	events := make([]map[string]any, len(a.events))
	copy(events, a.events)
	return map[string]any{
		"trace_id": a.traceID,
		"events":   events,
	}
}
