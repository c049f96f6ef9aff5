// Package event holds the core trace event entity: one record per observed
// call, with identity, timing, resource descriptor and error state.
package event

import (
	"errors"
	"fmt"
	"time"

	"github.com/spanwatch/spanwatch/internal/model"
)

// ErrMalformedRecord reports a representation missing required keys.
var ErrMalformedRecord = errors.New("malformed event record")

// Origin tags for producing subsystems.
const (
	OriginBase   = "base"
	OriginRunner = "runner"
)

// Event is one observed operation. It is constructed, mutated and finalized
// within the single logical call it represents; no internal locking.
type Event struct {
	ID        string
	StartTime float64
	Duration  float64
	Origin    string
	ErrorCode model.ErrorCode
	Exception *model.Exception
	Resource  model.Resource

	terminated bool
}

// New creates an Event for a call that began at startTime (epoch seconds).
// The ID is a resource-type-prefixed UUID, immutable afterwards. Runner
// events additionally carry the process-scoped trace ID in their metadata.
func New(startTime float64, origin, resourceType string) *Event {
	e := &Event{
		ID:        NewEventID(resourceType),
		StartTime: startTime,
		Origin:    origin,
		ErrorCode: model.CodeOK,
		Resource:  model.NewResource(resourceType),
	}
	if origin == OriginRunner {
		e.Resource.Metadata["trace_id"] = ProcessTraceID()
	}
	return e
}

// Now returns the current time as epoch seconds.
func Now() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}

// Terminate computes the duration once. Repeat calls are no-ops, so the
// first observed duration is the one that ships.
func (e *Event) Terminate() {
	if e.terminated {
		return
	}
	e.Duration = Now() - e.StartTime
	e.terminated = true
}

// Terminated reports whether Terminate has run.
func (e *Event) Terminated() bool {
	return e.terminated
}

// SetError marks a general failure. An already-recorded exception is never
// downgraded.
func (e *Event) SetError() {
	e.ErrorCode = e.ErrorCode.Escalate(model.CodeError)
}

// AttachException records a structured exception payload. An exception
// always wins over any previously recorded state.
func (e *Event) AttachException(x *model.Exception) {
	if x == nil {
		return
	}
	e.ErrorCode = model.CodeException
	e.Exception = x
}

// ToRepresentation produces the canonical wire shape handed to the
// transport. The exception key is present iff the code is CodeException.
func (e *Event) ToRepresentation() map[string]any {
	rep := map[string]any{
		"id":         e.ID,
		"start_time": e.StartTime,
		"duration":   e.Duration,
		"origin":     e.Origin,
		"error_code": int(e.ErrorCode),
		"resource":   e.Resource.ToMap(),
	}
	if e.ErrorCode == model.CodeException && e.Exception != nil {
		rep["exception"] = e.Exception.ToMap()
	}
	return rep
}

// FromRepresentation rebuilds an Event from its wire shape. A missing
// required key yields an error wrapping ErrMalformedRecord.
func FromRepresentation(rep map[string]any) (*Event, error) {
	for _, key := range []string{"id", "start_time", "duration", "origin", "error_code", "resource"} {
		if _, ok := rep[key]; !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrMalformedRecord, key)
		}
	}

	id, ok := rep["id"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: id is not a string", ErrMalformedRecord)
	}
	origin, ok := rep["origin"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: origin is not a string", ErrMalformedRecord)
	}
	resource, ok := rep["resource"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: resource is not a mapping", ErrMalformedRecord)
	}

	e := &Event{
		ID:        id,
		StartTime: toFloat(rep["start_time"]),
		Duration:  toFloat(rep["duration"]),
		Origin:    origin,
		ErrorCode: model.ErrorCode(model.ToInt(rep["error_code"])),
		Resource:  model.ResourceFromMap(resource),
	}
	// Rebuilt records are inspection artifacts, not live captures; latch
	// them so Terminate cannot recompute a duration against a stale start
	// time.
	e.terminated = true

	if e.ErrorCode == model.CodeException {
		excMap, ok := rep["exception"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: exception record without exception payload", ErrMalformedRecord)
		}
		e.Exception = model.ExceptionFromMap(excMap)
	}
	return e, nil
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
