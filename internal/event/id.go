package event

import (
	"sync"

	"github.com/google/uuid"
)

var (
	traceOnce sync.Once
	traceID   string
)

// NewEventID generates a resource-type-prefixed event ID. Each call draws an
// independent random UUID, so generation is safe under concurrency.
func NewEventID(resourceType string) string {
	return resourceType + "-" + uuid.NewString()
}

// ProcessTraceID returns the trace ID shared by every runner event in this
// process, generated once on first use.
func ProcessTraceID() string {
	traceOnce.Do(func() {
		traceID = uuid.NewString()
	})
	return traceID
}
