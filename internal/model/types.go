package model

// ErrorCode is the recorded outcome of one observed call.
// The integer values are an external contract with the backend.
type ErrorCode int

const (
	CodeOK        ErrorCode = 0
	CodeError     ErrorCode = 1
	CodeException ErrorCode = 2
)

// Escalate moves the code toward "worse" and never back: a plain error
// cannot downgrade an exception.
func (c ErrorCode) Escalate(next ErrorCode) ErrorCode {
	if next > c {
		return next
	}
	return c
}

// Resource describes what an event observed.
type Resource struct {
	Type      string         `json:"type"`
	Name      string         `json:"name"`
	Operation string         `json:"operation"`
	Metadata  map[string]any `json:"metadata"`
}

// NewResource creates a Resource with an initialized metadata map.
func NewResource(resourceType string) Resource {
	return Resource{
		Type:     resourceType,
		Metadata: map[string]any{},
	}
}

// ToMap converts a Resource to its wire shape.
func (r Resource) ToMap() map[string]any {
	meta := r.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	return map[string]any{
		"type":      r.Type,
		"name":      r.Name,
		"operation": r.Operation,
		"metadata":  meta,
	}
}

// ResourceFromMap rebuilds a Resource from its wire shape with defensive
// coercion. Unknown or missing fields fall back to zero values.
func ResourceFromMap(m map[string]any) Resource {
	r := NewResource(toString(m["type"]))
	r.Name = toString(m["name"])
	r.Operation = toString(m["operation"])
	if meta, ok := m["metadata"].(map[string]any); ok {
		r.Metadata = meta
	}
	return r
}

// Exception is the structured payload recorded for a failed call.
// Traceback and Frames hold already-sanitized data.
type Exception struct {
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Traceback any            `json:"traceback"`
	Time      float64        `json:"time"`
	Frames    map[string]any `json:"frames,omitempty"`
	Handled   bool           `json:"handled"`
	FromLogs  bool           `json:"from_logs"`
}

// ToMap converts an Exception to its wire shape. The frames key is present
// only when frames were collected; from_logs only when true.
func (x *Exception) ToMap() map[string]any {
	additional := map[string]any{"handled": x.Handled}
	if x.FromLogs {
		additional["from_logs"] = true
	}
	m := map[string]any{
		"type":            x.Type,
		"message":         x.Message,
		"traceback":       x.Traceback,
		"time":            x.Time,
		"additional_data": additional,
	}
	if x.Frames != nil {
		m["frames"] = x.Frames
	}
	return m
}

// ExceptionFromMap rebuilds an Exception from its wire shape.
func ExceptionFromMap(m map[string]any) *Exception {
	x := &Exception{
		Type:      toString(m["type"]),
		Message:   toString(m["message"]),
		Traceback: m["traceback"],
		Time:      toFloat(m["time"]),
	}
	if frames, ok := m["frames"].(map[string]any); ok {
		x.Frames = frames
	}
	if additional, ok := m["additional_data"].(map[string]any); ok {
		if h, ok := additional["handled"].(bool); ok {
			x.Handled = h
		}
		if fl, ok := additional["from_logs"].(bool); ok {
			x.FromLogs = fl
		}
	}
	return x
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

// ToInt coerces loosely-typed numerics (JSON decoding yields float64).
func ToInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
