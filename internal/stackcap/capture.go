// Package stackcap turns a live failure plus the current call stack into a
// bounded, serializer-safe exception payload.
package stackcap

import (
	"fmt"
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"github.com/spanwatch/spanwatch/internal/event"
	"github.com/spanwatch/spanwatch/internal/model"
	"github.com/spanwatch/spanwatch/internal/sanitize"
)

// SelfPathMarker identifies our own stack frames so they are excluded from
// captured frame data.
const SelfPathMarker = "/spanwatch"

// maxFrames bounds how much of the stack one capture may record.
const maxFrames = 64

// LocalsInspector exposes per-frame local variable bindings. The Go runtime
// does not surface locals, so this is a capability supplied by tooling that
// can (a debugger bridge, a test double). A nil inspector means frame data
// is omitted entirely.
type LocalsInspector interface {
	Locals(file, function string, line int) (map[string]any, bool)
}

// Capturer builds exception payloads. Frame collection is an explicit,
// per-capturer policy rather than ambient process state.
type Capturer struct {
	CollectFrames bool
	Inspector     LocalsInspector
	PathMarker    string
}

// New returns a Capturer with frame collection disabled.
func New() *Capturer {
	return &Capturer{PathMarker: SelfPathMarker}
}

// Capture produces the payload for exc raised with the given traceback
// context. handled is false when the wrapped call itself raised; fromLogs is
// true when the failure was lifted out of log output. Capture never panics,
// whatever exc or traceback contain.
func (c *Capturer) Capture(exc, traceback any, handled, fromLogs bool) (x *model.Exception) {
	defer func() {
		if r := recover(); r != nil {
			x = &model.Exception{
				Type:     "Unknown",
				Message:  fmt.Sprintf("capture failed: %v", r),
				Time:     event.Now(),
				Handled:  handled,
				FromLogs: fromLogs,
			}
		}
	}()

	x = &model.Exception{
		Type:      typeName(exc),
		Message:   message(exc),
		Traceback: sanitize.Copy(traceback),
		Time:      event.Now(),
		Handled:   handled,
		FromLogs:  fromLogs,
	}
	if c.CollectFrames && c.Inspector != nil {
		if frames := c.collectFrames(); len(frames) > 0 {
			x.Frames = frames
		}
	}
	return x
}

// collectFrames walks the stack from the point of capture, keying each
// retained frame by <file>/<function>/<line>. Frames belonging to this
// system and frames with no locals are excluded.
func (c *Capturer) collectFrames() map[string]any {
	marker := c.PathMarker
	if marker == "" {
		marker = SelfPathMarker
	}

	pcs := make([]uintptr, maxFrames)
	n := runtime.Callers(2, pcs)
	if n == 0 {
		return nil
	}

	collected := map[string]any{}
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.File != "" && !strings.Contains(frame.File, marker) {
			locals, ok := c.Inspector.Locals(frame.File, frame.Function, frame.Line)
			if ok && len(locals) > 0 {
				key := frame.File + "/" + frame.Function + "/" + strconv.Itoa(frame.Line)
				collected[key] = sanitize.Copy(locals)
			}
		}
		if !more {
			break
		}
	}
	return collected
}

// typeName extracts the runtime type name of exc, or "Unknown" when no name
// is available.
func typeName(exc any) string {
	if exc == nil {
		return "Unknown"
	}
	t := reflect.TypeOf(exc)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "Unknown"
	}
	if name := t.Name(); name != "" {
		return name
	}
	if s := t.String(); s != "" {
		return s
	}
	return "Unknown"
}

// message renders the string form of exc. Error and Stringer implementations
// may themselves panic on odd receivers; that is contained by Capture.
func message(exc any) string {
	switch v := exc.(type) {
	case nil:
		return ""
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
