package stackcap

import (
	"errors"
	"runtime"
	"strings"
	"testing"
)

// stubInspector pretends the runtime can expose locals for every frame.
type stubInspector struct {
	locals map[string]any
}

func (s *stubInspector) Locals(file, function string, line int) (map[string]any, bool) {
	return s.locals, s.locals != nil
}

func TestCaptureBasicFields(t *testing.T) {
	c := New()
	x := c.Capture(errors.New("connection refused"), "raw traceback", false, false)

	if x.Type != "errorString" {
		t.Errorf("expected errorString, got %s", x.Type)
	}
	if x.Message != "connection refused" {
		t.Errorf("unexpected message: %s", x.Message)
	}
	if x.Traceback != "raw traceback" {
		t.Errorf("unexpected traceback: %v", x.Traceback)
	}
	if x.Time <= 0 {
		t.Errorf("capture time not recorded: %f", x.Time)
	}
	if x.Handled {
		t.Error("expected handled=false")
	}
}

func TestCaptureNilExceptionIsUnknown(t *testing.T) {
	c := New()
	x := c.Capture(nil, nil, true, false)
	if x.Type != "Unknown" {
		t.Errorf("expected Unknown, got %s", x.Type)
	}
}

func TestCaptureUnnamedTypeFallsBackToTypeString(t *testing.T) {
	c := New()
	x := c.Capture(struct{ code int }{7}, nil, true, false)
	if x.Type == "" || x.Type == "Unknown" {
		t.Errorf("expected a synthesized type string, got %q", x.Type)
	}
}

func TestCaptureSanitizesTraceback(t *testing.T) {
	c := New()
	tb := map[any]any{7: "frame"}
	x := c.Capture("boom", tb, true, false)

	m, ok := x.Traceback.(map[string]any)
	if !ok {
		t.Fatalf("traceback not sanitized: %T", x.Traceback)
	}
	if m["7"] != "frame" {
		t.Errorf("key coercion lost data: %v", m)
	}
}

func TestCaptureFromLogsFlag(t *testing.T) {
	c := New()
	x := c.Capture("boom", nil, true, true)
	if !x.FromLogs {
		t.Error("from_logs flag dropped")
	}
	additional := x.ToMap()["additional_data"].(map[string]any)
	if additional["from_logs"] != true {
		t.Errorf("from_logs missing from wire shape: %v", additional)
	}
}

func TestFramesOmittedWithoutInspector(t *testing.T) {
	c := New()
	c.CollectFrames = true
	x := c.Capture("boom", nil, true, false)
	if x.Frames != nil {
		t.Errorf("frames collected without a locals capability: %v", x.Frames)
	}
}

func TestFramesOmittedWhenDisabled(t *testing.T) {
	c := New()
	c.Inspector = &stubInspector{locals: map[string]any{"n": 1}}
	x := c.Capture("boom", nil, true, false)
	if x.Frames != nil {
		t.Errorf("frames collected while disabled: %v", x.Frames)
	}
}

func TestFramesCollectedWithInspector(t *testing.T) {
	c := New()
	c.CollectFrames = true
	c.PathMarker = "/no-such-path-marker/"
	c.Inspector = &stubInspector{locals: map[string]any{"attempt": 3}}

	x := c.Capture("boom", nil, true, false)
	if len(x.Frames) == 0 {
		t.Fatal("expected collected frames")
	}
	for key, locals := range x.Frames {
		if strings.Count(key, "/") < 2 {
			t.Errorf("frame key not <file>/<function>/<line>: %s", key)
		}
		m, ok := locals.(map[string]any)
		if !ok || m["attempt"] != 3 {
			t.Errorf("locals not preserved for %s: %v", key, locals)
		}
	}
}

func TestSelfFramesExcluded(t *testing.T) {
	_, file, _, _ := runtime.Caller(0)

	c := New()
	c.CollectFrames = true
	c.PathMarker = file
	c.Inspector = &stubInspector{locals: map[string]any{"n": 1}}

	x := c.Capture("boom", nil, true, false)
	for key := range x.Frames {
		if strings.Contains(key, file) {
			t.Errorf("self frame retained: %s", key)
		}
	}
}

type panickyError struct{}

func (panickyError) Error() string { panic("no message for you") }

func TestCaptureNeverPanics(t *testing.T) {
	c := New()
	x := c.Capture(panickyError{}, nil, false, false)
	if x == nil {
		t.Fatal("capture returned nil payload")
	}
	if x.Type != "Unknown" {
		t.Errorf("expected Unknown fallback payload, got %s", x.Type)
	}
}
