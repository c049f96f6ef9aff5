package model

import (
	"reflect"
	"testing"
)

func TestErrorCodeWireValues(t *testing.T) {
	if CodeOK != 0 || CodeError != 1 || CodeException != 2 {
		t.Errorf("error code wire values changed: ok=%d error=%d exception=%d",
			CodeOK, CodeError, CodeException)
	}
}

func TestErrorCodeEscalateNeverDowngrades(t *testing.T) {
	c := CodeOK
	c = c.Escalate(CodeException)
	if c != CodeException {
		t.Fatalf("expected exception, got %d", c)
	}
	c = c.Escalate(CodeError)
	if c != CodeException {
		t.Errorf("error downgraded exception to %d", c)
	}
}

func TestResourceRoundTrip(t *testing.T) {
	r := NewResource("twilio")
	r.Name = "twilio"
	r.Operation = "Messages.json"
	r.Metadata["method"] = "POST"

	got := ResourceFromMap(r.ToMap())
	if !reflect.DeepEqual(got.ToMap(), r.ToMap()) {
		t.Errorf("resource round trip mismatch: %v vs %v", got.ToMap(), r.ToMap())
	}
}

func TestExceptionToMapShape(t *testing.T) {
	x := &Exception{
		Type:    "timeout",
		Message: "deadline exceeded",
		Time:    1700000000.5,
		Handled: true,
	}
	m := x.ToMap()

	if m["type"] != "timeout" || m["message"] != "deadline exceeded" {
		t.Errorf("unexpected type/message: %v / %v", m["type"], m["message"])
	}
	if _, ok := m["frames"]; ok {
		t.Error("frames key present without collected frames")
	}
	additional, ok := m["additional_data"].(map[string]any)
	if !ok {
		t.Fatal("missing additional_data")
	}
	if additional["handled"] != true {
		t.Errorf("expected handled=true, got %v", additional["handled"])
	}
	if _, ok := additional["from_logs"]; ok {
		t.Error("from_logs present when false")
	}
}

func TestExceptionFromMapRoundTrip(t *testing.T) {
	x := &Exception{
		Type:      "timeout",
		Message:   "deadline exceeded",
		Traceback: []any{"frame a", "frame b"},
		Time:      1700000000.5,
		Frames:    map[string]any{"f.go/run/10": map[string]any{"n": 1}},
		Handled:   false,
		FromLogs:  true,
	}
	got := ExceptionFromMap(x.ToMap())
	if !reflect.DeepEqual(got.ToMap(), x.ToMap()) {
		t.Errorf("exception round trip mismatch: %v vs %v", got.ToMap(), x.ToMap())
	}
}
