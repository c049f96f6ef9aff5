package emit

import (
	"sync"
	"testing"
)

func TestAccumulatorRecordsInOrder(t *testing.T) {
	acc := NewAccumulator()
	acc.Record(map[string]any{"id": "a"})
	acc.Record(map[string]any{"id": "b"})

	events := acc.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0]["id"] != "a" || events[1]["id"] != "b" {
		t.Errorf("order not preserved: %v", events)
	}
}

func TestAccumulatorSnapshotIsolation(t *testing.T) {
	acc := NewAccumulator()
	acc.Record(map[string]any{"id": "a"})

	snapshot := acc.Events()
	acc.Record(map[string]any{"id": "b"})
	if len(snapshot) != 1 {
		t.Errorf("snapshot grew after later records: %v", snapshot)
	}
}

func TestAccumulatorConcurrentRecord(t *testing.T) {
	acc := NewAccumulator()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			acc.Record(map[string]any{"id": "x"})
		}()
	}
	wg.Wait()
	if acc.Len() != 50 {
		t.Errorf("expected 50 events, got %d", acc.Len())
	}
}

func TestToJSONShape(t *testing.T) {
	acc := NewAccumulator()
	acc.Record(map[string]any{"id": "a"})

	snapshot := acc.ToJSON()
	if snapshot["trace_id"] == "" || snapshot["trace_id"] == nil {
		t.Error("expected trace_id in snapshot")
	}
	events, ok := snapshot["events"].([]map[string]any)
	if !ok || len(events) != 1 {
		t.Errorf("expected 1 event in snapshot, got %v", snapshot["events"])
	}
}
