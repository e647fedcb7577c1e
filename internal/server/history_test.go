package server

import (
	"fmt"
	"testing"
	"time"

	"briefdesk/internal/model"
)

func TestHistory_AddAndGet(t *testing.T) {
	h := NewHistory(time.Hour, 10)
	run := &model.RunReport{ID: "run-1", State: model.StateDone}

	h.Add(run)

	got, ok := h.Get("run-1")
	if !ok {
		t.Fatal("Expected run to be retrievable")
	}
	if got.ID != "run-1" {
		t.Errorf("Unexpected run: %+v", got)
	}
}

func TestHistory_ListMostRecentFirst(t *testing.T) {
	h := NewHistory(time.Hour, 10)
	for i := 0; i < 3; i++ {
		h.Add(&model.RunReport{ID: fmt.Sprintf("run-%d", i)})
	}

	runs := h.List()
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	if runs[0].ID != "run-2" || runs[2].ID != "run-0" {
		t.Errorf("Expected most recent first, got %s..%s", runs[0].ID, runs[2].ID)
	}
}

func TestHistory_SizeCap(t *testing.T) {
	h := NewHistory(time.Hour, 2)
	for i := 0; i < 5; i++ {
		h.Add(&model.RunReport{ID: fmt.Sprintf("run-%d", i)})
	}

	runs := h.List()
	if len(runs) != 2 {
		t.Fatalf("Expected history capped at 2, got %d", len(runs))
	}
	if _, ok := h.Get("run-0"); ok {
		t.Error("Expected oldest run evicted")
	}
}

func TestHistory_Expiry(t *testing.T) {
	h := NewHistory(time.Millisecond, 10)
	h.Add(&model.RunReport{ID: "run-1"})

	time.Sleep(5 * time.Millisecond)

	if _, ok := h.Get("run-1"); ok {
		t.Error("Expected run to expire")
	}
	if runs := h.List(); len(runs) != 0 {
		t.Errorf("Expected empty list after expiry, got %d", len(runs))
	}
}
