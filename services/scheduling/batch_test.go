package scheduling

import (
	"reflect"
	"testing"
	"time"

	"clearmind/models"
)

func TestCheckBatch_NoExistingEventsNoConflicts(t *testing.T) {
	d := NewDetector(time.UTC)
	proposals := []models.ProposedEvent{
		proposed("Dentist", "2025-06-02T14:00:00Z", "2025-06-02T15:00:00Z", false),
		proposed("Pick up kids", "2025-06-02T15:00:00Z", "2025-06-02T15:30:00Z", true),
	}

	result, err := d.CheckBatch(proposals, nil, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ValidCount != 2 {
		t.Errorf("ValidCount = %d, want 2", result.ValidCount)
	}
	if got := result.Conflicting(); len(got) != 0 {
		t.Errorf("expected no conflicts, got %d", len(got))
	}
	if got := result.NonConflicting(); len(got) != 2 {
		t.Errorf("expected 2 non-conflicting events, got %d", len(got))
	}
}

func TestCheckBatch_DropsIncompleteProposals(t *testing.T) {
	d := NewDetector(time.UTC)
	proposals := []models.ProposedEvent{
		proposed("", "2025-06-02T14:00:00Z", "2025-06-02T15:00:00Z", false),
		proposed("No start", "", "2025-06-02T15:00:00Z", false),
		proposed("No end", "2025-06-02T14:00:00Z", "", false),
		proposed("Dentist", "2025-06-02T14:00:00Z", "2025-06-02T15:00:00Z", false),
	}

	result, err := d.CheckBatch(proposals, nil, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ValidCount != 1 {
		t.Errorf("ValidCount = %d, want 1", result.ValidCount)
	}
	if result.DroppedCount != 3 {
		t.Errorf("DroppedCount = %d, want 3", result.DroppedCount)
	}
	for _, ev := range append(result.Conflicting(), result.NonConflicting()...) {
		if ev.Summary == "" || ev.Start == "" || ev.End == "" {
			t.Errorf("incomplete proposal leaked into a partition: %+v", ev)
		}
	}

	// Re-running on the surviving set yields the same annotations.
	var valid []models.ProposedEvent
	for _, ev := range result.Events {
		valid = append(valid, ev.ProposedEvent)
	}
	again, err := d.CheckBatch(valid, nil, testNow)
	if err != nil {
		t.Fatalf("unexpected error on second pass: %v", err)
	}
	if !reflect.DeepEqual(result.Events, again.Events) {
		t.Error("filtering is not idempotent: second pass changed annotations")
	}
}

func TestCheckBatch_PartitionsMixedBatch(t *testing.T) {
	d := NewDetector(time.UTC)
	cal := []models.CalendarEvent{
		existing("Standup", "2025-06-02T14:00:00Z", "2025-06-02T15:00:00Z"),
	}
	proposals := []models.ProposedEvent{
		proposed("Dentist", "2025-06-02T14:00:00Z", "2025-06-02T15:00:00Z", false),
		proposed("Groceries", "2025-06-02T16:00:00Z", "2025-06-02T16:30:00Z", true),
	}

	result, err := d.CheckBatch(proposals, cal, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	conflicting := result.Conflicting()
	if len(conflicting) != 1 {
		t.Fatalf("len(Conflicting()) = %d, want 1", len(conflicting))
	}
	if conflicting[0].Summary != "Dentist" {
		t.Errorf("conflicting event = %q, want Dentist", conflicting[0].Summary)
	}
	if conflicting[0].ConflictsWith != "Standup" {
		t.Errorf("ConflictsWith = %q, want Standup", conflicting[0].ConflictsWith)
	}
	// Fixed proposal, so no alternatives despite the conflict.
	if len(conflicting[0].SuggestedAlternatives) != 0 {
		t.Errorf("fixed conflicting event has %d alternatives, want 0", len(conflicting[0].SuggestedAlternatives))
	}

	nonConflicting := result.NonConflicting()
	if len(nonConflicting) != 1 || nonConflicting[0].Summary != "Groceries" {
		t.Errorf("NonConflicting() = %+v, want just Groceries", nonConflicting)
	}
}

func TestCheckBatch_SiblingProposalsNotChecked(t *testing.T) {
	d := NewDetector(time.UTC)
	// Two new events at the same time: deliberately not flagged against
	// each other.
	proposals := []models.ProposedEvent{
		proposed("Call mom", "2025-06-02T14:00:00Z", "2025-06-02T15:00:00Z", false),
		proposed("Call dad", "2025-06-02T14:00:00Z", "2025-06-02T15:00:00Z", false),
	}

	result, err := d.CheckBatch(proposals, nil, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.Conflicting(); len(got) != 0 {
		t.Errorf("sibling proposals must not conflict with each other, got %d conflicts", len(got))
	}
}
