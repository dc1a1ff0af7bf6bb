package scheduling

import (
	"time"

	"clearmind/models"
)

// BatchResult holds a batch of annotated proposals. Proposals missing a
// required field were dropped before any conflict check and appear in
// neither partition.
type BatchResult struct {
	Events       []models.AnnotatedEvent
	ValidCount   int
	DroppedCount int
}

// Conflicting returns the annotated proposals that overlap an existing
// event.
func (r BatchResult) Conflicting() []models.AnnotatedEvent {
	var out []models.AnnotatedEvent
	for _, ev := range r.Events {
		if ev.HasConflict {
			out = append(out, ev)
		}
	}
	return out
}

// NonConflicting returns the complement of Conflicting.
func (r BatchResult) NonConflicting() []models.AnnotatedEvent {
	var out []models.AnnotatedEvent
	for _, ev := range r.Events {
		if !ev.HasConflict {
			out = append(out, ev)
		}
	}
	return out
}

// CheckBatch runs the detector over every proposal independently.
// Proposals are only checked against the caller's snapshot, not against
// each other, so two new events that collide with one another are not
// flagged.
func (d *Detector) CheckBatch(proposals []models.ProposedEvent, existing []models.CalendarEvent, now time.Time) (BatchResult, error) {
	var result BatchResult
	for _, p := range proposals {
		if p.Summary == "" || p.Start == "" || p.End == "" {
			result.DroppedCount++
			continue
		}
		annotated, err := d.Check(p, existing, now)
		if err != nil {
			return BatchResult{}, err
		}
		result.Events = append(result.Events, annotated)
	}
	result.ValidCount = len(result.Events)
	return result, nil
}
