package scheduling

import (
	"time"

	"clearmind/models"
)

const (
	// Alternative search is bounded to business hours on the proposal's
	// own calendar day.
	businessDayStartHour = 9
	businessDayEndHour   = 18

	slotStep        = 30 * time.Minute
	maxAlternatives = 3
)

// Detector performs local conflict checks against a read-only snapshot
// of the user's calendar. It never calls out to the network.
type Detector struct {
	// Loc is the user's fixed locale; the business-hours window for
	// alternative slots is anchored in it.
	Loc *time.Location
}

func NewDetector(loc *time.Location) *Detector {
	if loc == nil {
		loc = time.UTC
	}
	return &Detector{Loc: loc}
}

// existingInterval is a parsed snapshot entry.
type existingInterval struct {
	title string
	iv    Interval
}

// parseExisting converts the calendar snapshot to intervals, keeping
// only events starting now or later. Entries the calendar API returned
// with malformed timestamps are skipped.
func parseExisting(events []models.CalendarEvent, now time.Time) []existingInterval {
	out := make([]existingInterval, 0, len(events))
	for _, ev := range events {
		iv, err := ParseInterval(ev.Start, ev.End)
		if err != nil {
			continue
		}
		if iv.Start.Before(now) {
			continue
		}
		out = append(out, existingInterval{title: ev.Title, iv: iv})
	}
	return out
}

// Check annotates one proposed event against the existing calendar.
// The first overlapping existing event is chosen by earliest start;
// ties keep snapshot order. Flexible proposals that conflict get up to
// three alternative start times.
func (d *Detector) Check(p models.ProposedEvent, existing []models.CalendarEvent, now time.Time) (models.AnnotatedEvent, error) {
	proposal, err := ParseInterval(p.Start, p.End)
	if err != nil {
		return models.AnnotatedEvent{}, err
	}

	annotated := models.AnnotatedEvent{ProposedEvent: p}
	upcoming := parseExisting(existing, now)
	if len(upcoming) == 0 {
		return annotated, nil
	}

	var conflict *existingInterval
	for i := range upcoming {
		if !proposal.Overlaps(upcoming[i].iv) {
			continue
		}
		if conflict == nil || upcoming[i].iv.Start.Before(conflict.iv.Start) {
			conflict = &upcoming[i]
		}
	}
	if conflict == nil {
		return annotated, nil
	}

	annotated.HasConflict = true
	annotated.ConflictsWith = conflict.title
	if p.IsFlexible {
		annotated.SuggestedAlternatives = d.suggestAlternatives(proposal, upcoming)
	}
	return annotated, nil
}

// suggestAlternatives walks the proposal's business day in 30-minute
// steps and collects starts whose shifted interval clears every
// upcoming event. The original conflicting start is never offered back.
func (d *Detector) suggestAlternatives(proposal Interval, upcoming []existingInterval) []models.Alternative {
	day := proposal.Start.In(d.Loc)
	windowStart := time.Date(day.Year(), day.Month(), day.Day(), businessDayStartHour, 0, 0, 0, d.Loc)
	windowEnd := time.Date(day.Year(), day.Month(), day.Day(), businessDayEndHour, 0, 0, 0, d.Loc)
	duration := proposal.Duration()

	var alts []models.Alternative
	for start := windowStart; len(alts) < maxAlternatives; start = start.Add(slotStep) {
		end := start.Add(duration)
		if end.After(windowEnd) {
			break
		}
		if start.Equal(proposal.Start) {
			continue
		}
		candidate := Interval{Start: start, End: end}
		free := true
		for _, ex := range upcoming {
			if candidate.Overlaps(ex.iv) {
				free = false
				break
			}
		}
		if free {
			alts = append(alts, models.Alternative{
				Time:   start.Format(time.RFC3339),
				Reason: "next available slot",
			})
		}
	}
	return alts
}
