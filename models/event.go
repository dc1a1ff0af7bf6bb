package models

// CalendarEvent is a persisted event already on the user's calendar.
// Start and End are ISO-8601 strings with offsets, exactly as the
// calendar API returns them.
type CalendarEvent struct {
	ID          string `bson:"id" json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

// ProposedEvent is an extracted, not-yet-persisted event candidate.
type ProposedEvent struct {
	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
	IsFlexible  bool   `json:"isFlexible"`
}

// Alternative is a candidate replacement start time for a flexible
// proposal that conflicts with the existing calendar.
type Alternative struct {
	Time   string `json:"time"`
	Reason string `json:"reason"`
}

// AnnotatedEvent is a proposal tagged with the outcome of a conflict
// check. SuggestedAlternatives is populated only for flexible proposals
// that conflict.
type AnnotatedEvent struct {
	ProposedEvent
	HasConflict           bool          `json:"hasConflict"`
	ConflictsWith         string        `json:"conflictsWith,omitempty"`
	SuggestedAlternatives []Alternative `json:"suggestedAlternatives,omitempty"`
}
