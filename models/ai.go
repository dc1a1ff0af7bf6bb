package models

// AssistRequest is the payload coming from the frontend into
// /api/speech/process.
type AssistRequest struct {
	SessionID           string             `json:"session_id"`
	Text                string             `json:"text"`
	ConversationHistory []ConversationTurn `json:"conversationHistory,omitempty"`
	ExistingEvents      []CalendarEvent    `json:"existingEvents,omitempty"`

	// UserEmail identifies the signed-in account; FamilyGroupID, when
	// set, makes reminders for created events fan out to that group's
	// notification feed.
	UserEmail     string `json:"userEmail,omitempty"`
	FamilyGroupID string `json:"familyGroupId,omitempty"`
}

// ConversationTurn is one entry of the rolling chat history replayed to
// the language model each turn.
type ConversationTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// AssistResponse is what the process handler returns to the frontend.
type AssistResponse struct {
	Intent               string           `json:"intent"`
	Confidence           float64          `json:"confidence"`
	Text                 string           `json:"text"`
	EventData            *AnnotatedEvent  `json:"eventData,omitempty"`
	EventsData           []AnnotatedEvent `json:"eventsData,omitempty"`
	HasConflicts         bool             `json:"hasConflicts"`
	Conflicts            []AnnotatedEvent `json:"conflicts,omitempty"`
	RequiresUserDecision bool             `json:"requiresUserDecision"`
	EventsToDelete       []CalendarEvent  `json:"eventsToDelete,omitempty"`
	EventToUpdate        *CalendarEvent   `json:"eventToUpdate,omitempty"`
	RequiresConfirmation bool             `json:"requiresConfirmation"`
	AudioRequired        bool             `json:"audioRequired"`
}

// IntentAnalysis is the classification collaborator's verdict on one
// utterance.
type IntentAnalysis struct {
	Intent          string  `json:"intent"` // "event", "vent", "question", "unclear"
	Confidence      float64 `json:"confidence"`
	Reasoning       string  `json:"reasoning,omitempty"`
	HasCalendarData bool    `json:"hasCalendarData"`
	EventCount      int     `json:"eventCount"`
}

// DeleteAnalysis is the delete-intent collaborator's verdict.
type DeleteAnalysis struct {
	IsDeleteRequest bool    `json:"isDeleteRequest"`
	EventToDelete   string  `json:"eventToDelete"`
	Confidence      float64 `json:"confidence"`
}

// UpdateAnalysis is the update-intent collaborator's verdict.
type UpdateAnalysis struct {
	IsUpdateRequest bool    `json:"isUpdateRequest"`
	EventToUpdate   string  `json:"eventToUpdate"`
	NewStart        string  `json:"newStart,omitempty"`
	NewEnd          string  `json:"newEnd,omitempty"`
	Confidence      float64 `json:"confidence"`
	Reasoning       string  `json:"reasoning,omitempty"`
}

// CalendarContext summarizes the slice of the calendar relevant to a
// question or vent, so the language model can answer schedule questions.
type CalendarContext struct {
	Events      []ContextEvent `json:"events"`
	Count       int            `json:"count"`
	TimeRange   string         `json:"timeRange"`
	TimeOfDay   string         `json:"timeOfDay,omitempty"`
	CurrentDate string         `json:"currentDate"`
	IsEmpty     bool           `json:"isEmpty"`
}

// ContextEvent is the trimmed event view embedded in CalendarContext.
type ContextEvent struct {
	Title     string `json:"title"`
	Start     string `json:"start"`
	DayOfWeek string `json:"dayOfWeek"`
	Date      string `json:"date"`
}
