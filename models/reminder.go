package models

// ReminderPayload is the asynq task body for a scheduled event reminder.
type ReminderPayload struct {
	ReminderID string `json:"reminderId"`
	GroupID    string `json:"groupId,omitempty"`
	UserEmail  string `json:"userEmail"`
	EventID    string `json:"eventId"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	FireDate   string `json:"fireDate"`
}
