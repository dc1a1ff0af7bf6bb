package models

// FamilyGroup is a shared calendar circle. Members see notifications
// about each other's calendar changes.
type FamilyGroup struct {
	ID          string                  `bson:"id" json:"id"`
	Name        string                  `bson:"name" json:"name"`
	Description string                  `bson:"description,omitempty" json:"description,omitempty"`
	Members     []FamilyMember          `bson:"members" json:"members"`
	Preferences NotificationPreferences `bson:"preferences" json:"preferences"`
	CreatedAt   int64                   `bson:"createdAt" json:"createdAt"`
	UpdatedAt   int64                   `bson:"updatedAt" json:"updatedAt"`
}

// FamilyMember is one participant of a group.
type FamilyMember struct {
	Email    string `bson:"email" json:"email"`
	Name     string `bson:"name" json:"name"`
	Role     string `bson:"role" json:"role"` // "admin" or "member"
	JoinedAt int64  `bson:"joinedAt" json:"joinedAt"`
}

// NotificationPreferences controls which calendar changes fan out to the
// group.
type NotificationPreferences struct {
	EventCreated bool `bson:"eventCreated" json:"eventCreated"`
	EventUpdated bool `bson:"eventUpdated" json:"eventUpdated"`
	EventDeleted bool `bson:"eventDeleted" json:"eventDeleted"`
}

// Invitation asks a person to join a group.
type Invitation struct {
	ID           string `bson:"id" json:"id"`
	GroupID      string `bson:"groupId" json:"groupId"`
	GroupName    string `bson:"groupName" json:"groupName"`
	InviterEmail string `bson:"inviterEmail" json:"inviterEmail"`
	InviteeEmail string `bson:"inviteeEmail" json:"inviteeEmail"`
	Status       string `bson:"status" json:"status"` // "pending", "accepted", "declined"
	CreatedAt    int64  `bson:"createdAt" json:"createdAt"`
}

// GroupNotification records one calendar change broadcast to a group.
type GroupNotification struct {
	ID         string            `bson:"id" json:"id"`
	GroupID    string            `bson:"groupId" json:"groupId"`
	Type       string            `bson:"type" json:"type"` // "event_created", "event_updated", "event_deleted", "reminder"
	ActorEmail string            `bson:"actorEmail" json:"actorEmail"`
	EventData  map[string]string `bson:"eventData,omitempty" json:"eventData,omitempty"`
	ReadBy     []string          `bson:"readBy,omitempty" json:"readBy,omitempty"`
	CreatedAt  int64             `bson:"createdAt" json:"createdAt"`
}
