package family

import (
	"errors"

	"clearmind/models"
)

// Membership rule violations surfaced to the HTTP layer.
var (
	ErrNotAdmin           = errors.New("requires group admin")
	ErrNotMember          = errors.New("not a member of this group")
	ErrAlreadyMember      = errors.New("already a member of this group")
	ErrAlreadyInvited     = errors.New("invitation already pending")
	ErrLastAdmin          = errors.New("cannot remove the last admin")
	ErrInvitationResolved = errors.New("invitation already resolved")
)

// GroupService manages family groups: shared circles whose members get
// notified about each other's calendar changes.
type GroupService interface {
	CreateGroup(name, description, creatorEmail, creatorName string) (*models.FamilyGroup, error)
	GetGroup(groupID, requesterEmail string) (*models.FamilyGroup, error)
	ListGroups(memberEmail string) ([]models.FamilyGroup, error)
	UpdateGroup(groupID, requesterEmail, name, description string) (*models.FamilyGroup, error)
	DeleteGroup(groupID, requesterEmail string) error

	InviteMember(groupID, inviterEmail, inviteeEmail string) (*models.Invitation, error)
	ListInvitations(inviteeEmail string) ([]models.Invitation, error)
	RespondToInvitation(invitationID, inviteeEmail, inviteeName string, accept bool) error
	RemoveMember(groupID, requesterEmail, memberEmail string) error
	LeaveGroup(groupID, memberEmail string) error

	UpdatePreferences(groupID, requesterEmail string, prefs models.NotificationPreferences) (*models.FamilyGroup, error)
	NotifyGroup(groupID, actorEmail, changeType string, eventData map[string]string) error
	ListNotifications(groupID, requesterEmail string) ([]models.GroupNotification, error)
	MarkNotificationRead(groupID, notificationID, requesterEmail string) error
}
