package familyRepo

import (
	"clearmind/models"
)

// FamilyRepository defines data access for family groups, invitations,
// and group notifications.
type FamilyRepository interface {
	// CreateGroup inserts a new family group.
	CreateGroup(group *models.FamilyGroup) error
	// GetGroupByID retrieves a group by its unique ID.
	GetGroupByID(id string) (*models.FamilyGroup, error)
	// GetGroupsByMember retrieves all groups a member belongs to.
	GetGroupsByMember(email string) ([]models.FamilyGroup, error)
	// UpdateGroup replaces an existing group document.
	UpdateGroup(group *models.FamilyGroup) error
	// DeleteGroup removes a group and its invitations and notifications.
	DeleteGroup(id string) error

	// CreateInvitation inserts a pending invitation.
	CreateInvitation(inv *models.Invitation) error
	// GetInvitationByID retrieves an invitation by its unique ID.
	GetInvitationByID(id string) (*models.Invitation, error)
	// GetInvitationsByInvitee retrieves pending invitations for an email.
	GetInvitationsByInvitee(email string) ([]models.Invitation, error)
	// UpdateInvitationStatus marks an invitation accepted or declined.
	UpdateInvitationStatus(id, status string) error

	// CreateNotification inserts a group notification.
	CreateNotification(n *models.GroupNotification) error
	// GetNotificationsByGroup retrieves a group's notifications, newest
	// first, capped at limit.
	GetNotificationsByGroup(groupID string, limit int64) ([]models.GroupNotification, error)
	// MarkNotificationRead records that a member has seen a notification.
	MarkNotificationRead(id, email string) error
}
