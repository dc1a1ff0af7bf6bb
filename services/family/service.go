package family

import (
	"fmt"
	"time"

	familyRepo "clearmind/database/repository/family"
	"clearmind/models"
	"clearmind/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	roleAdmin  = "admin"
	roleMember = "member"

	notificationLimit = 50
)

// DefaultGroupService implements GroupService on top of the Mongo
// repository.
type DefaultGroupService struct {
	Repo familyRepo.FamilyRepository
}

func (s *DefaultGroupService) CreateGroup(name, description, creatorEmail, creatorName string) (*models.FamilyGroup, error) {
	if name == "" {
		return nil, fmt.Errorf("group name is required")
	}
	group := &models.FamilyGroup{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Members: []models.FamilyMember{{
			Email:    creatorEmail,
			Name:     creatorName,
			Role:     roleAdmin,
			JoinedAt: time.Now().UnixMilli(),
		}},
		Preferences: models.NotificationPreferences{
			EventCreated: true,
			EventUpdated: true,
			EventDeleted: true,
		},
	}
	if err := s.Repo.CreateGroup(group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *DefaultGroupService) GetGroup(groupID, requesterEmail string) (*models.FamilyGroup, error) {
	group, err := s.Repo.GetGroupByID(groupID)
	if err != nil {
		return nil, err
	}
	if memberIndex(group, requesterEmail) < 0 {
		return nil, ErrNotMember
	}
	return group, nil
}

func (s *DefaultGroupService) ListGroups(memberEmail string) ([]models.FamilyGroup, error) {
	return s.Repo.GetGroupsByMember(memberEmail)
}

func (s *DefaultGroupService) UpdateGroup(groupID, requesterEmail, name, description string) (*models.FamilyGroup, error) {
	group, err := s.requireAdmin(groupID, requesterEmail)
	if err != nil {
		return nil, err
	}
	if name != "" {
		group.Name = name
	}
	group.Description = description
	if err := s.Repo.UpdateGroup(group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *DefaultGroupService) DeleteGroup(groupID, requesterEmail string) error {
	if _, err := s.requireAdmin(groupID, requesterEmail); err != nil {
		return err
	}
	return s.Repo.DeleteGroup(groupID)
}

func (s *DefaultGroupService) InviteMember(groupID, inviterEmail, inviteeEmail string) (*models.Invitation, error) {
	group, err := s.requireAdmin(groupID, inviterEmail)
	if err != nil {
		return nil, err
	}
	if memberIndex(group, inviteeEmail) >= 0 {
		return nil, ErrAlreadyMember
	}

	pending, err := s.Repo.GetInvitationsByInvitee(inviteeEmail)
	if err != nil {
		return nil, err
	}
	for _, inv := range pending {
		if inv.GroupID == groupID {
			return nil, ErrAlreadyInvited
		}
	}

	inv := &models.Invitation{
		ID:           uuid.NewString(),
		GroupID:      groupID,
		GroupName:    group.Name,
		InviterEmail: inviterEmail,
		InviteeEmail: inviteeEmail,
		Status:       "pending",
	}
	if err := s.Repo.CreateInvitation(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *DefaultGroupService) ListInvitations(inviteeEmail string) ([]models.Invitation, error) {
	return s.Repo.GetInvitationsByInvitee(inviteeEmail)
}

func (s *DefaultGroupService) RespondToInvitation(invitationID, inviteeEmail, inviteeName string, accept bool) error {
	inv, err := s.Repo.GetInvitationByID(invitationID)
	if err != nil {
		return err
	}
	if inv.InviteeEmail != inviteeEmail {
		return ErrNotMember
	}
	if inv.Status != "pending" {
		return ErrInvitationResolved
	}

	if !accept {
		return s.Repo.UpdateInvitationStatus(invitationID, "declined")
	}

	group, err := s.Repo.GetGroupByID(inv.GroupID)
	if err != nil {
		return err
	}
	if memberIndex(group, inviteeEmail) < 0 {
		group.Members = append(group.Members, models.FamilyMember{
			Email:    inviteeEmail,
			Name:     inviteeName,
			Role:     roleMember,
			JoinedAt: time.Now().UnixMilli(),
		})
		if err := s.Repo.UpdateGroup(group); err != nil {
			return err
		}
	}
	return s.Repo.UpdateInvitationStatus(invitationID, "accepted")
}

func (s *DefaultGroupService) RemoveMember(groupID, requesterEmail, memberEmail string) error {
	group, err := s.requireAdmin(groupID, requesterEmail)
	if err != nil {
		return err
	}
	return s.dropMember(group, memberEmail)
}

func (s *DefaultGroupService) LeaveGroup(groupID, memberEmail string) error {
	group, err := s.Repo.GetGroupByID(groupID)
	if err != nil {
		return err
	}
	if memberIndex(group, memberEmail) < 0 {
		return ErrNotMember
	}

	// The last member leaving dissolves the group.
	if len(group.Members) == 1 {
		return s.Repo.DeleteGroup(groupID)
	}
	return s.dropMember(group, memberEmail)
}

func (s *DefaultGroupService) UpdatePreferences(groupID, requesterEmail string, prefs models.NotificationPreferences) (*models.FamilyGroup, error) {
	group, err := s.requireAdmin(groupID, requesterEmail)
	if err != nil {
		return nil, err
	}
	group.Preferences = prefs
	if err := s.Repo.UpdateGroup(group); err != nil {
		return nil, err
	}
	return group, nil
}

// NotifyGroup fans out a calendar change to the group feed, honoring
// the group's notification preferences.
func (s *DefaultGroupService) NotifyGroup(groupID, actorEmail, changeType string, eventData map[string]string) error {
	group, err := s.Repo.GetGroupByID(groupID)
	if err != nil {
		return err
	}
	if !wantsNotification(group.Preferences, changeType) {
		return nil
	}

	n := &models.GroupNotification{
		ID:         uuid.NewString(),
		GroupID:    groupID,
		Type:       changeType,
		ActorEmail: actorEmail,
		EventData:  eventData,
	}
	if err := s.Repo.CreateNotification(n); err != nil {
		utils.GetLogger().Error("failed to record group notification",
			zap.String("groupID", groupID), zap.Error(err))
		return err
	}
	return nil
}

func (s *DefaultGroupService) ListNotifications(groupID, requesterEmail string) ([]models.GroupNotification, error) {
	group, err := s.Repo.GetGroupByID(groupID)
	if err != nil {
		return nil, err
	}
	if memberIndex(group, requesterEmail) < 0 {
		return nil, ErrNotMember
	}
	return s.Repo.GetNotificationsByGroup(groupID, notificationLimit)
}

func (s *DefaultGroupService) MarkNotificationRead(groupID, notificationID, requesterEmail string) error {
	group, err := s.Repo.GetGroupByID(groupID)
	if err != nil {
		return err
	}
	if memberIndex(group, requesterEmail) < 0 {
		return ErrNotMember
	}
	return s.Repo.MarkNotificationRead(notificationID, requesterEmail)
}

// requireAdmin fetches the group and checks the requester holds the
// admin role.
func (s *DefaultGroupService) requireAdmin(groupID, email string) (*models.FamilyGroup, error) {
	group, err := s.Repo.GetGroupByID(groupID)
	if err != nil {
		return nil, err
	}
	idx := memberIndex(group, email)
	if idx < 0 {
		return nil, ErrNotMember
	}
	if group.Members[idx].Role != roleAdmin {
		return nil, ErrNotAdmin
	}
	return group, nil
}

// dropMember removes one member, refusing to strand the group without
// an admin. When the departing member is the only admin, the
// longest-standing remaining member is promoted.
func (s *DefaultGroupService) dropMember(group *models.FamilyGroup, email string) error {
	idx := memberIndex(group, email)
	if idx < 0 {
		return ErrNotMember
	}
	wasAdmin := group.Members[idx].Role == roleAdmin

	group.Members = append(group.Members[:idx], group.Members[idx+1:]...)
	if len(group.Members) == 0 {
		return ErrLastAdmin
	}

	if wasAdmin && adminCount(group) == 0 {
		oldest := 0
		for i, m := range group.Members {
			if m.JoinedAt < group.Members[oldest].JoinedAt {
				oldest = i
			}
		}
		group.Members[oldest].Role = roleAdmin
	}
	return s.Repo.UpdateGroup(group)
}

func memberIndex(group *models.FamilyGroup, email string) int {
	for i, m := range group.Members {
		if m.Email == email {
			return i
		}
	}
	return -1
}

func adminCount(group *models.FamilyGroup) int {
	n := 0
	for _, m := range group.Members {
		if m.Role == roleAdmin {
			n++
		}
	}
	return n
}

func wantsNotification(prefs models.NotificationPreferences, changeType string) bool {
	switch changeType {
	case "event_created":
		return prefs.EventCreated
	case "event_updated":
		return prefs.EventUpdated
	case "event_deleted":
		return prefs.EventDeleted
	}
	return true
}
