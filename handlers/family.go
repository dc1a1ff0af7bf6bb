package handlers

import (
	"errors"
	"net/http"

	"clearmind/models"
	"clearmind/services/family"
	"clearmind/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requesterEmail identifies the caller. The frontend sends the signed-in
// Google account email with every family-group request.
func requesterEmail(c *gin.Context) (string, bool) {
	email := c.GetHeader("X-User-Email")
	if email == "" {
		utils.JSONError(c, http.StatusUnauthorized, "user email is required", "")
		return "", false
	}
	return email, true
}

// familyError maps membership rule violations to HTTP statuses.
func familyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, family.ErrNotAdmin):
		utils.JSONError(c, http.StatusForbidden, "requires group admin", "")
	case errors.Is(err, family.ErrNotMember):
		utils.JSONError(c, http.StatusForbidden, "not a member of this group", "")
	case errors.Is(err, family.ErrAlreadyMember), errors.Is(err, family.ErrAlreadyInvited),
		errors.Is(err, family.ErrInvitationResolved), errors.Is(err, family.ErrLastAdmin):
		utils.JSONError(c, http.StatusConflict, err.Error(), "")
	default:
		getLogger(c).Error("family group operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "family group operation failed", err.Error())
	}
}

type createGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	CreatorName string `json:"creatorName"`
}

func CreateGroupHandler(svc family.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := requesterEmail(c)
		if !ok {
			return
		}
		var req createGroupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "group name is required", err.Error())
			return
		}
		group, err := svc.CreateGroup(req.Name, req.Description, email, req.CreatorName)
		if err != nil {
			familyError(c, err)
			return
		}
		c.JSON(http.StatusCreated, group)
	}
}

func ListGroupsHandler(svc family.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := requesterEmail(c)
		if !ok {
			return
		}
		groups, err := svc.ListGroups(email)
		if err != nil {
			familyError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"groups": groups})
	}
}

func GetGroupHandler(svc family.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := requesterEmail(c)
		if !ok {
			return
		}
		group, err := svc.GetGroup(c.Param("id"), email)
		if err != nil {
			familyError(c, err)
			return
		}
		c.JSON(http.StatusOK, group)
	}
}

type updateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func UpdateGroupHandler(svc family.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := requesterEmail(c)
		if !ok {
			return
		}
		var req updateGroupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
		group, err := svc.UpdateGroup(c.Param("id"), email, req.Name, req.Description)
		if err != nil {
			familyError(c, err)
			return
		}
		c.JSON(http.StatusOK, group)
	}
}

func DeleteGroupHandler(svc family.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := requesterEmail(c)
		if !ok {
			return
		}
		if err := svc.DeleteGroup(c.Param("id"), email); err != nil {
			familyError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}

type inviteRequest struct {
	Email string `json:"email" binding:"required"`
}

func InviteMemberHandler(svc family.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := requesterEmail(c)
		if !ok {
			return
		}
		var req inviteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invitee email is required", err.Error())
			return
		}
		inv, err := svc.InviteMember(c.Param("id"), email, req.Email)
		if err != nil {
			familyError(c, err)
			return
		}
		c.JSON(http.StatusCreated, inv)
	}
}

func ListInvitationsHandler(svc family.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := requesterEmail(c)
		if !ok {
			return
		}
		invs, err := svc.ListInvitations(email)
		if err != nil {
			familyError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"invitations": invs})
	}
}

type respondInvitationRequest struct {
	Accept bool   `json:"accept"`
	Name   string `json:"name"`
}

func RespondInvitationHandler(svc family.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := requesterEmail(c)
		if !ok {
			return
		}
		var req respondInvitationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
		if err := svc.RespondToInvitation(c.Param("id"), email, req.Name, req.Accept); err != nil {
			familyError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"responded": true})
	}
}

func RemoveMemberHandler(svc family.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := requesterEmail(c)
		if !ok {
			return
		}
		if err := svc.RemoveMember(c.Param("id"), email, c.Param("email")); err != nil {
			familyError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": true})
	}
}

func LeaveGroupHandler(svc family.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := requesterEmail(c)
		if !ok {
			return
		}
		if err := svc.LeaveGroup(c.Param("id"), email); err != nil {
			familyError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"left": true})
	}
}

func UpdatePreferencesHandler(svc family.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := requesterEmail(c)
		if !ok {
			return
		}
		var prefs models.NotificationPreferences
		if err := c.ShouldBindJSON(&prefs); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid preferences body", err.Error())
			return
		}
		group, err := svc.UpdatePreferences(c.Param("id"), email, prefs)
		if err != nil {
			familyError(c, err)
			return
		}
		c.JSON(http.StatusOK, group)
	}
}

type notifyGroupRequest struct {
	Type      string            `json:"type" binding:"required"`
	EventData map[string]string `json:"eventData"`
}

// NotifyGroupHandler records a calendar change on the group's notification
// feed. The caller must be a member; recipients are filtered by their
// notification preferences.
func NotifyGroupHandler(svc family.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := requesterEmail(c)
		if !ok {
			return
		}
		var req notifyGroupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "notification type is required", err.Error())
			return
		}
		if err := svc.NotifyGroup(c.Param("id"), email, req.Type, req.EventData); err != nil {
			familyError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"notified": true})
	}
}

func ListNotificationsHandler(svc family.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := requesterEmail(c)
		if !ok {
			return
		}
		notifications, err := svc.ListNotifications(c.Param("id"), email)
		if err != nil {
			familyError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"notifications": notifications})
	}
}

func MarkNotificationReadHandler(svc family.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := requesterEmail(c)
		if !ok {
			return
		}
		if err := svc.MarkNotificationRead(c.Param("id"), c.Param("notificationId"), email); err != nil {
			familyError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"read": true})
	}
}
