package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Speech endpoints
	ProcessSpeechHandler gin.HandlerFunc
	TTSHandler           gin.HandlerFunc
	STTHandler           gin.HandlerFunc

	// Calendar endpoints
	ListEventsHandler  gin.HandlerFunc
	CreateEventHandler gin.HandlerFunc
	UpdateEventHandler gin.HandlerFunc
	DeleteEventHandler gin.HandlerFunc

	// Family group endpoints
	CreateGroupHandler          gin.HandlerFunc
	ListGroupsHandler           gin.HandlerFunc
	GetGroupHandler             gin.HandlerFunc
	UpdateGroupHandler          gin.HandlerFunc
	DeleteGroupHandler          gin.HandlerFunc
	InviteMemberHandler         gin.HandlerFunc
	RespondInvitationHandler    gin.HandlerFunc
	ListInvitationsHandler      gin.HandlerFunc
	RemoveMemberHandler         gin.HandlerFunc
	LeaveGroupHandler           gin.HandlerFunc
	UpdatePreferencesHandler    gin.HandlerFunc
	NotifyGroupHandler          gin.HandlerFunc
	ListNotificationsHandler    gin.HandlerFunc
	MarkNotificationReadHandler gin.HandlerFunc
}
