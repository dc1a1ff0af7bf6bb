package routes

import (
	"net/http"
	"time"

	"clearmind/config"
	"clearmind/handlers"
	"clearmind/middleware"
	"clearmind/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSpeechRoutes registers the conversational endpoints.
func RegisterSpeechRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/speech")
	{
		api.POST("/process", hb.ProcessSpeechHandler)
		api.POST("/tts", hb.TTSHandler)
		api.POST("/stt", hb.STTHandler)
	}
}

// RegisterCalendarRoutes registers the calendar proxy endpoints.
func RegisterCalendarRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/calendar")
	{
		api.GET("/events", hb.ListEventsHandler)
		api.POST("/events", hb.CreateEventHandler)
		api.PUT("/events/:id", hb.UpdateEventHandler)
		api.DELETE("/events/:id", hb.DeleteEventHandler)
	}
}

// RegisterFamilyRoutes registers family group management endpoints.
func RegisterFamilyRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/family-groups")
	{
		api.POST("", hb.CreateGroupHandler)
		api.GET("", hb.ListGroupsHandler)
		api.GET("/invitations", hb.ListInvitationsHandler)
		api.POST("/invitations/:id/respond", hb.RespondInvitationHandler)

		api.GET("/:id", hb.GetGroupHandler)
		api.PUT("/:id", hb.UpdateGroupHandler)
		api.DELETE("/:id", hb.DeleteGroupHandler)
		api.POST("/:id/invite", hb.InviteMemberHandler)
		api.DELETE("/:id/members/:email", hb.RemoveMemberHandler)
		api.POST("/:id/leave", hb.LeaveGroupHandler)
		api.PUT("/:id/preferences", hb.UpdatePreferencesHandler)
		api.POST("/:id/notify", hb.NotifyGroupHandler)
		api.GET("/:id/notifications", hb.ListNotificationsHandler)
		api.POST("/:id/notifications/:notificationId/read", hb.MarkNotificationReadHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"message":  "Hi, I'm Clearmind",
			"services": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origins := []string{"*"}
	if config.AppConfig.FrontendURL != "" {
		origins = []string{config.AppConfig.FrontendURL}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-User-Email", "X-Calendar-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterSpeechRoutes(r, hb)
	RegisterCalendarRoutes(r, hb)
	RegisterFamilyRoutes(r, hb)
	RegisterHealthRoute(r)
}
