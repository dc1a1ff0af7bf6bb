package handlers

import (
	"net/http"

	"clearmind/models"
	"clearmind/services/calendar"
	"clearmind/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requireToken pulls the calendar OAuth token or rejects the request.
func requireToken(c *gin.Context) (string, bool) {
	token := accessTokenFrom(c)
	if token == "" {
		utils.JSONError(c, http.StatusUnauthorized, "calendar access token is required", "")
		return "", false
	}
	return token, true
}

// ListEventsHandler returns the user's upcoming events.
func ListEventsHandler(svc calendar.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := requireToken(c)
		if !ok {
			return
		}
		events, err := svc.List(c.Request.Context(), token)
		if err != nil {
			getLogger(c).Error("failed to list events", zap.Error(err))
			utils.JSONError(c, http.StatusBadGateway, "failed to list events", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": events})
	}
}

// CreateEventHandler inserts one event into the user's calendar.
func CreateEventHandler(svc calendar.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := requireToken(c)
		if !ok {
			return
		}
		var req models.ProposedEvent
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid event body", err.Error())
			return
		}
		created, err := svc.Create(c.Request.Context(), token, req)
		if err != nil {
			getLogger(c).Error("failed to create event", zap.Error(err))
			utils.JSONError(c, http.StatusBadGateway, "failed to create event", err.Error())
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateEventHandler rewrites one event.
func UpdateEventHandler(svc calendar.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := requireToken(c)
		if !ok {
			return
		}
		var req models.ProposedEvent
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid event body", err.Error())
			return
		}
		updated, err := svc.Update(c.Request.Context(), token, c.Param("id"), req)
		if err != nil {
			getLogger(c).Error("failed to update event", zap.Error(err))
			utils.JSONError(c, http.StatusBadGateway, "failed to update event", err.Error())
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteEventHandler removes one event.
func DeleteEventHandler(svc calendar.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := requireToken(c)
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), token, c.Param("id")); err != nil {
			getLogger(c).Error("failed to delete event", zap.Error(err))
			utils.JSONError(c, http.StatusBadGateway, "failed to delete event", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}
