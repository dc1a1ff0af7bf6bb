package handlers

import (
	"errors"
	"net/http"
	"strings"

	"clearmind/models"
	"clearmind/services/assistant"
	"clearmind/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// accessTokenFrom extracts the Google Calendar OAuth token. The client
// sends it as a bearer token; an empty token means the client manages
// its calendar locally and only wants the decision back.
func accessTokenFrom(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return c.GetHeader("X-Calendar-Token")
}

// ProcessSpeechHandler runs one conversational turn through the
// assistant.
func ProcessSpeechHandler(svc assistant.AssistantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AssistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}

		resp, err := svc.ProcessTurn(c.Request.Context(), req, accessTokenFrom(c))
		if err != nil {
			if errors.Is(err, assistant.ErrEmptyText) {
				utils.JSONError(c, http.StatusBadRequest, "text is required", "")
				return
			}
			getLogger(c).Error("failed to process turn", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to process request", err.Error())
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
