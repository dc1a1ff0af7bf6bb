package handlers

import (
	"errors"
	"net/http"

	"clearmind/services/speech"
	"clearmind/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TTSRequest is the expected input for speech synthesis.
type TTSRequest struct {
	Text string `json:"text" binding:"required"`
}

// TTSHandler synthesizes reply text into audio. When the remote
// provider is rate limited the client is told to synthesize locally.
func TTSHandler(synth speech.Synthesizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TTSRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "text is required", err.Error())
			return
		}

		audio, err := synth.Synthesize(c.Request.Context(), req.Text)
		if err != nil {
			if errors.Is(err, speech.ErrRateLimited) {
				c.JSON(http.StatusTooManyRequests, gin.H{
					"error":    "tts rate limited",
					"fallback": "local",
				})
				return
			}
			getLogger(c).Error("speech synthesis failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "speech synthesis failed", err.Error())
			return
		}
		c.Data(http.StatusOK, "audio/mpeg", audio)
	}
}
