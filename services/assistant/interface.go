package assistant

import (
	"context"

	"clearmind/models"
)

// AssistantService processes one conversational turn end to end:
// pending-action resolution, intent classification, local conflict
// checking, and reply composition.
type AssistantService interface {
	// ProcessTurn handles one utterance for one session. accessToken is
	// the user's Google OAuth token; when empty, calendar mutations are
	// left to the client and the response only describes them.
	ProcessTurn(ctx context.Context, req models.AssistRequest, accessToken string) (*models.AssistResponse, error)
}
