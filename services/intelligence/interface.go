package intelligence

import (
	"context"
	"time"

	"clearmind/models"
)

// LanguageModel is the natural-language collaborator. It classifies
// intent and extracts event candidates; it never decides scheduling
// conflicts, which are computed locally.
type LanguageModel interface {
	AnalyzeIntent(ctx context.Context, text string) (models.IntentAnalysis, error)
	AnalyzeDeleteIntent(ctx context.Context, text string) (models.DeleteAnalysis, error)
	AnalyzeUpdateIntent(ctx context.Context, text string, candidateTitles []string) (models.UpdateAnalysis, error)
	ExtractEvents(ctx context.Context, text string, now time.Time) ([]models.ProposedEvent, error)
	EmpatheticReply(ctx context.Context, text string, history []models.ConversationTurn, calendarCtx *models.CalendarContext) (string, error)
}
