package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"clearmind/models"
)

// DefaultLanguageModel implements LanguageModel on top of Gemini.
type DefaultLanguageModel struct {
	client *GeminiClient
}

func NewDefaultLanguageModel(apiKey string) *DefaultLanguageModel {
	return &DefaultLanguageModel{client: NewGeminiClient(apiKey)}
}

// cleanJSON strips the markdown fences models like to wrap JSON in.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func (m *DefaultLanguageModel) AnalyzeIntent(ctx context.Context, text string) (models.IntentAnalysis, error) {
	raw, err := m.client.GenerateContent(ctx, intentPrompt(text))
	if err != nil {
		// Degrade to "unclear" so one failed classification doesn't kill
		// the whole turn.
		return models.IntentAnalysis{Intent: "unclear"}, nil
	}

	var analysis models.IntentAnalysis
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &analysis); err != nil {
		return models.IntentAnalysis{Intent: "unclear"}, nil
	}
	return analysis, nil
}

func (m *DefaultLanguageModel) AnalyzeDeleteIntent(ctx context.Context, text string) (models.DeleteAnalysis, error) {
	raw, err := m.client.GenerateContent(ctx, deleteIntentPrompt(text))
	if err != nil {
		return models.DeleteAnalysis{}, nil
	}

	var analysis models.DeleteAnalysis
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &analysis); err != nil {
		return models.DeleteAnalysis{}, nil
	}
	return analysis, nil
}

func (m *DefaultLanguageModel) AnalyzeUpdateIntent(ctx context.Context, text string, candidateTitles []string) (models.UpdateAnalysis, error) {
	raw, err := m.client.GenerateContent(ctx, updateIntentPrompt(text, candidateTitles))
	if err != nil {
		return models.UpdateAnalysis{}, nil
	}

	var analysis models.UpdateAnalysis
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &analysis); err != nil {
		return models.UpdateAnalysis{}, nil
	}
	return analysis, nil
}

func (m *DefaultLanguageModel) ExtractEvents(ctx context.Context, text string, now time.Time) ([]models.ProposedEvent, error) {
	raw, err := m.client.GenerateContent(ctx, extractEventsPrompt(text, now))
	if err != nil {
		return nil, fmt.Errorf("failed to extract event information: %w", err)
	}

	cleaned := cleanJSON(raw)
	var events []models.ProposedEvent
	if err := json.Unmarshal([]byte(cleaned), &events); err != nil {
		// The model occasionally returns a bare object for one event.
		var single models.ProposedEvent
		if err2 := json.Unmarshal([]byte(cleaned), &single); err2 != nil {
			return nil, fmt.Errorf("failed to extract event information: %w", err)
		}
		events = []models.ProposedEvent{single}
	}
	return events, nil
}

func (m *DefaultLanguageModel) EmpatheticReply(ctx context.Context, text string, history []models.ConversationTurn, calendarCtx *models.CalendarContext) (string, error) {
	reply, err := m.client.GenerateContent(ctx, empathyPrompt(text, history, calendarCtx))
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	return strings.TrimSpace(reply), nil
}
