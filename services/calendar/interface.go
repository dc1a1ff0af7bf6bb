package calendar

import (
	"context"

	"clearmind/models"
)

// Service is the calendar collaborator. Every call is keyed by the
// user's OAuth access token; the assistant never stores credentials.
type Service interface {
	List(ctx context.Context, accessToken string) ([]models.CalendarEvent, error)
	Create(ctx context.Context, accessToken string, event models.ProposedEvent) (models.CalendarEvent, error)
	Update(ctx context.Context, accessToken, eventID string, event models.ProposedEvent) (models.CalendarEvent, error)
	Delete(ctx context.Context, accessToken, eventID string) error
}
