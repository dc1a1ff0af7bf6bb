package calendar

import (
	"context"
	"fmt"
	"time"

	"clearmind/models"
	"clearmind/utils"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const (
	calendarID     = "primary"
	maxListResults = 50
	defaultTitle   = "(No Title)"
)

// GoogleCalendarService implements Service against the Google Calendar
// REST API, scoped to the user's primary calendar.
type GoogleCalendarService struct {
	// Timezone is attached to created and updated events.
	Timezone string
}

func NewGoogleCalendarService(timezone string) *GoogleCalendarService {
	return &GoogleCalendarService{Timezone: timezone}
}

// client builds a per-call calendar client from the user's access token.
func (s *GoogleCalendarService) client(ctx context.Context, accessToken string) (*gcal.Service, error) {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	svc, err := gcal.NewService(ctx, option.WithTokenSource(src))
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar client: %w", err)
	}
	return svc, nil
}

// List returns upcoming events only; the conflict detector never looks
// at the past.
func (s *GoogleCalendarService) List(ctx context.Context, accessToken string) ([]models.CalendarEvent, error) {
	svc, err := s.client(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Events.List(calendarID).
		TimeMin(time.Now().Format(time.RFC3339)).
		MaxResults(maxListResults).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}

	events := make([]models.CalendarEvent, 0, len(resp.Items))
	for _, item := range resp.Items {
		events = append(events, models.CalendarEvent{
			ID:          item.Id,
			Title:       item.Summary,
			Description: item.Description,
			Start:       eventTime(item.Start),
			End:         eventTime(item.End),
		})
	}
	return events, nil
}

func (s *GoogleCalendarService) Create(ctx context.Context, accessToken string, event models.ProposedEvent) (models.CalendarEvent, error) {
	if event.Start == "" || event.End == "" {
		return models.CalendarEvent{}, fmt.Errorf("event must have start and end")
	}
	svc, err := s.client(ctx, accessToken)
	if err != nil {
		return models.CalendarEvent{}, err
	}

	summary := event.Summary
	if summary == "" {
		summary = defaultTitle
	}
	created, err := svc.Events.Insert(calendarID, &gcal.Event{
		Summary:     summary,
		Description: event.Description,
		Start:       &gcal.EventDateTime{DateTime: event.Start, TimeZone: s.Timezone},
		End:         &gcal.EventDateTime{DateTime: event.End, TimeZone: s.Timezone},
	}).Context(ctx).Do()
	if err != nil {
		utils.GetLogger().Error("failed to create calendar event",
			zap.String("summary", summary), zap.Error(err))
		return models.CalendarEvent{}, fmt.Errorf("failed to create calendar event: %w", err)
	}

	return models.CalendarEvent{
		ID:          created.Id,
		Title:       created.Summary,
		Description: created.Description,
		Start:       eventTime(created.Start),
		End:         eventTime(created.End),
	}, nil
}

func (s *GoogleCalendarService) Update(ctx context.Context, accessToken, eventID string, event models.ProposedEvent) (models.CalendarEvent, error) {
	svc, err := s.client(ctx, accessToken)
	if err != nil {
		return models.CalendarEvent{}, err
	}

	updated, err := svc.Events.Update(calendarID, eventID, &gcal.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Start:       &gcal.EventDateTime{DateTime: event.Start, TimeZone: s.Timezone},
		End:         &gcal.EventDateTime{DateTime: event.End, TimeZone: s.Timezone},
	}).Context(ctx).Do()
	if err != nil {
		return models.CalendarEvent{}, fmt.Errorf("failed to update calendar event %s: %w", eventID, err)
	}

	return models.CalendarEvent{
		ID:          updated.Id,
		Title:       updated.Summary,
		Description: updated.Description,
		Start:       eventTime(updated.Start),
		End:         eventTime(updated.End),
	}, nil
}

func (s *GoogleCalendarService) Delete(ctx context.Context, accessToken, eventID string) error {
	svc, err := s.client(ctx, accessToken)
	if err != nil {
		return err
	}
	if err := svc.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete calendar event %s: %w", eventID, err)
	}
	return nil
}

// eventTime flattens Google's dateTime-or-all-day union into one string.
func eventTime(t *gcal.EventDateTime) string {
	if t == nil {
		return ""
	}
	if t.DateTime != "" {
		return t.DateTime
	}
	return t.Date
}
