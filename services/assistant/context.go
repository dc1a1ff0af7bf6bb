package assistant

import (
	"strings"
	"time"

	"clearmind/models"
)

// contextWindowDays is the default lookahead when the query names no
// range, and contextEventCap bounds how many events get handed to the
// language model.
const (
	contextWindowDays = 7
	contextEventCap   = 10
)

// formatDateTime renders a timestamp the way the assistant speaks it:
// "today at 2:00 PM", "tomorrow at 9:00 AM", or "Monday, June 2 at 1:30 PM".
func formatDateTime(iso string, now time.Time, loc *time.Location) string {
	if iso == "" {
		return "a scheduled time"
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return "a scheduled time"
	}
	local := t.In(loc)
	nowLocal := now.In(loc)

	var dayLabel string
	switch local.Format("2006-01-02") {
	case nowLocal.Format("2006-01-02"):
		dayLabel = "today"
	case nowLocal.AddDate(0, 0, 1).Format("2006-01-02"):
		dayLabel = "tomorrow"
	default:
		dayLabel = local.Format("Monday, January 2")
	}
	return dayLabel + " at " + local.Format("3:04 PM")
}

// findMatchingEvents matches a delete/update target against the
// calendar by case-insensitive containment over title and description,
// plus reverse containment of the title in the search term.
func findMatchingEvents(search string, events []models.CalendarEvent) []models.CalendarEvent {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return nil
	}

	var matches []models.CalendarEvent
	for _, ev := range events {
		title := strings.ToLower(ev.Title)
		description := strings.ToLower(ev.Description)
		if title == "" && description == "" {
			continue
		}
		if strings.Contains(title, term) || strings.Contains(description, term) ||
			(title != "" && strings.Contains(term, title)) {
			matches = append(matches, ev)
		}
	}
	return matches
}

// dateRangeFromQuery infers the calendar window a question is about.
func dateRangeFromQuery(text string, now time.Time, loc *time.Location) (time.Time, time.Time, string) {
	lower := strings.ToLower(text)
	local := now.In(loc)
	dayStart := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}
	dayEnd := func(t time.Time) time.Time {
		return dayStart(t).AddDate(0, 0, 1).Add(-time.Millisecond)
	}

	switch {
	case strings.Contains(lower, "today"):
		return dayStart(local), dayEnd(local), "today"
	case strings.Contains(lower, "tomorrow"):
		tomorrow := local.AddDate(0, 0, 1)
		return dayStart(tomorrow), dayEnd(tomorrow), "tomorrow"
	case strings.Contains(lower, "next week"):
		start := dayStart(local.AddDate(0, 0, 7))
		return start, dayEnd(local.AddDate(0, 0, 14)), "next week"
	case strings.Contains(lower, "week"):
		return dayStart(local), dayEnd(local.AddDate(0, 0, contextWindowDays)), "this week"
	default:
		return dayStart(local), dayEnd(local.AddDate(0, 0, contextWindowDays)), "upcoming"
	}
}

// detectTimeOfDay picks out a morning/afternoon qualifier. Evening and
// night queries get the afternoon bucket.
func detectTimeOfDay(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "morning") || strings.Contains(lower, "am"):
		return "morning"
	case strings.Contains(lower, "afternoon") || strings.Contains(lower, "pm"),
		strings.Contains(lower, "evening") || strings.Contains(lower, "night"):
		return "afternoon"
	}
	return ""
}

// filterEventsByRange keeps events starting inside [start, end],
// optionally restricted to a time of day, and maps them to the trimmed
// context view.
func filterEventsByRange(events []models.CalendarEvent, start, end time.Time, timeOfDay string, loc *time.Location) []models.ContextEvent {
	var out []models.ContextEvent
	for _, ev := range events {
		t, err := time.Parse(time.RFC3339, ev.Start)
		if err != nil {
			continue
		}
		if t.Before(start) || t.After(end) {
			continue
		}
		local := t.In(loc)
		switch timeOfDay {
		case "morning":
			if local.Hour() >= 12 {
				continue
			}
		case "afternoon":
			if local.Hour() < 12 {
				continue
			}
		}
		out = append(out, models.ContextEvent{
			Title:     ev.Title,
			Start:     ev.Start,
			DayOfWeek: local.Format("Monday"),
			Date:      local.Format("Jan 2"),
		})
	}
	return out
}

// buildCalendarContext assembles the calendar slice relevant to the
// query. It always returns a context, even an empty one, so the model
// knows the calendar was checked.
func buildCalendarContext(text string, events []models.CalendarEvent, now time.Time, loc *time.Location) *models.CalendarContext {
	start, end, label := dateRangeFromQuery(text, now, loc)
	timeOfDay := detectTimeOfDay(text)
	currentDate := now.In(loc).Format("Monday, January 2, 2006")

	relevant := filterEventsByRange(events, start, end, timeOfDay, loc)
	if len(relevant) > contextEventCap {
		relevant = relevant[:contextEventCap]
	}

	return &models.CalendarContext{
		Events:      relevant,
		Count:       len(relevant),
		TimeRange:   label,
		TimeOfDay:   timeOfDay,
		CurrentDate: currentDate,
		IsEmpty:     len(relevant) == 0,
	}
}

var calendarQueryWords = []string{
	"schedule", "calendar", "event", "events", "appointment", "appointments",
	"meeting", "meetings", "busy", "free", "today", "tomorrow", "week",
	"planned", "upcoming",
}

// needsCalendarContext decides whether a vent/question turn should see
// the calendar at all.
func needsCalendarContext(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range calendarQueryWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
