package intelligence

import (
	"fmt"
	"strings"
	"time"

	"clearmind/models"
)

const empathySystemPrompt = `You are a supportive AI assistant helping someone from the "Sandwich Generation" - adults caring for aging parents while raising their own children.

Your role:
- Listen with empathy and validate their feelings
- Keep responses concise (2-3 sentences) to avoid overwhelming them
- Offer actionable next steps only when appropriate
- Recognize when they just need to vent vs. when they need help
- Be warm but professional`

func intentPrompt(text string) string {
	return fmt.Sprintf(`Analyze this text and determine the user's intent:

Text: %q

Respond with ONLY valid JSON in this format:
{
  "intent": "event" | "vent" | "question" | "unclear",
  "confidence": 0.0-1.0,
  "reasoning": "brief explanation",
  "hasCalendarData": true | false,
  "eventCount": 0
}

Intent definitions:
- "event": User wants to schedule/manage calendar event(s)
- "vent": User is expressing stress/frustration and needs empathy
- "question": User is asking for advice or information
- "unclear": Cannot determine intent

IMPORTANT: Set eventCount to the NUMBER of distinct events mentioned (e.g., 2 if they mention "dentist at 2pm and pickup kids at 3pm")`, text)
}

func deleteIntentPrompt(text string) string {
	return fmt.Sprintf(`Analyze this text to determine if the user wants to delete/cancel calendar events.

Text: %q

Respond with ONLY valid JSON in this format:
{
  "isDeleteRequest": true or false,
  "eventToDelete": "name or description of event to delete",
  "confidence": 0.0-1.0
}

Examples of delete requests:
- "Cancel my dentist appointment"
- "Delete the meeting at 2pm"
- "Remove pickup kids from my calendar"
- "I don't need the call with mom anymore"

If the text is asking to delete/cancel/remove an event, set isDeleteRequest to true.`, text)
}

func updateIntentPrompt(text string, candidateTitles []string) string {
	return fmt.Sprintf(`Analyze this text to determine if the user wants to move/reschedule an existing calendar event.

Text: %q
Existing event titles: %s
Current date/time: %s

Respond with ONLY valid JSON in this format:
{
  "isUpdateRequest": true or false,
  "eventToUpdate": "name of the event being moved",
  "newStart": "ISO 8601 datetime string or empty",
  "newEnd": "ISO 8601 datetime string or empty",
  "confidence": 0.0-1.0,
  "reasoning": "brief explanation"
}

Examples of update requests:
- "Move the dentist to 4pm"
- "Push my meeting back an hour"
- "Reschedule pickup to tomorrow morning"

Keep the original duration when only a new start time is given.`,
		text, strings.Join(candidateTitles, ", "), time.Now().Format(time.RFC3339))
}

func extractEventsPrompt(text string, now time.Time) string {
	return fmt.Sprintf(`Extract ALL calendar events from this text and return ONLY valid JSON:

Text: %q
Current date/time: %s

Return this exact format (an ARRAY of events):
[
  {
    "summary": "Event title",
    "description": "Optional description or empty string",
    "start": "ISO 8601 datetime string",
    "end": "ISO 8601 datetime string",
    "isFlexible": true or false
  }
]

Rules:
- Return an ARRAY even if there's only one event: [{ ... }]
- Use ISO 8601 format with timezone: "2025-12-02T15:00:00-05:00"
- Default to 30-minute duration if not specified
- If date is relative (tomorrow, next week), calculate from current date
- If time is not specified, use 9:00 AM as default
- Use Eastern timezone (-05:00) as default
- Extract EVERY event mentioned
- Set isFlexible to true if time is vague (e.g., "sometime today", "afternoon") or false if specific (e.g., "2pm", "5:00")`,
		text, now.Format("Monday, January 2, 2006 3:04 PM MST"))
}

func empathyPrompt(text string, history []models.ConversationTurn, calendarCtx *models.CalendarContext) string {
	var sb strings.Builder
	sb.WriteString(empathySystemPrompt)
	sb.WriteString("\n\n")

	if calendarCtx != nil {
		sb.WriteString(fmt.Sprintf("Today is %s.\n", calendarCtx.CurrentDate))
		if calendarCtx.IsEmpty {
			sb.WriteString(fmt.Sprintf("The user's calendar has no events %s.\n\n", calendarCtx.TimeRange))
		} else {
			sb.WriteString(fmt.Sprintf("The user's calendar %s (%d events):\n", calendarCtx.TimeRange, calendarCtx.Count))
			for _, ev := range calendarCtx.Events {
				sb.WriteString(fmt.Sprintf("- %s on %s, %s\n", ev.Title, ev.DayOfWeek, ev.Date))
			}
			sb.WriteString("\n")
		}
	}

	for _, turn := range history {
		sb.WriteString(fmt.Sprintf("%s: %s\n", turn.Role, turn.Content))
	}
	sb.WriteString(fmt.Sprintf("user: %s\nassistant:", text))
	return sb.String()
}
