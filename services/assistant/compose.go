package assistant

import (
	"fmt"
	"strings"
	"time"

	"clearmind/models"
)

const clarificationReply = "I heard you mention scheduling something, but I need a bit more detail. Could you tell me the date and time?"

// composeDeleteReply phrases the delete-confirmation question for one or
// more candidates. Lists are capped at three entries.
func composeDeleteReply(searchTerm string, matches []models.CalendarEvent, now time.Time, loc *time.Location) string {
	switch len(matches) {
	case 0:
		return fmt.Sprintf("I couldn't find any events matching %q in your calendar. Could you be more specific?", searchTerm)
	case 1:
		ev := matches[0]
		return fmt.Sprintf("I found %q scheduled for %s. Would you like me to delete this event?",
			ev.Title, formatDateTime(ev.Start, now, loc))
	default:
		var items []string
		for i, ev := range matches {
			if i == 3 {
				break
			}
			items = append(items, fmt.Sprintf("%d. %q %s", i+1, ev.Title, formatDateTime(ev.Start, now, loc)))
		}
		return fmt.Sprintf("I found %d events matching %q: %s. Which one would you like to delete?",
			len(matches), searchTerm, strings.Join(items, ", "))
	}
}

// composeConfirmationReply phrases the all-clear message for a batch
// with no conflicts, listing up to three titles with an overflow count.
func composeConfirmationReply(valid []models.AnnotatedEvent, now time.Time, loc *time.Location) string {
	if len(valid) == 1 {
		ev := valid[0]
		return fmt.Sprintf("I'll add %q to your calendar for %s.", ev.Summary, formatDateTime(ev.Start, now, loc))
	}

	var summaries []string
	for i, ev := range valid {
		if i == 3 {
			break
		}
		summaries = append(summaries, fmt.Sprintf("%q %s", ev.Summary, formatDateTime(ev.Start, now, loc)))
	}
	if len(valid) > 3 {
		return fmt.Sprintf("I'll add %d events to your calendar. First few: %s, and %d more.",
			len(valid), strings.Join(summaries, ", "), len(valid)-3)
	}
	return fmt.Sprintf("I'll add %d events to your calendar: %s.", len(valid), strings.Join(summaries, ", "))
}

// composeConflictReply phrases the negotiation question for a batch with
// at least one conflict. A single conflicting event gets up to two
// alternative times when available, otherwise a binary add-anyway/cancel
// choice.
func composeConflictReply(conflicting, nonConflicting []models.AnnotatedEvent, now time.Time, loc *time.Location) string {
	var msg string

	if len(conflicting) == 1 {
		c := conflicting[0]
		msg = fmt.Sprintf("I found a conflict: %q %s overlaps with your existing %q. ",
			c.Summary, formatDateTime(c.Start, now, loc), c.ConflictsWith)

		if len(c.SuggestedAlternatives) > 0 {
			var alts []string
			for i, alt := range c.SuggestedAlternatives {
				if i == 2 {
					break
				}
				alts = append(alts, formatDateTime(alt.Time, now, loc))
			}
			msg += fmt.Sprintf("Would you like to schedule it at %s instead, or should I keep it at the original time?",
				strings.Join(alts, " or "))
		} else {
			msg += "Would you like me to add it anyway, or should I cancel this event?"
		}
	} else {
		var pairs []string
		for _, c := range conflicting {
			pairs = append(pairs, fmt.Sprintf("%q conflicts with %q", c.Summary, c.ConflictsWith))
		}
		msg = fmt.Sprintf("I found %d conflicts with your existing schedule. %s. Would you like me to add them anyway?",
			len(conflicting), strings.Join(pairs, ", "))
	}

	if n := len(nonConflicting); n > 0 {
		plural := ""
		if n > 1 {
			plural = "s"
		}
		msg = fmt.Sprintf("I can add %d event%s without conflicts. However, %s", n, plural, msg)
	}
	return msg
}
