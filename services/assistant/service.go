package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clearmind/models"
	"clearmind/services/calendar"
	"clearmind/services/intelligence"
	"clearmind/services/scheduling"
	"clearmind/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Confidence thresholds below which an analysis is ignored and the turn
// falls through to the next branch.
const (
	deleteConfidenceThreshold = 0.6
	updateConfidenceThreshold = 0.5
)

// reminderLead is how long before an event's start its reminder fires.
const reminderLead = 30 * time.Minute

var ErrEmptyText = errors.New("text is required")

// ReminderScheduler queues a reminder to fire at a given time.
// Implemented by tasks.Scheduler.
type ReminderScheduler interface {
	ScheduleEventReminder(payload models.ReminderPayload, fireAt time.Time) error
}

// DefaultAssistantService is the dialogue orchestrator. All network
// work (model calls, calendar mutations) happens here; the scheduling
// core underneath stays pure.
type DefaultAssistantService struct {
	LLM       intelligence.LanguageModel
	Calendar  calendar.Service
	Detector  *scheduling.Detector
	Tracker   *SessionTracker
	History   *HistoryStore
	Reminders ReminderScheduler
	Loc       *time.Location

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultAssistantService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ProcessTurn serializes turns per session: the pending-action tracker
// must never see two in-flight turns for the same conversation.
func (s *DefaultAssistantService) ProcessTurn(ctx context.Context, req models.AssistRequest, accessToken string) (*models.AssistResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyText
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	sess := s.Tracker.Session(req.SessionID)
	sess.Lock()
	defer sess.Unlock()

	history := s.loadHistory(ctx, req)

	resp := s.handleTurn(ctx, sess, req, history, accessToken)
	resp.AudioRequired = true

	s.saveHistory(ctx, req.SessionID,
		models.ConversationTurn{Role: "user", Content: req.Text},
		models.ConversationTurn{Role: "assistant", Content: resp.Text},
	)
	return resp, nil
}

func (s *DefaultAssistantService) handleTurn(ctx context.Context, sess *Session, req models.AssistRequest, history []models.ConversationTurn, accessToken string) *models.AssistResponse {
	now := s.now()

	// A pending action consumes the turn only when the reply matches a
	// known token; otherwise it is silently dropped and the text is
	// handled as a fresh request.
	switch pending := sess.Pending(); pending.Kind {
	case PendingDeleteConfirmation:
		if res := ScanConfirmation(req.Text); res != ResolutionDropped {
			sess.TakePending()
			return s.resolveDelete(ctx, pending, res, accessToken)
		}
		sess.TakePending()
	case PendingConflictDecision:
		if res := ScanConfirmation(req.Text); res != ResolutionDropped {
			sess.TakePending()
			return s.resolveConflictDecision(ctx, req, pending, res, accessToken, now)
		}
		sess.TakePending()
	}

	// Delete intent is checked first; it is the cheapest branch.
	deleteAnalysis, _ := s.LLM.AnalyzeDeleteIntent(ctx, req.Text)
	if deleteAnalysis.IsDeleteRequest && deleteAnalysis.Confidence > deleteConfidenceThreshold {
		return s.beginDelete(sess, deleteAnalysis, req.ExistingEvents, now)
	}

	if resp := s.tryUpdate(ctx, req, accessToken, now); resp != nil {
		return resp
	}

	analysis, _ := s.LLM.AnalyzeIntent(ctx, req.Text)
	if analysis.Intent == "event" && analysis.HasCalendarData {
		return s.scheduleEvents(ctx, sess, req, analysis, accessToken, now)
	}

	return s.empathize(ctx, req, analysis, history, now)
}

// resolveDelete finishes a pending delete: the first candidate is the
// one acted on.
func (s *DefaultAssistantService) resolveDelete(ctx context.Context, pending PendingAction, res Resolution, accessToken string) *models.AssistResponse {
	resp := &models.AssistResponse{Intent: "delete"}

	if res == ResolutionCancelled {
		resp.Text = "Okay, I won't delete that event."
		return resp
	}

	target := pending.DeleteCandidates[0]
	if accessToken == "" {
		// Client-side calendar: report the decision and let it execute.
		resp.Text = fmt.Sprintf("Okay, deleting %q.", target.Title)
		resp.EventsToDelete = []models.CalendarEvent{target}
		return resp
	}

	if err := s.Calendar.Delete(ctx, accessToken, target.ID); err != nil {
		utils.GetLogger().Error("failed to delete event",
			zap.String("eventID", target.ID), zap.Error(err))
		resp.Text = "I'm having trouble deleting that event right now. Please try again."
		return resp
	}
	resp.Text = fmt.Sprintf("Done, I've deleted %q from your calendar.", target.Title)
	return resp
}

// resolveConflictDecision finishes a pending conflicting batch: approve
// creates everything, decline keeps only the clean events.
func (s *DefaultAssistantService) resolveConflictDecision(ctx context.Context, req models.AssistRequest, pending PendingAction, res Resolution, accessToken string, now time.Time) *models.AssistResponse {
	resp := &models.AssistResponse{Intent: "event"}

	toCreate := pending.NonConflicting
	if res == ResolutionConfirmed {
		toCreate = append(pending.NonConflicting, pending.Conflicting...)
	}

	if len(toCreate) == 0 {
		resp.Text = "Okay, I've cancelled those events."
		return resp
	}
	if accessToken == "" {
		resp.Text = fmt.Sprintf("Okay, go ahead and add %d event(s) on your end.", len(toCreate))
		resp.EventsData = toCreate
		return resp
	}

	created, failed := s.createEvents(ctx, req, accessToken, toCreate, now)
	switch {
	case failed == 0 && res == ResolutionConfirmed:
		resp.Text = fmt.Sprintf("Done, I've added all %d event(s) including the conflicting ones.", created)
	case failed == 0:
		resp.Text = fmt.Sprintf("Okay, I've skipped the conflicting events and added the other %d.", created)
	default:
		resp.Text = fmt.Sprintf("I added %d event(s), but %d failed to create. Please try those again.", created, failed)
	}
	resp.EventsData = toCreate
	return resp
}

// beginDelete matches the delete target against the calendar and, when
// anything matches, parks the candidates for the next turn.
func (s *DefaultAssistantService) beginDelete(sess *Session, analysis models.DeleteAnalysis, existing []models.CalendarEvent, now time.Time) *models.AssistResponse {
	matches := findMatchingEvents(analysis.EventToDelete, existing)

	resp := &models.AssistResponse{
		Intent:         "delete",
		Confidence:     analysis.Confidence,
		EventsToDelete: matches,
		Text:           composeDeleteReply(analysis.EventToDelete, matches, now, s.Loc),
	}
	if len(matches) > 0 {
		resp.RequiresConfirmation = true
		sess.SetPending(PendingAction{
			Kind:             PendingDeleteConfirmation,
			DeleteCandidates: matches,
		})
	}
	return resp
}

// tryUpdate handles "move my dentist to 4pm" style turns. Returns nil
// when the turn is not an update, letting the caller fall through.
func (s *DefaultAssistantService) tryUpdate(ctx context.Context, req models.AssistRequest, accessToken string, now time.Time) *models.AssistResponse {
	if len(req.ExistingEvents) == 0 {
		return nil
	}
	titles := make([]string, 0, len(req.ExistingEvents))
	for _, ev := range req.ExistingEvents {
		titles = append(titles, ev.Title)
	}

	analysis, _ := s.LLM.AnalyzeUpdateIntent(ctx, req.Text, titles)
	if !analysis.IsUpdateRequest || analysis.Confidence <= updateConfidenceThreshold || analysis.NewStart == "" {
		return nil
	}

	matches := findMatchingEvents(analysis.EventToUpdate, req.ExistingEvents)
	if len(matches) == 0 {
		return nil
	}
	target := matches[0]

	newEnd := analysis.NewEnd
	if newEnd == "" {
		newEnd = shiftEnd(target, analysis.NewStart)
	}

	resp := &models.AssistResponse{Intent: "update", Confidence: analysis.Confidence}
	updated := models.ProposedEvent{
		Summary:     target.Title,
		Description: target.Description,
		Start:       analysis.NewStart,
		End:         newEnd,
	}

	if accessToken == "" {
		resp.Text = fmt.Sprintf("I'll move %q to %s.", target.Title, formatDateTime(analysis.NewStart, now, s.Loc))
		resp.EventToUpdate = &target
		resp.EventData = &models.AnnotatedEvent{ProposedEvent: updated}
		return resp
	}

	if _, err := s.Calendar.Update(ctx, accessToken, target.ID, updated); err != nil {
		utils.GetLogger().Error("failed to update event",
			zap.String("eventID", target.ID), zap.Error(err))
		resp.Text = "I'm having trouble updating that event right now. Please try again."
		return resp
	}
	resp.Text = fmt.Sprintf("Done, I've moved %q to %s.", target.Title, formatDateTime(analysis.NewStart, now, s.Loc))
	return resp
}

// scheduleEvents runs extraction and the local conflict check, then
// either confirms, asks for a conflict decision, or asks for detail.
func (s *DefaultAssistantService) scheduleEvents(ctx context.Context, sess *Session, req models.AssistRequest, analysis models.IntentAnalysis, accessToken string, now time.Time) *models.AssistResponse {
	resp := &models.AssistResponse{Intent: analysis.Intent, Confidence: analysis.Confidence}

	proposals, err := s.LLM.ExtractEvents(ctx, req.Text, now)
	if err != nil {
		utils.GetLogger().Warn("event extraction failed", zap.Error(err))
		resp.Intent = "unclear"
		resp.Text = clarificationReply
		return resp
	}

	result, err := s.Detector.CheckBatch(proposals, req.ExistingEvents, now)
	if err != nil {
		// ErrInvalidInterval means the extraction collaborator produced
		// garbage; that's a bug worth alerting on, unlike the soft
		// no-match outcomes.
		utils.GetLogger().Error("conflict check failed on extracted events", zap.Error(err))
		resp.Intent = "unclear"
		resp.Text = clarificationReply
		return resp
	}
	if result.ValidCount == 0 {
		resp.Intent = "unclear"
		resp.Text = clarificationReply
		return resp
	}

	conflicting := result.Conflicting()
	nonConflicting := result.NonConflicting()
	resp.EventsData = result.Events

	if len(conflicting) > 0 {
		resp.HasConflicts = true
		resp.RequiresUserDecision = true
		resp.Conflicts = conflicting
		resp.Text = composeConflictReply(conflicting, nonConflicting, now, s.Loc)
		sess.SetPending(PendingAction{
			Kind:           PendingConflictDecision,
			Conflicting:    conflicting,
			NonConflicting: nonConflicting,
		})
		return resp
	}

	resp.Text = composeConfirmationReply(result.Events, now, s.Loc)
	if len(result.Events) > 0 {
		ev := result.Events[0]
		resp.EventData = &ev
	}
	if accessToken != "" {
		if _, failed := s.createEvents(ctx, req, accessToken, result.Events, now); failed > 0 {
			resp.Text += fmt.Sprintf(" (%d event(s) could not be added, please try again.)", failed)
		}
	}
	return resp
}

// empathize answers vents and questions, with a calendar summary when
// the text sounds like a schedule question.
func (s *DefaultAssistantService) empathize(ctx context.Context, req models.AssistRequest, analysis models.IntentAnalysis, history []models.ConversationTurn, now time.Time) *models.AssistResponse {
	resp := &models.AssistResponse{Intent: analysis.Intent, Confidence: analysis.Confidence}
	if resp.Intent == "" {
		resp.Intent = "unclear"
	}

	var calCtx *models.CalendarContext
	if needsCalendarContext(req.Text) {
		calCtx = buildCalendarContext(req.Text, req.ExistingEvents, now, s.Loc)
	}

	reply, err := s.LLM.EmpatheticReply(ctx, req.Text, history, calCtx)
	if err != nil {
		utils.GetLogger().Warn("empathetic reply failed", zap.Error(err))
		resp.Text = "I'm having trouble processing that right now. Could you try again?"
		return resp
	}
	resp.Text = reply
	return resp
}

// createEvents persists a batch and schedules reminders for what stuck.
func (s *DefaultAssistantService) createEvents(ctx context.Context, req models.AssistRequest, accessToken string, events []models.AnnotatedEvent, now time.Time) (created, failed int) {
	for _, ev := range events {
		persisted, err := s.Calendar.Create(ctx, accessToken, ev.ProposedEvent)
		if err != nil {
			utils.GetLogger().Error("failed to create event",
				zap.String("summary", ev.Summary), zap.Error(err))
			failed++
			continue
		}
		created++
		s.scheduleReminder(req, persisted, now)
	}
	return created, failed
}

// scheduleReminder queues a reminder 30 minutes before the event. The
// request's group context rides along so the worker can fan the fired
// reminder out to the family group's feed.
func (s *DefaultAssistantService) scheduleReminder(req models.AssistRequest, ev models.CalendarEvent, now time.Time) {
	if s.Reminders == nil {
		return
	}
	start, err := time.Parse(time.RFC3339, ev.Start)
	if err != nil {
		return
	}
	fireAt := start.Add(-reminderLead)
	if !fireAt.After(now) {
		return
	}
	payload := models.ReminderPayload{
		ReminderID: uuid.NewString(),
		GroupID:    req.FamilyGroupID,
		UserEmail:  req.UserEmail,
		EventID:    ev.ID,
		Title:      "Upcoming: " + ev.Title,
		Body:       fmt.Sprintf("%q starts at %s.", ev.Title, formatDateTime(ev.Start, now, s.Loc)),
		FireDate:   fireAt.Format(time.RFC3339),
	}
	if err := s.Reminders.ScheduleEventReminder(payload, fireAt); err != nil {
		utils.GetLogger().Warn("failed to schedule reminder",
			zap.String("eventID", ev.ID), zap.Error(err))
	}
}

// shiftEnd keeps the original duration when the user only gave a new
// start time. Falls back to 30 minutes when the original range is
// unusable.
func shiftEnd(target models.CalendarEvent, newStart string) string {
	start, err := time.Parse(time.RFC3339, newStart)
	if err != nil {
		return ""
	}
	duration := 30 * time.Minute
	if iv, err := scheduling.ParseInterval(target.Start, target.End); err == nil {
		duration = iv.Duration()
	}
	return start.Add(duration).Format(time.RFC3339)
}

// loadHistory merges the client-supplied transcript with the cached one
// and trims to the rolling window. The client copy wins when present.
func (s *DefaultAssistantService) loadHistory(ctx context.Context, req models.AssistRequest) []models.ConversationTurn {
	if len(req.ConversationHistory) > 0 {
		return BoundHistory(req.ConversationHistory)
	}
	if s.History == nil {
		return nil
	}
	cached, err := s.History.Get(ctx, req.SessionID)
	if err != nil {
		utils.GetLogger().Warn("failed to load conversation history", zap.Error(err))
		return nil
	}
	return cached
}

func (s *DefaultAssistantService) saveHistory(ctx context.Context, sessionID string, turns ...models.ConversationTurn) {
	if s.History == nil {
		return
	}
	if err := s.History.Append(ctx, sessionID, turns...); err != nil {
		utils.GetLogger().Warn("failed to save conversation history", zap.Error(err))
	}
}
