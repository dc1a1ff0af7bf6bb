package assistant

import (
	"context"
	"strings"
	"testing"
	"time"

	"clearmind/models"
	"clearmind/services/scheduling"
)

var svcTestNow = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

type fakeLLM struct {
	intent     models.IntentAnalysis
	deleteA    models.DeleteAnalysis
	updateA    models.UpdateAnalysis
	extracted  []models.ProposedEvent
	extractErr error
	reply      string
}

func (f *fakeLLM) AnalyzeIntent(context.Context, string) (models.IntentAnalysis, error) {
	return f.intent, nil
}

func (f *fakeLLM) AnalyzeDeleteIntent(context.Context, string) (models.DeleteAnalysis, error) {
	return f.deleteA, nil
}

func (f *fakeLLM) AnalyzeUpdateIntent(context.Context, string, []string) (models.UpdateAnalysis, error) {
	return f.updateA, nil
}

func (f *fakeLLM) ExtractEvents(context.Context, string, time.Time) ([]models.ProposedEvent, error) {
	return f.extracted, f.extractErr
}

func (f *fakeLLM) EmpatheticReply(context.Context, string, []models.ConversationTurn, *models.CalendarContext) (string, error) {
	return f.reply, nil
}

type fakeCalendar struct {
	created []models.ProposedEvent
	updated []string
	deleted []string
}

func (f *fakeCalendar) List(context.Context, string) ([]models.CalendarEvent, error) {
	return nil, nil
}

func (f *fakeCalendar) Create(_ context.Context, _ string, ev models.ProposedEvent) (models.CalendarEvent, error) {
	f.created = append(f.created, ev)
	return models.CalendarEvent{ID: "created", Title: ev.Summary, Start: ev.Start, End: ev.End}, nil
}

func (f *fakeCalendar) Update(_ context.Context, _ string, id string, ev models.ProposedEvent) (models.CalendarEvent, error) {
	f.updated = append(f.updated, id)
	return models.CalendarEvent{ID: id, Title: ev.Summary, Start: ev.Start, End: ev.End}, nil
}

func (f *fakeCalendar) Delete(_ context.Context, _ string, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeReminders struct {
	payloads []models.ReminderPayload
	fireAts  []time.Time
}

func (f *fakeReminders) ScheduleEventReminder(p models.ReminderPayload, fireAt time.Time) error {
	f.payloads = append(f.payloads, p)
	f.fireAts = append(f.fireAts, fireAt)
	return nil
}

func newTestService(llm *fakeLLM, cal *fakeCalendar) *DefaultAssistantService {
	return &DefaultAssistantService{
		LLM:      llm,
		Calendar: cal,
		Detector: scheduling.NewDetector(time.UTC),
		Tracker:  NewSessionTracker(),
		Loc:      time.UTC,
		Now:      func() time.Time { return svcTestNow },
	}
}

func TestProcessTurnEmptyText(t *testing.T) {
	svc := newTestService(&fakeLLM{}, &fakeCalendar{})
	if _, err := svc.ProcessTurn(context.Background(), models.AssistRequest{Text: "   "}, ""); err != ErrEmptyText {
		t.Fatalf("err = %v, want ErrEmptyText", err)
	}
}

func TestProcessTurnDeleteConfirmed(t *testing.T) {
	llm := &fakeLLM{
		deleteA: models.DeleteAnalysis{IsDeleteRequest: true, EventToDelete: "dentist", Confidence: 0.9},
	}
	cal := &fakeCalendar{}
	svc := newTestService(llm, cal)

	existing := []models.CalendarEvent{
		{ID: "1", Title: "Dentist Appointment", Start: "2025-06-02T15:00:00Z", End: "2025-06-02T16:00:00Z"},
	}

	resp, err := svc.ProcessTurn(context.Background(), models.AssistRequest{
		SessionID:      "s1",
		Text:           "cancel the dentist appointment",
		ExistingEvents: existing,
	}, "tok")
	if err != nil {
		t.Fatal(err)
	}
	if !resp.RequiresConfirmation {
		t.Fatal("first turn should require confirmation")
	}
	if len(resp.EventsToDelete) != 1 || resp.EventsToDelete[0].ID != "1" {
		t.Fatalf("EventsToDelete = %+v", resp.EventsToDelete)
	}
	if len(cal.deleted) != 0 {
		t.Fatal("nothing should be deleted before confirmation")
	}

	// Second turn: the confirmation. Delete analysis no longer fires.
	llm.deleteA = models.DeleteAnalysis{}
	resp, err = svc.ProcessTurn(context.Background(), models.AssistRequest{
		SessionID:      "s1",
		Text:           "yes",
		ExistingEvents: existing,
	}, "tok")
	if err != nil {
		t.Fatal(err)
	}
	if len(cal.deleted) != 1 || cal.deleted[0] != "1" {
		t.Fatalf("deleted = %v, want [1]", cal.deleted)
	}
	if !strings.Contains(resp.Text, "deleted") {
		t.Errorf("reply %q should confirm the deletion", resp.Text)
	}
}

func TestProcessTurnDeleteCancelled(t *testing.T) {
	llm := &fakeLLM{
		deleteA: models.DeleteAnalysis{IsDeleteRequest: true, EventToDelete: "dentist", Confidence: 0.9},
	}
	cal := &fakeCalendar{}
	svc := newTestService(llm, cal)

	existing := []models.CalendarEvent{
		{ID: "1", Title: "Dentist", Start: "2025-06-02T15:00:00Z", End: "2025-06-02T16:00:00Z"},
	}
	if _, err := svc.ProcessTurn(context.Background(), models.AssistRequest{
		SessionID: "s1", Text: "delete my dentist", ExistingEvents: existing,
	}, "tok"); err != nil {
		t.Fatal(err)
	}

	llm.deleteA = models.DeleteAnalysis{}
	resp, err := svc.ProcessTurn(context.Background(), models.AssistRequest{
		SessionID: "s1", Text: "no", ExistingEvents: existing,
	}, "tok")
	if err != nil {
		t.Fatal(err)
	}
	if len(cal.deleted) != 0 {
		t.Fatalf("deleted = %v, want none", cal.deleted)
	}
	if !strings.Contains(resp.Text, "won't delete") {
		t.Errorf("reply = %q", resp.Text)
	}
}

func TestProcessTurnPendingDroppedOnUnrelatedReply(t *testing.T) {
	llm := &fakeLLM{
		deleteA: models.DeleteAnalysis{IsDeleteRequest: true, EventToDelete: "dentist", Confidence: 0.9},
	}
	cal := &fakeCalendar{}
	svc := newTestService(llm, cal)

	existing := []models.CalendarEvent{
		{ID: "1", Title: "Dentist", Start: "2025-06-02T15:00:00Z", End: "2025-06-02T16:00:00Z"},
	}
	if _, err := svc.ProcessTurn(context.Background(), models.AssistRequest{
		SessionID: "s1", Text: "delete my dentist", ExistingEvents: existing,
	}, "tok"); err != nil {
		t.Fatal(err)
	}

	// Unrelated follow-up: the pending delete is silently discarded and
	// the text handled as a fresh scheduling request.
	llm.deleteA = models.DeleteAnalysis{}
	llm.intent = models.IntentAnalysis{Intent: "event", Confidence: 0.9, HasCalendarData: true}
	llm.extracted = []models.ProposedEvent{
		{Summary: "Lunch", Start: "2025-06-03T12:00:00Z", End: "2025-06-03T13:00:00Z"},
	}
	resp, err := svc.ProcessTurn(context.Background(), models.AssistRequest{
		SessionID: "s1", Text: "schedule lunch tomorrow at noon", ExistingEvents: existing,
	}, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(cal.deleted) != 0 {
		t.Fatalf("deleted = %v, want none", cal.deleted)
	}
	if resp.Intent != "event" || len(resp.EventsData) != 1 {
		t.Fatalf("resp = %+v, want fresh event handling", resp)
	}
	if sess := svc.Tracker.Session("s1"); sess.Pending().Kind != PendingNone {
		t.Error("pending action should be gone after the drop")
	}
}

func TestProcessTurnConflictDecision(t *testing.T) {
	llm := &fakeLLM{
		intent: models.IntentAnalysis{Intent: "event", Confidence: 0.9, HasCalendarData: true},
		extracted: []models.ProposedEvent{
			{Summary: "Dentist", Start: "2025-06-02T09:00:00Z", End: "2025-06-02T10:00:00Z"},
		},
	}
	cal := &fakeCalendar{}
	svc := newTestService(llm, cal)

	existing := []models.CalendarEvent{
		{ID: "1", Title: "Standup", Start: "2025-06-02T09:00:00Z", End: "2025-06-02T09:30:00Z"},
	}
	resp, err := svc.ProcessTurn(context.Background(), models.AssistRequest{
		SessionID: "s1", Text: "dentist at nine", ExistingEvents: existing,
	}, "tok")
	if err != nil {
		t.Fatal(err)
	}
	if !resp.HasConflicts || !resp.RequiresUserDecision {
		t.Fatalf("resp = %+v, want conflict decision", resp)
	}
	if len(cal.created) != 0 {
		t.Fatal("nothing should be created before the decision")
	}

	llm.intent = models.IntentAnalysis{}
	resp, err = svc.ProcessTurn(context.Background(), models.AssistRequest{
		SessionID: "s1", Text: "yes, add it anyway", ExistingEvents: existing,
	}, "tok")
	if err != nil {
		t.Fatal(err)
	}
	if len(cal.created) != 1 || cal.created[0].Summary != "Dentist" {
		t.Fatalf("created = %+v, want the conflicting dentist event", cal.created)
	}
	if !strings.Contains(resp.Text, "Done") {
		t.Errorf("reply = %q", resp.Text)
	}
}

func TestProcessTurnConflictDecisionDeclined(t *testing.T) {
	llm := &fakeLLM{
		intent: models.IntentAnalysis{Intent: "event", Confidence: 0.9, HasCalendarData: true},
		extracted: []models.ProposedEvent{
			{Summary: "Dentist", Start: "2025-06-02T09:00:00Z", End: "2025-06-02T10:00:00Z"},
			{Summary: "Walk", Start: "2025-06-02T17:00:00Z", End: "2025-06-02T17:30:00Z"},
		},
	}
	cal := &fakeCalendar{}
	svc := newTestService(llm, cal)

	existing := []models.CalendarEvent{
		{ID: "1", Title: "Standup", Start: "2025-06-02T09:00:00Z", End: "2025-06-02T09:30:00Z"},
	}
	if _, err := svc.ProcessTurn(context.Background(), models.AssistRequest{
		SessionID: "s1", Text: "dentist at nine, walk at five", ExistingEvents: existing,
	}, "tok"); err != nil {
		t.Fatal(err)
	}

	llm.intent = models.IntentAnalysis{}
	if _, err := svc.ProcessTurn(context.Background(), models.AssistRequest{
		SessionID: "s1", Text: "no, skip it", ExistingEvents: existing,
	}, "tok"); err != nil {
		t.Fatal(err)
	}
	if len(cal.created) != 1 || cal.created[0].Summary != "Walk" {
		t.Fatalf("created = %+v, want only the clean event", cal.created)
	}
}

func TestProcessTurnUnclearExtraction(t *testing.T) {
	llm := &fakeLLM{
		intent: models.IntentAnalysis{Intent: "event", Confidence: 0.8, HasCalendarData: true},
		extracted: []models.ProposedEvent{
			{Summary: "Something"}, // missing times, dropped by batch check
		},
	}
	svc := newTestService(llm, &fakeCalendar{})

	resp, err := svc.ProcessTurn(context.Background(), models.AssistRequest{
		SessionID: "s1", Text: "schedule something sometime",
	}, "")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Intent != "unclear" || resp.Text != clarificationReply {
		t.Fatalf("resp = %+v, want clarification", resp)
	}
}

func TestProcessTurnUpdatePreservesDuration(t *testing.T) {
	llm := &fakeLLM{
		updateA: models.UpdateAnalysis{
			IsUpdateRequest: true,
			EventToUpdate:   "dentist",
			NewStart:        "2025-06-02T16:00:00Z",
			Confidence:      0.8,
		},
	}
	cal := &fakeCalendar{}
	svc := newTestService(llm, cal)

	existing := []models.CalendarEvent{
		{ID: "1", Title: "Dentist", Start: "2025-06-02T14:00:00Z", End: "2025-06-02T15:00:00Z"},
	}
	resp, err := svc.ProcessTurn(context.Background(), models.AssistRequest{
		SessionID: "s1", Text: "move the dentist to four", ExistingEvents: existing,
	}, "tok")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Intent != "update" {
		t.Fatalf("intent = %q, want update", resp.Intent)
	}
	if len(cal.updated) != 1 || cal.updated[0] != "1" {
		t.Fatalf("updated = %v, want [1]", cal.updated)
	}
}

func TestScheduledReminderCarriesGroupContext(t *testing.T) {
	llm := &fakeLLM{
		intent: models.IntentAnalysis{Intent: "event", Confidence: 0.9, HasCalendarData: true},
		extracted: []models.ProposedEvent{
			{Summary: "Lunch", Start: "2025-06-02T12:00:00Z", End: "2025-06-02T13:00:00Z"},
		},
	}
	cal := &fakeCalendar{}
	svc := newTestService(llm, cal)
	reminders := &fakeReminders{}
	svc.Reminders = reminders

	_, err := svc.ProcessTurn(context.Background(), models.AssistRequest{
		SessionID:     "s1",
		Text:          "lunch at noon",
		UserEmail:     "alice@example.com",
		FamilyGroupID: "g1",
	}, "tok")
	if err != nil {
		t.Fatal(err)
	}

	if len(reminders.payloads) != 1 {
		t.Fatalf("got %d reminders, want 1", len(reminders.payloads))
	}
	p := reminders.payloads[0]
	if p.GroupID != "g1" || p.UserEmail != "alice@example.com" {
		t.Fatalf("payload missing group context: %+v", p)
	}
	if p.EventID != "created" || p.Title != "Upcoming: Lunch" {
		t.Errorf("payload = %+v", p)
	}
	wantFire := time.Date(2025, 6, 2, 11, 30, 0, 0, time.UTC)
	if !reminders.fireAts[0].Equal(wantFire) {
		t.Errorf("fireAt = %v, want %v", reminders.fireAts[0], wantFire)
	}
}

func TestNoReminderForImminentEvent(t *testing.T) {
	llm := &fakeLLM{
		intent: models.IntentAnalysis{Intent: "event", Confidence: 0.9, HasCalendarData: true},
		extracted: []models.ProposedEvent{
			{Summary: "Standup", Start: "2025-06-02T08:15:00Z", End: "2025-06-02T08:30:00Z"},
		},
	}
	svcReminders := &fakeReminders{}
	svc := newTestService(llm, &fakeCalendar{})
	svc.Reminders = svcReminders

	if _, err := svc.ProcessTurn(context.Background(), models.AssistRequest{
		SessionID: "s1", Text: "standup in fifteen",
	}, "tok"); err != nil {
		t.Fatal(err)
	}
	if len(svcReminders.payloads) != 0 {
		t.Fatalf("reminder lead has already passed, got %d reminders", len(svcReminders.payloads))
	}
}

func TestProcessTurnEmpathy(t *testing.T) {
	llm := &fakeLLM{
		intent: models.IntentAnalysis{Intent: "vent", Confidence: 0.9},
		reply:  "That sounds rough. Want to talk through it?",
	}
	svc := newTestService(llm, &fakeCalendar{})

	resp, err := svc.ProcessTurn(context.Background(), models.AssistRequest{
		SessionID: "s1", Text: "I'm feeling overwhelmed",
	}, "")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Intent != "vent" || resp.Text != llm.reply {
		t.Fatalf("resp = %+v", resp)
	}
	if !resp.AudioRequired {
		t.Error("AudioRequired should always be set")
	}
}
