package assistant

import (
	"strings"
	"sync"

	"clearmind/models"
)

// PendingKind tags the outstanding action a session is waiting on.
type PendingKind int

const (
	PendingNone PendingKind = iota
	PendingDeleteConfirmation
	PendingConflictDecision
)

// PendingAction is the state retained between two turns of one session:
// either a delete awaiting a yes/no, or a conflicting batch awaiting an
// add-anyway/cancel decision.
type PendingAction struct {
	Kind             PendingKind
	DeleteCandidates []models.CalendarEvent
	Conflicting      []models.AnnotatedEvent
	NonConflicting   []models.AnnotatedEvent
}

// Resolution is the outcome of scanning a reply to a pending action.
type Resolution int

const (
	// ResolutionDropped means the reply matched neither token list; the
	// pending action is silently discarded and the text handled as a
	// fresh request.
	ResolutionDropped Resolution = iota
	ResolutionConfirmed
	ResolutionCancelled
)

var confirmTokens = []string{"yes", "yeah", "sure", "ok", "okay", "delete it", "remove it", "confirm"}

var cancelTokens = []string{"no", "nope", "cancel", "nevermind", "don't"}

// ScanConfirmation scans an utterance case-insensitively for
// confirmation or cancellation tokens. Confirmation wins when both
// appear, matching how replies like "yes, cancel it" are meant.
func ScanConfirmation(text string) Resolution {
	lower := strings.ToLower(text)
	for _, tok := range confirmTokens {
		if strings.Contains(lower, tok) {
			return ResolutionConfirmed
		}
	}
	for _, tok := range cancelTokens {
		if strings.Contains(lower, tok) {
			return ResolutionCancelled
		}
	}
	return ResolutionDropped
}

// Session owns one conversation's pending action. Callers must hold the
// session lock for the whole turn; the tracker is not designed for
// concurrent turns on the same session.
type Session struct {
	mu      sync.Mutex
	pending PendingAction
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Pending returns the outstanding action without clearing it.
func (s *Session) Pending() PendingAction {
	return s.pending
}

// SetPending replaces the outstanding action. A newer pending action
// supersedes whatever was there.
func (s *Session) SetPending(p PendingAction) {
	s.pending = p
}

// TakePending returns the outstanding action and resets the session to
// idle.
func (s *Session) TakePending() PendingAction {
	p := s.pending
	s.pending = PendingAction{}
	return p
}

// SessionTracker hands out per-session state. Everything is in-memory;
// a process restart resets every session to idle.
type SessionTracker struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionTracker() *SessionTracker {
	return &SessionTracker{sessions: make(map[string]*Session)}
}

// Session returns the state for the given conversation, creating it on
// first use.
func (t *SessionTracker) Session(id string) *Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	sess, ok := t.sessions[id]
	if !ok {
		sess = &Session{}
		t.sessions[id] = sess
	}
	return sess
}
