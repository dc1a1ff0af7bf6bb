package assistant

import (
	"context"
	"encoding/json"
	"time"

	"clearmind/models"

	"github.com/go-redis/redis/v8"
)

const (
	historyPrefix = "chat:ctx:"

	// historyWindow bounds the rolling transcript replayed to the
	// language model each turn.
	historyWindow = 10
)

// HistoryStore caches the rolling conversation transcript per session
// so voice clients don't have to resend it every turn.
type HistoryStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewHistoryStore(client *redis.Client, ttl time.Duration) *HistoryStore {
	return &HistoryStore{client: client, ttl: ttl}
}

// Get returns the cached transcript for a session, empty when none.
func (s *HistoryStore) Get(ctx context.Context, sessionID string) ([]models.ConversationTurn, error) {
	data, err := s.client.Get(ctx, historyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var turns []models.ConversationTurn
	if err := json.Unmarshal([]byte(data), &turns); err != nil {
		return nil, err
	}
	return turns, nil
}

// Append adds turns to the transcript, trims it to the rolling window,
// and refreshes the TTL.
func (s *HistoryStore) Append(ctx context.Context, sessionID string, turns ...models.ConversationTurn) error {
	existing, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	existing = append(existing, turns...)
	existing = BoundHistory(existing)

	b, err := json.Marshal(existing)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, historyPrefix+sessionID, b, s.ttl).Err()
}

// Clear drops a session's transcript.
func (s *HistoryStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, historyPrefix+sessionID).Err()
}

// BoundHistory trims a transcript to the rolling window, keeping the
// most recent turns.
func BoundHistory(turns []models.ConversationTurn) []models.ConversationTurn {
	if len(turns) > historyWindow {
		return turns[len(turns)-historyWindow:]
	}
	return turns
}
