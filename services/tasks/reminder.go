package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"clearmind/config"
	"clearmind/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask wraps a reminder payload in an asynq task scheduled
// for the given fire time.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// Scheduler enqueues reminder tasks onto the Redis-backed queue.
type Scheduler struct {
	client *asynq.Client
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		}),
	}
}

// ScheduleEventReminder queues a reminder to fire at the given time.
func (s *Scheduler) ScheduleEventReminder(payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}
