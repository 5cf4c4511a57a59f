package jobs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeDueReminder is the task type for assignment due-date reminders.
	TaskTypeDueReminder = "assignment:due_reminder"
)

// DueReminderPayload identifies the assignment whose deadline approaches.
type DueReminderPayload struct {
	AssignmentID int64     `json:"assignmentId"`
	DueAt        time.Time `json:"dueAt"`
}

// NewDueReminderTask constructs an Asynq task.
func NewDueReminderTask(payload DueReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeDueReminder, data), nil
}

// Client submits jobs to the queue.
type Client struct {
	client *asynq.Client
	now    func() time.Time
}

// NewClient constructs an Asynq client.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts), now: time.Now}
}

// EnqueueDueReminder schedules a reminder 24 hours before the deadline. A
// deadline closer than that fires the reminder immediately.
func (c *Client) EnqueueDueReminder(ctx context.Context, assignmentID int64, dueAt time.Time) error {
	task, err := NewDueReminderTask(DueReminderPayload{AssignmentID: assignmentID, DueAt: dueAt})
	if err != nil {
		return err
	}
	opts := []asynq.Option{asynq.Queue(QueueDefault), asynq.MaxRetry(3)}
	if remindAt := dueAt.Add(-24 * time.Hour); remindAt.After(c.now()) {
		opts = append(opts, asynq.ProcessAt(remindAt))
	}
	_, err = c.client.EnqueueContext(ctx, task, opts...)
	return err
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}
