package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DueReminderJob notifies a department's students that an assignment is due
// soon. Delivery is a log line until a mail transport lands.
type DueReminderJob struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewDueReminderJob constructs the job.
func NewDueReminderJob(pool *pgxpool.Pool, logger *slog.Logger) *DueReminderJob {
	return &DueReminderJob{pool: pool, logger: logger}
}

// Handle processes TaskTypeDueReminder tasks.
func (j *DueReminderJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload DueReminderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	var title string
	var departmentID int64
	err := j.pool.QueryRow(ctx, `
		SELECT title, department_id FROM assignments WHERE id = $1`,
		payload.AssignmentID).Scan(&title, &departmentID)
	if err != nil {
		// The assignment may have been deleted since scheduling.
		j.logger.Warn("due reminder: assignment lookup failed",
			slog.Int64("assignmentId", payload.AssignmentID), slog.Any("error", err))
		return asynq.SkipRetry
	}

	rows, err := j.pool.Query(ctx, `
		SELECT email FROM users WHERE department_id = $1 AND role = 'STUDENT'`, departmentID)
	if err != nil {
		return err
	}
	defer rows.Close()

	notified := 0
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return err
		}
		j.logger.Info("due reminder dispatched",
			slog.String("to", email),
			slog.String("assignment", title),
			slog.Time("dueAt", payload.DueAt))
		notified++
	}
	if err := rows.Err(); err != nil {
		return err
	}

	j.logger.Info("due reminder complete",
		slog.Int64("assignmentId", payload.AssignmentID),
		slog.Int("students", notified))
	return nil
}
