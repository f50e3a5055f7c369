package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rentfleet/internal/infra/db"
)

// NotificationRepository queues outbound email jobs. Jobs are written in the
// same transaction as the booking change so a committed booking always has
// its notification; delivery workers drain the table outside this service.
type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO notification_jobs (id, kind, topic, payload, run_at, attempts, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, 0, 'queued', now())`,
		uuid.New(), kind, topic, payload, runAt)
	if err != nil {
		return classifyPgErr("failed to create notification job", err)
	}
	return nil
}
