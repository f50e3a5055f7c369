package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rentfleet/internal/infra/db"
)

type IdempotencyRepository struct{}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{}
}

// TryInsert claims the key for this request, reports whether the claim
// succeeded. An expired row is re-claimed as if absent; a live row is left
// untouched, and the caller reads it back to decide between replay and
// duplicate.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, dbtx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := dbtx.Exec(ctx,
		`INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, 'processing', $5, now(), now())
		 ON CONFLICT (key, user_id) DO UPDATE
		 SET status = 'processing',
		     request_hash = EXCLUDED.request_hash,
		     response_body_hash = NULL,
		     result_booking_id = NULL,
		     expires_at = EXCLUDED.expires_at,
		     updated_at = now()
		 WHERE idempotency_keys.expires_at <= now()`,
		key, userID, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, classifyPgErr("failed to insert idempotency key", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, responseBodyHash string, resultBookingID uuid.UUID) error {
	_, err := tx.Exec(ctx,
		`UPDATE idempotency_keys
		 SET status = 'completed', response_body_hash = $3, result_booking_id = $4, updated_at = now()
		 WHERE key = $1 AND user_id = $2`,
		key, userID, responseBodyHash, resultBookingID)
	if err != nil {
		return classifyPgErr("failed to complete idempotency key", err)
	}
	return nil
}
