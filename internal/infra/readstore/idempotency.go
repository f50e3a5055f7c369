package readstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rentfleet/internal/infra"
	"rentfleet/internal/infra/db"
	"rentfleet/internal/pkg/pgconv"
	"rentfleet/internal/usecase/queries"
)

type IdempotencyReadStore struct {
	db db.DBTX
}

func NewIdempotencyReadStore(dbtx db.DBTX) *IdempotencyReadStore {
	return &IdempotencyReadStore{db: dbtx}
}

func (r *IdempotencyReadStore) Get(ctx context.Context, key, userID uuid.UUID) (*queries.IdempotencyKeyView, error) {
	row := r.db.QueryRow(ctx,
		`SELECT key, user_id, endpoint, request_hash, status, result_booking_id, expires_at
		 FROM idempotency_keys
		 WHERE key = $1 AND user_id = $2`, key, userID)

	var view queries.IdempotencyKeyView
	err := row.Scan(
		&view.Key,
		&view.UserID,
		&view.Endpoint,
		&view.RequestHash,
		&view.Status,
		&view.ResultBookingID,
		&view.ExpiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	// Expired keys are treated as absent so a stale result never replays.
	if time.Now().After(view.ExpiresAt) {
		return nil, infra.WrapRepoErr("idempotency key expired", nil, infra.KindNotFound)
	}

	return &view, nil
}
