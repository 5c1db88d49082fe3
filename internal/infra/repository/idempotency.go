package repository

import (
	"context"
	"time"

	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/infra/db"
	"lodgekeeper/internal/pkg/pgconv"
	"lodgekeeper/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type IdempotencyRepository struct{}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{}
}

const claimIdempotencyKeySQL = `
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, expires_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (key) DO NOTHING
`

func (r *IdempotencyRepository) TryClaim(ctx context.Context, tx db.DBTX, claim shared.IdempotencyClaim) (bool, error) {
	tag, err := tx.Exec(ctx, claimIdempotencyKeySQL,
		claim.Key,
		claim.UserID,
		claim.Endpoint,
		claim.RequestHash,
		pgconv.TimeToPgtype(claim.ExpiresAt),
	)
	if err != nil {
		return false, classifyWriteErr("failed to claim idempotency key", err)
	}

	return tag.RowsAffected() == 1, nil
}

const getIdempotencyKeySQL = `
SELECT key, user_id, endpoint, request_hash, status, reservation_id
FROM idempotency_keys
WHERE key = $1
`

func (r *IdempotencyRepository) Get(ctx context.Context, tx db.DBTX, key uuid.UUID) (*shared.IdempotencyRecord, error) {
	var (
		record        shared.IdempotencyRecord
		reservationID pgtype.UUID
	)
	err := tx.QueryRow(ctx, getIdempotencyKeySQL, key).Scan(
		&record.Key,
		&record.UserID,
		&record.Endpoint,
		&record.RequestHash,
		&record.Status,
		&reservationID,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load idempotency key", err)
	}

	record.ReservationID = pgconv.UUIDPtrFromPgtype(reservationID)
	return &record, nil
}

const markIdempotencyCompletedSQL = `
UPDATE idempotency_keys
SET status = 'completed', reservation_id = $2
WHERE key = $1
`

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, tx db.DBTX, key, reservationID uuid.UUID) error {
	tag, err := tx.Exec(ctx, markIdempotencyCompletedSQL, key, reservationID)
	if err != nil {
		return classifyWriteErr("failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}

	return nil
}

const deleteExpiredIdempotencyKeysSQL = `
DELETE FROM idempotency_keys WHERE expires_at < $1
`

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, tx db.DBTX, now time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, deleteExpiredIdempotencyKeysSQL, pgconv.TimeToPgtype(now))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}

	return tag.RowsAffected(), nil
}
