package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"lodgekeeper/internal/pkg/errs"
	"lodgekeeper/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrIdempotencyInProgress = errs.New("request with this idempotency key is still in progress")
	ErrIdempotencyKeyReused  = errs.New("idempotency key was used for a different request")
)

// Claimed keys outlive any reasonable client retry window before cleanup.
const idempotencyKeyTTL = 24 * time.Hour

// claimIdempotencyKey stakes out the key inside the caller's transaction.
// A nil, nil return means this request won the claim and should proceed;
// a non-nil ID means an identical request already completed and its
// reservation should be replayed instead of booking again.
func claimIdempotencyKey(ctx context.Context, tx shared.Tx, key, userID uuid.UUID, endpoint, requestHash string, now time.Time) (*uuid.UUID, error) {
	if _, err := tx.Idempotency().DeleteExpired(ctx, tx.DB(), now); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	claimed, err := tx.Idempotency().TryClaim(ctx, tx.DB(), shared.IdempotencyClaim{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		ExpiresAt:   now.Add(idempotencyKeyTTL),
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if claimed {
		return nil, nil
	}

	record, err := tx.Idempotency().Get(ctx, tx.DB(), key)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if record.UserID != userID || record.Endpoint != endpoint || record.RequestHash != requestHash {
		return nil, ErrIdempotencyKeyReused
	}
	if record.Status != shared.IdempotencyCompleted || record.ReservationID == nil {
		return nil, ErrIdempotencyInProgress
	}

	return record.ReservationID, nil
}

func hashRequest(req any) string {
	data, _ := json.Marshal(req)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
