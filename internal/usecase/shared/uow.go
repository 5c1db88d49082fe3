package shared

import (
	"context"
	"time"

	"lodgekeeper/internal/domain/reservation"
	"lodgekeeper/internal/domain/voucher"
	"lodgekeeper/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Rooms() RoomRepository
	Reservations() ReservationRepository
	Vouchers() VoucherRepository
	Users() UserRepository
	Idempotency() IdempotencyRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	RoomByID(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	VoucherByID(ctx context.Context, id uuid.UUID) (*VoucherSnapshot, error)
}

type RoomRepository interface {
	// LockForBooking takes the room row lock that serializes concurrent
	// admission checks against the same room.
	LockForBooking(ctx context.Context, tx db.DBTX, roomID uuid.UUID) error
}

type ReservationRepository interface {
	Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error
	// ConfirmedHolds loads every confirmed stay on the room, ordered by
	// check-in date. Callers run it after LockForBooking so the hold set
	// cannot change before the write lands.
	ConfirmedHolds(ctx context.Context, tx db.DBTX, roomID uuid.UUID) ([]reservation.Hold, error)
}

type VoucherRepository interface {
	Create(ctx context.Context, tx db.DBTX, v *voucher.Voucher) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, v *voucher.Voucher) error
}

const (
	IdempotencyProcessing = "processing"
	IdempotencyCompleted  = "completed"
)

// IdempotencyClaim stakes out a key before the guarded write runs.
type IdempotencyClaim struct {
	Key         uuid.UUID
	UserID      uuid.UUID
	Endpoint    string
	RequestHash string
	ExpiresAt   time.Time
}

type IdempotencyRecord struct {
	Key           uuid.UUID
	UserID        uuid.UUID
	Endpoint      string
	RequestHash   string
	Status        string
	ReservationID *uuid.UUID
}

type IdempotencyRepository interface {
	// TryClaim inserts the key if it is free and reports whether this
	// caller won it. A false return means the key already exists.
	TryClaim(ctx context.Context, tx db.DBTX, claim IdempotencyClaim) (bool, error)
	Get(ctx context.Context, tx db.DBTX, key uuid.UUID) (*IdempotencyRecord, error)
	MarkCompleted(ctx context.Context, tx db.DBTX, key, reservationID uuid.UUID) error
	DeleteExpired(ctx context.Context, tx db.DBTX, now time.Time) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u NewUser) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}
