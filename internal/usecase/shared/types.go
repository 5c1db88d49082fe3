package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)
type RoomSnapshot struct {
	ID         uuid.UUID
	RoomNumber string
	RoomType   string
	IsActive   bool
}

type ReservationSnapshot struct {
	ID            uuid.UUID
	RoomID        uuid.UUID
	CustomerName  string
	VoucherNumber *string
	CheckInDate   time.Time
	CheckOutDate  time.Time
	Status        string
	Note          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type VoucherSnapshot struct {
	ID            uuid.UUID
	ImagePath     string
	OCRText       string
	CustomerName  *string
	VoucherNumber *string
	CheckInDate   *time.Time
	CheckOutDate  *time.Time
	Status        string
	ReservationID *uuid.UUID
	UploadedBy    uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type NewUser struct {
	Email        string
	PasswordHash string
	Role         string
}
