package voucher

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyConfirmed = errors.New("voucher is already confirmed")
	ErrEmptyImagePath   = errors.New("voucher image path cannot be empty")
)

type Status string

const (
	StatusPendingReview Status = "pending_review"
	StatusConfirmed     Status = "confirmed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPendingReview, StatusConfirmed:
		return true
	default:
		return false
	}
}

// Extraction holds what OCR pulled out of the voucher image. Every field is
// optional: a blank scan still produces a voucher the operator can fill in
// by hand during review.
type Extraction struct {
	CustomerName  *string
	VoucherNumber *string
	CheckInDate   *time.Time
	CheckOutDate  *time.Time
}

// Voucher is the intake record for a scanned guest voucher. It starts in
// pending review and is confirmed exactly once, linking it to the
// reservation created from it.
type Voucher struct {
	id            uuid.UUID
	imagePath     string
	ocrText       string
	extraction    Extraction
	status        Status
	reservationID *uuid.UUID
	uploadedBy    uuid.UUID
	createdAt     time.Time
	updatedAt     time.Time
}

func NewVoucher(imagePath, ocrText string, extraction Extraction, uploadedBy uuid.UUID) (*Voucher, error) {
	if imagePath == "" {
		return nil, ErrEmptyImagePath
	}
	return &Voucher{
		id:         uuid.New(),
		imagePath:  imagePath,
		ocrText:    ocrText,
		extraction: extraction,
		status:     StatusPendingReview,
		uploadedBy: uploadedBy,
	}, nil
}

func ReconstructVoucher(
	id uuid.UUID,
	imagePath, ocrText string,
	extraction Extraction,
	status Status,
	reservationID *uuid.UUID,
	uploadedBy uuid.UUID,
	createdAt, updatedAt time.Time,
) *Voucher {
	return &Voucher{
		id:            id,
		imagePath:     imagePath,
		ocrText:       ocrText,
		extraction:    extraction,
		status:        status,
		reservationID: reservationID,
		uploadedBy:    uploadedBy,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Confirm links the voucher to the reservation booked from it. A voucher is
// confirmed at most once.
func (v *Voucher) Confirm(reservationID uuid.UUID) error {
	if v.status == StatusConfirmed {
		return ErrAlreadyConfirmed
	}
	v.status = StatusConfirmed
	v.reservationID = &reservationID
	return nil
}

func (v *Voucher) IsPendingReview() bool {
	return v.status == StatusPendingReview
}

func (v *Voucher) ID() uuid.UUID             { return v.id }
func (v *Voucher) ImagePath() string         { return v.imagePath }
func (v *Voucher) OCRText() string           { return v.ocrText }
func (v *Voucher) Extraction() Extraction    { return v.extraction }
func (v *Voucher) Status() Status            { return v.status }
func (v *Voucher) ReservationID() *uuid.UUID { return v.reservationID }
func (v *Voucher) UploadedBy() uuid.UUID     { return v.uploadedBy }
func (v *Voucher) CreatedAt() time.Time      { return v.createdAt }
func (v *Voucher) UpdatedAt() time.Time      { return v.updatedAt }
