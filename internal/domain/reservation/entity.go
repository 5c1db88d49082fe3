package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyCancelled = errors.New("reservation is already cancelled")
	ErrInvalidStatus    = errors.New("invalid reservation status")
)

// Reservation is a soft-state record: once created it is never deleted,
// only flipped to cancelled, so past stays stay visible to reporting.
type Reservation struct {
	id            uuid.UUID
	roomID        uuid.UUID
	customerName  CustomerName
	voucherNumber *string
	stay          StayPeriod
	status        Status
	note          Note
	createdAt     time.Time
	updatedAt     time.Time
}

func NewReservation(
	roomID uuid.UUID,
	customerName CustomerName,
	voucherNumber *string,
	stay StayPeriod,
	note Note,
) *Reservation {
	return &Reservation{
		id:            uuid.New(),
		roomID:        roomID,
		customerName:  customerName,
		voucherNumber: normalizeVoucherNumber(voucherNumber),
		stay:          stay,
		status:        StatusConfirmed,
		note:          note,
	}
}

func ReconstructReservation(
	id, roomID uuid.UUID,
	customerName CustomerName,
	voucherNumber *string,
	stay StayPeriod,
	status Status,
	note Note,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:            id,
		roomID:        roomID,
		customerName:  customerName,
		voucherNumber: voucherNumber,
		stay:          stay,
		status:        status,
		note:          note,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (r *Reservation) Cancel() error {
	if r.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	r.status = StatusCancelled
	return nil
}

// Reschedule moves the stay; the caller re-runs the overlap guard with this
// reservation excluded before persisting.
func (r *Reservation) Reschedule(stay StayPeriod) error {
	if r.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	r.stay = stay
	return nil
}

func (r *Reservation) Rename(customerName CustomerName) {
	r.customerName = customerName
}

func (r *Reservation) SetVoucherNumber(voucherNumber *string) {
	r.voucherNumber = normalizeVoucherNumber(voucherNumber)
}

func (r *Reservation) SetNote(note Note) {
	r.note = note
}

func (r *Reservation) IsConfirmed() bool {
	return r.status == StatusConfirmed
}

func (r *Reservation) ID() uuid.UUID              { return r.id }
func (r *Reservation) RoomID() uuid.UUID          { return r.roomID }
func (r *Reservation) CustomerName() CustomerName { return r.customerName }
func (r *Reservation) VoucherNumber() *string     { return r.voucherNumber }
func (r *Reservation) Stay() StayPeriod           { return r.stay }
func (r *Reservation) Status() Status             { return r.status }
func (r *Reservation) Note() Note                 { return r.note }
func (r *Reservation) CreatedAt() time.Time       { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time       { return r.updatedAt }

func normalizeVoucherNumber(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := *v
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
