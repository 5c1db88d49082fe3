package commands

import (
	"context"
	"fmt"
	"time"

	"lodgekeeper/internal/domain/reservation"
	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/pkg/errs"
	"lodgekeeper/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound            = errs.New("room not found")
	ErrRoomUnavailable         = errs.New("room unavailable")
	ErrInvalidDateRange        = errs.New("invalid date range")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// BookingRequest is the single admission path for new stays. Manual entry
// and voucher confirmation both resolve to this shape before any room is
// touched, so the overlap guard runs identically for both.
type BookingRequest struct {
	RoomID        uuid.UUID
	CustomerName  reservation.CustomerName
	VoucherNumber *string
	Stay          reservation.StayPeriod
	Note          reservation.Note
}

func NewBookingRequest(roomID uuid.UUID, customerName string, voucherNumber *string, checkIn, checkOut time.Time, note string) (BookingRequest, error) {
	name, err := reservation.NewCustomerName(customerName)
	if err != nil {
		return BookingRequest{}, errs.Mark(err, ErrDomainValidation)
	}

	stay, err := reservation.NewStayPeriod(checkIn, checkOut)
	if err != nil {
		return BookingRequest{}, errs.Mark(err, ErrInvalidDateRange)
	}

	return BookingRequest{
		RoomID:        roomID,
		CustomerName:  name,
		VoucherNumber: voucherNumber,
		Stay:          stay,
		Note:          reservation.NewNote(note),
	}, nil
}

// RoomUnavailableError carries the conflicting stays so the handler can tell
// the operator who is blocking the room.
type RoomUnavailableError struct {
	RoomID    uuid.UUID
	Stay      reservation.StayPeriod
	Conflicts []reservation.Hold
}

func (e *RoomUnavailableError) Error() string {
	return fmt.Sprintf("room %s unavailable for %s: %d conflicting reservation(s)", e.RoomID, e.Stay, len(e.Conflicts))
}

func (e *RoomUnavailableError) Is(target error) bool {
	return target == ErrRoomUnavailable
}

// admitBooking runs the overlap guard and the insert inside the caller's
// transaction. The room row lock taken first serializes concurrent
// admissions per room; the exclusion constraint backs the guard up should
// the lock discipline ever be bypassed.
func admitBooking(ctx context.Context, tx shared.Tx, req BookingRequest) (uuid.UUID, error) {
	if err := tx.Rooms().LockForBooking(ctx, tx.DB(), req.RoomID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, ErrRoomNotFound
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	holds, err := tx.Reservations().ConfirmedHolds(ctx, tx.DB(), req.RoomID)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if conflicts := reservation.Conflicts(req.Stay, holds); len(conflicts) > 0 {
		return uuid.Nil, &RoomUnavailableError{RoomID: req.RoomID, Stay: req.Stay, Conflicts: conflicts}
	}

	entity := reservation.NewReservation(req.RoomID, req.CustomerName, req.VoucherNumber, req.Stay, req.Note)

	id, err := tx.Reservations().Create(ctx, tx.DB(), entity)
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return uuid.Nil, &RoomUnavailableError{RoomID: req.RoomID, Stay: req.Stay}
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return id, nil
}
