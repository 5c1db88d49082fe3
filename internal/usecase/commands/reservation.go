package commands

import (
	"context"

	"lodgekeeper/internal/domain/reservation"
	reqdto "lodgekeeper/internal/handler/dto/request"
	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/pkg/clock"
	"lodgekeeper/internal/pkg/errs"
	"lodgekeeper/internal/usecase/queries"
	"lodgekeeper/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound  = errs.New("reservation not found")
	ErrReservationCancelled = errs.New("reservation is cancelled")
	ErrAlreadyCancelled     = errs.New("reservation already cancelled")
)

type ReservationCommands interface {
	CreateReservation(ctx context.Context, req reqdto.CreateReservationRequest, userID uuid.UUID, idempotencyKey *uuid.UUID) (*queries.ReservationView, error)
	UpdateReservation(ctx context.Context, id uuid.UUID, req reqdto.UpdateReservationRequest) (*queries.ReservationView, error)
	CancelReservation(ctx context.Context, id uuid.UUID) error
}

type reservationCommandsImpl struct {
	uow   shared.UnitOfWork
	views queries.ReservationQueries
	clock clock.Clock
}

func NewReservationCommands(uow shared.UnitOfWork, views queries.ReservationQueries, clk clock.Clock) ReservationCommands {
	return &reservationCommandsImpl{
		uow:   uow,
		views: views,
		clock: clk,
	}
}

func (c *reservationCommandsImpl) CreateReservation(ctx context.Context, req reqdto.CreateReservationRequest, userID uuid.UUID, idempotencyKey *uuid.UUID) (*queries.ReservationView, error) {
	checkIn, checkOut, err := req.ParsedDates()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDateRange)
	}

	booking, err := NewBookingRequest(req.RoomID, req.CustomerName, req.VoucherNumber, checkIn, checkOut, req.Note)
	if err != nil {
		return nil, err
	}

	var reservationID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if idempotencyKey != nil {
			replayID, err := claimIdempotencyKey(ctx, tx, *idempotencyKey, userID,
				"POST /api/reservations", hashRequest(req), c.clock.Now())
			if err != nil {
				return err
			}
			if replayID != nil {
				reservationID = *replayID
				return nil
			}
		}

		reservationID, err = admitBooking(ctx, tx, booking)
		if err != nil {
			return err
		}

		if idempotencyKey != nil {
			if err := tx.Idempotency().MarkCompleted(ctx, tx.DB(), *idempotencyKey, reservationID); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := c.views.GetByID(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return view, nil
}

func (c *reservationCommandsImpl) UpdateReservation(ctx context.Context, id uuid.UUID, req reqdto.UpdateReservationRequest) (*queries.ReservationView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		if reservation.Status(snap.Status) == reservation.StatusCancelled {
			return ErrReservationCancelled
		}

		entity, err := applyReservationChanges(snap, req)
		if err != nil {
			return err
		}

		// Re-run the guard against the target room, which may differ from
		// the room the reservation currently occupies.
		if err := tx.Rooms().LockForBooking(ctx, tx.DB(), entity.RoomID()); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrRoomNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		holds, err := tx.Reservations().ConfirmedHolds(ctx, tx.DB(), entity.RoomID())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if conflicts := reservation.ConflictsExcluding(entity.Stay(), holds, id); len(conflicts) > 0 {
			return &RoomUnavailableError{RoomID: entity.RoomID(), Stay: entity.Stay(), Conflicts: conflicts}
		}

		if err := tx.Reservations().Update(ctx, tx.DB(), entity); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return &RoomUnavailableError{RoomID: entity.RoomID(), Stay: entity.Stay()}
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := c.views.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return view, nil
}

func (c *reservationCommandsImpl) CancelReservation(ctx context.Context, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		entity, err := reconstructFromSnapshot(snap)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := entity.Cancel(); err != nil {
			return ErrAlreadyCancelled
		}

		if err := tx.Reservations().Update(ctx, tx.DB(), entity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return nil
	})
}

func loadReservation(ctx context.Context, tx shared.Tx, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	snap, err := tx.Reads().ReservationByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return snap, nil
}

func reconstructFromSnapshot(snap *shared.ReservationSnapshot) (*reservation.Reservation, error) {
	name, err := reservation.NewCustomerName(snap.CustomerName)
	if err != nil {
		return nil, err
	}

	stay, err := reservation.NewStayPeriod(snap.CheckInDate, snap.CheckOutDate)
	if err != nil {
		return nil, err
	}

	return reservation.ReconstructReservation(
		snap.ID,
		snap.RoomID,
		name,
		snap.VoucherNumber,
		stay,
		reservation.Status(snap.Status),
		reservation.NewNote(snap.Note),
		snap.CreatedAt,
		snap.UpdatedAt,
	), nil
}

// applyReservationChanges merges the patch onto the stored reservation;
// absent fields keep their current value.
func applyReservationChanges(snap *shared.ReservationSnapshot, req reqdto.UpdateReservationRequest) (*reservation.Reservation, error) {
	roomID := snap.RoomID
	if req.RoomID != nil {
		roomID = *req.RoomID
	}

	customerName := snap.CustomerName
	if req.CustomerName != nil {
		customerName = *req.CustomerName
	}

	voucherNumber := snap.VoucherNumber
	if req.VoucherNumber != nil {
		voucherNumber = req.VoucherNumber
	}

	note := snap.Note
	if req.Note != nil {
		note = *req.Note
	}

	checkIn := snap.CheckInDate
	checkOut := snap.CheckOutDate
	reqCheckIn, reqCheckOut, err := req.ParsedDates()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDateRange)
	}
	if reqCheckIn != nil {
		checkIn = *reqCheckIn
	}
	if reqCheckOut != nil {
		checkOut = *reqCheckOut
	}

	name, err := reservation.NewCustomerName(customerName)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	stay, err := reservation.NewStayPeriod(checkIn, checkOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDateRange)
	}

	return reservation.ReconstructReservation(
		snap.ID,
		roomID,
		name,
		voucherNumber,
		stay,
		reservation.Status(snap.Status),
		reservation.NewNote(note),
		snap.CreatedAt,
		snap.UpdatedAt,
	), nil
}
