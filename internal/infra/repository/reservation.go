package repository

import (
	"context"

	"lodgekeeper/internal/domain/reservation"
	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/infra/db"
	"lodgekeeper/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

const createReservationSQL = `
INSERT INTO reservations (id, room_id, customer_name, voucher_number, check_in_date, check_out_date, status, note)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id
`

func (r *ReservationRepository) Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createReservationSQL,
		res.ID(),
		res.RoomID(),
		res.CustomerName().String(),
		pgconv.StringPtrToPgtype(res.VoucherNumber()),
		pgconv.DateToPgtype(res.Stay().CheckIn()),
		pgconv.DateToPgtype(res.Stay().CheckOut()),
		res.Status().String(),
		res.Note().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, classifyWriteErr("failed to create reservation", err)
	}

	return id, nil
}

const updateReservationSQL = `
UPDATE reservations
SET room_id        = $2,
    customer_name  = $3,
    voucher_number = $4,
    check_in_date  = $5,
    check_out_date = $6,
    status         = $7,
    note           = $8,
    updated_at     = now()
WHERE id = $1
`

func (r *ReservationRepository) Update(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error {
	tag, err := tx.Exec(ctx, updateReservationSQL,
		res.ID(),
		res.RoomID(),
		res.CustomerName().String(),
		pgconv.StringPtrToPgtype(res.VoucherNumber()),
		pgconv.DateToPgtype(res.Stay().CheckIn()),
		pgconv.DateToPgtype(res.Stay().CheckOut()),
		res.Status().String(),
		res.Note().String(),
	)
	if err != nil {
		return classifyWriteErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}

	return nil
}

const confirmedHoldsSQL = `
SELECT id, customer_name, check_in_date, check_out_date
FROM reservations
WHERE room_id = $1 AND status = 'confirmed'
ORDER BY check_in_date
`

func (r *ReservationRepository) ConfirmedHolds(ctx context.Context, tx db.DBTX, roomID uuid.UUID) ([]reservation.Hold, error) {
	rows, err := tx.Query(ctx, confirmedHoldsSQL, roomID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load confirmed reservations", err)
	}
	defer rows.Close()

	var holds []reservation.Hold
	for rows.Next() {
		var (
			id           uuid.UUID
			customerName string
			checkIn      pgtype.Date
			checkOut     pgtype.Date
		)
		if err := rows.Scan(&id, &customerName, &checkIn, &checkOut); err != nil {
			return nil, infra.WrapRepoErr("failed to scan confirmed reservation", err)
		}

		stay, err := reservation.NewStayPeriod(pgconv.DateFromPgtype(checkIn), pgconv.DateFromPgtype(checkOut))
		if err != nil {
			return nil, infra.WrapRepoErr("stored reservation has invalid stay period", err)
		}

		holds = append(holds, reservation.Hold{
			ReservationID: id,
			CustomerName:  customerName,
			Stay:          stay,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate confirmed reservations", err)
	}

	return holds, nil
}
