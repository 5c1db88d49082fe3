package readstore

import (
	"context"
	"time"

	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/infra/db"
	"lodgekeeper/internal/pkg/pgconv"
	"lodgekeeper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RoomReadStore struct {
	db db.DBTX
}

func NewRoomReadStore(dbtx db.DBTX) *RoomReadStore {
	return &RoomReadStore{db: dbtx}
}

// Room numbers are stored as text; numeric ones sort numerically so room 2
// lists before room 10.
const findAllActiveRoomsSQL = `
SELECT id, room_number, room_type, is_active
FROM rooms
WHERE is_active
ORDER BY NULLIF(regexp_replace(room_number, '\D', '', 'g'), '')::int NULLS LAST, room_number
`

func (r *RoomReadStore) FindAllActive(ctx context.Context) ([]*queries.RoomView, error) {
	rows, err := r.db.Query(ctx, findAllActiveRoomsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	var views []*queries.RoomView
	for rows.Next() {
		var view queries.RoomView
		if err := rows.Scan(&view.ID, &view.RoomNumber, &view.RoomType, &view.IsActive); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room row", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate room rows", err)
	}

	return views, nil
}

const findRoomByIDSQL = `
SELECT id, room_number, room_type, is_active
FROM rooms
WHERE id = $1
`

func (r *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	var view queries.RoomView
	err := r.db.QueryRow(ctx, findRoomByIDSQL, id).Scan(&view.ID, &view.RoomNumber, &view.RoomType, &view.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room by ID", err)
	}

	return &view, nil
}

const confirmedStaysOverlappingSQL = `
SELECT r.id, r.room_id, r.customer_name, r.check_in_date, r.check_out_date
FROM reservations r
WHERE r.status = 'confirmed'
  AND r.check_in_date < $2
  AND r.check_out_date > $1
`

func (r *RoomReadStore) ConfirmedStaysOverlapping(ctx context.Context, startDate, endDate time.Time) ([]*queries.StayRange, error) {
	rows, err := r.db.Query(ctx, confirmedStaysOverlappingSQL,
		pgconv.DateToPgtype(startDate), pgconv.DateToPgtype(endDate))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load overlapping stays", err)
	}
	defer rows.Close()

	var stays []*queries.StayRange
	for rows.Next() {
		var (
			stay     queries.StayRange
			checkIn  pgtype.Date
			checkOut pgtype.Date
		)
		if err := rows.Scan(&stay.ReservationID, &stay.RoomID, &stay.CustomerName, &checkIn, &checkOut); err != nil {
			return nil, infra.WrapRepoErr("failed to scan stay row", err)
		}
		stay.CheckInDate = pgconv.DateFromPgtype(checkIn)
		stay.CheckOutDate = pgconv.DateFromPgtype(checkOut)
		stays = append(stays, &stay)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate stay rows", err)
	}

	return stays, nil
}
