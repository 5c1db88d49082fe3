package readstore

import (
	"context"
	"time"

	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/infra/db"
	"lodgekeeper/internal/pkg/pgconv"
	"lodgekeeper/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

// ReportReadStore serves the reporting and dashboard queries. It reuses the
// room store for shared stay lookups.
type ReportReadStore struct {
	db    db.DBTX
	rooms *RoomReadStore
}

func NewReportReadStore(dbtx db.DBTX) *ReportReadStore {
	return &ReportReadStore{db: dbtx, rooms: NewRoomReadStore(dbtx)}
}

const staysOverlappingSQL = `
SELECT r.id, rm.room_number, r.customer_name, r.voucher_number,
       r.check_in_date, r.check_out_date, r.status
FROM reservations r
JOIN rooms rm ON rm.id = r.room_id
WHERE r.status = 'confirmed'
  AND r.check_in_date < $2
  AND r.check_out_date > $1
ORDER BY r.check_in_date, rm.room_number
`

func (r *ReportReadStore) StaysOverlapping(ctx context.Context, startDate, endDate time.Time) ([]*queries.ReportRow, error) {
	rows, err := r.db.Query(ctx, staysOverlappingSQL,
		pgconv.DateToPgtype(startDate), pgconv.DateToPgtype(endDate))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load report stays", err)
	}
	defer rows.Close()

	var result []*queries.ReportRow
	for rows.Next() {
		var (
			row           queries.ReportRow
			voucherNumber pgtype.Text
			checkIn       pgtype.Date
			checkOut      pgtype.Date
		)
		if err := rows.Scan(&row.ReservationID, &row.RoomNumber, &row.CustomerName, &voucherNumber,
			&checkIn, &checkOut, &row.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan report row", err)
		}

		row.VoucherNumber = pgconv.StringPtrFromPgtype(voucherNumber)
		row.CheckInDate = pgconv.DateFromPgtype(checkIn)
		row.CheckOutDate = pgconv.DateFromPgtype(checkOut)
		row.Nights = int(row.CheckOutDate.Sub(row.CheckInDate).Hours() / 24)
		result = append(result, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate report rows", err)
	}

	return result, nil
}

func (r *ReportReadStore) ConfirmedStaysOverlapping(ctx context.Context, startDate, endDate time.Time) ([]*queries.StayRange, error) {
	return r.rooms.ConfirmedStaysOverlapping(ctx, startDate, endDate)
}

const countActiveRoomsSQL = `SELECT count(*) FROM rooms WHERE is_active`

func (r *ReportReadStore) CountActiveRooms(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, countActiveRoomsSQL).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count rooms", err)
	}
	return count, nil
}

const arrivalsOnSQL = `
SELECT r.id, rm.room_number, r.customer_name, r.voucher_number,
       r.check_in_date, r.check_out_date, r.status, r.created_at
FROM reservations r
JOIN rooms rm ON rm.id = r.room_id
WHERE r.status = 'confirmed' AND r.check_in_date = $1
ORDER BY rm.room_number
`

func (r *ReportReadStore) ArrivalsOn(ctx context.Context, day time.Time) ([]*queries.ReservationListItem, error) {
	return r.listItemsOn(ctx, arrivalsOnSQL, day, "failed to load arrivals")
}

const departuresOnSQL = `
SELECT r.id, rm.room_number, r.customer_name, r.voucher_number,
       r.check_in_date, r.check_out_date, r.status, r.created_at
FROM reservations r
JOIN rooms rm ON rm.id = r.room_id
WHERE r.status = 'confirmed' AND r.check_out_date = $1
ORDER BY rm.room_number
`

func (r *ReportReadStore) DeparturesOn(ctx context.Context, day time.Time) ([]*queries.ReservationListItem, error) {
	return r.listItemsOn(ctx, departuresOnSQL, day, "failed to load departures")
}

const inHouseCountOnSQL = `
SELECT count(DISTINCT room_id)
FROM reservations
WHERE status = 'confirmed' AND check_in_date <= $1 AND check_out_date > $1
`

func (r *ReportReadStore) InHouseCountOn(ctx context.Context, day time.Time) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, inHouseCountOnSQL, pgconv.DateToPgtype(day)).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count in-house rooms", err)
	}
	return count, nil
}

const pendingVoucherCountSQL = `SELECT count(*) FROM vouchers WHERE status = 'pending_review'`

func (r *ReportReadStore) PendingVoucherCount(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, pendingVoucherCountSQL).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count pending vouchers", err)
	}
	return count, nil
}

func (r *ReportReadStore) listItemsOn(ctx context.Context, sql string, day time.Time, errMsg string) ([]*queries.ReservationListItem, error) {
	rows, err := r.db.Query(ctx, sql, pgconv.DateToPgtype(day))
	if err != nil {
		return nil, infra.WrapRepoErr(errMsg, err)
	}
	defer rows.Close()

	var items []*queries.ReservationListItem
	for rows.Next() {
		var (
			item          queries.ReservationListItem
			voucherNumber pgtype.Text
			checkIn       pgtype.Date
			checkOut      pgtype.Date
			createdAt     pgtype.Timestamptz
		)
		if err := rows.Scan(&item.ID, &item.RoomNumber, &item.CustomerName, &voucherNumber,
			&checkIn, &checkOut, &item.Status, &createdAt); err != nil {
			return nil, infra.WrapRepoErr(errMsg, err)
		}

		item.VoucherNumber = pgconv.StringPtrFromPgtype(voucherNumber)
		item.CheckInDate = pgconv.DateFromPgtype(checkIn)
		item.CheckOutDate = pgconv.DateFromPgtype(checkOut)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(errMsg, err)
	}

	return items, nil
}
