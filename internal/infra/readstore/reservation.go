package readstore

import (
	"context"
	"fmt"
	"strings"

	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/infra/db"
	"lodgekeeper/internal/pkg/pgconv"
	"lodgekeeper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

const findReservationByIDSQL = `
SELECT r.id, r.room_id, rm.room_number, r.customer_name, r.voucher_number,
       r.check_in_date, r.check_out_date, r.status, r.note, r.created_at, r.updated_at
FROM reservations r
JOIN rooms rm ON rm.id = r.room_id
WHERE r.id = $1
`

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	var (
		view          queries.ReservationView
		voucherNumber pgtype.Text
		checkIn       pgtype.Date
		checkOut      pgtype.Date
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)

	err := r.db.QueryRow(ctx, findReservationByIDSQL, id).Scan(
		&view.ID, &view.RoomID, &view.RoomNumber, &view.CustomerName, &voucherNumber,
		&checkIn, &checkOut, &view.Status, &view.Note, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	view.VoucherNumber = pgconv.StringPtrFromPgtype(voucherNumber)
	view.CheckInDate = pgconv.DateFromPgtype(checkIn)
	view.CheckOutDate = pgconv.DateFromPgtype(checkOut)
	view.Nights = int(view.CheckOutDate.Sub(view.CheckInDate).Hours() / 24)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	return &view, nil
}

// Search applies the optional filters and returns one page plus the total
// match count. A date pair matches stays overlapping [StartDate, EndDate).
func (r *ReservationReadStore) Search(ctx context.Context, filters queries.SearchFilters, limit, offset int32) ([]*queries.ReservationListItem, int64, error) {
	where, args := buildSearchWhere(filters)

	countSQL := "SELECT count(*) FROM reservations r JOIN rooms rm ON rm.id = r.room_id" + where
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count reservations", err)
	}

	listSQL := fmt.Sprintf(`
SELECT r.id, rm.room_number, r.customer_name, r.voucher_number,
       r.check_in_date, r.check_out_date, r.status, r.created_at
FROM reservations r
JOIN rooms rm ON rm.id = r.room_id%s
ORDER BY r.check_in_date DESC, r.created_at DESC
LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to search reservations", err)
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
			return nil, 0, infra.WrapRepoErr("failed to scan reservation row", err)
		}

		item.VoucherNumber = pgconv.StringPtrFromPgtype(voucherNumber)
		item.CheckInDate = pgconv.DateFromPgtype(checkIn)
		item.CheckOutDate = pgconv.DateFromPgtype(checkOut)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate reservation rows", err)
	}

	return items, total, nil
}

func buildSearchWhere(filters queries.SearchFilters) (string, []any) {
	var (
		conds []string
		args  []any
	)

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filters.CustomerName != nil {
		add("r.customer_name ILIKE '%%' || $%d || '%%'", *filters.CustomerName)
	}
	if filters.VoucherNumber != nil {
		add("r.voucher_number ILIKE '%%' || $%d || '%%'", *filters.VoucherNumber)
	}
	if filters.Status != nil {
		add("r.status = $%d", *filters.Status)
	}
	if filters.RoomID != nil {
		add("r.room_id = $%d", *filters.RoomID)
	}
	if filters.StartDate != nil {
		add("r.check_out_date > $%d", pgconv.DateToPgtype(*filters.StartDate))
	}
	if filters.EndDate != nil {
		add("r.check_in_date < $%d", pgconv.DateToPgtype(*filters.EndDate))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
