package readstore

import (
	"context"

	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/infra/db"
	"lodgekeeper/internal/pkg/pgconv"
	"lodgekeeper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type VoucherReadStore struct {
	db db.DBTX
}

func NewVoucherReadStore(dbtx db.DBTX) *VoucherReadStore {
	return &VoucherReadStore{db: dbtx}
}

const findVoucherByIDSQL = `
SELECT id, image_path, ocr_text, customer_name, voucher_number,
       check_in_date, check_out_date, status, reservation_id, uploaded_by,
       created_at, updated_at
FROM vouchers
WHERE id = $1
`

func (r *VoucherReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.VoucherView, error) {
	row := r.db.QueryRow(ctx, findVoucherByIDSQL, id)

	view, err := scanVoucherRow(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("voucher not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find voucher by ID", err)
	}

	return view, nil
}

const findPendingVouchersSQL = `
SELECT id, image_path, ocr_text, customer_name, voucher_number,
       check_in_date, check_out_date, status, reservation_id, uploaded_by,
       created_at, updated_at
FROM vouchers
WHERE status = 'pending_review'
ORDER BY created_at DESC
`

func (r *VoucherReadStore) FindPending(ctx context.Context) ([]*queries.VoucherView, error) {
	rows, err := r.db.Query(ctx, findPendingVouchersSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list pending vouchers", err)
	}
	defer rows.Close()

	var views []*queries.VoucherView
	for rows.Next() {
		view, err := scanVoucherRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan voucher row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate voucher rows", err)
	}

	return views, nil
}

func scanVoucherRow(row pgx.Row) (*queries.VoucherView, error) {
	var (
		view          queries.VoucherView
		customerName  pgtype.Text
		voucherNumber pgtype.Text
		checkIn       pgtype.Date
		checkOut      pgtype.Date
		reservationID pgtype.UUID
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&view.ID, &view.ImagePath, &view.OCRText, &customerName, &voucherNumber,
		&checkIn, &checkOut, &view.Status, &reservationID, &view.UploadedBy,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.CustomerName = pgconv.StringPtrFromPgtype(customerName)
	view.VoucherNumber = pgconv.StringPtrFromPgtype(voucherNumber)
	view.CheckInDate = pgconv.DatePtrFromPgtype(checkIn)
	view.CheckOutDate = pgconv.DatePtrFromPgtype(checkOut)
	view.ReservationID = pgconv.UUIDPtrFromPgtype(reservationID)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	return &view, nil
}
