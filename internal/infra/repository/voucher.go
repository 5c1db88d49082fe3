package repository

import (
	"context"

	"lodgekeeper/internal/domain/voucher"
	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/infra/db"
	"lodgekeeper/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type VoucherRepository struct{}

func NewVoucherRepository() *VoucherRepository {
	return &VoucherRepository{}
}

const createVoucherSQL = `
INSERT INTO vouchers (id, image_path, ocr_text, customer_name, voucher_number, check_in_date, check_out_date, status, uploaded_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id
`

func (r *VoucherRepository) Create(ctx context.Context, tx db.DBTX, v *voucher.Voucher) (uuid.UUID, error) {
	ex := v.Extraction()

	var id uuid.UUID
	err := tx.QueryRow(ctx, createVoucherSQL,
		v.ID(),
		v.ImagePath(),
		v.OCRText(),
		pgconv.StringPtrToPgtype(ex.CustomerName),
		pgconv.StringPtrToPgtype(ex.VoucherNumber),
		pgconv.DatePtrToPgtype(ex.CheckInDate),
		pgconv.DatePtrToPgtype(ex.CheckOutDate),
		v.Status().String(),
		v.UploadedBy(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, classifyWriteErr("failed to create voucher", err)
	}

	return id, nil
}

const updateVoucherSQL = `
UPDATE vouchers
SET customer_name  = $2,
    voucher_number = $3,
    check_in_date  = $4,
    check_out_date = $5,
    status         = $6,
    reservation_id = $7,
    updated_at     = now()
WHERE id = $1
`

func (r *VoucherRepository) Update(ctx context.Context, tx db.DBTX, v *voucher.Voucher) error {
	ex := v.Extraction()

	tag, err := tx.Exec(ctx, updateVoucherSQL,
		v.ID(),
		pgconv.StringPtrToPgtype(ex.CustomerName),
		pgconv.StringPtrToPgtype(ex.VoucherNumber),
		pgconv.DatePtrToPgtype(ex.CheckInDate),
		pgconv.DatePtrToPgtype(ex.CheckOutDate),
		v.Status().String(),
		pgconv.UUIDPtrToPgtype(v.ReservationID()),
	)
	if err != nil {
		return classifyWriteErr("failed to update voucher", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound)
	}

	return nil
}
