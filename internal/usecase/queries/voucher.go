package queries

import (
	"context"
	"time"

	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrVoucherNotFound = errs.New("voucher not found")

type VoucherView struct {
	ID            uuid.UUID  `json:"id"`
	ImagePath     string     `json:"image_path"`
	OCRText       string     `json:"ocr_text"`
	CustomerName  *string    `json:"customer_name,omitempty"`
	VoucherNumber *string    `json:"voucher_number,omitempty"`
	CheckInDate   *time.Time `json:"check_in_date,omitempty"`
	CheckOutDate  *time.Time `json:"check_out_date,omitempty"`
	Status        string     `json:"status"`
	ReservationID *uuid.UUID `json:"reservation_id,omitempty"`
	UploadedBy    uuid.UUID  `json:"uploaded_by"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type VoucherQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*VoucherView, error)
	ListPending(ctx context.Context) ([]*VoucherView, error)
}

type VoucherViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*VoucherView, error)
	FindPending(ctx context.Context) ([]*VoucherView, error)
}

type voucherQueriesImpl struct {
	repo VoucherViewRepo
}

func NewVoucherQueries(repo VoucherViewRepo) VoucherQueries {
	return &voucherQueriesImpl{repo: repo}
}

func (q *voucherQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*VoucherView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrVoucherNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *voucherQueriesImpl) ListPending(ctx context.Context) ([]*VoucherView, error) {
	return q.repo.FindPending(ctx)
}
