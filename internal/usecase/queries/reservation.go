package queries

import (
	"context"
	"time"

	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrReservationNotFound = errs.New("reservation not found")

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Read models (DTO for read side)
type ReservationView struct {
	ID            uuid.UUID `json:"id"`
	RoomID        uuid.UUID `json:"room_id"`
	RoomNumber    string    `json:"room_number"`
	CustomerName  string    `json:"customer_name"`
	VoucherNumber *string   `json:"voucher_number,omitempty"`
	CheckInDate   time.Time `json:"check_in_date"`
	CheckOutDate  time.Time `json:"check_out_date"`
	Nights        int       `json:"nights"`
	Status        string    `json:"status"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ReservationListItem struct {
	ID            uuid.UUID `json:"id"`
	RoomNumber    string    `json:"room_number"`
	CustomerName  string    `json:"customer_name"`
	VoucherNumber *string   `json:"voucher_number,omitempty"`
	CheckInDate   time.Time `json:"check_in_date"`
	CheckOutDate  time.Time `json:"check_out_date"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// SearchFilters narrows the reservation list. A date pair matches every
// reservation whose stay overlaps [StartDate, EndDate).
type SearchFilters struct {
	CustomerName  *string
	VoucherNumber *string
	StartDate     *time.Time
	EndDate       *time.Time
	Status        *string
	RoomID        *uuid.UUID
}

type ReservationPage struct {
	Items      []*ReservationListItem `json:"items"`
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	Search(ctx context.Context, filters SearchFilters, page, pageSize int) (*ReservationPage, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	Search(ctx context.Context, filters SearchFilters, limit, offset int32) ([]*ReservationListItem, int64, error)
}

type reservationQueriesImpl struct {
	repo ReservationViewRepo
}

func NewReservationQueries(repo ReservationViewRepo) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrReservationNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *reservationQueriesImpl) Search(ctx context.Context, filters SearchFilters, page, pageSize int) (*ReservationPage, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	offset := (page - 1) * pageSize
	items, total, err := q.repo.Search(ctx, filters, int32(pageSize), int32(offset))
	if err != nil {
		return nil, err
	}

	return &ReservationPage{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}
