package request

import (
	"time"

	"lodgekeeper/internal/usecase/queries"

	"github.com/google/uuid"
)

type SearchReservationsQuery struct {
	CustomerName  *string    `form:"customer_name"`
	VoucherNumber *string    `form:"voucher_number"`
	StartDate     *string    `form:"start_date" binding:"omitempty,dateonly"`
	EndDate       *string    `form:"end_date" binding:"omitempty,dateonly"`
	Status        *string    `form:"status" binding:"omitempty,oneof=confirmed cancelled"`
	RoomID        *uuid.UUID `form:"room_id"`
	Page          int        `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

func (q SearchReservationsQuery) ToFilters() (queries.SearchFilters, error) {
	filters := queries.SearchFilters{
		CustomerName:  q.CustomerName,
		VoucherNumber: q.VoucherNumber,
		Status:        q.Status,
		RoomID:        q.RoomID,
	}

	if q.StartDate != nil {
		t, err := time.Parse(time.DateOnly, *q.StartDate)
		if err != nil {
			return queries.SearchFilters{}, err
		}
		filters.StartDate = &t
	}
	if q.EndDate != nil {
		t, err := time.Parse(time.DateOnly, *q.EndDate)
		if err != nil {
			return queries.SearchFilters{}, err
		}
		filters.EndDate = &t
	}

	return filters, nil
}

type AvailabilityQuery struct {
	StartDate string `form:"start_date" binding:"omitempty,dateonly"`
	EndDate   string `form:"end_date" binding:"omitempty,dateonly"`
}

// ParsedDates resolves the requested window. Omitted dates fall back to a
// week from today; an end on or before the start falls back to start+7.
func (q AvailabilityQuery) ParsedDates(today time.Time) (start, end time.Time, err error) {
	start = today
	if q.StartDate != "" {
		start, err = time.Parse(time.DateOnly, q.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	end = start.AddDate(0, 0, 7)
	if q.EndDate != "" {
		end, err = time.Parse(time.DateOnly, q.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if !end.After(start) {
		end = start.AddDate(0, 0, 7)
	}

	return start, end, nil
}

type ReportQuery struct {
	Mode      string  `form:"mode,default=daily" binding:"omitempty,oneof=daily weekly monthly custom"`
	Date      *string `form:"date" binding:"omitempty,dateonly"`
	StartDate *string `form:"start_date" binding:"omitempty,dateonly"`
	EndDate   *string `form:"end_date" binding:"omitempty,dateonly"`
	Format    string  `form:"format,default=json" binding:"omitempty,oneof=json pdf excel"`
}

type OccupancyQuery struct {
	StartDate string `form:"start_date" binding:"required,dateonly"`
	EndDate   string `form:"end_date" binding:"required,dateonly"`
}
