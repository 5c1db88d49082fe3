package response

import (
	"time"

	"lodgekeeper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID            uuid.UUID `json:"id"`
	RoomID        uuid.UUID `json:"room_id"`
	RoomNumber    string    `json:"room_number"`
	CustomerName  string    `json:"customer_name"`
	VoucherNumber *string   `json:"voucher_number,omitempty"`
	CheckInDate   string    `json:"check_in_date"`
	CheckOutDate  string    `json:"check_out_date"`
	Nights        int       `json:"nights"`
	Status        string    `json:"status"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ReservationListResponse struct {
	ID            uuid.UUID `json:"id"`
	RoomNumber    string    `json:"room_number"`
	CustomerName  string    `json:"customer_name"`
	VoucherNumber *string   `json:"voucher_number,omitempty"`
	CheckInDate   string    `json:"check_in_date"`
	CheckOutDate  string    `json:"check_out_date"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type ReservationPageResponse struct {
	Items      []*ReservationListResponse `json:"items"`
	TotalCount int64                      `json:"total_count"`
	Page       int                        `json:"page"`
	PageSize   int                        `json:"page_size"`
}

// ConflictDetail identifies an existing stay blocking a requested booking.
type ConflictDetail struct {
	CustomerName string `json:"customer_name"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	resp := &ReservationResponse{}
	_ = copier.Copy(resp, rm)
	resp.CheckInDate = rm.CheckInDate.Format(time.DateOnly)
	resp.CheckOutDate = rm.CheckOutDate.Format(time.DateOnly)
	return resp
}

func FromReservationListItem(rm *queries.ReservationListItem) *ReservationListResponse {
	resp := &ReservationListResponse{}
	_ = copier.Copy(resp, rm)
	resp.CheckInDate = rm.CheckInDate.Format(time.DateOnly)
	resp.CheckOutDate = rm.CheckOutDate.Format(time.DateOnly)
	return resp
}

func FromReservationPage(page *queries.ReservationPage) *ReservationPageResponse {
	items := make([]*ReservationListResponse, len(page.Items))
	for i, item := range page.Items {
		items[i] = FromReservationListItem(item)
	}
	return &ReservationPageResponse{
		Items:      items,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		PageSize:   page.PageSize,
	}
}
