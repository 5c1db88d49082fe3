package request

import (
	"time"

	"github.com/google/uuid"
)

// ConfirmVoucherRequest carries the operator-reviewed booking details. OCR
// output only prefills the review form; what is submitted here is
// authoritative.
type ConfirmVoucherRequest struct {
	RoomID        uuid.UUID `json:"room_id" binding:"required"`
	CustomerName  string    `json:"customer_name" binding:"required"`
	VoucherNumber *string   `json:"voucher_number,omitempty"`
	CheckInDate   string    `json:"check_in_date" binding:"required,dateonly"`
	CheckOutDate  string    `json:"check_out_date" binding:"required,dateonly"`
	Note          string    `json:"note,omitempty"`
}

func (r ConfirmVoucherRequest) ParsedDates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.Parse(time.DateOnly, r.CheckInDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	checkOut, err = time.Parse(time.DateOnly, r.CheckOutDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return checkIn, checkOut, nil
}
