package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	RoomID        uuid.UUID `json:"room_id" binding:"required"`
	CustomerName  string    `json:"customer_name" binding:"required"`
	VoucherNumber *string   `json:"voucher_number,omitempty"`
	CheckInDate   string    `json:"check_in_date" binding:"required,dateonly"`
	CheckOutDate  string    `json:"check_out_date" binding:"required,dateonly"`
	Note          string    `json:"note,omitempty"`
}

func (r CreateReservationRequest) ParsedDates() (checkIn, checkOut time.Time, err error) {
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

type UpdateReservationRequest struct {
	RoomID        *uuid.UUID `json:"room_id,omitempty"`
	CustomerName  *string    `json:"customer_name,omitempty"`
	VoucherNumber *string    `json:"voucher_number,omitempty"`
	CheckInDate   *string    `json:"check_in_date,omitempty" binding:"omitempty,dateonly"`
	CheckOutDate  *string    `json:"check_out_date,omitempty" binding:"omitempty,dateonly"`
	Note          *string    `json:"note,omitempty"`
}

func (r UpdateReservationRequest) ParsedDates() (checkIn, checkOut *time.Time, err error) {
	if r.CheckInDate != nil {
		t, parseErr := time.Parse(time.DateOnly, *r.CheckInDate)
		if parseErr != nil {
			return nil, nil, parseErr
		}
		checkIn = &t
	}
	if r.CheckOutDate != nil {
		t, parseErr := time.Parse(time.DateOnly, *r.CheckOutDate)
		if parseErr != nil {
			return nil, nil, parseErr
		}
		checkOut = &t
	}
	return checkIn, checkOut, nil
}
