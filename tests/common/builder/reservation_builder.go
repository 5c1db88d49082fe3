//go:build unit || e2e

package builder

import (
	"time"

	reqdto "lodgekeeper/internal/handler/dto/request"
	"lodgekeeper/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID            uuid.UUID
	RoomID        uuid.UUID
	RoomNumber    string
	CustomerName  string
	VoucherNumber *string
	CheckInDate   time.Time
	CheckOutDate  time.Time
	Status        string
	Note          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now().UTC()
	voucher := "MV-10234"
	return &ReservationBuilder{
		ID:            uuid.New(),
		RoomID:        uuid.New(),
		RoomNumber:    "12",
		CustomerName:  "Banda Chileshe",
		VoucherNumber: &voucher,
		CheckInDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate:  time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		Status:        "confirmed",
		Note:          "",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		RoomID:        r.RoomID,
		CustomerName:  r.CustomerName,
		VoucherNumber: r.VoucherNumber,
		CheckInDate:   r.CheckInDate.Format(time.DateOnly),
		CheckOutDate:  r.CheckOutDate.Format(time.DateOnly),
		Note:          r.Note,
	}
}

func (r *ReservationBuilder) BuildUpdateRequestDTO() reqdto.UpdateReservationRequest {
	checkIn := r.CheckInDate.Format(time.DateOnly)
	checkOut := r.CheckOutDate.Format(time.DateOnly)
	name := r.CustomerName
	return reqdto.UpdateReservationRequest{
		CustomerName: &name,
		CheckInDate:  &checkIn,
		CheckOutDate: &checkOut,
	}
}

func (r *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:            r.ID,
		RoomID:        r.RoomID,
		RoomNumber:    r.RoomNumber,
		CustomerName:  r.CustomerName,
		VoucherNumber: r.VoucherNumber,
		CheckInDate:   r.CheckInDate,
		CheckOutDate:  r.CheckOutDate,
		Nights:        int(r.CheckOutDate.Sub(r.CheckInDate).Hours() / 24),
		Status:        r.Status,
		Note:          r.Note,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (r *ReservationBuilder) BuildPage() *queries.ReservationPage {
	return &queries.ReservationPage{
		Items:      []*queries.ReservationListItem{r.BuildListItem()},
		TotalCount: 1,
		Page:       1,
		PageSize:   20,
	}
}

func (r *ReservationBuilder) BuildListItem() *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:            r.ID,
		RoomNumber:    r.RoomNumber,
		CustomerName:  r.CustomerName,
		VoucherNumber: r.VoucherNumber,
		CheckInDate:   r.CheckInDate,
		CheckOutDate:  r.CheckOutDate,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
	}
}
