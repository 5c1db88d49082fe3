package queries

import (
	"context"
	"time"

	"lodgekeeper/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrAvailabilityRangeTooWide = errs.New("availability range exceeds maximum window")

// MaxAvailabilityDays caps the availability grid so one request cannot scan
// an unbounded date range.
const MaxAvailabilityDays = 62

// DayOccupancy is one cell of the availability grid. Occupied days carry the
// reservation holding them; a reservation's check-out day shows as free.
type DayOccupancy struct {
	Date          time.Time  `json:"date"`
	Occupied      bool       `json:"occupied"`
	ReservationID *uuid.UUID `json:"reservation_id,omitempty"`
	CustomerName  *string    `json:"customer_name,omitempty"`
}

type RoomAvailability struct {
	Room RoomView       `json:"room"`
	Days []DayOccupancy `json:"days"`
}

type AvailabilityGrid struct {
	StartDate time.Time          `json:"start_date"`
	EndDate   time.Time          `json:"end_date"`
	Rooms     []RoomAvailability `json:"rooms"`
}

// StayRange is a confirmed stay loaded for grid assembly.
type StayRange struct {
	ReservationID uuid.UUID
	RoomID        uuid.UUID
	CustomerName  string
	CheckInDate   time.Time
	CheckOutDate  time.Time
}

type RoomQueries interface {
	List(ctx context.Context) ([]*RoomView, error)
	Availability(ctx context.Context, startDate, endDate time.Time) (*AvailabilityGrid, error)
}

type RoomViewRepo interface {
	FindAllActive(ctx context.Context) ([]*RoomView, error)
	ConfirmedStaysOverlapping(ctx context.Context, startDate, endDate time.Time) ([]*StayRange, error)
}

type roomQueriesImpl struct {
	repo RoomViewRepo
}

func NewRoomQueries(repo RoomViewRepo) RoomQueries {
	return &roomQueriesImpl{repo: repo}
}

func (q *roomQueriesImpl) List(ctx context.Context) ([]*RoomView, error) {
	return q.repo.FindAllActive(ctx)
}

// Availability assembles a room-by-day occupancy grid over [startDate, endDate).
func (q *roomQueriesImpl) Availability(ctx context.Context, startDate, endDate time.Time) (*AvailabilityGrid, error) {
	days := int(endDate.Sub(startDate).Hours() / 24)
	if days > MaxAvailabilityDays {
		return nil, ErrAvailabilityRangeTooWide
	}

	rooms, err := q.repo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	stays, err := q.repo.ConfirmedStaysOverlapping(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	staysByRoom := make(map[uuid.UUID][]*StayRange, len(rooms))
	for _, s := range stays {
		staysByRoom[s.RoomID] = append(staysByRoom[s.RoomID], s)
	}

	grid := &AvailabilityGrid{
		StartDate: startDate,
		EndDate:   endDate,
		Rooms:     make([]RoomAvailability, 0, len(rooms)),
	}

	for _, room := range rooms {
		row := RoomAvailability{
			Room: *room,
			Days: make([]DayOccupancy, 0, days),
		}

		for day := startDate; day.Before(endDate); day = day.AddDate(0, 0, 1) {
			cell := DayOccupancy{Date: day}
			for _, s := range staysByRoom[room.ID] {
				if !day.Before(s.CheckInDate) && day.Before(s.CheckOutDate) {
					id := s.ReservationID
					name := s.CustomerName
					cell.Occupied = true
					cell.ReservationID = &id
					cell.CustomerName = &name
					break
				}
			}
			row.Days = append(row.Days, cell)
		}

		grid.Rooms = append(grid.Rooms, row)
	}

	return grid, nil
}
