package queries

import (
	"context"
	"fmt"
	"time"

	"lodgekeeper/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidReportMode  = errs.New("invalid report mode")
	ErrInvalidReportRange = errs.New("invalid report range")
)

type ReportMode string

const (
	ReportDaily   ReportMode = "daily"
	ReportWeekly  ReportMode = "weekly"
	ReportMonthly ReportMode = "monthly"
	ReportCustom  ReportMode = "custom"
)

func NewReportMode(s string) (ReportMode, error) {
	switch ReportMode(s) {
	case ReportDaily, ReportWeekly, ReportMonthly, ReportCustom:
		return ReportMode(s), nil
	default:
		return "", ErrInvalidReportMode
	}
}

// ResolveRange derives the half-open report window [start, end) from the
// mode. Daily covers the anchor day, weekly the Monday-to-Sunday week
// containing it, monthly its calendar month. Custom takes both bounds as
// inclusive dates and requires end on or after start.
func ResolveRange(mode ReportMode, anchor time.Time, customStart, customEnd time.Time) (time.Time, time.Time, error) {
	anchor = midnight(anchor)

	switch mode {
	case ReportDaily:
		return anchor, anchor.AddDate(0, 0, 1), nil

	case ReportWeekly:
		offset := (int(anchor.Weekday()) + 6) % 7
		start := anchor.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7), nil

	case ReportMonthly:
		start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0), nil

	case ReportCustom:
		start := midnight(customStart)
		end := midnight(customEnd)
		if end.Before(start) {
			return time.Time{}, time.Time{}, ErrInvalidReportRange
		}
		return start, end.AddDate(0, 0, 1), nil

	default:
		return time.Time{}, time.Time{}, ErrInvalidReportMode
	}
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ReportRow is one reservation line of a stay report.
type ReportRow struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	RoomNumber    string    `json:"room_number"`
	CustomerName  string    `json:"customer_name"`
	VoucherNumber *string   `json:"voucher_number,omitempty"`
	CheckInDate   time.Time `json:"check_in_date"`
	CheckOutDate  time.Time `json:"check_out_date"`
	Nights        int       `json:"nights"`
	Status        string    `json:"status"`
}

type ReportData struct {
	Mode              ReportMode   `json:"mode"`
	Title             string       `json:"title"`
	StartDate         time.Time    `json:"start_date"`
	EndDate           time.Time    `json:"end_date"`
	GeneratedAt       time.Time    `json:"generated_at"`
	Rows              []*ReportRow `json:"rows"`
	TotalReservations int          `json:"total_reservations"`
	TotalNights       int          `json:"total_nights"`
	BookedRooms       int          `json:"booked_rooms"`
	TotalRooms        int          `json:"total_rooms"`
	OccupancyPercent  float64      `json:"occupancy_percent"`
}

type OccupancyDay struct {
	Date             time.Time `json:"date"`
	OccupiedRooms    int       `json:"occupied_rooms"`
	TotalRooms       int       `json:"total_rooms"`
	OccupancyPercent float64   `json:"occupancy_percent"`
}

type OccupancyReport struct {
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	Days           []*OccupancyDay `json:"days"`
	AveragePercent float64         `json:"average_percent"`
}

type DashboardView struct {
	Date                time.Time              `json:"date"`
	Arrivals            []*ReservationListItem `json:"arrivals"`
	Departures          []*ReservationListItem `json:"departures"`
	InHouseCount        int                    `json:"in_house_count"`
	AvailableRoomCount  int                    `json:"available_room_count"`
	TotalRooms          int                    `json:"total_rooms"`
	PendingVoucherCount int                    `json:"pending_voucher_count"`
}

type ReportQueries interface {
	Build(ctx context.Context, mode ReportMode, anchor, customStart, customEnd, now time.Time) (*ReportData, error)
	Occupancy(ctx context.Context, startDate, endDate time.Time) (*OccupancyReport, error)
	Dashboard(ctx context.Context, today time.Time) (*DashboardView, error)
}

type ReportViewRepo interface {
	StaysOverlapping(ctx context.Context, startDate, endDate time.Time) ([]*ReportRow, error)
	ConfirmedStaysOverlapping(ctx context.Context, startDate, endDate time.Time) ([]*StayRange, error)
	CountActiveRooms(ctx context.Context) (int, error)
	ArrivalsOn(ctx context.Context, day time.Time) ([]*ReservationListItem, error)
	DeparturesOn(ctx context.Context, day time.Time) ([]*ReservationListItem, error)
	InHouseCountOn(ctx context.Context, day time.Time) (int, error)
	PendingVoucherCount(ctx context.Context) (int, error)
}

type reportQueriesImpl struct {
	repo ReportViewRepo
}

func NewReportQueries(repo ReportViewRepo) ReportQueries {
	return &reportQueriesImpl{repo: repo}
}

func (q *reportQueriesImpl) Build(ctx context.Context, mode ReportMode, anchor, customStart, customEnd, now time.Time) (*ReportData, error) {
	start, end, err := ResolveRange(mode, anchor, customStart, customEnd)
	if err != nil {
		return nil, err
	}

	rows, err := q.repo.StaysOverlapping(ctx, start, end)
	if err != nil {
		return nil, err
	}

	totalRooms, err := q.repo.CountActiveRooms(ctx)
	if err != nil {
		return nil, err
	}

	totalNights := 0
	booked := make(map[string]struct{})
	for _, row := range rows {
		totalNights += nightsWithin(row.CheckInDate, row.CheckOutDate, start, end)
		booked[row.RoomNumber] = struct{}{}
	}

	// Occupancy is the share of rooms booked at least once in the window,
	// not the share of room-nights filled.
	occupancy := 0.0
	if totalRooms > 0 {
		occupancy = float64(len(booked)) / float64(totalRooms) * 100
	}

	return &ReportData{
		Mode:              mode,
		Title:             reportTitle(mode, start, end),
		StartDate:         start,
		EndDate:           end,
		GeneratedAt:       now,
		Rows:              rows,
		TotalReservations: len(rows),
		TotalNights:       totalNights,
		BookedRooms:       len(booked),
		TotalRooms:        totalRooms,
		OccupancyPercent:  occupancy,
	}, nil
}

func (q *reportQueriesImpl) Occupancy(ctx context.Context, startDate, endDate time.Time) (*OccupancyReport, error) {
	startDate = midnight(startDate)
	endDate = midnight(endDate)
	if !startDate.Before(endDate) {
		return nil, ErrInvalidReportRange
	}

	totalRooms, err := q.repo.CountActiveRooms(ctx)
	if err != nil {
		return nil, err
	}

	stays, err := q.repo.ConfirmedStaysOverlapping(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	report := &OccupancyReport{StartDate: startDate, EndDate: endDate}
	sum := 0.0

	for day := startDate; day.Before(endDate); day = day.AddDate(0, 0, 1) {
		occupied := make(map[uuid.UUID]struct{})
		for _, s := range stays {
			if !day.Before(s.CheckInDate) && day.Before(s.CheckOutDate) {
				occupied[s.RoomID] = struct{}{}
			}
		}

		pct := 0.0
		if totalRooms > 0 {
			pct = float64(len(occupied)) / float64(totalRooms) * 100
		}
		sum += pct

		report.Days = append(report.Days, &OccupancyDay{
			Date:             day,
			OccupiedRooms:    len(occupied),
			TotalRooms:       totalRooms,
			OccupancyPercent: pct,
		})
	}

	if len(report.Days) > 0 {
		report.AveragePercent = sum / float64(len(report.Days))
	}

	return report, nil
}

func (q *reportQueriesImpl) Dashboard(ctx context.Context, today time.Time) (*DashboardView, error) {
	today = midnight(today)

	arrivals, err := q.repo.ArrivalsOn(ctx, today)
	if err != nil {
		return nil, err
	}

	departures, err := q.repo.DeparturesOn(ctx, today)
	if err != nil {
		return nil, err
	}

	inHouse, err := q.repo.InHouseCountOn(ctx, today)
	if err != nil {
		return nil, err
	}

	totalRooms, err := q.repo.CountActiveRooms(ctx)
	if err != nil {
		return nil, err
	}

	pendingVouchers, err := q.repo.PendingVoucherCount(ctx)
	if err != nil {
		return nil, err
	}

	available := totalRooms - inHouse
	if available < 0 {
		available = 0
	}

	return &DashboardView{
		Date:                today,
		Arrivals:            arrivals,
		Departures:          departures,
		InHouseCount:        inHouse,
		AvailableRoomCount:  available,
		TotalRooms:          totalRooms,
		PendingVoucherCount: pendingVouchers,
	}, nil
}

// nightsWithin counts the nights of [checkIn, checkOut) that fall inside the
// report window, so a stay straddling the window boundary only contributes
// the nights the window covers.
func nightsWithin(checkIn, checkOut, windowStart, windowEnd time.Time) int {
	if checkIn.Before(windowStart) {
		checkIn = windowStart
	}
	if checkOut.After(windowEnd) {
		checkOut = windowEnd
	}
	if !checkIn.Before(checkOut) {
		return 0
	}
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

func reportTitle(mode ReportMode, start, end time.Time) string {
	lastDay := end.AddDate(0, 0, -1)
	switch mode {
	case ReportDaily:
		return fmt.Sprintf("Daily Report - %s", start.Format(time.DateOnly))
	case ReportWeekly:
		return fmt.Sprintf("Weekly Report - %s to %s", start.Format(time.DateOnly), lastDay.Format(time.DateOnly))
	case ReportMonthly:
		return fmt.Sprintf("Monthly Report - %s", start.Format("January 2006"))
	default:
		return fmt.Sprintf("Report - %s to %s", start.Format(time.DateOnly), lastDay.Format(time.DateOnly))
	}
}
