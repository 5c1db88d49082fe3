//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"lodgekeeper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	require.NoError(t, err)
	return d
}

func TestResolveRange(t *testing.T) {
	cases := []struct {
		name      string
		mode      queries.ReportMode
		anchor    string
		start     string
		end       string
		wantStart string
		wantEnd   string
		errIs     error
	}{
		{
			name:      "daily covers the anchor day",
			mode:      queries.ReportDaily,
			anchor:    "2025-06-04",
			wantStart: "2025-06-04",
			wantEnd:   "2025-06-05",
		},
		{
			name:      "weekly starts on the Monday containing the anchor",
			mode:      queries.ReportWeekly,
			anchor:    "2025-06-04", // a Wednesday
			wantStart: "2025-06-02",
			wantEnd:   "2025-06-09",
		},
		{
			name:      "weekly anchored on a Monday starts that day",
			mode:      queries.ReportWeekly,
			anchor:    "2025-06-02",
			wantStart: "2025-06-02",
			wantEnd:   "2025-06-09",
		},
		{
			name:      "weekly anchored on a Sunday closes the week",
			mode:      queries.ReportWeekly,
			anchor:    "2025-06-08",
			wantStart: "2025-06-02",
			wantEnd:   "2025-06-09",
		},
		{
			name:      "monthly covers the calendar month",
			mode:      queries.ReportMonthly,
			anchor:    "2025-06-15",
			wantStart: "2025-06-01",
			wantEnd:   "2025-07-01",
		},
		{
			name:      "monthly handles December rollover",
			mode:      queries.ReportMonthly,
			anchor:    "2025-12-31",
			wantStart: "2025-12-01",
			wantEnd:   "2026-01-01",
		},
		{
			name:      "custom treats both bounds inclusively",
			mode:      queries.ReportCustom,
			anchor:    "2025-06-01",
			start:     "2025-06-10",
			end:       "2025-06-12",
			wantStart: "2025-06-10",
			wantEnd:   "2025-06-13",
		},
		{
			name:      "custom single day",
			mode:      queries.ReportCustom,
			anchor:    "2025-06-01",
			start:     "2025-06-10",
			end:       "2025-06-10",
			wantStart: "2025-06-10",
			wantEnd:   "2025-06-11",
		},
		{
			name:   "custom end before start is rejected",
			mode:   queries.ReportCustom,
			anchor: "2025-06-01",
			start:  "2025-06-10",
			end:    "2025-06-09",
			errIs:  queries.ErrInvalidReportRange,
		},
		{
			name:   "unknown mode is rejected",
			mode:   queries.ReportMode("yearly"),
			anchor: "2025-06-01",
			errIs:  queries.ErrInvalidReportMode,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var customStart, customEnd time.Time
			if tc.start != "" {
				customStart = date(t, tc.start)
			}
			if tc.end != "" {
				customEnd = date(t, tc.end)
			}

			start, end, err := queries.ResolveRange(tc.mode, date(t, tc.anchor), customStart, customEnd)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, date(t, tc.wantStart), start)
			assert.Equal(t, date(t, tc.wantEnd), end)
		})
	}
}

type reportRepoStub struct {
	staysFn           func(ctx context.Context, start, end time.Time) ([]*queries.ReportRow, error)
	stayRangesFn      func(ctx context.Context, start, end time.Time) ([]*queries.StayRange, error)
	countRoomsFn      func(ctx context.Context) (int, error)
	arrivalsFn        func(ctx context.Context, day time.Time) ([]*queries.ReservationListItem, error)
	departuresFn      func(ctx context.Context, day time.Time) ([]*queries.ReservationListItem, error)
	inHouseFn         func(ctx context.Context, day time.Time) (int, error)
	pendingVouchersFn func(ctx context.Context) (int, error)
}

func (s *reportRepoStub) StaysOverlapping(ctx context.Context, start, end time.Time) ([]*queries.ReportRow, error) {
	return s.staysFn(ctx, start, end)
}

func (s *reportRepoStub) ConfirmedStaysOverlapping(ctx context.Context, start, end time.Time) ([]*queries.StayRange, error) {
	return s.stayRangesFn(ctx, start, end)
}

func (s *reportRepoStub) CountActiveRooms(ctx context.Context) (int, error) {
	return s.countRoomsFn(ctx)
}

func (s *reportRepoStub) ArrivalsOn(ctx context.Context, day time.Time) ([]*queries.ReservationListItem, error) {
	return s.arrivalsFn(ctx, day)
}

func (s *reportRepoStub) DeparturesOn(ctx context.Context, day time.Time) ([]*queries.ReservationListItem, error) {
	return s.departuresFn(ctx, day)
}

func (s *reportRepoStub) InHouseCountOn(ctx context.Context, day time.Time) (int, error) {
	return s.inHouseFn(ctx, day)
}

func (s *reportRepoStub) PendingVoucherCount(ctx context.Context) (int, error) {
	return s.pendingVouchersFn(ctx)
}

func TestReportBuild(t *testing.T) {
	now := time.Date(2025, 6, 5, 10, 30, 0, 0, time.UTC)

	t.Run("weekly report counts only nights inside the window", func(t *testing.T) {
		stub := &reportRepoStub{
			staysFn: func(_ context.Context, start, end time.Time) ([]*queries.ReportRow, error) {
				return []*queries.ReportRow{
					{
						ReservationID: uuid.New(),
						RoomNumber:    "1",
						CustomerName:  "Banda",
						CheckInDate:   date(t, "2025-06-03"),
						CheckOutDate:  date(t, "2025-06-06"),
						Nights:        3,
						Status:        "confirmed",
					},
					{
						// straddles the window start; only the in-window nights count
						ReservationID: uuid.New(),
						RoomNumber:    "2",
						CustomerName:  "Phiri",
						CheckInDate:   date(t, "2025-05-30"),
						CheckOutDate:  date(t, "2025-06-04"),
						Nights:        5,
						Status:        "confirmed",
					},
				}, nil
			},
			countRoomsFn: func(context.Context) (int, error) { return 30, nil },
		}

		report, err := queries.NewReportQueries(stub).Build(
			context.Background(), queries.ReportWeekly, date(t, "2025-06-04"), time.Time{}, time.Time{}, now)
		require.NoError(t, err)

		assert.Equal(t, date(t, "2025-06-02"), report.StartDate)
		assert.Equal(t, date(t, "2025-06-09"), report.EndDate)
		assert.Equal(t, 2, report.TotalReservations)
		// 3 nights from the first stay, 2 in-window nights from the second
		assert.Equal(t, 5, report.TotalNights)
		assert.Equal(t, 2, report.BookedRooms)
		assert.Equal(t, 30, report.TotalRooms)
		assert.InDelta(t, float64(2)/float64(30)*100, report.OccupancyPercent, 0.001)
		assert.Equal(t, now, report.GeneratedAt)
	})

	t.Run("occupancy counts each room once", func(t *testing.T) {
		stub := &reportRepoStub{
			staysFn: func(context.Context, time.Time, time.Time) ([]*queries.ReportRow, error) {
				return []*queries.ReportRow{
					{
						ReservationID: uuid.New(),
						RoomNumber:    "7",
						CustomerName:  "Banda",
						CheckInDate:   date(t, "2025-06-02"),
						CheckOutDate:  date(t, "2025-06-04"),
						Nights:        2,
						Status:        "confirmed",
					},
					{
						// same room again later in the week
						ReservationID: uuid.New(),
						RoomNumber:    "7",
						CustomerName:  "Phiri",
						CheckInDate:   date(t, "2025-06-05"),
						CheckOutDate:  date(t, "2025-06-08"),
						Nights:        3,
						Status:        "confirmed",
					},
				}, nil
			},
			countRoomsFn: func(context.Context) (int, error) { return 10, nil },
		}

		report, err := queries.NewReportQueries(stub).Build(
			context.Background(), queries.ReportWeekly, date(t, "2025-06-04"), time.Time{}, time.Time{}, now)
		require.NoError(t, err)

		assert.Equal(t, 2, report.TotalReservations)
		assert.Equal(t, 1, report.BookedRooms)
		assert.InDelta(t, 10.0, report.OccupancyPercent, 0.001)
	})

	t.Run("empty range yields zero occupancy", func(t *testing.T) {
		stub := &reportRepoStub{
			staysFn: func(context.Context, time.Time, time.Time) ([]*queries.ReportRow, error) {
				return nil, nil
			},
			countRoomsFn: func(context.Context) (int, error) { return 30, nil },
		}

		report, err := queries.NewReportQueries(stub).Build(
			context.Background(), queries.ReportDaily, date(t, "2025-06-04"), time.Time{}, time.Time{}, now)
		require.NoError(t, err)

		assert.Zero(t, report.TotalReservations)
		assert.Zero(t, report.OccupancyPercent)
	})
}

func TestOccupancy(t *testing.T) {
	stub := &reportRepoStub{
		countRoomsFn: func(context.Context) (int, error) { return 2, nil },
		stayRangesFn: func(context.Context, time.Time, time.Time) ([]*queries.StayRange, error) {
			roomA := uuid.New()
			roomB := uuid.New()
			return []*queries.StayRange{
				{ReservationID: uuid.New(), RoomID: roomA, CustomerName: "Banda",
					CheckInDate: mustDate("2025-06-01"), CheckOutDate: mustDate("2025-06-03")},
				{ReservationID: uuid.New(), RoomID: roomB, CustomerName: "Phiri",
					CheckInDate: mustDate("2025-06-02"), CheckOutDate: mustDate("2025-06-04")},
			}, nil
		},
	}

	report, err := queries.NewReportQueries(stub).Occupancy(
		context.Background(), mustDate("2025-06-01"), mustDate("2025-06-04"))
	if err != nil {
		t.Fatal(err)
	}

	require.Len(t, report.Days, 3)
	assert.Equal(t, 1, report.Days[0].OccupiedRooms) // only room A
	assert.Equal(t, 2, report.Days[1].OccupiedRooms) // both
	assert.Equal(t, 1, report.Days[2].OccupiedRooms) // only room B; A checked out
	assert.InDelta(t, 50.0, report.Days[0].OccupancyPercent, 0.001)
	assert.InDelta(t, (50.0+100.0+50.0)/3, report.AveragePercent, 0.001)
}

func mustDate(s string) time.Time {
	d, _ := time.Parse(time.DateOnly, s)
	return d
}

func TestDashboard(t *testing.T) {
	arrival := &queries.ReservationListItem{ID: uuid.New(), RoomNumber: "5", CustomerName: "Zulu"}

	stub := &reportRepoStub{
		arrivalsFn: func(_ context.Context, day time.Time) ([]*queries.ReservationListItem, error) {
			return []*queries.ReservationListItem{arrival}, nil
		},
		departuresFn: func(context.Context, time.Time) ([]*queries.ReservationListItem, error) {
			return nil, nil
		},
		inHouseFn:         func(context.Context, time.Time) (int, error) { return 12, nil },
		countRoomsFn:      func(context.Context) (int, error) { return 30, nil },
		pendingVouchersFn: func(context.Context) (int, error) { return 3, nil },
	}

	view, err := queries.NewReportQueries(stub).Dashboard(context.Background(), mustDate("2025-06-04"))
	require.NoError(t, err)

	assert.Equal(t, mustDate("2025-06-04"), view.Date)
	require.Len(t, view.Arrivals, 1)
	assert.Equal(t, "Zulu", view.Arrivals[0].CustomerName)
	assert.Empty(t, view.Departures)
	assert.Equal(t, 12, view.InHouseCount)
	assert.Equal(t, 18, view.AvailableRoomCount)
	assert.Equal(t, 3, view.PendingVoucherCount)
}
