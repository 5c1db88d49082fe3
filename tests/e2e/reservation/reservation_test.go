//go:build e2e

package reservation_test

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"lodgekeeper/internal/domain/user"
	"lodgekeeper/internal/handler/dto/response"
	"lodgekeeper/tests/common/authtest"
	"lodgekeeper/tests/common/builder"
	"lodgekeeper/tests/common/dbtest"
	"lodgekeeper/tests/common/httptest"
	"lodgekeeper/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL = "/api/reservations"
	reservationURL  = "/api/reservations/%s"
	availabilityURL = "/api/rooms/availability?start_date=%s&end_date=%s"
	operatorEmail   = "operator@ulendolodge.com"
	viewerEmail     = "frontdesk@ulendolodge.com"
)

type conflictResponse struct {
	Error     string                    `json:"error"`
	Conflicts []response.ConflictDetail `json:"conflicts"`
}

type ReservationSuite struct {
	e2e.SharedSuite
}

func (s *ReservationSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

func (s *ReservationSuite) operatorToken(t *testing.T) string {
	t.Helper()
	return authtest.CreateAndLogin(t, s.DB, s.Router, operatorEmail, string(user.RoleOperator))
}

// =============================================================================
// TestCreateReservation - booking admission through the full stack
// =============================================================================

func (s *ReservationSuite) TestCreateReservation() {
	s.Run("operator books a free room", func() {
		t := s.T()
		token := s.operatorToken(t)
		roomID := dbtest.RoomID(t, s.DB, "12")

		reqBody := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) { b.RoomID = roomID }).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.NotEqual(t, uuid.Nil, created.ID)
		require.Equal(t, "confirmed", created.Status)
		require.Equal(t, "12", created.RoomNumber)
		require.Equal(t, 4, created.Nights)

		// A subsequent read returns the same reservation
		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf(reservationURL, created.ID), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var fetched response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &fetched))
		if diff := cmp.Diff(created, fetched,
			cmpopts.IgnoreFields(response.ReservationResponse{}, "CreatedAt", "UpdatedAt")); diff != "" {
			t.Errorf("created and fetched reservation differ (-created +fetched):\n%s", diff)
		}
	})

	s.Run("overlapping stay is rejected with conflict details", func() {
		t := s.T()
		token := s.operatorToken(t)
		roomID := dbtest.RoomID(t, s.DB, "7")

		first := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) {
				b.RoomID = roomID
				b.CustomerName = "Phiri Mwamba"
			}).
			BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, first, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		// Same room, dates inside the held range
		second := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) {
				b.RoomID = roomID
				b.CustomerName = "Tembo Lungu"
				b.CheckInDate = time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
				b.CheckOutDate = time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
			}).
			BuildCreateRequestDTO()
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, second, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		var conflict conflictResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &conflict))
		require.Len(t, conflict.Conflicts, 1)

		want := []response.ConflictDetail{{
			CustomerName: "Phiri Mwamba",
			CheckInDate:  "2025-06-01",
			CheckOutDate: "2025-06-05",
		}}
		if diff := cmp.Diff(want, conflict.Conflicts); diff != "" {
			t.Errorf("conflict details mismatch (-want +got):\n%s", diff)
		}

		require.Equal(t, 1, dbtest.CountReservations(t, s.DB, roomID, "confirmed"))
	})

	s.Run("back-to-back stays share a changeover day", func() {
		t := s.T()
		token := s.operatorToken(t)
		roomID := dbtest.RoomID(t, s.DB, "3")

		first := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) { b.RoomID = roomID }).
			BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, first, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		// Check-in on the previous guest's check-out day
		second := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) {
				b.RoomID = roomID
				b.CustomerName = "Mwansa Kapwepwe"
				b.CheckInDate = time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
				b.CheckOutDate = time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
			}).
			BuildCreateRequestDTO()
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, second, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		require.Equal(t, 2, dbtest.CountReservations(t, s.DB, roomID, "confirmed"))
	})

	s.Run("viewer cannot create reservations", func() {
		t := s.T()
		token := authtest.CreateAndLogin(t, s.DB, s.Router, viewerEmail, string(user.RoleViewer))
		roomID := dbtest.RoomID(t, s.DB, "1")

		reqBody := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) { b.RoomID = roomID }).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, token)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("inverted date range is rejected", func() {
		t := s.T()
		token := s.operatorToken(t)
		roomID := dbtest.RoomID(t, s.DB, "1")

		reqBody := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) {
				b.RoomID = roomID
				b.CheckInDate = time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
				b.CheckOutDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
			}).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, token)
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "Check-out date must be after check-in date")
	})
}

// =============================================================================
// TestCancelReservation - cancellation releases held dates
// =============================================================================

func (s *ReservationSuite) TestCancelReservation() {
	s.Run("cancelled dates can be rebooked immediately", func() {
		t := s.T()
		token := s.operatorToken(t)
		roomID := dbtest.RoomID(t, s.DB, "20")

		first := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) { b.RoomID = roomID }).
			BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, first, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		// Held dates block a second booking
		second := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) {
				b.RoomID = roomID
				b.CustomerName = "Zulu Bwalya"
			}).
			BuildCreateRequestDTO()
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, second, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete,
			fmt.Sprintf(reservationURL, created.ID), nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		// Cancellation frees the range for the same dates
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, second, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		require.Equal(t, 1, dbtest.CountReservations(t, s.DB, roomID, "confirmed"))
		require.Equal(t, 1, dbtest.CountReservations(t, s.DB, roomID, "cancelled"))
	})

	s.Run("cancelling twice conflicts", func() {
		t := s.T()
		token := s.operatorToken(t)
		roomID := dbtest.RoomID(t, s.DB, "20")

		reqBody := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) { b.RoomID = roomID }).
			BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		url := fmt.Sprintf(reservationURL, created.ID)
		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, url, nil, token)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, url, nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already cancelled")
	})
}

// =============================================================================
// TestConcurrentBooking - racing admissions admit exactly one
// =============================================================================

func (s *ReservationSuite) TestConcurrentBooking() {
	s.Run("simultaneous bookings for the same room yield one winner", func() {
		t := s.T()
		token := s.operatorToken(t)
		roomID := dbtest.RoomID(t, s.DB, "14")

		reqBody := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) { b.RoomID = roomID }).
			BuildCreateRequestDTO()

		codes := make(chan int, 2)
		var wg sync.WaitGroup
		for range 2 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, token)
				codes <- w.Code
			}()
		}
		wg.Wait()
		close(codes)

		var got []int
		for code := range codes {
			got = append(got, code)
		}
		sort.Ints(got)
		require.Equal(t, []int{http.StatusCreated, http.StatusConflict}, got)
		require.Equal(t, 1, dbtest.CountReservations(t, s.DB, roomID, "confirmed"))
	})
}

// =============================================================================
// TestIdempotentBooking - retried creates replay instead of double booking
// =============================================================================

func (s *ReservationSuite) TestIdempotentBooking() {
	s.Run("retrying with the same key replays the reservation", func() {
		t := s.T()
		token := s.operatorToken(t)
		roomID := dbtest.RoomID(t, s.DB, "16")
		headers := map[string]string{"Idempotency-Key": uuid.NewString()}

		reqBody := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) { b.RoomID = roomID }).
			BuildCreateRequestDTO()

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL, reqBody, token, headers)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var first response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &first))

		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL, reqBody, token, headers)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var second response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &second))

		require.Equal(t, first.ID, second.ID)
		require.Equal(t, 1, dbtest.CountReservations(t, s.DB, roomID, "confirmed"))
	})

	s.Run("reusing the key for a different request is rejected", func() {
		t := s.T()
		token := s.operatorToken(t)
		roomID := dbtest.RoomID(t, s.DB, "16")
		headers := map[string]string{"Idempotency-Key": uuid.NewString()}

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL,
			builder.NewReservationBuilder().
				With(func(b *builder.ReservationBuilder) { b.RoomID = roomID }).
				BuildCreateRequestDTO(), token, headers)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL,
			builder.NewReservationBuilder().
				With(func(b *builder.ReservationBuilder) {
					b.RoomID = roomID
					b.CustomerName = "Zulu Bwalya"
					b.CheckInDate = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
					b.CheckOutDate = time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC)
				}).
				BuildCreateRequestDTO(), token, headers)
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity,
			"Idempotency key was already used for a different request")
	})
}

// =============================================================================
// TestUpdateReservation - edits re-enter admission
// =============================================================================

func (s *ReservationSuite) TestUpdateReservation() {
	s.Run("moving onto another booking conflicts", func() {
		t := s.T()
		token := s.operatorToken(t)
		roomID := dbtest.RoomID(t, s.DB, "9")

		blocker := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) {
				b.RoomID = roomID
				b.CustomerName = "Phiri Mwamba"
				b.CheckInDate = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
				b.CheckOutDate = time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
			})
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			blocker.BuildCreateRequestDTO(), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		movable := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) { b.RoomID = roomID })
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			movable.BuildCreateRequestDTO(), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		// Shift the stay into the blocker's range
		update := movable.With(func(b *builder.ReservationBuilder) {
			b.CheckInDate = time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
			b.CheckOutDate = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
		}).BuildUpdateRequestDTO()

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf(reservationURL, created.ID), update, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		var conflict conflictResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &conflict))
		require.Len(t, conflict.Conflicts, 1)
		require.Equal(t, "Phiri Mwamba", conflict.Conflicts[0].CustomerName)
	})

	s.Run("moving to another room frees the old one", func() {
		t := s.T()
		token := s.operatorToken(t)
		oldRoomID := dbtest.RoomID(t, s.DB, "11")
		newRoomID := dbtest.RoomID(t, s.DB, "12")

		stay := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) { b.RoomID = oldRoomID })
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			stay.BuildCreateRequestDTO(), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, "11", created.RoomNumber)

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf(reservationURL, created.ID),
			map[string]string{"room_id": newRoomID.String()}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var moved response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &moved))
		require.Equal(t, "12", moved.RoomNumber)

		// The old room takes the same dates again, the new room refuses them
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			stay.BuildCreateRequestDTO(), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			stay.With(func(b *builder.ReservationBuilder) { b.RoomID = newRoomID }).
				BuildCreateRequestDTO(), token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("renaming the guest does not touch availability", func() {
		t := s.T()
		token := s.operatorToken(t)
		roomID := dbtest.RoomID(t, s.DB, "9")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			builder.NewReservationBuilder().
				With(func(b *builder.ReservationBuilder) { b.RoomID = roomID }).
				BuildCreateRequestDTO(), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		name := "Banda C. (corrected)"
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf(reservationURL, created.ID),
			map[string]string{"customer_name": name}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &updated))
		require.Equal(t, name, updated.CustomerName)
		require.Equal(t, created.CheckInDate, updated.CheckInDate)
		require.Equal(t, created.CheckOutDate, updated.CheckOutDate)
	})
}

// =============================================================================
// TestAvailabilityGrid - occupancy reflects confirmed stays
// =============================================================================

func (s *ReservationSuite) TestAvailabilityGrid() {
	type dayCell struct {
		Date         string  `json:"date"`
		Occupied     bool    `json:"occupied"`
		CustomerName *string `json:"customer_name,omitempty"`
	}
	type roomRow struct {
		Room struct {
			RoomNumber string `json:"room_number"`
		} `json:"room"`
		Days []dayCell `json:"days"`
	}
	type grid struct {
		Rooms []roomRow `json:"rooms"`
	}

	s.Run("occupied nights are marked, check-out day is free", func() {
		t := s.T()
		token := s.operatorToken(t)
		roomID := dbtest.RoomID(t, s.DB, "5")

		reqBody := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) {
				b.RoomID = roomID
				b.CheckInDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
				b.CheckOutDate = time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
			}).
			BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf(availabilityURL, "2025-06-01", "2025-06-04"), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var g grid
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &g))
		require.Len(t, g.Rooms, 30)

		var row *roomRow
		for i := range g.Rooms {
			if g.Rooms[i].Room.RoomNumber == "5" {
				row = &g.Rooms[i]
				break
			}
		}
		require.NotNil(t, row, "room 5 missing from grid")

		var got []bool
		for _, d := range row.Days {
			got = append(got, d.Occupied)
		}
		if diff := cmp.Diff([]bool{true, true, false}, got); diff != "" {
			t.Errorf("occupancy mismatch for room 5 (-want +got):\n%s", diff)
		}
		require.NotNil(t, row.Days[0].CustomerName)
		require.Equal(t, "Banda Chileshe", *row.Days[0].CustomerName)
	})

	s.Run("range wider than the window cap is rejected", func() {
		t := s.T()
		token := s.operatorToken(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf(availabilityURL, "2025-01-01", "2025-12-31"), nil, token)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})
}
