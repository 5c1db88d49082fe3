//go:build unit

package api_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"lodgekeeper/internal/domain/reservation"
	"lodgekeeper/internal/handler"
	"lodgekeeper/internal/handler/api"
	resdto "lodgekeeper/internal/handler/dto/response"
	"lodgekeeper/internal/usecase/commands"
	"lodgekeeper/internal/usecase/queries"
	"lodgekeeper/tests/common/builder"
	"lodgekeeper/tests/common/httptest"
	"lodgekeeper/tests/common/testutil"
	commandsmock "lodgekeeper/tests/mock/commands"
	queriesmock "lodgekeeper/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
	operatorID   uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handler.RegisterValidators()
	s.router = gin.New()

	s.operatorID = uuid.New()
	s.router.Use(func(c *gin.Context) {
		c.Set("user_id", s.operatorID)
	})

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/reservations", s.handler.CreateReservation)
	s.router.GET("/reservations", s.handler.SearchReservations)
	s.router.GET("/reservations/:id", s.handler.GetReservation)
	s.router.PATCH("/reservations/:id", s.handler.UpdateReservation)
	s.router.DELETE("/reservations/:id", s.handler.CancelReservation)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	url := "/reservations"

	b := builder.NewReservationBuilder()
	reqBody := b.BuildCreateRequestDTO()
	returnView := b.BuildView()

	s.Run("success: returns 201 Created with the booked reservation", func() {
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), reqBody, s.operatorID, gomock.Nil()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal(returnView.RoomNumber, response.RoomNumber)
		s.Equal(returnView.CheckInDate.Format(time.DateOnly), response.CheckInDate)
	})

	s.Run("success: Idempotency-Key header reaches the command", func() {
		key := uuid.New()
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), reqBody, s.operatorID, &key).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "",
			map[string]string{"Idempotency-Key": key.String()})
		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("error: 400 Bad Request for a malformed Idempotency-Key header", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "",
			map[string]string{"Idempotency-Key": "not-a-uuid"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid Idempotency-Key header")
	})

	s.Run("error: 409 Conflict with conflict details when the room is taken", func() {
		stay, err := reservation.NewStayPeriod(
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		)
		s.Require().NoError(err)

		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), reqBody, s.operatorID, gomock.Nil()).
			Return(nil, &commands.RoomUnavailableError{
				RoomID: reqBody.RoomID,
				Stay:   stay,
				Conflicts: []reservation.Hold{
					{ReservationID: uuid.New(), CustomerName: "Phiri Mwamba", Stay: stay},
				},
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		s.Equal(http.StatusConflict, rec.Code)
		s.Contains(rec.Body.String(), "conflicts")
		s.Contains(rec.Body.String(), "Phiri Mwamba")
	})

	s.Run("error: 404 Not Found when the room does not exist", func() {
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), reqBody, s.operatorID, gomock.Nil()).
			Return(nil, commands.ErrRoomNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Room not found")
	})

	s.Run("error: 422 Unprocessable Entity for an inverted date range", func() {
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any(), s.operatorID, gomock.Nil()).
			Return(nil, commands.ErrInvalidDateRange).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Check-out date must be after check-in date")
	})

	s.Run("error: 400 Bad Request on malformed body", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing room_id", mutate: testutil.Field("room_id", nil)},
			{name: "missing customer_name", mutate: testutil.Field("customer_name", nil)},
			{name: "bad check_in_date", mutate: testutil.Field("check_in_date", "01/06/2025")},
			{name: "missing check_out_date", mutate: testutil.Field("check_out_date", nil)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				s.Equal(http.StatusBadRequest, rec.Code)
			})
		}
	})
}

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	b := builder.NewReservationBuilder()
	returnView := b.BuildView()

	s.Run("success: returns 200 OK with the reservation", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+returnView.ID.String(), nil, "")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnView.CustomerName, response.CustomerName)
		s.Equal(returnView.Nights, response.Nights)
	})

	s.Run("error: 404 Not Found for an unknown reservation", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(nil, queries.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})

	s.Run("error: 400 Bad Request for a malformed ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestSearchReservations() {
	b := builder.NewReservationBuilder()

	s.Run("success: returns 200 OK with a page of results", func() {
		s.mockQueries.EXPECT().Search(gomock.Any(), gomock.Any(), 1, 20).
			Return(b.BuildPage(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?customer_name=Banda", nil, "")

		var response resdto.ReservationPageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Items, 1)
		s.Equal(int64(1), response.TotalCount)
	})

	s.Run("error: 400 Bad Request for an invalid status filter", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?status=pending", nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestUpdateReservation() {
	b := builder.NewReservationBuilder()
	reqBody := b.BuildUpdateRequestDTO()
	returnView := b.BuildView()

	s.Run("success: returns 200 OK with the updated reservation", func() {
		s.mockCommands.EXPECT().UpdateReservation(gomock.Any(), returnView.ID, reqBody).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/reservations/"+returnView.ID.String(), reqBody, "")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnView.ID, response.ID)
	})

	s.Run("error: 409 Conflict when editing a cancelled reservation", func() {
		s.mockCommands.EXPECT().UpdateReservation(gomock.Any(), returnView.ID, gomock.Any()).
			Return(nil, commands.ErrReservationCancelled).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/reservations/"+returnView.ID.String(), reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "cancelled")
	})
}

func (s *ReservationHandlerTestSuite) TestCancelReservation() {
	id := uuid.New()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().CancelReservation(gomock.Any(), id).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reservations/"+id.String(), nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 Conflict for a second cancel", func() {
		s.mockCommands.EXPECT().CancelReservation(gomock.Any(), id).
			Return(commands.ErrAlreadyCancelled).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reservations/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already cancelled")
	})

	s.Run("error: 404 Not Found for an unknown reservation", func() {
		s.mockCommands.EXPECT().CancelReservation(gomock.Any(), id).
			Return(fmt.Errorf("load: %w", commands.ErrReservationNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reservations/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}
