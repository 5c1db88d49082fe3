//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"lodgekeeper/internal/domain/user"
	"lodgekeeper/internal/handler/dto/request"
	"lodgekeeper/internal/handler/dto/response"
	"lodgekeeper/tests/common/authtest"
	"lodgekeeper/tests/common/dbtest"
	"lodgekeeper/tests/common/httptest"
	"lodgekeeper/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL   = "/api/auth/login"
	refreshURL = "/api/auth/refresh"
	logoutURL  = "/api/auth/logout"
	meURL      = "/api/auth/me"
)

type AuthSuite struct {
	e2e.SharedSuite
	jwtHelper *authtest.JWTHelper
}

func (s *AuthSuite) SetupSuite() {
	s.SetupSharedSuite(s.T())
	s.jwtHelper = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *AuthSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(AuthSuite))
}

func (s *AuthSuite) TestLogin() {
	s.Run("valid credentials set token cookies", func() {
		t := s.T()
		userID := dbtest.CreateTestUser(t, s.DB, "frontdesk@ulendolodge.com", string(user.RoleOperator))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "frontdesk@ulendolodge.com", Password: "password123"}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var body response.LoginResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
		require.Equal(t, userID, body.UserID)

		access := httptest.ExtractCookie(w, "access_token")
		refresh := httptest.ExtractCookie(w, "refresh_token")
		require.NotNil(t, access)
		require.NotNil(t, refresh)
		require.NotEmpty(t, access.Value)
		require.NotEmpty(t, refresh.Value)
		require.True(t, access.HttpOnly, "access token cookie must be HttpOnly")
		require.True(t, refresh.HttpOnly, "refresh token cookie must be HttpOnly")
	})

	s.Run("wrong password is unauthorized", func() {
		t := s.T()
		dbtest.CreateTestUser(t, s.DB, "frontdesk@ulendolodge.com", string(user.RoleOperator))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "frontdesk@ulendolodge.com", Password: "wrongpassword"}, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid email or password")
	})

	s.Run("unknown email is unauthorized", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "nobody@ulendolodge.com", Password: "password123"}, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid email or password")
	})
}

func (s *AuthSuite) TestMe() {
	s.Run("returns the authenticated user", func() {
		t := s.T()
		userID := dbtest.CreateTestUser(t, s.DB, "frontdesk@ulendolodge.com", string(user.RoleOperator))
		token := authtest.LoginUser(t, s.Router, "frontdesk@ulendolodge.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var me response.UserResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &me))
		require.Equal(t, userID, me.ID)
		require.Equal(t, "frontdesk@ulendolodge.com", me.Email)
		require.Equal(t, string(user.RoleOperator), me.Role)
	})

	s.Run("missing token is unauthorized", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("expired token is unauthorized", func() {
		t := s.T()
		token := s.jwtHelper.CreateExpiredToken(t, uuid.New(), user.RoleOperator)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *AuthSuite) TestRefreshAndLogout() {
	s.Run("refresh rotates the token pair", func() {
		t := s.T()
		dbtest.CreateTestUser(t, s.DB, "frontdesk@ulendolodge.com", string(user.RoleOperator))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "frontdesk@ulendolodge.com", Password: "password123"}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		cookies := w.Result().Cookies()

		w = httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, refreshURL, nil, cookies)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		access := httptest.ExtractCookie(w, "access_token")
		require.NotNil(t, access, "refresh must set a new access token cookie")
		require.NotEmpty(t, access.Value)
	})

	s.Run("refresh without a token is unauthorized", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("logout clears token cookies", func() {
		t := s.T()
		dbtest.CreateTestUser(t, s.DB, "frontdesk@ulendolodge.com", string(user.RoleOperator))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "frontdesk@ulendolodge.com", Password: "password123"}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		cookies := w.Result().Cookies()

		w = httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, logoutURL, nil, cookies)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		access := httptest.ExtractCookie(w, "access_token")
		require.NotNil(t, access)
		require.Empty(t, access.Value, "logout must clear the access token cookie")
	})
}
