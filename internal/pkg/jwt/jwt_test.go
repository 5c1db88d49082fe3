//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"lodgekeeper/internal/domain/user"
	"lodgekeeper/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *jwt.Service {
	return jwt.NewService("test-secret", 15*time.Minute, 168*time.Hour)
}

func TestGenerateAndValidate(t *testing.T) {
	service := newTestService()
	userID := uuid.New()

	t.Run("access token round trip", func(t *testing.T) {
		token, err := service.GenerateAccessToken(userID, user.RoleOperator)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, user.RoleOperator.String(), claims.Role)
		assert.Equal(t, jwt.TokenTypeAccess, claims.TokenType)
	})

	t.Run("refresh token carries refresh type", func(t *testing.T) {
		token, err := service.GenerateRefreshToken(userID, user.RoleAdmin)
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, jwt.TokenTypeRefresh, claims.TokenType)
	})
}

func TestValidateToken_Rejections(t *testing.T) {
	service := newTestService()
	userID := uuid.New()

	t.Run("garbage token", func(t *testing.T) {
		_, err := service.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := jwt.NewService("other-secret", time.Minute, time.Hour)
		token, err := other.GenerateAccessToken(userID, user.RoleViewer)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		shortLived := jwt.NewService("test-secret", -time.Minute, -time.Minute)
		token, err := shortLived.GenerateAccessToken(userID, user.RoleViewer)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})
}
