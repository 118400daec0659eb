package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars!!",
		AccessTokenExpiration: time.Hour,
		Issuer:                "hotelops-test",
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()
	hotelID := uuid.New()

	t.Run("round trip with hotel scope", func(t *testing.T) {
		token, err := svc.GenerateAccessToken(GenerateTokenInput{
			UserID:   userID,
			Username: "asha",
			Role:     shared.RoleHotelManager,
			HotelID:  &hotelID,
		})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", token.TokenType)

		claims, err := svc.ValidateAccessToken(token.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "asha", claims.Username)
		assert.Equal(t, string(shared.RoleHotelManager), claims.Role)
		assert.Equal(t, hotelID.String(), claims.HotelID)
	})

	t.Run("round trip without hotel scope", func(t *testing.T) {
		token, err := svc.GenerateAccessToken(GenerateTokenInput{
			UserID:   userID,
			Username: "ravi",
			Role:     shared.RoleStoreManager,
		})
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(token.AccessToken)
		require.NoError(t, err)
		assert.Empty(t, claims.HotelID)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects token signed with a different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "another-secret-key-also-32-chars!!!",
			AccessTokenExpiration: time.Hour,
			Issuer:                "hotelops-test",
		})
		token, err := other.GenerateAccessToken(GenerateTokenInput{
			UserID: userID,
			Role:   shared.RoleManagingDirector,
		})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := NewJWTService(config.JWTConfig{
			Secret:                "test-secret-key-at-least-32-chars!!",
			AccessTokenExpiration: -time.Minute,
			Issuer:                "hotelops-test",
		})
		token, err := expired.GenerateAccessToken(GenerateTokenInput{
			UserID: userID,
			Role:   shared.RoleManagingDirector,
		})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestClaimsActor(t *testing.T) {
	userID := uuid.New()
	hotelID := uuid.New()

	t.Run("hotel manager carries hotel binding", func(t *testing.T) {
		claims := &Claims{
			UserID:  userID.String(),
			Role:    string(shared.RoleHotelManager),
			HotelID: hotelID.String(),
		}

		actor, err := claims.Actor()
		require.NoError(t, err)
		assert.Equal(t, userID, actor.ID)
		assert.Equal(t, shared.RoleHotelManager, actor.Role)
		require.NotNil(t, actor.HotelID)
		assert.Equal(t, hotelID, *actor.HotelID)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		claims := &Claims{UserID: userID.String(), Role: "accountant"}

		_, err := claims.Actor()
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("rejects malformed user id", func(t *testing.T) {
		claims := &Claims{UserID: "nope", Role: string(shared.RoleStoreManager)}

		_, err := claims.Actor()
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})
}
