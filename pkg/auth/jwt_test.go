package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateToken(t *testing.T) {
	service := NewJWTService("test-secret-key-min-32-characters-long", "test-issuer", time.Hour)

	token, err := service.GenerateToken(42, "test@example.com")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestJWTService_ValidateToken(t *testing.T) {
	tests := []struct {
		name      string
		secretKey string
		userID    int64
		email     string
		duration  time.Duration
		wantErr   error
	}{
		{
			name:      "valid token",
			secretKey: "test-secret-key-min-32-characters-long",
			userID:    7,
			email:     "test@example.com",
			duration:  time.Hour,
			wantErr:   nil,
		},
		{
			name:      "expired token",
			secretKey: "test-secret-key-min-32-characters-long",
			userID:    7,
			email:     "test@example.com",
			duration:  -time.Hour, // Already expired
			wantErr:   ErrExpiredToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewJWTService(tt.secretKey, "test-issuer", tt.duration)

			token, err := service.GenerateToken(tt.userID, tt.email)
			require.NoError(t, err)

			claims, err := service.ValidateToken(token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.userID, claims.UserID)
			assert.Equal(t, tt.email, claims.Email)
			assert.Equal(t, "7", claims.Subject)
			assert.Equal(t, "test-issuer", claims.Issuer)
		})
	}
}

func TestJWTService_ValidateToken_InvalidSecret(t *testing.T) {
	service1 := NewJWTService("secret-key-1-min-32-characters-long!!!", "issuer", time.Hour)
	service2 := NewJWTService("secret-key-2-min-32-characters-long!!!", "issuer", time.Hour)

	token, err := service1.GenerateToken(9, "test@example.com")
	require.NoError(t, err)

	_, err = service2.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateToken_Garbage(t *testing.T) {
	service := NewJWTService("test-secret-key-min-32-characters-long", "issuer", time.Hour)

	_, err := service.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RefreshToken(t *testing.T) {
	service := NewJWTService("test-secret-key-min-32-characters-long", "issuer", time.Hour)

	token, err := service.GenerateToken(11, "test@example.com")
	require.NoError(t, err)

	refreshed, err := service.RefreshToken(token)
	require.NoError(t, err)

	claims, err := service.ValidateToken(refreshed)
	require.NoError(t, err)
	assert.Equal(t, int64(11), claims.UserID)
}
