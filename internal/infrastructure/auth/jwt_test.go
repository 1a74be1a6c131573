package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-at-least-32-characters"

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                testSecret,
		Issuer:                "localmarket-test",
		AccessTokenExpiration: time.Hour,
	})
}

func signRaw(t *testing.T, claims *Claims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, expiresAt, err := svc.IssueAccessToken(userID, "Ana")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	got, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)
	assert.Equal(t, "Ana", claims.Name)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()
	now := time.Now()

	base := func() *Claims {
		return &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "localmarket-test",
				Subject:   userID.String(),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(now),
			},
			UserID:    userID.String(),
			TokenType: TokenTypeAccess,
		}
	}

	tests := []struct {
		name  string
		token func() string
		want  error
	}{
		{"garbage", func() string { return "not-a-token" }, ErrInvalidToken},
		{"wrong secret", func() string { return signRaw(t, base(), "another-secret-that-is-32-characters!!") }, ErrInvalidToken},
		{"expired", func() string {
			c := base()
			c.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))
			return signRaw(t, c, testSecret)
		}, ErrExpiredToken},
		{"not yet valid", func() string {
			c := base()
			c.NotBefore = jwt.NewNumericDate(now.Add(time.Hour))
			return signRaw(t, c, testSecret)
		}, ErrTokenNotYetValid},
		{"wrong issuer", func() string {
			c := base()
			c.Issuer = "someone-else"
			return signRaw(t, c, testSecret)
		}, ErrInvalidToken},
		{"refresh token", func() string {
			c := base()
			c.TokenType = "refresh"
			return signRaw(t, c, testSecret)
		}, ErrInvalidTokenType},
		{"no user", func() string {
			c := base()
			c.UserID, c.Subject = "", ""
			return signRaw(t, c, testSecret)
		}, ErrMissingUserID},
		{"non uuid user", func() string {
			c := base()
			c.UserID = "ana"
			return signRaw(t, c, testSecret)
		}, ErrInvalidClaims},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(tt.token())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestJWTService_SubjectFallback(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()
	token := signRaw(t, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "localmarket-test",
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		TokenType: TokenTypeAccess,
	}, testSecret)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
}
