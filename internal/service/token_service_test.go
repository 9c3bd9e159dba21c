package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-app/internal/core/domain"
)

const testJWTSecret = "test-jwt-secret-key-for-unit-tests"

func testUser(role domain.UserRole) *domain.User {
	return &domain.User{
		Entity:   domain.Entity{ID: uuid.New(), CreatedAt: time.Now()},
		Username: "analyst1",
		Email:    "analyst1@example.com",
		Role:     role,
		IsActive: true,
	}
}

func TestJWTTokenService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTTokenService(testJWTSecret, time.Hour, "credit-app")
	user := testUser(domain.RoleAnalyst)

	token, expiresAt, err := svc.Generate(user)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "analyst1", claims.Username)
	assert.Equal(t, "analyst1@example.com", claims.Email)
	assert.Equal(t, domain.RoleAnalyst, claims.Role)
}

func TestJWTTokenService_Rejects(t *testing.T) {
	user := testUser(domain.RoleUser)
	good := NewJWTTokenService(testJWTSecret, time.Hour, "credit-app")

	expired, _, err := NewJWTTokenService(testJWTSecret, -time.Hour, "credit-app").Generate(user)
	require.NoError(t, err)
	otherSecret, _, err := NewJWTTokenService("another-secret", time.Hour, "credit-app").Generate(user)
	require.NoError(t, err)
	otherIssuer, _, err := NewJWTTokenService(testJWTSecret, time.Hour, "someone-else").Generate(user)
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": user.ID.String()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expired},
		{"wrong secret", otherSecret},
		{"wrong issuer", otherIssuer},
		{"alg none", none},
		{"garbage", "not.a.valid.jwt"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := good.Validate(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestJWTTokenService_BadSubject(t *testing.T) {
	svc := NewJWTTokenService(testJWTSecret, time.Hour, "credit-app")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "not-a-uuid",
		"iss": "credit-app",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}
