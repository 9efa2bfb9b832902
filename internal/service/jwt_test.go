package service

import (
	"testing"
	"time"

	"github.com/Payphone-Digital/admin-panel/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	name := "Ada"
	user := &model.User{ID: "u-1", Email: "ada@example.com", Name: &name, Role: model.RoleAdmin, TokenVersion: 3}

	token, expiresAt, err := svc.GenerateToken(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 2*time.Second)

	session, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", session.UserID)
	assert.Equal(t, "ada@example.com", session.Email)
	assert.Equal(t, "Ada", session.Name)
	assert.Equal(t, model.RoleAdmin, session.Role)
	assert.Equal(t, 3, session.TokenVersion)
	assert.True(t, session.IsAdmin())
}

func TestJWTService_Expired(t *testing.T) {
	svc := NewJWTService("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issued }

	token, _, err := svc.GenerateToken(&model.User{ID: "u", Email: "e@x.io", Role: model.RoleUser, TokenVersion: 1})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, _, err := NewJWTService("one", time.Hour).GenerateToken(&model.User{ID: "u", Email: "e@x.io", Role: model.RoleUser, TokenVersion: 1})
	require.NoError(t, err)

	_, err = NewJWTService("two", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestJWTService_MissingClaims(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenClaimMissing)
}

func TestLandingPath(t *testing.T) {
	assert.Equal(t, "/admin/manage-users", LandingPath(model.RoleAdmin))
	assert.Equal(t, "/users/manage-posts", LandingPath(model.RoleUser))
}
