package service

import (
	"context"
	"testing"
	"time"

	"github.com/Payphone-Digital/admin-panel/internal/dto"
	apperrors "github.com/Payphone-Digital/admin-panel/internal/errors"
	"github.com/Payphone-Digital/admin-panel/internal/model"
	"github.com/Payphone-Digital/admin-panel/internal/repository"
	"github.com/Payphone-Digital/admin-panel/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_LoginAuthenticateLogout(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateUser(t, db, "admin@example.com", "hunter2", model.RoleAdmin)
	svc := NewAuthService(repository.NewUserRepository(db), NewJWTService("secret", time.Hour), nil)
	ctx := context.Background()

	res, err := svc.Login(ctx, &dto.LoginRequest{Email: "Admin@Example.com", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "/admin/manage-users", res.Redirect)
	assert.Equal(t, 3600, res.ExpiresIn)
	assert.Equal(t, "admin@example.com", res.User.Email)

	session, err := svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.True(t, session.IsAdmin())

	require.NoError(t, svc.Logout(ctx, session))

	_, err = svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestAuthService_LoginFailures(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateUser(t, db, "user@example.com", "right", model.RoleUser)
	svc := NewAuthService(repository.NewUserRepository(db), NewJWTService("secret", time.Hour), nil)
	ctx := context.Background()

	_, err := svc.Login(ctx, &dto.LoginRequest{Email: "user@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "right"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	noJWT := NewAuthService(repository.NewUserRepository(db), nil, nil)
	_, err = noJWT.Login(ctx, &dto.LoginRequest{Email: "user@example.com", Password: "right"})
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
}

func TestAuthService_AuthenticateRejectsGarbage(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), NewJWTService("secret", time.Hour), nil)

	_, err := svc.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestAuthService_DeletedUserTokenRejected(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "user@example.com", "pw", model.RoleUser)
	repo := repository.NewUserRepository(db)
	svc := NewAuthService(repo, NewJWTService("secret", time.Hour), nil)
	ctx := context.Background()

	res, err := svc.Login(ctx, &dto.LoginRequest{Email: "user@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "/users/manage-posts", res.Redirect)

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err = svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestAuthService_AuthenticateUsesStoredRole(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "admin@example.com", "pw", model.RoleAdmin)
	repo := repository.NewUserRepository(db)
	svc := NewAuthService(repo, NewJWTService("secret", time.Hour), nil)
	ctx := context.Background()

	res, err := svc.Login(ctx, &dto.LoginRequest{Email: "admin@example.com", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, user.ID, repository.UserChanges{Role: model.RoleUser}))

	session, err := svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, session.Role)
	assert.False(t, session.IsAdmin())
}
