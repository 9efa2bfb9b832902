package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Payphone-Digital/admin-panel/internal/dto"
	apperrors "github.com/Payphone-Digital/admin-panel/internal/errors"
	"github.com/Payphone-Digital/admin-panel/internal/repository"
	ctxutil "github.com/Payphone-Digital/admin-panel/pkg/context"
	"github.com/Payphone-Digital/admin-panel/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	repoUser   *repository.UserRepository
	jwtService *JWTService
	cache      *UserCache
}

func NewAuthService(repo *repository.UserRepository, jwtService *JWTService, cache *UserCache) *AuthService {
	return &AuthService{
		repoUser:   repo,
		jwtService: jwtService,
		cache:      cache,
	}
}

// Login checks credentials and issues a session token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Login")

	email := strings.ToLower(strings.TrimSpace(req.Email))

	logger.InfoWithContext(ctx, "User login attempt").
		String("email", email).
		Log()

	if s.jwtService == nil {
		logger.ErrorWithContext(ctx, "JWT service not initialized").Log()
		return nil, apperrors.ErrServiceUnavailable
	}

	user, err := s.repoUser.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.LogAuth(email, "login", false)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.LogAuth(email, "login", false)
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to generate JWT token").
			String("email", email).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.LogAuth(email, "login", true)

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int(s.jwtService.ttl.Seconds()),
		User:      dto.ToUserResponse(*user),
		ExpiresAt: expiresAt,
		Redirect:  LandingPath(user.Role),
	}, nil
}

// Authenticate turns a bearer token into a session. Tokens issued before the
// user's last logout are rejected, and the role is taken from the store rather
// than the token so role changes apply immediately.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*Session, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Authenticate")

	if s.jwtService == nil {
		return nil, apperrors.ErrServiceUnavailable
	}

	session, err := s.jwtService.ValidateToken(tokenString)
	if err != nil {
		logger.DebugWithContext(ctx, "Token rejected").
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInvalidToken, err)
	}

	version, role, err := s.repoUser.GetAuthState(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if version != session.TokenVersion {
		logger.InfoWithContext(ctx, "Revoked token presented").
			String("target_user_id", session.UserID).
			Int("token_version", session.TokenVersion).
			Int("current_version", version).
			Log()
		return nil, apperrors.ErrInvalidToken
	}

	if role != session.Role {
		logger.InfoWithContext(ctx, "Session role refreshed").
			String("target_user_id", session.UserID).
			String("token_role", session.Role).
			String("role", role).
			Log()
		session.Role = role
	}

	return session, nil
}

// Logout revokes every token issued to the session user
func (s *AuthService) Logout(ctx context.Context, session *Session) error {
	ctx = ctxutil.WithFunction(ctx, "service", "Logout")

	if err := requireSession(session); err != nil {
		return err
	}

	if err := s.repoUser.IncrementTokenVersion(ctx, session.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return userNotFound(session.UserID)
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.cache.Invalidate(ctx, session.UserID)

	logger.LogAuth(session.Email, "logout", true)
	return nil
}
