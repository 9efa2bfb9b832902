package middleware

import (
	"net/http"
	"strings"

	"github.com/Payphone-Digital/admin-panel/internal/constants"
	apperrors "github.com/Payphone-Digital/admin-panel/internal/errors"
	"github.com/Payphone-Digital/admin-panel/internal/service"
	ctxutil "github.com/Payphone-Digital/admin-panel/pkg/context"
	"github.com/Payphone-Digital/admin-panel/pkg/logger"
	"github.com/gin-gonic/gin"
)

type JWTMiddleware struct {
	authService *service.AuthService
}

func NewJWTMiddleware(authService *service.AuthService) *JWTMiddleware {
	return &JWTMiddleware{authService: authService}
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, constants.BuildCodedErrorResponse(
		apperrors.ErrUnauthorized.Code, constants.MsgUnauthorized, nil,
	))
}

// RequireAuth validates the bearer token and stores the session on the request
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.WithFunction(c.Request.Context(), "middleware", "RequireAuth")

		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			logger.WarnWithContext(ctx, "Missing Authorization header").
				String("path", c.Request.URL.Path).
				String("method", c.Request.Method).
				Log()
			unauthorized(c)
			return
		}

		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || scheme != constants.BearerScheme || tokenString == "" {
			logger.WarnWithContext(ctx, "Invalid Authorization header format").
				String("path", c.Request.URL.Path).
				String("method", c.Request.Method).
				Log()
			unauthorized(c)
			return
		}

		session, err := m.authService.Authenticate(ctx, tokenString)
		if err != nil {
			logger.WarnWithContext(ctx, "Invalid or revoked token").
				String("path", c.Request.URL.Path).
				String("method", c.Request.Method).
				Err(err).
				Log()
			if apperrors.ToHTTPStatus(err) >= http.StatusInternalServerError {
				c.AbortWithStatusJSON(apperrors.ToHTTPStatus(err), constants.BuildCodedErrorResponse(
					apperrors.GetErrorCode(err), apperrors.GetErrorMessage(err), nil,
				))
				return
			}
			unauthorized(c)
			return
		}

		c.Set(constants.GinKeySession, session)
		c.Request = c.Request.WithContext(ctxutil.WithUser(c.Request.Context(), session.UserID, session.Role))

		logger.DebugWithContext(c.Request.Context(), "User authenticated successfully").
			String("path", c.Request.URL.Path).
			Log()

		c.Next()
	}
}

// RequireRole rejects sessions whose role is not listed. It must run after RequireAuth.
func (m *JWTMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if session == nil {
			unauthorized(c)
			return
		}

		for _, role := range roles {
			if session.Role == role {
				c.Next()
				return
			}
		}

		logger.WarnWithContext(c.Request.Context(), "Role not permitted").
			String("role", session.Role).
			String("path", c.Request.URL.Path).
			Log()
		unauthorized(c)
	}
}

// GetSession returns the session stored by RequireAuth, or nil.
func GetSession(c *gin.Context) *service.Session {
	v, ok := c.Get(constants.GinKeySession)
	if !ok {
		return nil
	}
	session, _ := v.(*service.Session)
	return session
}
