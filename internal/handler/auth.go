package handler

import (
	"net/http"

	"github.com/Payphone-Digital/admin-panel/internal/constants"
	"github.com/Payphone-Digital/admin-panel/internal/dto"
	apperrors "github.com/Payphone-Digital/admin-panel/internal/errors"
	"github.com/Payphone-Digital/admin-panel/internal/service"
	ctxutil "github.com/Payphone-Digital/admin-panel/pkg/context"
	"github.com/Payphone-Digital/admin-panel/pkg/logger"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Login")

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, ctx, err)
		return
	}

	response, err := h.authService.Login(ctx, &req)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	logger.InfoWithContext(ctx, "User logged in successfully").
		String("target_user_id", response.User.ID).
		String("role", response.User.Role).
		Log()

	c.JSON(http.StatusOK, response)
}

// Session returns the decoded session of the caller
func (h *AuthHandler) Session(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Session")

	s := session(c)
	if s == nil {
		respondError(c, ctx, apperrors.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, s.Response())
}

// Logout revokes all tokens of the caller
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Logout")

	if err := h.authService.Logout(ctx, session(c)); err != nil {
		respondError(c, ctx, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgLoggedOut))
}
