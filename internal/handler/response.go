package handler

import (
	"context"
	"net/http"

	"github.com/Payphone-Digital/admin-panel/internal/constants"
	apperrors "github.com/Payphone-Digital/admin-panel/internal/errors"
	"github.com/Payphone-Digital/admin-panel/internal/middleware"
	"github.com/Payphone-Digital/admin-panel/internal/service"
	"github.com/Payphone-Digital/admin-panel/pkg/logger"
	"github.com/Payphone-Digital/admin-panel/pkg/validation"
	"github.com/gin-gonic/gin"
)

// respondError writes err as {message, code}. Internal causes stay in the log.
func respondError(c *gin.Context, ctx context.Context, err error) {
	status := apperrors.ToHTTPStatus(err)
	message := apperrors.GetErrorMessage(err)

	if status >= http.StatusInternalServerError {
		logger.ErrorWithContext(ctx, "Request failed").
			Int("http_status", status).
			Err(err).
			Log()
		if status == http.StatusInternalServerError {
			message = constants.MsgInternalError
		}
	} else {
		logger.WarnWithContext(ctx, "Request rejected").
			Int("http_status", status).
			String("code", apperrors.GetErrorCode(err)).
			String("reason", message).
			Log()
	}

	c.JSON(status, constants.BuildCodedErrorResponse(apperrors.GetErrorCode(err), message, nil))
}

// respondBindError reports malformed or invalid input with per-field details.
func respondBindError(c *gin.Context, ctx context.Context, err error) {
	logger.WarnWithContext(ctx, "Invalid request").
		Err(err).
		Log()

	var details any = err.Error()
	if fields := validation.Messages(err); fields != nil {
		details = fields
	}
	c.JSON(http.StatusBadRequest, constants.BuildCodedErrorResponse(apperrors.ErrInvalidInput.Code, constants.MsgBadRequest, details))
}

// session returns the caller's session; RequireAuth guarantees it on protected routes.
func session(c *gin.Context) *service.Session {
	return middleware.GetSession(c)
}
