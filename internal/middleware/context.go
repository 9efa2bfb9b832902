package middleware

import (
	"context"
	"time"

	"github.com/Payphone-Digital/admin-panel/internal/constants"
	ctxutil "github.com/Payphone-Digital/admin-panel/pkg/context"
	"github.com/gin-gonic/gin"
)

// ContextMiddleware attaches request id, client address and start time to the
// request context and bounds the request with timeout when it is positive.
func ContextMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.WithRequestID(c.Request.Context(), c.GetHeader(constants.HeaderXRequestID))
		ctx = ctxutil.WithValue(ctx, ctxutil.ClientIPKey, c.ClientIP())
		ctx = ctxutil.NewContextWithRequest(ctx, c.Request, "http", c.FullPath())

		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = ctxutil.WithTimeout(ctx, timeout)
			defer cancel()
		}

		c.Header(constants.HeaderXRequestID, ctxutil.GetRequestID(ctx))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
