package ctxutil

import (
	"context"
	"net/http"
	"time"

	"github.com/Payphone-Digital/admin-panel/internal/constants"
	"github.com/google/uuid"
)

// Re-export ContextKey type
type ContextKey = constants.ContextKey

// Re-export context keys
const (
	RequestIDKey = constants.CtxKeyRequestID
	UserIDKey    = constants.CtxKeyUserID
	UserRoleKey  = constants.CtxKeyUserRole
	ClientIPKey  = constants.CtxKeyClientIP
	UserAgentKey = constants.CtxKeyUserAgent
	StartTimeKey = constants.CtxKeyStartTime
	ModuleKey    = constants.CtxKeyModule
	FunctionKey  = constants.CtxKeyFunction
)

// WithValue adds a value to context
func WithValue(ctx context.Context, key ContextKey, value any) context.Context {
	return context.WithValue(ctx, key, value)
}

// WithFunction tags the context with the layer and function doing the work.
func WithFunction(ctx context.Context, module, function string) context.Context {
	ctx = context.WithValue(ctx, ModuleKey, module)
	return context.WithValue(ctx, FunctionKey, function)
}

// WithUser records the signed-in user for log enrichment.
func WithUser(ctx context.Context, userID, role string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, UserRoleKey, role)
}

// WithRequestID stores id, or a fresh UUID when id is empty.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, RequestIDKey, id)
}

// WithTimeout creates context with timeout
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

func stringValue(ctx context.Context, key ContextKey) string {
	if ctx == nil {
		return ""
	}
	if val, ok := ctx.Value(key).(string); ok {
		return val
	}
	return ""
}

// Getter functions
func GetRequestID(ctx context.Context) string { return stringValue(ctx, RequestIDKey) }
func GetClientIP(ctx context.Context) string  { return stringValue(ctx, ClientIPKey) }
func GetUserAgent(ctx context.Context) string { return stringValue(ctx, UserAgentKey) }
func GetUserID(ctx context.Context) string    { return stringValue(ctx, UserIDKey) }
func GetUserRole(ctx context.Context) string  { return stringValue(ctx, UserRoleKey) }
func GetModule(ctx context.Context) string    { return stringValue(ctx, ModuleKey) }
func GetFunction(ctx context.Context) string  { return stringValue(ctx, FunctionKey) }

func GetStartTime(ctx context.Context) time.Time {
	if ctx == nil {
		return time.Time{}
	}
	if val, ok := ctx.Value(StartTimeKey).(time.Time); ok {
		return val
	}
	return time.Time{}
}

// GetDuration calculates duration from start time
func GetDuration(ctx context.Context) time.Duration {
	startTime := GetStartTime(ctx)
	if !startTime.IsZero() {
		return time.Since(startTime)
	}
	return 0
}

// NewContextWithRequest creates context with HTTP request information.
// Values already present on ctx are kept.
func NewContextWithRequest(ctx context.Context, req *http.Request, module, function string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx = WithFunction(ctx, module, function)

	if req != nil {
		if GetRequestID(ctx) == "" {
			ctx = WithRequestID(ctx, req.Header.Get(constants.HeaderXRequestID))
		}
		if GetClientIP(ctx) == "" && req.RemoteAddr != "" {
			ctx = context.WithValue(ctx, ClientIPKey, req.RemoteAddr)
		}
		if GetUserAgent(ctx) == "" {
			if ua := req.UserAgent(); ua != "" {
				ctx = context.WithValue(ctx, UserAgentKey, ua)
			}
		}
	}

	// Set start time if not already set
	if GetStartTime(ctx).IsZero() {
		ctx = context.WithValue(ctx, StartTimeKey, time.Now())
	}

	return ctx
}

// ContextToMap converts context to map for logging
func ContextToMap(ctx context.Context) map[string]any {
	result := make(map[string]any)

	for key, val := range map[string]string{
		"request_id": GetRequestID(ctx),
		"client_ip":  GetClientIP(ctx),
		"user_agent": GetUserAgent(ctx),
		"user_id":    GetUserID(ctx),
		"user_role":  GetUserRole(ctx),
		"module":     GetModule(ctx),
		"function":   GetFunction(ctx),
	} {
		if val != "" {
			result[key] = val
		}
	}

	if duration := GetDuration(ctx); duration > 0 {
		result["duration"] = duration
	}

	return result
}
