package constants

// HTTP Header Names
const (
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
)

// Authorization scheme
const BearerScheme = "Bearer"

// Common HTTP Error Messages
const (
	MsgUnauthorized       = "Unauthorized"
	MsgBadRequest         = "Invalid request format"
	MsgInternalError      = "Internal server error"
	MsgRateLimited        = "Rate limit exceeded"
)

// HTTP Success Messages
const (
	MsgDeleted   = "Resource deleted successfully"
	MsgLoggedOut = "Logged out successfully"
)
