package ctxutil

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContextWithRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/users", nil)
	req.Header.Set("X-Request-ID", "req-123")
	req.Header.Set("User-Agent", "curl/8.0")

	ctx := NewContextWithRequest(context.Background(), req, "handler", "List")

	assert.Equal(t, "req-123", GetRequestID(ctx))
	assert.Equal(t, "curl/8.0", GetUserAgent(ctx))
	assert.Equal(t, "handler", GetModule(ctx))
	assert.Equal(t, "List", GetFunction(ctx))
	assert.False(t, GetStartTime(ctx).IsZero())
}

func TestNewContextWithRequest_GeneratesRequestID(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	ctx := NewContextWithRequest(context.Background(), req, "handler", "Health")

	assert.NotEmpty(t, GetRequestID(ctx))
}

func TestNewContextWithRequest_KeepsExistingValues(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "other")
	base := WithRequestID(context.Background(), "first")

	ctx := NewContextWithRequest(base, req, "service", "Create")

	assert.Equal(t, "first", GetRequestID(ctx))
}

func TestWithUser(t *testing.T) {
	ctx := WithUser(context.Background(), "u-1", "admin")

	assert.Equal(t, "u-1", GetUserID(ctx))
	assert.Equal(t, "admin", GetUserRole(ctx))

	m := ContextToMap(ctx)
	assert.Equal(t, "u-1", m["user_id"])
	assert.Equal(t, "admin", m["user_role"])
	assert.NotContains(t, m, "module")
}
