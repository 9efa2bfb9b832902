package logger

import (
	"context"
	"time"

	ctxutil "github.com/Payphone-Digital/admin-panel/pkg/context"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ContextLogBuilder collects fields for one log entry and enriches it with
// request data carried on the context.
type ContextLogBuilder struct {
	logger    *zap.Logger
	ctx       context.Context
	level     zapcore.Level
	fields    []zap.Field
	message   string
	shouldLog bool
}

func newBuilder(ctx context.Context, level zapcore.Level, message string) *ContextLogBuilder {
	l := GetLogger()
	b := &ContextLogBuilder{
		logger:    l,
		ctx:       ctx,
		level:     level,
		message:   message,
		shouldLog: l.Core().Enabled(level),
	}
	if b.shouldLog {
		b.fields = make([]zap.Field, 0, 12)
		b.extractContextFields()
	}
	return b
}

// extractContextFields pulls tracking values from the context
func (b *ContextLogBuilder) extractContextFields() {
	if b.ctx == nil {
		return
	}

	for _, kv := range [...]struct{ key, val string }{
		{"request_id", ctxutil.GetRequestID(b.ctx)},
		{"client_ip", ctxutil.GetClientIP(b.ctx)},
		{"user_id", ctxutil.GetUserID(b.ctx)},
		{"user_role", ctxutil.GetUserRole(b.ctx)},
		{"module", ctxutil.GetModule(b.ctx)},
		{"function", ctxutil.GetFunction(b.ctx)},
	} {
		if kv.val != "" {
			b.fields = append(b.fields, zap.String(kv.key, kv.val))
		}
	}

	if elapsed := ctxutil.GetDuration(b.ctx); elapsed > 0 {
		b.fields = append(b.fields, zap.Duration("elapsed", elapsed))
	}
}

func (b *ContextLogBuilder) String(key, value string) *ContextLogBuilder {
	if b.shouldLog {
		b.fields = append(b.fields, zap.String(key, value))
	}
	return b
}

func (b *ContextLogBuilder) Int(key string, value int) *ContextLogBuilder {
	if b.shouldLog {
		b.fields = append(b.fields, zap.Int(key, value))
	}
	return b
}

func (b *ContextLogBuilder) Int64(key string, value int64) *ContextLogBuilder {
	if b.shouldLog {
		b.fields = append(b.fields, zap.Int64(key, value))
	}
	return b
}

func (b *ContextLogBuilder) Bool(key string, value bool) *ContextLogBuilder {
	if b.shouldLog {
		b.fields = append(b.fields, zap.Bool(key, value))
	}
	return b
}

func (b *ContextLogBuilder) Duration(value time.Duration) *ContextLogBuilder {
	if b.shouldLog {
		b.fields = append(b.fields, zap.Duration("duration", value))
	}
	return b
}

func (b *ContextLogBuilder) Err(err error) *ContextLogBuilder {
	if b.shouldLog && err != nil {
		b.fields = append(b.fields, zap.Error(err))
	}
	return b
}

func (b *ContextLogBuilder) Any(key string, value any) *ContextLogBuilder {
	if b.shouldLog {
		b.fields = append(b.fields, zap.Any(key, value))
	}
	return b
}

// Log writes the entry if the level is enabled
func (b *ContextLogBuilder) Log() {
	if !b.shouldLog {
		return
	}
	if ce := b.logger.Check(b.level, b.message); ce != nil {
		ce.Write(b.fields...)
	}
}

func InfoWithContext(ctx context.Context, message string) *ContextLogBuilder {
	return newBuilder(ctx, zapcore.InfoLevel, message)
}

func WarnWithContext(ctx context.Context, message string) *ContextLogBuilder {
	return newBuilder(ctx, zapcore.WarnLevel, message)
}

func ErrorWithContext(ctx context.Context, message string) *ContextLogBuilder {
	return newBuilder(ctx, zapcore.ErrorLevel, message)
}

func DebugWithContext(ctx context.Context, message string) *ContextLogBuilder {
	return newBuilder(ctx, zapcore.DebugLevel, message)
}
