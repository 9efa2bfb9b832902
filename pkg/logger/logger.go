package logger

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/Payphone-Digital/admin-panel/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	Logger *zap.Logger
)

// InitLogger initializes Zap logger with configuration
func InitLogger(cfg *config.Config) error {
	zapLevel := levelFor(cfg)

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	stdoutSync := zapcore.AddSync(os.Stdout)
	stderrSync := zapcore.AddSync(os.Stderr)

	// Levels below error go to stdout, error and above to stderr
	cores := []zapcore.Core{
		zapcore.NewCore(encoder, stdoutSync, zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l >= zapLevel && l < zapcore.ErrorLevel
		})),
		zapcore.NewCore(encoder, stderrSync, zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l >= zapLevel && l >= zapcore.ErrorLevel
		})),
	}

	if cfg.Log.Path != "" {
		fileCores, err := fileCores(cfg.Log.Path, encoder, zapLevel)
		if err != nil {
			return err
		}
		cores = append(cores, fileCores...)
	}

	SetLogger(zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)))
	return nil
}

// fileCores writes info.log and error.log under dir.
func fileCores(dir string, encoder zapcore.Encoder, level zapcore.Level) ([]zapcore.Core, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	infoFile, err := os.OpenFile(filepath.Join(dir, "info.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	errorFile, err := os.OpenFile(filepath.Join(dir, "error.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		infoFile.Close()
		return nil, err
	}

	return []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(infoFile), level),
		zapcore.NewCore(encoder, zapcore.AddSync(errorFile), zapcore.ErrorLevel),
	}, nil
}

func levelFor(cfg *config.Config) zapcore.Level {
	if cfg.Log.Level != "" {
		if lvl, err := zapcore.ParseLevel(cfg.Log.Level); err == nil {
			return lvl
		}
	}
	switch cfg.App.Environment {
	case "production":
		return zapcore.InfoLevel
	case "test":
		return zapcore.WarnLevel
	default:
		return zapcore.DebugLevel
	}
}

// SetLogger replaces the global logger. Tests pass zap.NewNop().
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	Logger = l
}

// GetLogger returns the structured logger, or a no-op logger before init.
func GetLogger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if Logger == nil {
		return zap.NewNop()
	}
	return Logger
}

// Sync syncs all logs (call this before application exits)
func Sync() {
	_ = GetLogger().Sync()
}

// LogRequest logs HTTP request information
func LogRequest(method, path string, statusCode int, durationMs int64, clientIP string, userAgent string) {
	GetLogger().Info("HTTP Request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", statusCode),
		zap.Int64("duration_ms", durationMs),
		zap.String("client_ip", clientIP),
		zap.String("user_agent", userAgent),
	)
}

// LogPanic logs a recovered panic with its stack
func LogPanic(recovered any) {
	GetLogger().Error("Panic recovered",
		zap.Any("panic", recovered),
		zap.Stack("stack"),
	)
}

// LogAuth logs authentication events
func LogAuth(subject, action string, success bool, fields ...zap.Field) {
	allFields := append([]zap.Field{
		zap.String("subject", subject),
		zap.String("action", action),
		zap.Bool("success", success),
	}, fields...)

	if success {
		GetLogger().Info("Authentication success", allFields...)
	} else {
		GetLogger().Warn("Authentication failure", allFields...)
	}
}
