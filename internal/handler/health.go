package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Payphone-Digital/admin-panel/pkg/circuit"
	"github.com/Payphone-Digital/admin-panel/pkg/database"
	"github.com/Payphone-Digital/admin-panel/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDisabled  = "disabled"
)

// Pinger is the part of the cache client the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      *gorm.DB
	redis   Pinger
	breaker *circuit.Breaker
	version string
}

type HealthCheckResponse struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Breaker *circuit.Stats `json:"breaker,omitempty"`
}

// NewHealthHandler builds the health handler. redis and breaker may be nil
// when the shared cache is disabled.
func NewHealthHandler(db *gorm.DB, redis Pinger, breaker *circuit.Breaker, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		redis:   redis,
		breaker: breaker,
		version: version,
	}
}

// HealthCheck performs comprehensive health check
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	response := HealthCheckResponse{
		Status:    statusHealthy,
		Version:   h.version,
		Timestamp: time.Now().UTC(),
		Checks:    make(map[string]HealthCheck),
	}

	dbStatus := h.checkDatabase(ctx)
	response.Checks["database"] = dbStatus
	if dbStatus.Status != statusHealthy {
		response.Status = statusUnhealthy
	}

	// Redis only backs the user cache, a failure degrades but does not fail the check
	response.Checks["redis"] = h.checkRedis(ctx)

	statusCode := http.StatusOK
	if response.Status == statusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	logger.GetLogger().Debug("Health check performed",
		zap.String("overall_status", response.Status),
		zap.Int("status_code", statusCode),
	)

	c.JSON(statusCode, response)
}

// BasicHealth returns a simple health check (for load balancers)
func (h *HealthHandler) BasicHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    statusHealthy,
		"version":   h.version,
		"timestamp": time.Now().UTC(),
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) HealthCheck {
	if h.db == nil {
		return HealthCheck{
			Status:  statusUnhealthy,
			Message: "Database connection not initialized",
		}
	}

	if err := database.Ping(ctx, h.db); err != nil {
		logger.GetLogger().Error("Database ping failed", zap.Error(err))
		return HealthCheck{
			Status:  statusUnhealthy,
			Message: "Database ping failed",
		}
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		return HealthCheck{Status: statusHealthy}
	}
	stats := sqlDB.Stats()
	return HealthCheck{
		Status:  statusHealthy,
		Message: fmt.Sprintf("open: %d, idle: %d", stats.OpenConnections, stats.Idle),
	}
}

func (h *HealthHandler) checkRedis(ctx context.Context) HealthCheck {
	if h.redis == nil {
		return HealthCheck{
			Status:  statusDisabled,
			Message: "Redis cache is disabled",
		}
	}

	var stats *circuit.Stats
	if h.breaker != nil {
		s := h.breaker.Stats()
		stats = &s
	}

	if err := h.redis.Ping(ctx); err != nil {
		logger.GetLogger().Warn("Redis ping failed", zap.Error(err))
		return HealthCheck{
			Status:  statusUnhealthy,
			Message: "Redis ping failed",
			Breaker: stats,
		}
	}

	return HealthCheck{
		Status:  statusHealthy,
		Breaker: stats,
	}
}
