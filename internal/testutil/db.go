// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Payphone-Digital/admin-panel/config"
	"github.com/Payphone-Digital/admin-panel/internal/model"
	"github.com/Payphone-Digital/admin-panel/pkg/database"
	"github.com/Payphone-Digital/admin-panel/pkg/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory sqlite database that is closed when
// the test ends. The global logger is silenced for the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	logger.SetLogger(zap.NewNop())

	db, err := database.NewSQLiteDB(":memory:", config.DatabaseConfig{}, &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() { _ = database.CloseDB(db) })
	return db
}

// CreateUser inserts a user with a bcrypt hash of password.
func CreateUser(t *testing.T, db *gorm.DB, email, password, role string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Email:        email,
		Password:     string(hash),
		Role:         role,
		TokenVersion: 1,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(user).Error)
	return user
}

// CreatePost inserts a post owned by userID.
func CreatePost(t *testing.T, db *gorm.DB, userID, title string) *model.Post {
	t.Helper()

	post := &model.Post{Title: title, Text: title + " body", UserID: userID}
	require.NoError(t, db.Create(post).Error)
	return post
}

// TestConfig returns a valid configuration for an in-memory deployment.
func TestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "admin-panel-test",
			Environment: "test",
			Port:        "0",
		},
		Database: config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"},
		JWT: config.JWTConfig{
			Secret:         "test-secret",
			ExpirationTime: time.Hour,
		},
		RateLimit: config.RateLimitConfig{Request: 1000, Duration: 60},
	}
}
