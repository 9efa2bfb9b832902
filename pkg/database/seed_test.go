package database_test

import (
	"context"
	"testing"

	"github.com/Payphone-Digital/admin-panel/config"
	"github.com/Payphone-Digital/admin-panel/internal/model"
	"github.com/Payphone-Digital/admin-panel/internal/testutil"
	"github.com/Payphone-Digital/admin-panel/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeed_CreatesAdminAndFirstPost(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	created, err := database.Seed(ctx, db, config.SeedConfig{
		AdminEmail:    "Root@Example.com",
		AdminPassword: "s3cret",
	})
	require.NoError(t, err)
	assert.True(t, created)

	var admin model.User
	require.NoError(t, db.Where("email = ?", "root@example.com").First(&admin).Error)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.Len(t, admin.ID, 36)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("s3cret")))

	var posts []model.Post
	require.NoError(t, db.Where("user_id = ?", admin.ID).Find(&posts).Error)
	require.Len(t, posts, 1)
	assert.Equal(t, "First Post", posts[0].Title)
}

func TestSeed_ExistingAdminIsNoop(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	cfg := config.SeedConfig{AdminEmail: "root@example.com", AdminPassword: "s3cret"}

	_, err := database.Seed(ctx, db, cfg)
	require.NoError(t, err)

	created, err := database.Seed(ctx, db, cfg)
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, db.Model(&model.Post{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSeed_RequiresCredentials(t *testing.T) {
	db := testutil.NewDB(t)

	_, err := database.Seed(context.Background(), db, config.SeedConfig{})
	assert.Error(t, err)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	cfg := testutil.TestConfig()
	cfg.Database.Driver = "mysql"

	_, err := database.Open(cfg)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestOpen_SQLiteMemory(t *testing.T) {
	db, err := database.Open(testutil.TestConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.CloseDB(db) })

	assert.NoError(t, database.Ping(context.Background(), db))
}
