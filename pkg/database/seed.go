package database

import (
	"context"
	"errors"
	"strings"

	"github.com/Payphone-Digital/admin-panel/config"
	"github.com/Payphone-Digital/admin-panel/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	firstPostTitle = "First Post"
	firstPostText  = "This is an example post"
)

// Seed creates the super admin and its first post unless the admin already
// exists. It reports whether anything was created.
func Seed(ctx context.Context, db *gorm.DB, cfg config.SeedConfig) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" || cfg.AdminPassword == "" {
		return false, errors.New("seed: admin email and password are required")
	}

	// Check if admin user already exists
	var existing model.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		admin := model.User{
			Email:        email,
			Password:     string(hashedPassword),
			Role:         model.RoleAdmin,
			TokenVersion: 1,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		return tx.Create(&model.Post{
			Title:  firstPostTitle,
			Text:   firstPostText,
			UserID: admin.ID,
		}).Error
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
