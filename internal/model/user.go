package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID            string     `gorm:"column:id;primaryKey;type:varchar(36)"`
	Email         string     `gorm:"column:email;unique;not null"`
	Name          *string    `gorm:"column:name;default:null"`
	Password      string     `gorm:"column:password;not null"`
	EmailVerified *time.Time `gorm:"column:email_verified;default:null"`
	Role          string     `gorm:"column:role;not null;default:user"`
	TokenVersion  int        `gorm:"column:token_version;default:1;not null"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
	Posts         []Post     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns a time-ordered id so that id order follows insertion order.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID != "" {
		return nil
	}
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	u.ID = id.String()
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DisplayName returns the name or an empty string when unset.
func (u *User) DisplayName() string {
	if u.Name == nil {
		return ""
	}
	return *u.Name
}
