package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	Title     string    `gorm:"column:title;size:32;not null"`
	Text      string    `gorm:"column:text;not null"`
	UserID    string    `gorm:"column:user_id;type:varchar(36);not null;index:idx_posts_user_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID != "" {
		return nil
	}
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	p.ID = id.String()
	return nil
}
