package dto

import (
	"time"

	"github.com/Payphone-Digital/admin-panel/internal/model"
)

type CreatePostRequest struct {
	Title string `json:"title" binding:"required,min=1,max=32"`
	Text  string `json:"text" binding:"required,min=1"`
}

type UpdatePostRequest struct {
	Title string `json:"title" binding:"required,min=1,max=32"`
	Text  string `json:"text" binding:"required,min=1"`
}

// ListPostsQuery pages through the caller's posts, newest first.
type ListPostsQuery struct {
	Limit  int    `form:"limit,default=10" binding:"min=1,max=100"`
	Cursor string `form:"cursor"`
}

type PostResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PostListResponse struct {
	Items      []PostResponse `json:"items"`
	NextCursor *string        `json:"next_cursor,omitempty"`
}

func ToPostResponse(p model.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Text:      p.Text,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
