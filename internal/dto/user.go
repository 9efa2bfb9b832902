package dto

import (
	"encoding/json"
	"time"

	"github.com/Payphone-Digital/admin-panel/internal/model"
	"github.com/guregu/null/v6"
)

type CreateUserRequest struct {
	Email    string      `json:"email" binding:"required,email,max=255"`
	Password string      `json:"password" binding:"required,min=1,max=100"`
	Role     string      `json:"role" binding:"required,oneof=admin user"`
	Name     null.String `json:"name" binding:"omitnil,max=100"`
}

// UpdateUserRequest changes role and optionally name. An absent name key
// leaves the name as is, an explicit null clears it.
type UpdateUserRequest struct {
	Name    null.String `json:"name" binding:"omitnil,max=100"`
	Role    string      `json:"role" binding:"required,oneof=admin user"`
	NameSet bool        `json:"-"`
}

func (r *UpdateUserRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateUserRequest
	if err := json.Unmarshal(data, (*plain)(r)); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	_, r.NameSet = keys["name"]
	return nil
}

// ListUsersQuery carries the cursor paginator parameters.
type ListUsersQuery struct {
	PageSize  int    `form:"page_size,default=10" binding:"min=1,max=100"`
	Cursor    string `form:"cursor"`
	Direction string `form:"direction" binding:"omitempty,oneof=forward backward"`
}

type UserResponse struct {
	ID            string      `json:"id"`
	Email         string      `json:"email"`
	Name          null.String `json:"name"`
	EmailVerified *time.Time  `json:"email_verified"`
	Role          string      `json:"role"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func ToUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          null.StringFromPtr(u.Name),
		EmailVerified: u.EmailVerified,
		Role:          u.Role,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
