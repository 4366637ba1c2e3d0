package dto

import (
	"time"

	"github.com/noah-isme/talenta-go-api/internal/models"
	"github.com/noah-isme/talenta-go-api/internal/patch"
)

// UserResponse serializes a user for API clients. The password hash never
// leaves the service layer.
type UserResponse struct {
	ID          string                 `json:"id"`
	Email       string                 `json:"email"`
	Name        string                 `json:"name"`
	Role        string                 `json:"role"`
	Avatar      string                 `json:"avatar,omitempty"`
	ProfileData map[string]interface{} `json:"profileData,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// NewUserResponse converts a user model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:          model.ID,
		Email:       model.Email,
		Name:        model.Name,
		Role:        model.Role,
		Avatar:      model.Avatar,
		ProfileData: model.ProfileData,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// NewUserResponseSlice converts a slice of user models into DTOs.
func NewUserResponseSlice(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}
	return responses
}

// UserCreateRequest captures the payload for creating a user.
type UserCreateRequest struct {
	Name        string                 `json:"name" validate:"required"`
	Email       string                 `json:"email" validate:"required,email"`
	Password    string                 `json:"password" validate:"required,min=8"`
	Role        string                 `json:"role" validate:"required,oneof=admin trainer learner"`
	Avatar      string                 `json:"avatar"`
	ProfileData map[string]interface{} `json:"profileData"`
}

// UserUpdateRequest captures a partial user update. Absent fields are left
// untouched; explicit nulls clear the column.
type UserUpdateRequest struct {
	Name        patch.Optional[string]                 `json:"name"`
	Email       patch.Optional[string]                 `json:"email"`
	Avatar      patch.Optional[string]                 `json:"avatar"`
	ProfileData patch.Optional[map[string]interface{}] `json:"profileData"`
}

// ProfileDataRequest carries custom profile values to merge into a user.
type ProfileDataRequest struct {
	ProfileData map[string]interface{} `json:"profileData" validate:"required"`
}
