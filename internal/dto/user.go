package dto

import (
	"time"

	"github.com/yukikurage/resource-management-api/internal/models"
)

// UserDTO represents a user in API responses. The password hash never leaves the model.
type UserDTO struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	Name         string            `json:"name"`
	Role         models.Role       `json:"role"`
	Skills       []string          `json:"skills"`
	Seniority    *models.Seniority `json:"seniority,omitempty"`
	MaxCapacity  int               `json:"maxCapacity"`
	Department   *string           `json:"department,omitempty"`
	ProfileImage *string           `json:"profileImage,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// SignupResponse is the projection returned right after registration.
type SignupResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// LoginResponse carries the bearer token and the fields the client keeps in its session.
type LoginResponse struct {
	Token        string      `json:"token"`
	UserID       string      `json:"userId"`
	Name         string      `json:"name"`
	Role         models.Role `json:"role"`
	ProfileImage *string     `json:"profileImage"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Role:         user.Role,
		Skills:       nonNil(user.Skills),
		Seniority:    user.Seniority,
		MaxCapacity:  user.MaxCapacity,
		Department:   user.Department,
		ProfileImage: user.ProfileImage,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, u := range users {
		out[i] = ToUserDTO(u)
	}
	return out
}

// ToSignupResponse converts a freshly created user
func ToSignupResponse(user models.User) SignupResponse {
	return SignupResponse{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
