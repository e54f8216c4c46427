package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/resource-management-api/internal/dto"
	apierrors "github.com/yukikurage/resource-management-api/internal/errors"
	"github.com/yukikurage/resource-management-api/internal/middleware"
	"github.com/yukikurage/resource-management-api/internal/models"
	"github.com/yukikurage/resource-management-api/internal/response"
	"github.com/yukikurage/resource-management-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup registers a new user.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required,oneof=engineer manager"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, "Name, email, password and a valid role are required", err)
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), services.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.Created(c, "Account created successfully", dto.ToSignupResponse(*user))
}

// Login verifies credentials and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, "Email and password are required", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.OK(c, "Login Successfully", dto.LoginResponse{
		Token:        result.Token,
		UserID:       result.User.ID,
		Name:         result.User.Name,
		Role:         result.User.Role,
		ProfileImage: result.User.ProfileImage,
	})
}

// Logout is a no-op for stateless tokens; the client discards its session.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.OK(c, "Logout Successfully", nil)
}

// GetProfile returns the authenticated user.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.OK(c, "Profile fetched successfully", dto.ToUserDTO(*user))
}

// UpdateProfile applies a partial update to the authenticated user.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateProfileRequest struct {
		Name        *string   `json:"name"`
		Skills      *[]string `json:"skills"`
		Seniority   *string   `json:"seniority" binding:"omitempty,oneof=junior mid senior"`
		MaxCapacity *int      `json:"maxCapacity" binding:"omitempty,min=0"`
		Department  *string   `json:"department"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, "Invalid profile details", err)
		return
	}

	input := services.UpdateProfileInput{
		Name:        req.Name,
		Skills:      req.Skills,
		MaxCapacity: req.MaxCapacity,
		Department:  req.Department,
	}
	if req.Seniority != nil {
		seniority := models.Seniority(*req.Seniority)
		input.Seniority = &seniority
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, input)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.OK(c, "Profile updated successfully", dto.ToUserDTO(*user))
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserExists):
		apierrors.BadRequest(c, "User already exists, you can login")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrIncorrectPassword):
		apierrors.Unauthorized(c, "Incorrect password")
	case errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidSeniority),
		errors.Is(err, services.ErrInvalidMaxCapacity),
		errors.Is(err, services.ErrNameEmpty):
		apierrors.BadRequest(c, capitalize(err.Error()))
	default:
		apierrors.InternalError(c, err)
	}
}
