package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/resource-management-api/internal/auth"
	"github.com/yukikurage/resource-management-api/internal/constants"
	"github.com/yukikurage/resource-management-api/internal/models"
	"github.com/yukikurage/resource-management-api/internal/repository"
	"github.com/yukikurage/resource-management-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists           = errors.New("user already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrIncorrectPassword    = errors.New("incorrect password")
	ErrInvalidRole          = errors.New("role must be engineer or manager")
	ErrInvalidSeniority     = errors.New("seniority must be junior, mid or senior")
	ErrInvalidMaxCapacity   = errors.New("max capacity cannot be negative")
	ErrNameEmpty            = errors.New("name cannot be empty")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToIssueToken   = errors.New("failed to issue token")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates a new user with default capacity and no skills.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameEmpty
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}
	email := NormalizeEmail(input.Email)

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), constants.BcryptCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
		Skills:       []string{},
		MaxCapacity:  constants.DefaultMaxCapacity,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent signup can win the race past the lookup above.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is a verified user together with a freshly signed token.
type LoginResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// Login verifies credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrIncorrectPassword
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToIssueToken, err)
	}

	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// GetProfile retrieves a user by ID.
func (s *AuthService) GetProfile(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// UpdateProfileInput is a sparse patch; nil fields are left untouched.
type UpdateProfileInput struct {
	Name        *string
	Skills      *[]string
	Seniority   *models.Seniority
	MaxCapacity *int
	Department  *string
}

// UpdateProfile applies the present fields of input to the user's profile.
func (s *AuthService) UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameEmpty
		}
		user.Name = name
	}
	if input.Skills != nil {
		user.Skills = utils.NormalizeList(*input.Skills)
	}
	if input.Seniority != nil {
		if !input.Seniority.Valid() {
			return nil, ErrInvalidSeniority
		}
		seniority := *input.Seniority
		user.Seniority = &seniority
	}
	if input.MaxCapacity != nil {
		if *input.MaxCapacity < 0 {
			return nil, ErrInvalidMaxCapacity
		}
		user.MaxCapacity = *input.MaxCapacity
	}
	if input.Department != nil {
		department := strings.TrimSpace(*input.Department)
		user.Department = &department
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
