package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/ticket-tracker/internal/auth"
	apierrors "github.com/yukikurage/ticket-tracker/internal/errors"
	"github.com/yukikurage/ticket-tracker/internal/models"
	"github.com/yukikurage/ticket-tracker/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAndPasswordRequired = apierrors.Validation("Email and password are required.")
	ErrPasswordTooLong          = apierrors.Validation("Password must be at most 72 bytes long.")
	ErrDuplicateEmail           = apierrors.ErrDuplicateEmail
	ErrInvalidCredentials       = apierrors.ErrInvalidCredentials
)

// AuthService handles registration and login.
type AuthService struct {
	userRepo repository.UserRepository
	hasher   *auth.PasswordHasher
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, hasher *auth.PasswordHasher) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Email    string
	Password string
}

// Register creates a user. The first user ever registered becomes an admin;
// every later registration does not.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrEmailAndPasswordRequired
	}

	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, apierrors.StorageUnavailable(fmt.Errorf("count users: %w", err))
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hashed,
	}

	if err := s.userRepo.Create(ctx, user, count == 0); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, apierrors.StorageUnavailable(fmt.Errorf("create user: %w", err))
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user. Unknown
// email and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, apierrors.StorageUnavailable(fmt.Errorf("find user: %w", err))
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
