package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tradejournal/internal/domain/user"
	"tradejournal/pkg/auth"
	"tradejournal/pkg/errors"
	"tradejournal/pkg/logger"
)

var (
	// ErrInvalidCredentials is returned when email/password don't match
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailAlreadyExists is returned when trying to register with existing email
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrUserNotFound is returned when the token's user no longer exists
	ErrUserNotFound = errors.New("user not found")
	// ErrWeakPassword is returned when the password is too short
	ErrWeakPassword = errors.New("password must be at least 8 characters")
)

const minPasswordLength = 8

// Service handles authentication logic (Application Layer)
type Service struct {
	userRepo   user.Repository
	jwtService *auth.JWTService
	log        *logger.Logger
}

// NewService creates a new auth service
func NewService(userRepo user.Repository, jwtService *auth.JWTService, log *logger.Logger) *Service {
	return &Service{
		userRepo:   userRepo,
		jwtService: jwtService,
		log:        log.With("service", "auth"),
	}
}

// RegisterInput contains data for user registration
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginInput contains data for user login
type LoginInput struct {
	Email    string
	Password string
}

// AuthResponse contains auth result with JWT token
type AuthResponse struct {
	Token string
	User  *user.User
}

// Register registers a new user with email/password
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || input.Password == "" {
		return nil, errors.ErrInvalidInput
	}
	if !strings.Contains(input.Email, "@") {
		return nil, errors.NewValidationError("email", "invalid email address", input.Email)
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	// Check if email already exists
	existingUser, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, errors.ErrNotFound) {
		return nil, errors.Wrap(err, "failed to check email")
	}
	if existingUser != nil {
		return nil, ErrEmailAlreadyExists
	}

	// Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	now := time.Now().UTC()
	usr := &user.User{
		Email:        input.Email,
		PasswordHash: string(passwordHash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, usr); err != nil {
		if errors.Is(err, errors.ErrAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, errors.Wrap(err, "failed to create user")
	}

	// Generate JWT token
	token, err := s.jwtService.GenerateToken(usr.ID, usr.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	s.log.Infow("User registered",
		"user_id", usr.ID,
		"email", usr.Email,
	)

	return &AuthResponse{
		Token: token,
		User:  usr,
	}, nil
}

// Login authenticates a user with email/password
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || input.Password == "" {
		return nil, errors.ErrInvalidInput
	}

	usr, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "failed to get user")
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(input.Password)); err != nil {
		s.log.Debugw("Failed login attempt", "email", input.Email)
		return nil, ErrInvalidCredentials
	}

	// Generate JWT token
	token, err := s.jwtService.GenerateToken(usr.ID, usr.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	s.log.Infow("User logged in",
		"user_id", usr.ID,
		"email", usr.Email,
	)

	return &AuthResponse{
		Token: token,
		User:  usr,
	}, nil
}

// ValidateToken validates JWT token and returns the backing user
func (s *Service) ValidateToken(ctx context.Context, token string) (*user.User, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	usr, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "failed to get user")
	}
	return usr, nil
}

// RefreshToken exchanges a still-valid token for a fresh one
func (s *Service) RefreshToken(ctx context.Context, token string) (string, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return "", err
	}
	if _, err := s.userRepo.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", errors.Wrap(err, "failed to get user")
	}
	return s.jwtService.RefreshToken(token)
}
