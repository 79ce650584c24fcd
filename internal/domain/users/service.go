package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mibcs/clubsite/internal/auth"
)

const minPasswordLength = 8

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrInactive           = errors.New("account is disabled")
)

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         auth.Role
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
}

type CreateParams struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         auth.Role
}

type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, params CreateParams) (*User, error)
	UpdateLastLogin(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}

// Service is the credential-and-role store behind the auth contract. The
// content services only ever see the resolved role, never credentials.
type Service struct {
	repo   Repository
	jwt    *auth.JWTManager
	logger zerolog.Logger
}

func NewService(repo Repository, jwt *auth.JWTManager, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		jwt:    jwt,
		logger: logger.With().Str("component", "users").Logger(),
	}
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.Generate(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("last login update failed")
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: time.Now().Add(s.jwt.Expiry()),
		User:      user,
	}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ErrWeakPassword
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, id, string(hash))
}

// Bootstrap creates the initial admin account when none exists for the given
// email. Safe to call on every startup.
func (s *Service) Bootstrap(ctx context.Context, username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil
	}
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = s.repo.Create(ctx, CreateParams{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         auth.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	s.logger.Info().Str("email", email).Msg("bootstrapped admin user")
	return nil
}
