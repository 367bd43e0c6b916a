package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"simplymail/internal/auth"
	"simplymail/internal/core/domain"
	"simplymail/internal/core/port"
)

// AuthUseCase implements port.AuthUseCase with bcrypt-hashed passwords and
// HS256 session tokens.
type AuthUseCase struct {
	users    port.UserRepository
	secret   string
	tokenTTL time.Duration
	validate *validator.Validate
}

// NewAuthUseCase wires the auth usecase.
func NewAuthUseCase(users port.UserRepository, secret string, tokenTTL time.Duration) *AuthUseCase {
	return &AuthUseCase{users: users, secret: secret, tokenTTL: tokenTTL, validate: validator.New()}
}

// Register creates an account and returns a session token for it.
func (u *AuthUseCase) Register(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := u.validate.Var(email, "required,email"); err != nil {
		return "", fmt.Errorf("invalid email: %w", domain.ErrValidation)
	}
	if len(password) < 8 {
		return "", fmt.Errorf("password must be at least 8 characters: %w", domain.ErrValidation)
	}
	existing, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	if existing != nil {
		return "", fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{Email: email, PasswordHash: hash}
	if err := u.users.Create(ctx, user); err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	return auth.GenerateToken(user.ID, user.Email, u.secret, u.tokenTTL)
}

// Login exchanges credentials for a session token. Unknown emails and bad
// passwords produce the same error so the response does not leak which
// accounts exist.
func (u *AuthUseCase) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return "", fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	return auth.GenerateToken(user.ID, user.Email, u.secret, u.tokenTTL)
}

var _ port.AuthUseCase = (*AuthUseCase)(nil)
