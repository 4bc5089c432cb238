package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/milkagency/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailExists        = errors.New("email already registered")
	ErrPasswordExists     = errors.New("password already set for this customer")
)

// UserStorage defines the interface for staff user persistence operations.
// This allows the authenticator to be independent of the storage implementation.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// HashPassword returns the bcrypt hash of a password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func validatePassword(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// PasswordAuthenticator implements email and password authentication for staff.
type PasswordAuthenticator struct {
	storage UserStorage
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
	}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	return validatePassword(credential)
}

// Register creates a new staff account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, email, displayName, credential string) (*Principal, error) {
	// Validate password strength
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	// Check if email already exists
	existingUser, err := a.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, ErrEmailExists
	}

	hashedPassword, err := HashPassword(credential)
	if err != nil {
		return nil, err
	}

	user := models.NewUser(email, displayName, hashedPassword)
	if err := a.storage.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return staffPrincipal(user), nil
}

// Authenticate verifies the email and password, returning the staff principal if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*Principal, error) {
	user, err := a.storage.GetUserByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}

	// Compare password hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return staffPrincipal(user), nil
}

// EnsureAdmin creates the bootstrap staff account if it does not exist yet.
func EnsureAdmin(ctx context.Context, a *PasswordAuthenticator, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	existing, err := a.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up admin: %w", err)
	}
	if existing != nil {
		return nil
	}
	if _, err := a.Register(ctx, email, "Admin", password); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	slog.Info("Admin account created", "email", email)
	return nil
}

func staffPrincipal(user *models.User) *Principal {
	return &Principal{
		ID:    user.ID,
		Login: user.Email,
		Name:  user.DisplayName,
		Role:  RoleAdmin,
	}
}
