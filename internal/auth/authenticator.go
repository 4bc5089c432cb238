// Package auth handles credentials and session tokens for staff and customers.
package auth

import (
	"context"
)

// Roles carried in session tokens.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Principal is an authenticated identity: a staff user or a customer.
type Principal struct {
	// ID is the user ID for staff and the customer ID for customers.
	ID string
	// Login is the email for staff and the E.164 phone for customers.
	Login string
	Name  string
	Role  string
}

// Authenticator defines the interface for authentication implementations.
// Staff sign in by email and customers by phone; both use passwords.
type Authenticator interface {
	// Register sets up a credential for login.
	// Returns the principal or an error if registration fails.
	Register(ctx context.Context, login, displayName, credential string) (*Principal, error)

	// Authenticate verifies the credentials and returns the principal if successful.
	Authenticate(ctx context.Context, login, credential string) (*Principal, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
