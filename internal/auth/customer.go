package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/internal/storage"
)

// CustomerStorage is the slice of storage the customer authenticator needs.
type CustomerStorage interface {
	GetCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error)
	SetCustomerPasswordHash(ctx context.Context, id, hash string) error
}

// CustomerAuthenticator signs customers in to the portal by phone and password.
// Customers are onboarded by staff; Register only sets a first password.
type CustomerAuthenticator struct {
	storage CustomerStorage
	region  string
}

// NewCustomerAuthenticator creates a customer authenticator. region is the
// default phone region (e.g. "IN") for numbers typed without a country code.
func NewCustomerAuthenticator(storage CustomerStorage, region string) *CustomerAuthenticator {
	return &CustomerAuthenticator{storage: storage, region: region}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *CustomerAuthenticator) ValidateCredential(credential string) error {
	return validatePassword(credential)
}

// Register sets the first portal password for an onboarded customer.
func (a *CustomerAuthenticator) Register(ctx context.Context, phone, _ string, credential string) (*Principal, error) {
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}
	customer, err := a.lookup(ctx, phone)
	if err != nil {
		return nil, err
	}
	if customer.PasswordHash != "" {
		return nil, ErrPasswordExists
	}
	hash, err := HashPassword(credential)
	if err != nil {
		return nil, err
	}
	if err := a.storage.SetCustomerPasswordHash(ctx, customer.ID, hash); err != nil {
		return nil, err
	}
	return customerPrincipal(customer), nil
}

// Authenticate verifies the phone and password, returning the customer principal if valid.
func (a *CustomerAuthenticator) Authenticate(ctx context.Context, phone, credential string) (*Principal, error) {
	customer, err := a.lookup(ctx, phone)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if customer.Frozen || customer.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return customerPrincipal(customer), nil
}

func (a *CustomerAuthenticator) lookup(ctx context.Context, phone string) (*models.Customer, error) {
	normalized, err := NormalizePhone(phone, a.region)
	if err != nil {
		return nil, err
	}
	customer, err := a.storage.GetCustomerByPhone(ctx, normalized)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}
	return customer, nil
}

func customerPrincipal(c *models.Customer) *Principal {
	return &Principal{
		ID:    c.ID,
		Login: c.Phone,
		Name:  c.Name,
		Role:  RoleCustomer,
	}
}
