package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/internal/storage"
)

type memUsers struct {
	byEmail map[string]*models.User
}

func (m *memUsers) CreateUser(_ context.Context, u *models.User) error {
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.byEmail[email], nil
}

func (m *memUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

type memCustomers struct {
	byPhone map[string]*models.Customer
}

func (m *memCustomers) GetCustomerByPhone(_ context.Context, phone string) (*models.Customer, error) {
	c, ok := m.byPhone[phone]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return c, nil
}

func (m *memCustomers) SetCustomerPasswordHash(_ context.Context, id, hash string) error {
	for _, c := range m.byPhone {
		if c.ID == id {
			c.PasswordHash = hash
			return nil
		}
	}
	return storage.ErrNotFound
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	a := NewPasswordAuthenticator(&memUsers{byEmail: map[string]*models.User{}})

	if _, err := a.Register(ctx, "owner@agency.in", "Owner", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("expected ErrWeakPassword, got %v", err)
	}

	p, err := a.Register(ctx, "owner@agency.in", "Owner", "supersecret")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if p.Role != RoleAdmin {
		t.Errorf("role = %s, want admin", p.Role)
	}

	if _, err := a.Register(ctx, "owner@agency.in", "Owner", "supersecret"); !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
	if _, err := a.Authenticate(ctx, "owner@agency.in", "wrongpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := a.Authenticate(ctx, "nobody@agency.in", "supersecret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if _, err := a.Authenticate(ctx, "owner@agency.in", "supersecret"); err != nil {
		t.Errorf("Authenticate failed: %v", err)
	}

	if err := EnsureAdmin(ctx, a, "owner@agency.in", "supersecret"); err != nil {
		t.Errorf("EnsureAdmin on existing account failed: %v", err)
	}
}

func TestCustomerAuthenticator(t *testing.T) {
	ctx := context.Background()
	store := &memCustomers{byPhone: map[string]*models.Customer{
		"+919876543210": {ID: "c1", Phone: "+919876543210", Name: "Ravi"},
	}}
	a := NewCustomerAuthenticator(store, "IN")

	if _, err := a.Authenticate(ctx, "98765 43210", "password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials before password is set, got %v", err)
	}

	p, err := a.Register(ctx, "098765 43210", "", "password1")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if p.ID != "c1" || p.Role != RoleCustomer {
		t.Errorf("unexpected principal: %+v", p)
	}

	if _, err := a.Register(ctx, "9876543210", "", "password2"); !errors.Is(err, ErrPasswordExists) {
		t.Errorf("expected ErrPasswordExists, got %v", err)
	}
	if _, err := a.Authenticate(ctx, "+91 98765 43210", "password1"); err != nil {
		t.Errorf("Authenticate failed: %v", err)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "9876543210", want: "+919876543210"},
		{in: "+91 98765-43210", want: "+919876543210"},
		{in: "12345", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := NormalizePhone(tt.in, "IN")
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizePhone(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	token, err := m.Generate(&Principal{ID: "c1", Login: "+919876543210", Role: RoleCustomer})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != "c1" || claims.Role != RoleCustomer {
		t.Errorf("unexpected claims: %+v", claims)
	}

	other := NewJWTManager("other-secret", time.Hour)
	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}

	expired := NewJWTManager("test-secret", -time.Minute)
	old, err := expired.Generate(&Principal{ID: "u1", Role: RoleAdmin})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := m.Validate(old); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}
