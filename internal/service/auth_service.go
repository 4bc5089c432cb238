package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/milkagency/internal/auth"
	"github.com/mmynk/milkagency/internal/middleware"
	"github.com/mmynk/milkagency/internal/storage"
	"github.com/mmynk/milkagency/pkg/api"
	"github.com/mmynk/milkagency/pkg/api/apiconnect"
)

// AuthService implements the AuthService RPC interface. It is mounted
// behind OptionalAuth: Login is public, Register and Me check the caller.
type AuthService struct {
	apiconnect.UnimplementedAuthServiceHandler
	staff      auth.Authenticator
	customers  auth.Authenticator
	store      storage.Store
	jwtManager *auth.JWTManager
	logger     *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(staff, customers auth.Authenticator, store storage.Store, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		staff:      staff,
		customers:  customers,
		store:      store,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

func toAPIPrincipal(p *auth.Principal) *api.Principal {
	return &api.Principal{ID: p.ID, Login: p.Login, Name: p.Name, Role: p.Role}
}

func (s *AuthService) issue(p *auth.Principal) (*connect.Response[api.LoginResponse], error) {
	token, err := s.jwtManager.Generate(p)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", p.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&api.LoginResponse{Token: token, Principal: toAPIPrincipal(p)}), nil
}

// Login authenticates a staff user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)
	if err := validate(req.Msg); err != nil {
		return nil, err
	}

	principal, err := s.staff.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Msg.Email, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	s.logger.Info("Staff logged in", "user_id", principal.ID)
	return s.issue(principal)
}

// CustomerLogin authenticates a customer by phone for the portal.
func (s *AuthService) CustomerLogin(ctx context.Context, req *connect.Request[api.CustomerLoginRequest]) (*connect.Response[api.LoginResponse], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}

	principal, err := s.customers.Authenticate(ctx, req.Msg.Phone, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Customer login failed", "phone", req.Msg.Phone, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	s.logger.Info("Customer logged in", "customer_id", principal.ID)
	return s.issue(principal)
}

// CustomerRegister lets an onboarded customer choose a first password.
func (s *AuthService) CustomerRegister(ctx context.Context, req *connect.Request[api.CustomerRegisterRequest]) (*connect.Response[api.LoginResponse], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}

	principal, err := s.customers.Register(ctx, req.Msg.Phone, "", req.Msg.Password)
	switch {
	case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidPhone):
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, auth.ErrPasswordExists):
		return nil, connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return nil, connect.NewError(connect.CodeNotFound, errors.New("no customer with this phone"))
	case err != nil:
		s.logger.Error("Customer registration failed", "phone", req.Msg.Phone, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Customer password set", "customer_id", principal.ID)
	return s.issue(principal)
}

// Register creates a new staff account. Only staff may call it.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	s.logger.Info("Register request", "email", req.Msg.Email, "by", middleware.GetUserID(ctx))
	if err := validate(req.Msg); err != nil {
		return nil, err
	}

	principal, err := s.staff.Register(ctx, req.Msg.Email, req.Msg.DisplayName, req.Msg.Password)
	if err != nil {
		s.logger.Error("Registration failed", "email", req.Msg.Email, "error", err)
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			return nil, connect.NewError(connect.CodeAlreadyExists, err)
		case errors.Is(err, auth.ErrWeakPassword):
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User registered successfully", "user_id", principal.ID, "email", principal.Login)
	return connect.NewResponse(&api.RegisterResponse{Principal: toAPIPrincipal(principal)}), nil
}

// Me returns the authenticated principal with a fresh display name.
func (s *AuthService) Me(ctx context.Context, req *connect.Request[api.MeRequest]) (*connect.Response[api.MeResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	resp := &api.MeResponse{ID: userID, Login: middleware.GetLogin(ctx), Role: middleware.GetRole(ctx)}
	switch resp.Role {
	case auth.RoleAdmin:
		user, err := s.store.GetUserByID(ctx, userID)
		if err != nil {
			return nil, connectError(err)
		}
		if user == nil {
			return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("user no longer exists"))
		}
		resp.Name = user.DisplayName
	case auth.RoleCustomer:
		customer, err := s.store.GetCustomer(ctx, userID)
		if err != nil {
			return nil, connectError(err)
		}
		resp.Name = customer.Name
	}
	return connect.NewResponse(resp), nil
}
