package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/milkagency/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for the authenticated principal's ID
	// (a staff user ID or a customer ID, depending on RoleKey).
	UserIDKey contextKey = "user_id"
	// LoginKey is the context key for the principal's email or phone.
	LoginKey contextKey = "login"
	// RoleKey is the context key for the principal's role.
	RoleKey contextKey = "role"
)

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetLogin extracts the principal's login from the context.
func GetLogin(ctx context.Context) string {
	login, _ := ctx.Value(LoginKey).(string)
	return login
}

// GetRole extracts the principal's role from the context.
func GetRole(ctx context.Context) string {
	role, _ := ctx.Value(RoleKey).(string)
	return role
}

// WithPrincipal returns a context carrying the principal's identity.
func WithPrincipal(ctx context.Context, id, login, role string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, id)
	ctx = context.WithValue(ctx, LoginKey, login)
	return context.WithValue(ctx, RoleKey, role)
}

// bearerToken extracts the token from "Bearer <jwt>" or "Token <jwt>".
// The Android app sends the latter.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return "", false
	}
	switch strings.ToLower(parts[0]) {
	case "bearer", "token":
		return parts[1], true
	}
	return "", false
}

// RequireAuth returns a middleware that validates JWT tokens and requires authentication.
// It extracts the token from the Authorization header, validates it, and adds
// the principal's ID, login and role to the request context.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			tokenString, ok := bearerToken(authHeader)
			if !ok {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithPrincipal(ctx, claims.UserID, claims.Login, claims.Role), req)
		}
	}
}

// OptionalAuth validates a token if present but lets anonymous requests
// through. Used by the auth service, where Login is public and Me is not.
func OptionalAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if tokenString, ok := bearerToken(req.Header().Get("Authorization")); ok {
				// Validate token (ignore errors - optional auth)
				if claims, err := jwtManager.Validate(tokenString); err == nil {
					ctx = WithPrincipal(ctx, claims.UserID, claims.Login, claims.Role)
				}
			}
			return next(ctx, req)
		}
	}
}

// RequireRole rejects calls whose principal does not hold one of roles.
// It must run after RequireAuth.
func RequireRole(roles ...string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			role := GetRole(ctx)
			if role == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}
			for _, r := range roles {
				if r == role {
					return next(ctx, req)
				}
			}
			return nil, connect.NewError(connect.CodePermissionDenied, errPermissionDenied(role))
		}
	}
}

type errPermissionDenied string

func (e errPermissionDenied) Error() string {
	return "role " + string(e) + " may not call this procedure"
}
