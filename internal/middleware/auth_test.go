package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/milkagency/internal/auth"
	"github.com/mmynk/milkagency/pkg/api"
	"github.com/mmynk/milkagency/pkg/api/apiconnect"
)

// meService echoes the principal found in the context.
type meService struct {
	apiconnect.UnimplementedAuthServiceHandler
}

func (meService) Me(ctx context.Context, _ *connect.Request[api.MeRequest]) (*connect.Response[api.MeResponse], error) {
	return connect.NewResponse(&api.MeResponse{
		ID:   GetUserID(ctx),
		Role: GetRole(ctx),
	}), nil
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"Token abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := bearerToken(tt.header)
		if got != tt.want || ok != tt.ok {
			t.Errorf("bearerToken(%q) = %q, %v; want %q, %v", tt.header, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRequireAuthAndRole(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	path, handler := apiconnect.NewAuthServiceHandler(meService{},
		connect.WithInterceptors(RequireAuth(jwtManager), RequireRole(auth.RoleAdmin), LoggingInterceptor()),
	)
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	client := apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL)

	call := func(header string) (*connect.Response[api.MeResponse], error) {
		req := connect.NewRequest(&api.MeRequest{})
		if header != "" {
			req.Header().Set("Authorization", header)
		}
		return client.Me(context.Background(), req)
	}

	t.Run("missing token", func(t *testing.T) {
		_, err := call("")
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Errorf("expected Unauthenticated, got %v", err)
		}
	})

	t.Run("admin token with Token scheme", func(t *testing.T) {
		token, err := jwtManager.Generate(&auth.Principal{ID: "u1", Login: "a@b.in", Role: auth.RoleAdmin})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		resp, err := call("Token " + token)
		if err != nil {
			t.Fatalf("Me failed: %v", err)
		}
		if resp.Msg.ID != "u1" || resp.Msg.Role != auth.RoleAdmin {
			t.Errorf("unexpected principal: %+v", resp.Msg)
		}
	})

	t.Run("customer token is denied", func(t *testing.T) {
		token, err := jwtManager.Generate(&auth.Principal{ID: "c1", Login: "+919876543210", Role: auth.RoleCustomer})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		_, err = call("Bearer " + token)
		var connectErr *connect.Error
		if !errors.As(err, &connectErr) || connectErr.Code() != connect.CodePermissionDenied {
			t.Errorf("expected PermissionDenied, got %v", err)
		}
	})
}

func TestRequireAuthHTTP(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	handler := RequireAuthHTTP(jwtManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetRole(r.Context()) + ":" + GetUserID(r.Context())))
	}))
	token, err := jwtManager.Generate(&auth.Principal{ID: "c1", Login: "+919876543210", Role: auth.RoleCustomer})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		target string
		header string
		status int
		body   string
	}{
		{"no token", "/download", "", http.StatusUnauthorized, ""},
		{"header", "/download", "Bearer " + token, http.StatusOK, "customer:c1"},
		{"query", "/download?token=" + token, "", http.StatusOK, "customer:c1"},
		{"bad token", "/download?token=nope", "", http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.body != "" && rec.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.body)
			}
		})
	}
}
