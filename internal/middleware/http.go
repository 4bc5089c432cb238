package middleware

import (
	"net/http"

	"github.com/mmynk/milkagency/internal/auth"
)

// RequireAuthHTTP authenticates plain HTTP routes such as file downloads.
// Browsers following a link cannot set headers, so the token may also be
// passed as the "token" query parameter.
func RequireAuthHTTP(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				tokenString = r.URL.Query().Get("token")
			}
			if tokenString == "" {
				http.Error(w, auth.ErrMissingToken.Error(), http.StatusUnauthorized)
				return
			}
			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				http.Error(w, auth.ErrInvalidToken.Error(), http.StatusUnauthorized)
				return
			}
			ctx := WithPrincipal(r.Context(), claims.UserID, claims.Login, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
