package providers

import (
	"context"
	"net/http"
	"strings"

	"campusd/internal/structures"
)

// IdentityVerifier is the boundary to the credential service: given a raw
// bearer token it returns the authenticated actor.
type IdentityVerifier interface {
	VerifyToken(token string) (structures.Identity, error)
}

type contextKey int

const identityKey contextKey = 0

// IdentityFrom returns the identity the auth middleware attached.
func IdentityFrom(r *http.Request) (structures.Identity, bool) {
	id, ok := r.Context().Value(identityKey).(structures.Identity)
	return id, ok
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the verified identity on the request context.
func AuthMiddleware(verifier IdentityVerifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		identity, err := verifier.VerifyToken(strings.TrimSpace(authz[len("bearer "):]))
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey, identity)))
	})
}

// RequireRole gates a handler to the listed roles. Must run inside
// AuthMiddleware.
func RequireRole(next http.Handler, roles ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFrom(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				next.ServeHTTP(w, r)
				return
			}
		}
		http.Error(w, "Forbidden", http.StatusForbidden)
	})
}
