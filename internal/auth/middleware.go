package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/openpecha/corpusgraph/internal/domain"
	"github.com/openpecha/corpusgraph/pkg/apperrors"
)

type contextKey int

const principalKey contextKey = iota

// Middleware implements spec §4.K's five-step per-request algorithm: read
// X-API-Key (required) and X-Application, hash and look up the key, reject
// on mismatch, else attach the resolved Principal to the request context.
func Middleware(repo *Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			rawKey := req.Header.Get("X-API-Key")
			if rawKey == "" {
				writeError(w, apperrors.NewAuthFailure("missing X-API-Key header"))
				return
			}

			principal, err := repo.Validate(req.Context(), rawKey)
			if err != nil {
				writeError(w, err)
				return
			}

			application := req.Header.Get("X-Application")
			if principal.BoundApplicationID != nil && *principal.BoundApplicationID != application {
				writeError(w, apperrors.NewAuthFailure("not authorized for this application"))
				return
			}

			ctx := context.WithValue(req.Context(), principalKey, principal)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// FromContext retrieves the Principal attached by Middleware.
func FromContext(ctx context.Context) (*domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*domain.Principal)
	return p, ok
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperrors.StatusCode(err))
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
