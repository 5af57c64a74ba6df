package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) listApiKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := s.ApiKeys.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, keys)
}

type createApiKeyRequest struct {
	Name               string  `json:"name" validate:"required"`
	Email              string  `json:"email" validate:"required,email"`
	BoundApplicationID *string `json:"bound_application_id,omitempty"`
}

// createApiKey returns the raw secret exactly once; only the hash is
// persisted, per spec §4.K.
func (s *Server) createApiKey(w http.ResponseWriter, r *http.Request) {
	var req createApiKeyRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}
	id, rawKey, err := s.ApiKeys.Create(r.Context(), req.Name, req.Email, req.BoundApplicationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id, "key": rawKey})
}

func (s *Server) revokeApiKey(w http.ResponseWriter, r *http.Request) {
	if err := s.ApiKeys.Revoke(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// rotateApiKey issues a fresh secret for an existing key id, invalidating
// the previous one, and returns the new raw secret exactly once.
func (s *Server) rotateApiKey(w http.ResponseWriter, r *http.Request) {
	rawKey, err := s.ApiKeys.Rotate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": rawKey})
}
