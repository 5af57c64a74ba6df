package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/openpecha/corpusgraph/pkg/apperrors"
)

var validate = validator.New()

// decodeAndValidate reads req's JSON body into dst and runs struct-tag
// validation (schema layer only, never domain invariants — those live in
// internal/validate).
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewUnprocessable("malformed JSON body: " + err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		return apperrors.NewUnprocessable("validation failed: " + err.Error())
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperrors.StatusCode(err), map[string]string{"error": err.Error()})
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func queryIntPtr(r *http.Request, key string) (*int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, apperrors.NewInvalidRequest(key + " must be an integer")
	}
	return &n, nil
}

func queryStringPtr(r *http.Request, key string) *string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	return &v
}
