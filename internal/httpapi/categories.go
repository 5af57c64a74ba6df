package httpapi

import (
	"net/http"

	"github.com/openpecha/corpusgraph/internal/category"
	"github.com/openpecha/corpusgraph/pkg/apperrors"
)

// listCategories implements GET /v2/categories/: spec §6 requires the
// X-Application tenant header and a language to localize titles against.
func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	application := r.Header.Get("X-Application")
	if application == "" {
		writeError(w, apperrors.NewInvalidRequest("X-Application header is required"))
		return
	}
	language := r.URL.Query().Get("language")
	if language == "" {
		writeError(w, apperrors.NewInvalidRequest("language query parameter is required"))
		return
	}
	parentID := queryStringPtr(r, "parent_id")

	cats, err := s.Categories.GetAll(r.Context(), application, language, parentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

type createCategoryRequest struct {
	ParentID *string  `json:"parent_id,omitempty"`
	Title    nomenDTO `json:"title" validate:"required"`
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	application := r.Header.Get("X-Application")
	if application == "" {
		writeError(w, apperrors.NewInvalidRequest("X-Application header is required"))
		return
	}

	var req createCategoryRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	cat, err := s.Categories.Create(r.Context(), category.CreateInput{
		Application: application, ParentID: req.ParentID, Title: req.Title.toInput(),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}
