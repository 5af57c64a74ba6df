package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openpecha/corpusgraph/internal/domain"
	"github.com/openpecha/corpusgraph/internal/nomen"
	"github.com/openpecha/corpusgraph/internal/repository/manifestation"
	"github.com/openpecha/corpusgraph/pkg/apperrors"
)

type createManifestationRequest struct {
	BDRC         *string           `json:"bdrc,omitempty"`
	Wiki         *string           `json:"wiki,omitempty"`
	Type         string            `json:"type" validate:"required,oneof=diplomatic critical collated"`
	Source       string            `json:"source,omitempty"`
	Colophon     *string           `json:"colophon,omitempty"`
	Content      string            `json:"content" validate:"required"`
	IncipitTitle *nomenDTO         `json:"incipit_title,omitempty"`
	Segmentation []segmentInputDTO `json:"segmentation,omitempty" validate:"omitempty,dive"`
	Pagination   []segmentInputDTO `json:"pagination,omitempty" validate:"omitempty,dive"`
}

func (s *Server) listManifestations(w http.ResponseWriter, r *http.Request) {
	expressionID := chi.URLParam(r, "id")
	var typ *domain.ManifestationType
	if t := r.URL.Query().Get("type"); t != "" {
		mt := domain.ManifestationType(t)
		typ = &mt
	}
	list, err := s.Manifestations.GetAllByExpression(r.Context(), expressionID, typ)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) createManifestation(w http.ResponseWriter, r *http.Request) {
	expressionID := chi.URLParam(r, "id")
	var req createManifestationRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	in := manifestation.CreateInput{
		ExpressionID: expressionID, BDRC: req.BDRC, Wiki: req.Wiki,
		Type: domain.ManifestationType(req.Type), Source: req.Source, Colophon: req.Colophon,
		Content: []byte(req.Content),
		Initial: manifestation.InitialAnnotations{
			Segmentation: toSegmentInputs(req.Segmentation),
			Pagination:   toSegmentInputs(req.Pagination),
		},
	}
	if req.IncipitTitle != nil {
		title := req.IncipitTitle.toInput()
		in.IncipitTitle = &title
	}

	m, err := s.Manifestations.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) getEditionContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	m, err := s.Manifestations.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	start, err := queryIntPtr(r, "span_start")
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := queryIntPtr(r, "span_end")
	if err != nil {
		writeError(w, err)
		return
	}
	if (start == nil) != (end == nil) {
		writeError(w, apperrors.NewInvalidRequest("span_start and span_end must both be present or both absent"))
		return
	}

	content, err := s.Manifestations.Content(r.Context(), m.ExpressionID, id, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

func (s *Server) getEditionMetadata(w http.ResponseWriter, r *http.Request) {
	m, err := s.Manifestations.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type updateManifestationMetadataRequest struct {
	BDRC     *string `json:"bdrc,omitempty"`
	Wiki     *string `json:"wiki,omitempty"`
	Source   string  `json:"source,omitempty"`
	Colophon *string `json:"colophon,omitempty"`
}

func (s *Server) updateEditionMetadata(w http.ResponseWriter, r *http.Request) {
	var req updateManifestationMetadataRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}
	err := s.Manifestations.UpdateMetadata(r.Context(), chi.URLParam(r, "id"), manifestation.UpdateMetadataInput{
		BDRC: req.BDRC, Wiki: req.Wiki, Source: req.Source, Colophon: req.Colophon,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
