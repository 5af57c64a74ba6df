package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openpecha/corpusgraph/internal/domain"
	"github.com/openpecha/corpusgraph/internal/nomen"
	"github.com/openpecha/corpusgraph/internal/repository/expression"
	"github.com/openpecha/corpusgraph/pkg/apperrors"
)

type localizedTextDTO struct {
	Language string `json:"language" validate:"required,min=2,max=3"`
	BCP47    string `json:"bcp47,omitempty"`
	Text     string `json:"text" validate:"required"`
}

type nomenDTO struct {
	Primary      []localizedTextDTO   `json:"primary" validate:"required,min=1,dive"`
	Alternatives [][]localizedTextDTO `json:"alternatives,omitempty"`
}

func (n nomenDTO) toInput() nomen.Input {
	in := nomen.Input{Primary: toLocalizedTexts(n.Primary)}
	for _, alt := range n.Alternatives {
		in.Alternatives = append(in.Alternatives, toLocalizedTexts(alt))
	}
	return in
}

func toLocalizedTexts(dtos []localizedTextDTO) []domain.LocalizedText {
	out := make([]domain.LocalizedText, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, domain.LocalizedText{BaseLanguageCode: d.Language, BCP47Tag: d.BCP47, Text: d.Text})
	}
	return out
}

type contributionDTO struct {
	PersonID string `json:"person_id" validate:"required_without=IsAI"`
	Role     string `json:"role" validate:"required"`
	IsAI     bool   `json:"is_ai,omitempty"`
}

type createExpressionRequest struct {
	BDRC               *string           `json:"bdrc,omitempty"`
	Wiki               *string           `json:"wiki,omitempty"`
	Type               string            `json:"type" validate:"required,oneof=root translation commentary translation_source"`
	LanguageCode       string            `json:"language" validate:"required"`
	BCP47Tag           string            `json:"bcp47,omitempty"`
	Date               *string           `json:"date,omitempty"`
	Title              nomenDTO          `json:"title" validate:"required"`
	Contributions      []contributionDTO `json:"contributions,omitempty"`
	License            string            `json:"license" validate:"required"`
	Copyright          string            `json:"copyright" validate:"required"`
	CategoryID         *string           `json:"category_id,omitempty"`
	TargetID           string            `json:"target_id,omitempty"`
	TargetLanguageCode string            `json:"target_language,omitempty"`
}

func (s *Server) listExpressions(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	if limit < 1 || limit > 100 {
		writeError(w, apperrors.NewInvalidRequest("limit must be between 1 and 100"))
		return
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		writeError(w, apperrors.NewInvalidRequest("offset must be >= 0"))
		return
	}

	f := expression.Filter{Offset: offset, Limit: limit}
	if t := r.URL.Query().Get("type"); t != "" {
		typ := domain.ExpressionType(t)
		f.Type = &typ
	}
	if lang := r.URL.Query().Get("language"); lang != "" {
		f.Language = &lang
	}

	list, err := s.Expressions.GetAll(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) getExpression(w http.ResponseWriter, r *http.Request) {
	e, err := s.Expressions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) createExpression(w http.ResponseWriter, r *http.Request) {
	var req createExpressionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	in := expression.CreateInput{
		BDRC: req.BDRC, Wiki: req.Wiki, Type: domain.ExpressionType(req.Type),
		LanguageCode: req.LanguageCode, BCP47Tag: req.BCP47Tag, Date: req.Date,
		Title: req.Title.toInput(), License: domain.LicenseType(req.License),
		Copyright: domain.CopyrightStatus(req.Copyright), CategoryID: req.CategoryID,
		TargetID: req.TargetID, TargetLanguageCode: req.TargetLanguageCode,
	}
	for _, c := range req.Contributions {
		in.Contributions = append(in.Contributions, domain.Contribution{PersonID: c.PersonID, Role: c.Role, IsAI: c.IsAI})
	}

	e, existed, err := s.Expressions.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	status := http.StatusCreated
	if existed {
		status = http.StatusOK
	}
	writeJSON(w, status, e)
}

type updateTitleRequest struct {
	Updates []localizedTextDTO `json:"updates" validate:"required,min=1,dive"`
}

func (s *Server) updateExpressionTitle(w http.ResponseWriter, r *http.Request) {
	var req updateTitleRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.Expressions.UpdateTitle(r.Context(), chi.URLParam(r, "id"), toLocalizedTexts(req.Updates)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) allExpressionRelations(w http.ResponseWriter, r *http.Request) {
	rels, err := s.Expressions.AllRelations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rels)
}
