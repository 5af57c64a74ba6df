package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openpecha/corpusgraph/internal/repository/person"
)

func (s *Server) listPersons(w http.ResponseWriter, r *http.Request) {
	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", 20)
	list, err := s.Persons.GetAll(r.Context(), offset, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

type createPersonRequest struct {
	BDRC *string  `json:"bdrc,omitempty"`
	Wiki *string  `json:"wiki,omitempty"`
	Name nomenDTO `json:"name" validate:"required"`
}

func (s *Server) createPerson(w http.ResponseWriter, r *http.Request) {
	var req createPersonRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, err := s.Persons.Create(r.Context(), person.CreateInput{BDRC: req.BDRC, Wiki: req.Wiki, Name: req.Name.toInput()})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) getPerson(w http.ResponseWriter, r *http.Request) {
	p, err := s.Persons.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deletePerson(w http.ResponseWriter, r *http.Request) {
	if err := s.Persons.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
