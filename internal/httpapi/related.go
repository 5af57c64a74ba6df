package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/openpecha/corpusgraph/internal/domain"
	"github.com/openpecha/corpusgraph/internal/traversal"
	"github.com/openpecha/corpusgraph/pkg/apperrors"
)

// editionRelated implements GET /v2/editions/{id}/related: the edition's
// Expression's hub-and-spoke relation set (root plus sibling commentaries/
// translations), optionally narrowed by the type filter named in spec §6.
func (s *Server) editionRelated(w http.ResponseWriter, r *http.Request) {
	m, err := s.Manifestations.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var typ *domain.ExpressionType
	if t := r.URL.Query().Get("type"); t != "" {
		et := domain.ExpressionType(t)
		typ = &et
	}

	related, err := s.Expressions.Related(r.Context(), m.ExpressionID, typ)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, related)
}

// editionSegmentRelated implements GET /v2/editions/{id}/segment-related:
// the alignment BFS of spec §4.I, seeded either by an existing segment id
// or by an explicit span, with transform selecting segmentation-layer
// transfer instead of raw alignment-layer emission.
func (s *Server) editionSegmentRelated(w http.ResponseWriter, r *http.Request) {
	manifestationID := chi.URLParam(r, "id")

	segmentID := queryStringPtr(r, "segment_id")
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
	if (segmentID != nil) == (start != nil) {
		writeError(w, apperrors.NewInvalidRequest("exactly one of segment_id or span_start/span_end is required"))
		return
	}

	var rangeStart, rangeEnd int
	if segmentID != nil {
		segs, err := s.Segments.GetByIDBatch(r.Context(), []string{*segmentID})
		if err != nil {
			writeError(w, err)
			return
		}
		if len(segs) == 0 {
			writeError(w, apperrors.NewNotFound("segment not found"))
			return
		}
		rangeStart, rangeEnd = segs[0].MinStart(), segs[0].MaxEnd()
	} else {
		rangeStart, rangeEnd = *start, *end
	}

	transform, _ := strconv.ParseBool(r.URL.Query().Get("transform"))

	results, err := traversal.Walk(r.Context(), s.Fetcher, s.Metrics, manifestationID, rangeStart, rangeEnd, transform)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}
