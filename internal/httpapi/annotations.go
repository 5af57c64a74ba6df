package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openpecha/corpusgraph/internal/annotation"
	"github.com/openpecha/corpusgraph/internal/domain"
	"github.com/openpecha/corpusgraph/internal/graph"
	"github.com/openpecha/corpusgraph/pkg/apperrors"
)

type spanDTO struct {
	Start int `json:"start" validate:"gte=0"`
	End   int `json:"end" validate:"gtfield=Start"`
}

func (d spanDTO) toSpan() domain.Span { return domain.Span{Start: d.Start, End: d.End} }

func toSpans(dtos []spanDTO) []domain.Span {
	out := make([]domain.Span, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toSpan())
	}
	return out
}

type segmentInputDTO struct {
	Spans     []spanDTO `json:"lines" validate:"required,min=1,dive"`
	Reference *string   `json:"reference,omitempty"`
}

func toSegmentInputs(dtos []segmentInputDTO) []annotation.SegmentInput {
	out := make([]annotation.SegmentInput, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, annotation.SegmentInput{Spans: toSpans(d.Spans), Reference: d.Reference})
	}
	return out
}

type createAnnotationRequest struct {
	Segments []segmentInputDTO `json:"segments,omitempty" validate:"omitempty,dive"`

	// Alignment-only fields.
	TargetManifestationID string            `json:"target_manifestation_id,omitempty"`
	TargetSegments        []segmentInputDTO `json:"target_segments,omitempty" validate:"omitempty,dive"`
	AlignedSegments       []struct {
		Spans            []spanDTO `json:"lines" validate:"required,min=1,dive"`
		AlignmentIndices []int     `json:"alignment_indices"`
	} `json:"aligned_segments,omitempty"`
}

// createAnnotation implements POST /v2/annotations/{kind}/{id}: id is the
// Manifestation id the layer attaches to.
func (s *Server) createAnnotation(w http.ResponseWriter, r *http.Request) {
	kind := domain.AnnotationKind(chi.URLParam(r, "kind"))
	manifestationID := chi.URLParam(r, "id")

	var req createAnnotationRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	client := s.client()

	switch kind {
	case domain.KindSegmentation:
		id, err := graph.ExecuteWrite(r.Context(), client, func(tx neo4jTx) (string, error) {
			return s.Segmentation.AddWithTransaction(r.Context(), tx, manifestationID, toSegmentInputs(req.Segments))
		})
		respondCreatedID(w, id, err)
	case domain.KindPagination:
		id, err := graph.ExecuteWrite(r.Context(), client, func(tx neo4jTx) (string, error) {
			return s.Pagination.AddWithTransaction(r.Context(), tx, manifestationID, toSegmentInputs(req.Segments))
		})
		respondCreatedID(w, id, err)
	case domain.KindAlignment:
		in := annotation.Input{TargetManifestationID: req.TargetManifestationID, TargetSegments: toSegmentInputs(req.TargetSegments)}
		for _, as := range req.AlignedSegments {
			in.AlignedSegments = append(in.AlignedSegments, annotation.AlignedSegmentInput{Spans: toSpans(as.Spans), AlignmentIndices: as.AlignmentIndices})
		}
		id, err := graph.ExecuteWrite(r.Context(), client, func(tx neo4jTx) (string, error) {
			return s.Alignment.AddWithTransaction(r.Context(), tx, manifestationID, in)
		})
		respondCreatedID(w, id, err)
	case domain.KindDurchen:
		ids, err := graph.ExecuteWrite(r.Context(), client, func(tx neo4jTx) ([]string, error) {
			return s.Notes.AddWithTransaction(r.Context(), tx, manifestationID, string(domain.KindDurchen), toNoteInputs(req.Segments))
		})
		respondCreatedIDs(w, ids, err)
	case domain.KindBibliographic:
		ids, err := graph.ExecuteWrite(r.Context(), client, func(tx neo4jTx) ([]string, error) {
			return s.Bibliography.AddWithTransaction(r.Context(), tx, manifestationID, string(domain.KindBibliographic), toBiblioInputs(req.Segments))
		})
		respondCreatedIDs(w, ids, err)
	default:
		writeError(w, apperrors.NewInvalidRequest("unknown annotation kind "+string(kind)))
	}
}

// getAnnotation implements GET /v2/annotations/{kind}/{id}: id is the
// Segmentation id itself. Only the segmentation, pagination and alignment
// kinds are served; durchen and bibliographic get 400 "unknown annotation
// kind".
func (s *Server) getAnnotation(w http.ResponseWriter, r *http.Request) {
	kind := domain.AnnotationKind(chi.URLParam(r, "kind"))
	id := chi.URLParam(r, "id")

	switch kind {
	case domain.KindSegmentation, domain.KindPagination:
		segs, err := s.Segments.GetAll(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, segs)
	case domain.KindAlignment:
		view, err := s.Segments.GetAlignment(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, alignmentResponse{
			Sources:          view.Sources,
			Targets:          view.Targets,
			AlignmentIndices: view.Indices,
		})
	default:
		writeError(w, apperrors.NewInvalidRequest("unknown annotation kind "+string(kind)))
	}
}

// alignmentResponse is GET /v2/annotations/alignment/{id}'s body: the
// source-side segments, the ordered/deduplicated target segments they align
// to, and each source segment's indices into that target list — the same
// shape createAnnotationRequest.AlignedSegments accepted, reproduced as
// spec §8 round-trip law 4 requires.
type alignmentResponse struct {
	Sources          []domain.Segment `json:"sources"`
	Targets          []domain.Segment `json:"target_segments"`
	AlignmentIndices [][]int          `json:"alignment_indices"`
}

// deleteAnnotation implements DELETE /v2/annotations/{kind}/{id}. Per spec
// §7's idempotence rule, a missing segmentation/pagination/durchen/
// bibliographic annotation still returns 204; a missing alignment returns
// 404 because the delete must also resolve the (absent) peer.
func (s *Server) deleteAnnotation(w http.ResponseWriter, r *http.Request) {
	kind := domain.AnnotationKind(chi.URLParam(r, "kind"))
	id := chi.URLParam(r, "id")
	client := s.client()

	var err error
	switch kind {
	case domain.KindSegmentation, domain.KindPagination:
		_, err = graph.ExecuteWrite(r.Context(), client, func(tx neo4jTx) (any, error) {
			return nil, s.Segmentation.DeleteWithTransaction(r.Context(), tx, id)
		})
	case domain.KindAlignment:
		_, err = graph.ExecuteWrite(r.Context(), client, func(tx neo4jTx) (any, error) {
			return nil, s.Alignment.DeleteWithTransaction(r.Context(), tx, id)
		})
	case domain.KindDurchen:
		_, err = graph.ExecuteWrite(r.Context(), client, func(tx neo4jTx) (any, error) {
			return nil, s.Notes.DeleteWithTransaction(r.Context(), tx, id)
		})
	case domain.KindBibliographic:
		_, err = graph.ExecuteWrite(r.Context(), client, func(tx neo4jTx) (any, error) {
			return nil, s.Bibliography.DeleteWithTransaction(r.Context(), tx, id)
		})
	default:
		writeError(w, apperrors.NewInvalidRequest("unknown annotation kind "+string(kind)))
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toNoteInputs(dtos []segmentInputDTO) []annotation.NoteInput {
	out := make([]annotation.NoteInput, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, annotation.NoteInput{Spans: toSpans(d.Spans)})
	}
	return out
}

func toBiblioInputs(dtos []segmentInputDTO) []annotation.BibliographyInput {
	out := make([]annotation.BibliographyInput, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, annotation.BibliographyInput{Spans: toSpans(d.Spans)})
	}
	return out
}

func respondCreatedID(w http.ResponseWriter, id string, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func respondCreatedIDs(w http.ResponseWriter, ids []string, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string][]string{"ids": ids})
}
