// Package annotation implements the annotation-layer subsystem (component
// G): Segmentation, Pagination, Alignment, Note and BibliographicMetadata,
// each exposing composable add_with_transaction/delete_with_transaction
// functions reused by the Expression/Manifestation creation paths.
package annotation

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/openpecha/corpusgraph/internal/domain"
	"github.com/openpecha/corpusgraph/internal/graph"
	"github.com/openpecha/corpusgraph/internal/idgen"
	"github.com/openpecha/corpusgraph/internal/validate"
	"github.com/openpecha/corpusgraph/pkg/apperrors"
)

// SegmentInput is one caller-supplied Segment: its spans plus, for
// pagination segments, a page-label reference.
type SegmentInput struct {
	Spans     []domain.Span
	Reference *string
}

// Segmentation handles the plain-segmentation annotation kind.
type Segmentation struct {
	catalog *graph.Catalog
	ids     *idgen.Source
	checker *validate.Checker
}

func NewSegmentation(catalog *graph.Catalog, ids *idgen.Source, checker *validate.Checker) *Segmentation {
	return &Segmentation{catalog: catalog, ids: ids, checker: checker}
}

// AddWithTransaction mints a Segmentation and its Segments/Spans in tx.
// Spec §4.G: "mint a Segmentation id, create the node and SEGMENTATION_OF
// edge, then UNWIND the list of segment specs into Segment + Span creations."
func (s *Segmentation) AddWithTransaction(ctx context.Context, tx neo4j.ManagedTransaction, manifestationID string, segments []SegmentInput) (string, error) {
	if err := s.checker.NoDuplicateAnnotationKind(ctx, tx, manifestationID, domain.KindSegmentation); err != nil {
		return "", err
	}
	return s.create(ctx, tx, manifestationID, domain.KindSegmentation, segments)
}

// create is shared by Segmentation and Pagination: they differ only in the
// annotation kind tag and whether segments carry a Reference.
func (s *Segmentation) create(ctx context.Context, tx neo4j.ManagedTransaction, manifestationID string, kind domain.AnnotationKind, segments []SegmentInput) (string, error) {
	id := s.ids.Generate()
	if err := graph.Exec(ctx, tx, s.catalog.Segmentations["create"], map[string]any{
		"id": id, "manifestation_id": manifestationID, "kind": string(kind), "peer_id": nil,
	}); err != nil {
		return "", apperrors.NewInternal("create segmentation", err)
	}

	specs := make([]map[string]any, 0, len(segments))
	segmentIDs := make([]string, 0, len(segments))
	for _, seg := range segments {
		segID := s.ids.Generate()
		segmentIDs = append(segmentIDs, segID)
		specs = append(specs, map[string]any{"id": segID, "spans": spanParams(seg.Spans)})
	}
	if len(specs) > 0 {
		if err := graph.Exec(ctx, tx, s.catalog.Segments["create_batch"], map[string]any{
			"segmentation_id": id, "segments": specs,
		}); err != nil {
			return "", apperrors.NewInternal("create segments", err)
		}
	}

	var refs []map[string]any
	for i, seg := range segments {
		if seg.Reference != nil {
			refs = append(refs, map[string]any{
				"segment_id": segmentIDs[i], "reference_id": s.ids.Generate(), "label": *seg.Reference,
			})
		}
	}
	if len(refs) > 0 {
		if err := graph.Exec(ctx, tx, s.catalog.Segments["create_reference_batch"], map[string]any{
			"references": refs,
		}); err != nil {
			return "", apperrors.NewInternal("create references", err)
		}
	}
	return id, nil
}

// DeleteWithTransaction removes the Segmentation's Segments, Spans and
// References, then the Segmentation itself, in one query.
func (s *Segmentation) DeleteWithTransaction(ctx context.Context, tx neo4j.ManagedTransaction, id string) error {
	return graph.Exec(ctx, tx, s.catalog.Segmentations["delete_cascade"], map[string]any{"id": id})
}

func spanParams(spans []domain.Span) []map[string]any {
	out := make([]map[string]any, 0, len(spans))
	for _, sp := range spans {
		out = append(out, map[string]any{"start": sp.Start, "end": sp.End})
	}
	return out
}
