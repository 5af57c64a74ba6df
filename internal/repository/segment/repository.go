// Package segment implements the thin read-side repository for Segment
// nodes (component F): overlap lookup, batch span fetch, and listing by
// Segmentation, each a direct wrapper around a single catalog query. Writes
// to Segments only ever happen as part of a Segmentation/Alignment
// transaction (internal/annotation), never standalone.
package segment

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/openpecha/corpusgraph/internal/annotation"
	"github.com/openpecha/corpusgraph/internal/domain"
	"github.com/openpecha/corpusgraph/internal/graph"
	"github.com/openpecha/corpusgraph/pkg/apperrors"
)

type Repository struct {
	client  *graph.Client
	catalog *graph.Catalog
}

func New(client *graph.Client, catalog *graph.Catalog) *Repository {
	return &Repository{client: client, catalog: catalog}
}

// GetAll returns every Segment belonging to segmentationID, spans included.
func (r *Repository) GetAll(ctx context.Context, segmentationID string) ([]domain.Segment, error) {
	return graph.ExecuteRead(ctx, r.client, func(tx neo4j.ManagedTransaction) ([]domain.Segment, error) {
		return r.fetchBySegmentation(ctx, tx, segmentationID)
	})
}

func (r *Repository) fetchBySegmentation(ctx context.Context, tx neo4j.ManagedTransaction, segmentationID string) ([]domain.Segment, error) {
	records, err := graph.Collect(ctx, tx, r.catalog.Segments["fetch_by_segmentation"], map[string]any{"segmentation_id": segmentationID})
	if err != nil {
		return nil, apperrors.NewInternal("list segments", err)
	}
	out := make([]domain.Segment, 0, len(records))
	for _, rec := range records {
		out = append(out, segmentFromRecord(rec, segmentationID))
	}
	return out, nil
}

// AlignmentView is the read-assembly of an alignment Segmentation: the
// source-side segments, the ordered/deduplicated target segment list, and
// each source segment's indices into that list (spec §4.F read-assembly
// rule, applied by annotation.OrderedTargets).
type AlignmentView struct {
	Sources []domain.Segment
	Targets []domain.Segment
	Indices [][]int
}

// GetAlignment fetches segmentationID's source segments, resolves every
// ALIGNED_TO target they reach, and runs annotation.OrderedTargets to
// reproduce the target list and alignment_indices a client originally sent.
func (r *Repository) GetAlignment(ctx context.Context, segmentationID string) (AlignmentView, error) {
	return graph.ExecuteRead(ctx, r.client, func(tx neo4j.ManagedTransaction) (AlignmentView, error) {
		sources, err := r.fetchBySegmentation(ctx, tx, segmentationID)
		if err != nil {
			return AlignmentView{}, err
		}
		if len(sources) == 0 {
			return AlignmentView{}, nil
		}

		sourceIDs := make([]string, len(sources))
		for i, s := range sources {
			sourceIDs[i] = s.ID
		}

		targetRecords, err := graph.Collect(ctx, tx, r.catalog.Alignments["targets_for_sources"], map[string]any{"source_segment_ids": sourceIDs})
		if err != nil {
			return AlignmentView{}, apperrors.NewInternal("fetch alignment targets", err)
		}
		targetsByID := make(map[string]domain.Segment, len(targetRecords))
		for _, rec := range targetRecords {
			seg := segmentFromRecord(rec, "")
			idRaw, _ := rec.Get("target_id")
			seg.ID, _ = idRaw.(string)
			targetsByID[seg.ID] = seg
		}

		targetsBySource := make([][]domain.Segment, len(sources))
		for i, src := range sources {
			idxRecords, err := graph.Collect(ctx, tx, r.catalog.Alignments["indices_for_source"], map[string]any{"source_id": src.ID})
			if err != nil {
				return AlignmentView{}, apperrors.NewInternal("fetch alignment indices", err)
			}
			for _, rec := range idxRecords {
				idRaw, _ := rec.Get("target_id")
				id, _ := idRaw.(string)
				if seg, ok := targetsByID[id]; ok {
					targetsBySource[i] = append(targetsBySource[i], seg)
				}
			}
		}

		targets, indices := annotation.OrderedTargets(sources, targetsBySource)
		return AlignmentView{Sources: sources, Targets: targets, Indices: indices}, nil
	})
}

// Overlapping returns the ids of every Segment in segmentationID whose span
// overlaps the half-open range [start, end).
func (r *Repository) Overlapping(ctx context.Context, segmentationID string, start, end int) ([]string, error) {
	return graph.ExecuteRead(ctx, r.client, func(tx neo4j.ManagedTransaction) ([]string, error) {
		records, err := graph.Collect(ctx, tx, r.catalog.Segments["overlapping"], map[string]any{
			"segmentation_id": segmentationID, "start": start, "end": end,
		})
		if err != nil {
			return nil, apperrors.NewInternal("find overlapping segments", err)
		}
		ids := make([]string, 0, len(records))
		for _, rec := range records {
			idRaw, _ := rec.Get("id")
			id, _ := idRaw.(string)
			ids = append(ids, id)
		}
		return ids, nil
	})
}

// GetByIDBatch fetches the spans of exactly the named segments, in no
// particular order; used by the segment-related handler to resolve its seed
// segment.
func (r *Repository) GetByIDBatch(ctx context.Context, ids []string) ([]domain.Segment, error) {
	return graph.ExecuteRead(ctx, r.client, func(tx neo4j.ManagedTransaction) ([]domain.Segment, error) {
		records, err := graph.Collect(ctx, tx, r.catalog.Segments["spans_of_batch"], map[string]any{"segment_ids": ids})
		if err != nil {
			return nil, apperrors.NewInternal("fetch segments by id", err)
		}
		out := make([]domain.Segment, 0, len(records))
		for _, rec := range records {
			out = append(out, segmentFromRecord(rec, ""))
		}
		return out, nil
	})
}

func segmentFromRecord(rec *neo4j.Record, segmentationID string) domain.Segment {
	idRaw, _ := rec.Get("id")
	id, _ := idRaw.(string)
	seg := domain.Segment{ID: id, SegmentationID: segmentationID}

	spansRaw, _ := rec.Get("spans")
	if list, ok := spansRaw.([]any); ok {
		for _, v := range list {
			m, ok := v.(map[string]any)
			if !ok {
				continue
			}
			start, _ := m["start"].(int64)
			end, _ := m["end"].(int64)
			seg.Spans = append(seg.Spans, domain.Span{Start: int(start), End: int(end)})
		}
	}

	if refRaw, ok := rec.Get("reference"); ok {
		if ref, ok := refRaw.(string); ok && ref != "" {
			seg.ReferenceLabel = &ref
		}
	}
	return seg
}
