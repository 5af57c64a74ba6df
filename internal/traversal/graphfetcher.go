package traversal

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/openpecha/corpusgraph/internal/domain"
	"github.com/openpecha/corpusgraph/internal/graph"
	"github.com/openpecha/corpusgraph/pkg/apperrors"
)

// GraphFetcher is the live Fetcher backing production traversal, issuing
// one read transaction per step against the query catalog.
type GraphFetcher struct {
	client  *graph.Client
	catalog *graph.Catalog
}

func NewGraphFetcher(client *graph.Client, catalog *graph.Catalog) *GraphFetcher {
	return &GraphFetcher{client: client, catalog: catalog}
}

func (f *GraphFetcher) AlignmentPairsFor(ctx context.Context, manifestationID string) ([]AlignmentPair, error) {
	return graph.ExecuteRead(ctx, f.client, func(tx neo4j.ManagedTransaction) ([]AlignmentPair, error) {
		records, err := graph.Collect(ctx, tx, f.catalog.Alignments["pairs_for_manifestation"], map[string]any{
			"manifestation_id": manifestationID,
		})
		if err != nil {
			return nil, apperrors.NewInternal("list alignment pairs", err)
		}
		out := make([]AlignmentPair, 0, len(records))
		for _, rec := range records {
			source, _ := rec.Get("source_segmentation_id")
			target, _ := rec.Get("target_segmentation_id")
			out = append(out, AlignmentPair{
				SourceSegmentationID: asString(source),
				TargetSegmentationID: asString(target),
			})
		}
		return out, nil
	})
}

func (f *GraphFetcher) OverlappingInSegmentation(ctx context.Context, segmentationID string, start, end int) ([]domain.Segment, error) {
	return graph.ExecuteRead(ctx, f.client, func(tx neo4j.ManagedTransaction) ([]domain.Segment, error) {
		records, err := graph.Collect(ctx, tx, f.catalog.Segments["overlapping_with_spans"], map[string]any{
			"segmentation_id": segmentationID, "start": start, "end": end,
		})
		if err != nil {
			return nil, apperrors.NewInternal("find overlapping segments", err)
		}
		out := make([]domain.Segment, 0, len(records))
		for _, rec := range records {
			idRaw, _ := rec.Get("id")
			seg := domain.Segment{ID: asString(idRaw), SegmentationID: segmentationID}
			spansRaw, _ := rec.Get("spans")
			if list, ok := spansRaw.([]any); ok {
				for _, v := range list {
					m, ok := v.(map[string]any)
					if !ok {
						continue
					}
					seg.Spans = append(seg.Spans, domain.Span{Start: asInt(m["start"]), End: asInt(m["end"])})
				}
			}
			out = append(out, seg)
		}
		return out, nil
	})
}

func (f *GraphFetcher) PeerManifestation(ctx context.Context, segmentationID string) (string, error) {
	return graph.ExecuteRead(ctx, f.client, func(tx neo4j.ManagedTransaction) (string, error) {
		rec, err := graph.Single(ctx, tx, f.catalog.Alignments["peer_manifestation"], map[string]any{
			"segmentation_id": segmentationID,
		})
		if err != nil {
			return "", apperrors.NewInternal("resolve peer manifestation", err)
		}
		if rec == nil {
			return "", apperrors.NewNotFound("segmentation not found")
		}
		id, _ := rec.Get("manifestation_id")
		return asString(id), nil
	})
}

func (f *GraphFetcher) SegmentationLayerOf(ctx context.Context, manifestationID string) (string, error) {
	return graph.ExecuteRead(ctx, f.client, func(tx neo4j.ManagedTransaction) (string, error) {
		rec, err := graph.Single(ctx, tx, f.catalog.Segmentations["exists_of_kind"], map[string]any{
			"kind": string(domain.KindSegmentation), "manifestation_id": manifestationID,
		})
		if err != nil {
			return "", apperrors.NewInternal("find segmentation layer", err)
		}
		if rec == nil {
			return "", nil
		}
		id, _ := rec.Get("id")
		return asString(id), nil
	})
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}
