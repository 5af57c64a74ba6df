package annotation

import (
	"context"
	"sort"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/openpecha/corpusgraph/internal/domain"
	"github.com/openpecha/corpusgraph/internal/graph"
	"github.com/openpecha/corpusgraph/internal/idgen"
	"github.com/openpecha/corpusgraph/internal/validate"
	"github.com/openpecha/corpusgraph/pkg/apperrors"
)

// AlignedSegmentInput is one source-side segment plus the positions into
// Input.TargetSegments it aligns to.
type AlignedSegmentInput struct {
	Spans            []domain.Span
	AlignmentIndices []int
}

// Input is the full payload for Alignment.AddWithTransaction: target is the
// peer manifestation; TargetSegments are its segments; AlignedSegments are
// the source-side segments each naming positions in TargetSegments.
type Input struct {
	TargetManifestationID string
	TargetSegments        []SegmentInput
	AlignedSegments       []AlignedSegmentInput
}

// Alignment creates and tears down paired Segmentations plus their
// ALIGNED_TO cross edges.
type Alignment struct {
	segmentation *Segmentation
	catalog      *graph.Catalog
	ids          *idgen.Source
	checker      *validate.Checker
}

func NewAlignment(segmentation *Segmentation, catalog *graph.Catalog, ids *idgen.Source, checker *validate.Checker) *Alignment {
	return &Alignment{segmentation: segmentation, catalog: catalog, ids: ids, checker: checker}
}

// AddWithTransaction creates the source and target Segmentations, their
// Segments, then one UNWIND that creates every ALIGNED_TO edge by id lookup.
// Returns the source-side Segmentation id.
func (a *Alignment) AddWithTransaction(ctx context.Context, tx neo4j.ManagedTransaction, sourceManifestationID string, in Input) (string, error) {
	if err := a.checker.AlignmentNotAlreadyPresent(ctx, tx, sourceManifestationID, in.TargetManifestationID); err != nil {
		return "", err
	}

	sourceSegments := make([]SegmentInput, len(in.AlignedSegments))
	for i, as := range in.AlignedSegments {
		sourceSegments[i] = SegmentInput{Spans: as.Spans}
	}

	sourceID, sourceSegmentIDs, err := a.createSegmentationWithIDs(ctx, tx, sourceManifestationID, sourceSegments)
	if err != nil {
		return "", err
	}
	targetID, targetSegmentIDs, err := a.createSegmentationWithIDs(ctx, tx, in.TargetManifestationID, in.TargetSegments)
	if err != nil {
		return "", err
	}

	if err := graph.Exec(ctx, tx, a.catalog.Segmentations["set_peer"], map[string]any{"id": sourceID, "peer_id": targetID}); err != nil {
		return "", apperrors.NewInternal("link alignment peer", err)
	}
	if err := graph.Exec(ctx, tx, a.catalog.Segmentations["set_peer"], map[string]any{"id": targetID, "peer_id": sourceID}); err != nil {
		return "", apperrors.NewInternal("link alignment peer", err)
	}

	edges := make([]map[string]any, 0)
	for i, as := range in.AlignedSegments {
		for _, idx := range as.AlignmentIndices {
			if idx < 0 || idx >= len(targetSegmentIDs) {
				return "", apperrors.NewUnprocessable("alignment_indices references an out-of-range target segment")
			}
			edges = append(edges, map[string]any{
				"source_id": sourceSegmentIDs[i], "target_id": targetSegmentIDs[idx],
			})
		}
	}
	if len(edges) > 0 {
		if err := graph.Exec(ctx, tx, a.catalog.Alignments["create_edges_batch"], map[string]any{"edges": edges}); err != nil {
			return "", apperrors.NewInternal("create alignment edges", err)
		}
	}
	return sourceID, nil
}

func (a *Alignment) createSegmentationWithIDs(ctx context.Context, tx neo4j.ManagedTransaction, manifestationID string, segments []SegmentInput) (string, []string, error) {
	id := a.ids.Generate()
	if err := graph.Exec(ctx, tx, a.catalog.Segmentations["create"], map[string]any{
		"id": id, "manifestation_id": manifestationID, "kind": string(domain.KindAlignment), "peer_id": nil,
	}); err != nil {
		return "", nil, apperrors.NewInternal("create alignment segmentation", err)
	}
	specs := make([]map[string]any, 0, len(segments))
	segmentIDs := make([]string, 0, len(segments))
	for _, seg := range segments {
		segID := a.ids.Generate()
		segmentIDs = append(segmentIDs, segID)
		specs = append(specs, map[string]any{"id": segID, "spans": spanParams(seg.Spans)})
	}
	if len(specs) > 0 {
		if err := graph.Exec(ctx, tx, a.catalog.Segments["create_batch"], map[string]any{
			"segmentation_id": id, "segments": specs,
		}); err != nil {
			return "", nil, apperrors.NewInternal("create alignment segments", err)
		}
	}
	return id, segmentIDs, nil
}

// DeleteWithTransaction refuses to delete a Segmentation that has no peer
// (spec §4.F: "Alignment delete refuses when the Segmentation being deleted
// is not actually an alignment"), otherwise removes both sides.
func (a *Alignment) DeleteWithTransaction(ctx context.Context, tx neo4j.ManagedTransaction, id string) error {
	rec, err := graph.Single(ctx, tx, a.catalog.Segmentations["fetch_by_id"], map[string]any{"id": id})
	if err != nil {
		return apperrors.NewInternal("fetch segmentation", err)
	}
	if rec == nil {
		return apperrors.NewNotFound("alignment not found")
	}
	peerRaw, _ := rec.Get("peer_id")
	peerID, ok := peerRaw.(string)
	if !ok || peerID == "" {
		return apperrors.NewNotFound("segmentation is not an alignment")
	}
	return graph.Exec(ctx, tx, a.catalog.Segmentations["delete_alignment_pair"], map[string]any{"id_1": id, "id_2": peerID})
}

// Update is equivalent to DeleteWithTransaction followed by
// AddWithTransaction, per spec §4.G's "Alignment.update".
func (a *Alignment) Update(ctx context.Context, tx neo4j.ManagedTransaction, id, sourceManifestationID string, in Input) (string, error) {
	if err := a.DeleteWithTransaction(ctx, tx, id); err != nil {
		return "", err
	}
	return a.AddWithTransaction(ctx, tx, sourceManifestationID, in)
}

// OrderedTargets applies spec §4.F's read-assembly ordering: source segments
// are processed in order of min(span.start); the target list is built as a
// stable, deduplicated sequence of target segments in the order they are
// first referenced, and each source segment's AlignmentIndices are rewritten
// to index into that list.
func OrderedTargets(sourceSegments []domain.Segment, targetsBySource [][]domain.Segment) ([]domain.Segment, [][]int) {
	order := make([]int, len(sourceSegments))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return sourceSegments[order[i]].MinStart() < sourceSegments[order[j]].MinStart()
	})

	var targetList []domain.Segment
	seen := map[string]int{}
	indices := make([][]int, len(sourceSegments))

	for _, srcIdx := range order {
		targets := targetsBySource[srcIdx]
		sort.SliceStable(targets, func(i, j int) bool { return targets[i].MinStart() < targets[j].MinStart() })
		idxList := make([]int, 0, len(targets))
		for _, t := range targets {
			pos, ok := seen[t.ID]
			if !ok {
				pos = len(targetList)
				seen[t.ID] = pos
				targetList = append(targetList, t)
			}
			idxList = append(idxList, pos)
		}
		indices[srcIdx] = idxList
	}
	return targetList, indices
}
