// Package traversal implements the related-segments traversal (component
// I): a breadth-first walk across Manifestations connected by alignment
// pairs, optionally transferring matches onto the peer's segmentation layer.
package traversal

import (
	"context"

	"github.com/openpecha/corpusgraph/internal/domain"
	"github.com/openpecha/corpusgraph/internal/observability"
)

// AlignmentPair names two sibling Segmentations (source A1 attached to the
// manifestation being expanded, target A2 attached to the peer).
type AlignmentPair struct {
	SourceSegmentationID string
	TargetSegmentationID string
}

// Fetcher is the graph-access seam the BFS drives. A fake implementation
// lets the traversal algorithm be unit-tested without a live graph store.
type Fetcher interface {
	// AlignmentPairsFor returns every alignment pair attached to manifestationID.
	AlignmentPairsFor(ctx context.Context, manifestationID string) ([]AlignmentPair, error)
	// OverlappingInSegmentation returns segments in segmentationID overlapping [start,end).
	OverlappingInSegmentation(ctx context.Context, segmentationID string, start, end int) ([]domain.Segment, error)
	// PeerManifestation resolves the Manifestation that segmentationID is attached to.
	PeerManifestation(ctx context.Context, segmentationID string) (string, error)
	// SegmentationLayerOf returns the plain-segmentation Segmentation id attached
	// to manifestationID, or "" if none exists.
	SegmentationLayerOf(ctx context.Context, manifestationID string) (string, error)
}

type queueEntry struct {
	manifestationID string
	start, end      int
}

type pairKey struct{ a, b string }

// Walk runs the BFS described in spec §4.I from (manifestationID, start,
// end) and returns the segments it collects. transform selects whether
// matches are emitted from the peer's alignment layer (false) or
// transferred onto the peer's segmentation layer (true).
func Walk(ctx context.Context, f Fetcher, metrics *observability.Metrics, manifestationID string, start, end int, transform bool) ([]domain.Segment, error) {
	visited := map[string]bool{manifestationID: true}
	traversedPairs := map[pairKey]bool{}
	queue := []queueEntry{{manifestationID, start, end}}
	var results []domain.Segment
	depth := 0

	for len(queue) > 0 {
		depth++
		var next []queueEntry

		for _, entry := range queue {
			pairs, err := f.AlignmentPairsFor(ctx, entry.manifestationID)
			if err != nil {
				return nil, err
			}
			if metrics != nil {
				metrics.TraversalFanOut.Observe(float64(len(pairs)))
			}

			for _, pair := range pairs {
				key := pairKey{pair.SourceSegmentationID, pair.TargetSegmentationID}
				if traversedPairs[key] {
					continue
				}

				overlapping, err := f.OverlappingInSegmentation(ctx, pair.SourceSegmentationID, entry.start, entry.end)
				if err != nil {
					return nil, err
				}
				if len(overlapping) == 0 {
					continue
				}

				newStart, newEnd := spanUnion(overlapping)

				peerManifestationID, err := f.PeerManifestation(ctx, pair.TargetSegmentationID)
				if err != nil {
					return nil, err
				}
				if visited[peerManifestationID] {
					continue
				}

				if transform {
					targetLayer, err := f.SegmentationLayerOf(ctx, peerManifestationID)
					if err != nil {
						return nil, err
					}
					if targetLayer != "" {
						emitted, err := f.OverlappingInSegmentation(ctx, targetLayer, newStart, newEnd)
						if err != nil {
							return nil, err
						}
						results = append(results, emitted...)
					}
				} else {
					targetSegments, err := f.OverlappingInSegmentation(ctx, pair.TargetSegmentationID, newStart, newEnd)
					if err != nil {
						return nil, err
					}
					results = append(results, targetSegments...)
				}

				traversedPairs[key] = true
				traversedPairs[pairKey{pair.TargetSegmentationID, pair.SourceSegmentationID}] = true
				visited[peerManifestationID] = true
				next = append(next, queueEntry{peerManifestationID, newStart, newEnd})
			}
		}
		queue = next
	}
	if metrics != nil {
		metrics.TraversalDepth.Observe(float64(depth))
	}
	return results, nil
}

// spanUnion computes s' = min(start), e' = max(end) over segs, the
// monotone span-expansion rule from spec §4.I step 2.b.
func spanUnion(segs []domain.Segment) (int, int) {
	s, e := segs[0].MinStart(), segs[0].MaxEnd()
	for _, seg := range segs[1:] {
		if m := seg.MinStart(); m < s {
			s = m
		}
		if m := seg.MaxEnd(); m > e {
			e = m
		}
	}
	return s, e
}
