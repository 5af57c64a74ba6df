package traversal

import (
	"context"
	"testing"

	"github.com/openpecha/corpusgraph/internal/domain"
)

// fakeFetcher is a small in-memory graph used to exercise Walk without a
// live store. Each manifestation has at most one outgoing alignment pair,
// enough to cover a linear chain and a cycle.
type fakeFetcher struct {
	pairs      map[string][]AlignmentPair
	segments   map[string][]domain.Segment // keyed by segmentation id
	peerOf     map[string]string           // segmentation id -> manifestation id
	segLayerOf map[string]string           // manifestation id -> segmentation-layer segmentation id
}

func (f *fakeFetcher) AlignmentPairsFor(ctx context.Context, manifestationID string) ([]AlignmentPair, error) {
	return f.pairs[manifestationID], nil
}

func (f *fakeFetcher) OverlappingInSegmentation(ctx context.Context, segmentationID string, start, end int) ([]domain.Segment, error) {
	var out []domain.Segment
	for _, seg := range f.segments[segmentationID] {
		if seg.MinStart() < end && seg.MaxEnd() > start {
			out = append(out, seg)
		}
	}
	return out, nil
}

func (f *fakeFetcher) PeerManifestation(ctx context.Context, segmentationID string) (string, error) {
	return f.peerOf[segmentationID], nil
}

func (f *fakeFetcher) SegmentationLayerOf(ctx context.Context, manifestationID string) (string, error) {
	return f.segLayerOf[manifestationID], nil
}

func seg(id string, start, end int) domain.Segment {
	return domain.Segment{ID: id, Spans: []domain.Span{{Start: start, End: end}}}
}

func TestWalkLinearChainEmitsAlignmentLayer(t *testing.T) {
	f := &fakeFetcher{
		pairs: map[string][]AlignmentPair{
			"m1": {{SourceSegmentationID: "a1", TargetSegmentationID: "a2"}},
		},
		segments: map[string][]domain.Segment{
			"a1": {seg("s1", 0, 10)},
			"a2": {seg("s2", 5, 15)},
		},
		peerOf: map[string]string{"a2": "m2"},
	}

	results, err := Walk(context.Background(), f, nil, "m1", 0, 10, false)
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if len(results) != 1 || results[0].ID != "s2" {
		t.Fatalf("expected [s2], got %+v", results)
	}
}

func TestWalkTransformUsesSegmentationLayer(t *testing.T) {
	f := &fakeFetcher{
		pairs: map[string][]AlignmentPair{
			"m1": {{SourceSegmentationID: "a1", TargetSegmentationID: "a2"}},
		},
		segments: map[string][]domain.Segment{
			"a1":   {seg("s1", 0, 10)},
			"a2":   {seg("alignment-side", 100, 110)},
			"seg2": {seg("plain-side", 5, 15)},
		},
		peerOf:     map[string]string{"a2": "m2"},
		segLayerOf: map[string]string{"m2": "seg2"},
	}

	results, err := Walk(context.Background(), f, nil, "m1", 0, 10, true)
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if len(results) != 1 || results[0].ID != "plain-side" {
		t.Fatalf("expected transfer onto the segmentation layer, got %+v", results)
	}
}

func TestWalkNoOverlapStopsBranch(t *testing.T) {
	f := &fakeFetcher{
		pairs: map[string][]AlignmentPair{
			"m1": {{SourceSegmentationID: "a1", TargetSegmentationID: "a2"}},
		},
		segments: map[string][]domain.Segment{
			"a1": {seg("s1", 500, 510)}, // does not overlap the queried [0,10) range
			"a2": {seg("s2", 100, 110)},
		},
		peerOf: map[string]string{"a2": "m2"},
	}

	results, err := Walk(context.Background(), f, nil, "m1", 0, 10, false)
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results when nothing overlaps, got %+v", results)
	}
}

func TestWalkCycleVisitsEachManifestationOnce(t *testing.T) {
	// m1 <-> m2 alignment pair in both directions; the return pair from m2
	// is skipped because the (a1, a2) pair was already traversed.
	f := &fakeFetcher{
		pairs: map[string][]AlignmentPair{
			"m1": {{SourceSegmentationID: "a1", TargetSegmentationID: "a2"}},
			"m2": {{SourceSegmentationID: "a2", TargetSegmentationID: "a1"}},
		},
		segments: map[string][]domain.Segment{
			"a1": {seg("s1", 0, 10)},
			"a2": {seg("s2", 5, 15)},
		},
		peerOf: map[string]string{"a2": "m2", "a1": "m1"},
	}

	results, err := Walk(context.Background(), f, nil, "m1", 0, 10, false)
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected exactly one emission from the single hop before termination, got %+v", results)
	}
}
