package annotation

import (
	"reflect"
	"testing"

	"github.com/openpecha/corpusgraph/internal/domain"
)

func span(id string, start, end int) domain.Segment {
	return domain.Segment{ID: id, Spans: []domain.Span{{Start: start, End: end}}}
}

func TestOrderedTargetsOrdersBySourceMinStart(t *testing.T) {
	// Source segments are supplied out of span order; OrderedTargets must
	// process them as if sorted by MinStart before building the target list.
	sources := []domain.Segment{
		span("src-late", 100, 110),
		span("src-early", 0, 10),
	}
	targets := [][]domain.Segment{
		{span("t-late", 500, 510)},
		{span("t-early", 0, 10)},
	}

	targetList, indices := OrderedTargets(sources, targets)

	if len(targetList) != 2 || targetList[0].ID != "t-early" || targetList[1].ID != "t-late" {
		t.Fatalf("expected target list ordered by source-processing order [t-early, t-late], got %+v", targetList)
	}
	if !reflect.DeepEqual(indices[0], []int{1}) {
		t.Errorf("src-late's indices = %v, want [1] (t-late is second in the list)", indices[0])
	}
	if !reflect.DeepEqual(indices[1], []int{0}) {
		t.Errorf("src-early's indices = %v, want [0] (t-early is first in the list)", indices[1])
	}
}

func TestOrderedTargetsDeduplicatesSharedTargets(t *testing.T) {
	shared := span("shared", 0, 10)
	sources := []domain.Segment{
		span("src-a", 0, 10),
		span("src-b", 20, 30),
	}
	targets := [][]domain.Segment{
		{shared},
		{shared},
	}

	targetList, indices := OrderedTargets(sources, targets)

	if len(targetList) != 1 {
		t.Fatalf("expected the shared target to be deduplicated, got %+v", targetList)
	}
	if !reflect.DeepEqual(indices[0], []int{0}) || !reflect.DeepEqual(indices[1], []int{0}) {
		t.Errorf("both sources should index the single deduplicated target, got %v and %v", indices[0], indices[1])
	}
}

func TestOrderedTargetsFirstMentionOrder(t *testing.T) {
	sources := []domain.Segment{
		span("src-a", 0, 10),
		span("src-b", 20, 30),
	}
	targets := [][]domain.Segment{
		{span("t1", 50, 60), span("t2", 10, 20)},
		{span("t2", 10, 20), span("t3", 70, 80)},
	}

	targetList, _ := OrderedTargets(sources, targets)

	var ids []string
	for _, tgt := range targetList {
		ids = append(ids, tgt.ID)
	}
	want := []string{"t2", "t1", "t3"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("target list = %v, want %v (first source's targets sorted by start, then new targets in first-mention order)", ids, want)
	}
}
