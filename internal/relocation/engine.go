// Package relocation implements the span-relocation engine (component H):
// when a byte range of a Manifestation's base text is replaced, every Span
// anchored to that Manifestation (outside the entity explicitly excluded
// from the rewrite) is adjusted or its owning entity is deleted.
package relocation

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/openpecha/corpusgraph/internal/graph"
	"github.com/openpecha/corpusgraph/internal/observability"
	"github.com/openpecha/corpusgraph/pkg/apperrors"
)

// Case identifies which of the six disjoint rules of spec §4.H applied to
// one affected span, used only for metrics labelling.
type Case int

const (
	CaseAfter Case = iota + 1
	CaseBefore
	CaseEngulfed
	CaseLeftOverlap
	CaseInside
	CaseRightOverlap
)

// AffectedSpan is one span discovered by the single listing query, prior to
// adjustment.
type AffectedSpan struct {
	OwnerID    string
	OwnerLabel string // "Segment" | "Note" | "BibliographicMetadata"
	Start      int
	End        int
}

// Replacement describes the base-text edit driving relocation.
type Replacement struct {
	ManifestationID string
	Start           int // rs
	End             int // re
	NewLength       int // length of the replacement content
	// ExcludeOwnerID, when non-empty, is the id of the entity whose own span
	// is being edited and must not be relocated by this pass (it is written
	// directly by the caller instead).
	ExcludeOwnerID string
}

// Engine runs the relocation algorithm inside an already-open write
// transaction, so it composes with the base-text replacement it accompanies.
type Engine struct {
	catalog *graph.Catalog
	metrics *observability.Metrics
}

func New(catalog *graph.Catalog, metrics *observability.Metrics) *Engine {
	return &Engine{catalog: catalog, metrics: metrics}
}

// Classify returns which of the six cases (s, e) falls into relative to the
// replacement window [rs, re) and Δ, exported so tests can exercise the
// decision table directly against the literal examples in spec §8.
func Classify(rs, re, s, e int) Case {
	switch {
	case rs >= e:
		return CaseAfter
	case re <= s:
		return CaseBefore
	case rs <= s && re >= e:
		return CaseEngulfed
	case rs < s && s < re && re < e:
		return CaseLeftOverlap
	case s <= rs && re <= e:
		return CaseInside
	case s < rs && rs < e && e <= re:
		return CaseRightOverlap
	default:
		// Every (s,e) with s<=e must satisfy exactly one of the above given
		// rs<=re; this default exists only to satisfy the compiler.
		return CaseAfter
	}
}

// Adjust applies Classify's rule, returning the new (start, end) span and
// whether the owning entity must be deleted instead.
func Adjust(rs, re, newLength, s, e int) (newStart, newEnd int, deleteOwner bool) {
	delta := newLength - (re - rs)
	switch Classify(rs, re, s, e) {
	case CaseAfter:
		return s, e, false
	case CaseBefore:
		return s + delta, e + delta, false
	case CaseEngulfed:
		return 0, 0, true
	case CaseLeftOverlap:
		return rs + newLength, e + delta, false
	case CaseInside:
		return s, e + delta, false
	case CaseRightOverlap:
		return s, rs, false
	default:
		return s, e, false
	}
}

// Apply lists every span anchored to r.ManifestationID outside
// r.ExcludeOwnerID and relocates or deletes each owning entity, in the same
// transaction the caller uses for the base-text replacement.
func (e *Engine) Apply(ctx context.Context, tx neo4j.ManagedTransaction, r Replacement) error {
	affected, err := e.listAffected(ctx, tx, r)
	if err != nil {
		return err
	}
	for _, span := range affected {
		newStart, newEnd, del := Adjust(r.Start, r.End, r.NewLength, span.Start, span.End)
		c := Classify(r.Start, r.End, span.Start, span.End)
		if e.metrics != nil {
			e.metrics.RelocationCases.WithLabelValues(caseLabel(c)).Inc()
		}
		if del {
			if err := e.deleteOwner(ctx, tx, span); err != nil {
				return err
			}
			continue
		}
		if err := e.updateSpan(ctx, tx, span, newStart, newEnd); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) listAffected(ctx context.Context, tx neo4j.ManagedTransaction, r Replacement) ([]AffectedSpan, error) {
	var exclude any
	if r.ExcludeOwnerID != "" {
		exclude = r.ExcludeOwnerID
	}
	records, err := graph.Collect(ctx, tx, listAffectedSpansQuery, map[string]any{
		"manifestation_id": r.ManifestationID,
		"exclude_id":       exclude,
	})
	if err != nil {
		return nil, apperrors.NewInternal("list affected spans", err)
	}
	out := make([]AffectedSpan, 0, len(records))
	for _, rec := range records {
		ownerID, _ := rec.Get("owner_id")
		ownerLabel, _ := rec.Get("owner_label")
		start, _ := rec.Get("start")
		end, _ := rec.Get("end")
		out = append(out, AffectedSpan{
			OwnerID:    asString(ownerID),
			OwnerLabel: asString(ownerLabel),
			Start:      asInt(start),
			End:        asInt(end),
		})
	}
	return out, nil
}

func (e *Engine) updateSpan(ctx context.Context, tx neo4j.ManagedTransaction, span AffectedSpan, newStart, newEnd int) error {
	return graph.Exec(ctx, tx, updateSpanQuery, map[string]any{
		"owner_id": span.OwnerID, "old_start": span.Start, "old_end": span.End,
		"start": newStart, "end": newEnd,
	})
}

func (e *Engine) deleteOwner(ctx context.Context, tx neo4j.ManagedTransaction, span AffectedSpan) error {
	switch span.OwnerLabel {
	case "Segment":
		return graph.Exec(ctx, tx, deleteSegmentQuery, map[string]any{"owner_id": span.OwnerID})
	case "Note":
		return graph.Exec(ctx, tx, deleteNoteQuery, map[string]any{"owner_id": span.OwnerID})
	case "BibliographicMetadata":
		return graph.Exec(ctx, tx, deleteBiblioQuery, map[string]any{"owner_id": span.OwnerID})
	default:
		return apperrors.NewInternal("unknown span owner label "+span.OwnerLabel, nil)
	}
}

// The following queries are not in internal/graph.Catalog because they are
// private to the relocation engine's single-listing-query design (spec
// §4.H: "implementation issues a single query listing all affected spans").
const listAffectedSpansQuery = `
	MATCH (span:Span)-[:SPAN_OF]->(owner)
	MATCH (owner)-[:SEGMENT_OF|NOTE_OF|BIBLIOGRAPHY_OF|SEGMENTATION_OF*1..2]->(m:Manifestation {id: $manifestation_id})
	WHERE ($exclude_id IS NULL OR owner.id <> $exclude_id)
	RETURN owner.id AS owner_id, labels(owner)[0] AS owner_label, span.start AS start, span.end AS end`

const updateSpanQuery = `
	MATCH (owner {id: $owner_id})<-[:SPAN_OF]-(span:Span {start: $old_start, end: $old_end})
	SET span.start = $start, span.end = $end`

const deleteSegmentQuery = `
	MATCH (segment:Segment {id: $owner_id})
	OPTIONAL MATCH (span:Span)-[:SPAN_OF]->(segment)
	OPTIONAL MATCH (segment)-[:HAS_REFERENCE]->(ref:Reference)
	DETACH DELETE span, ref, segment`

const deleteNoteQuery = `
	MATCH (n:Note {id: $owner_id})
	OPTIONAL MATCH (span:Span)-[:SPAN_OF]->(n)
	DETACH DELETE span, n`

const deleteBiblioQuery = `
	MATCH (b:BibliographicMetadata {id: $owner_id})
	OPTIONAL MATCH (span:Span)-[:SPAN_OF]->(b)
	DETACH DELETE span, b`

func caseLabel(c Case) string {
	switch c {
	case CaseAfter:
		return "1"
	case CaseBefore:
		return "2"
	case CaseEngulfed:
		return "3"
	case CaseLeftOverlap:
		return "4"
	case CaseInside:
		return "5"
	case CaseRightOverlap:
		return "6"
	default:
		return "unknown"
	}
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
