package annotation

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/openpecha/corpusgraph/internal/domain"
	"github.com/openpecha/corpusgraph/internal/graph"
	"github.com/openpecha/corpusgraph/internal/idgen"
	"github.com/openpecha/corpusgraph/pkg/apperrors"
)

// NoteInput is one note item: its spans. The NoteType name (e.g. "durchen")
// is passed to AddWithTransaction separately.
type NoteInput struct {
	Spans []domain.Span
}

// Note handles the Note annotation kind (spec: "Note.add_durchen").
type Note struct {
	catalog *graph.Catalog
	ids     *idgen.Source
}

func NewNote(catalog *graph.Catalog, ids *idgen.Source) *Note {
	return &Note{catalog: catalog, ids: ids}
}

// AddWithTransaction mints one Note node per item, attaching it to
// manifestationID via NOTE_OF, typed by noteType, with its spans.
func (n *Note) AddWithTransaction(ctx context.Context, tx neo4j.ManagedTransaction, manifestationID, noteType string, items []NoteInput) ([]string, error) {
	specs := make([]map[string]any, 0, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		id := n.ids.Generate()
		ids = append(ids, id)
		specs = append(specs, map[string]any{"id": id, "spans": spanParams(item.Spans)})
	}
	if len(specs) == 0 {
		return ids, nil
	}
	if err := graph.Exec(ctx, tx, n.catalog.Notes["create_batch"], map[string]any{
		"manifestation_id": manifestationID, "note_type": noteType, "notes": specs,
	}); err != nil {
		return nil, apperrors.NewInternal("create notes", err)
	}
	return ids, nil
}

// DeleteWithTransaction removes one Note and its spans. A no-op match
// (already absent) is not an error, per spec §7's idempotence rule.
func (n *Note) DeleteWithTransaction(ctx context.Context, tx neo4j.ManagedTransaction, id string) error {
	if err := graph.Exec(ctx, tx, n.catalog.Notes["delete"], map[string]any{"id": id}); err != nil {
		return apperrors.NewInternal("delete note", err)
	}
	return nil
}

// DeleteAllForManifestation removes every Note attached to manifestationID,
// used by Manifestation.update's wholesale subgraph replacement.
func (n *Note) DeleteAllForManifestation(ctx context.Context, tx neo4j.ManagedTransaction, manifestationID string) error {
	return graph.Exec(ctx, tx, n.catalog.Notes["delete_all_for_manifestation"], map[string]any{"manifestation_id": manifestationID})
}
