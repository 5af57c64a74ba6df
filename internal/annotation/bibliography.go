package annotation

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/openpecha/corpusgraph/internal/domain"
	"github.com/openpecha/corpusgraph/internal/graph"
	"github.com/openpecha/corpusgraph/internal/idgen"
	"github.com/openpecha/corpusgraph/pkg/apperrors"
)

// BibliographyInput is one bibliographic-metadata item: its spans.
type BibliographyInput struct {
	Spans []domain.Span
}

// Bibliography handles the BibliographicMetadata annotation kind.
type Bibliography struct {
	catalog *graph.Catalog
	ids     *idgen.Source
}

func NewBibliography(catalog *graph.Catalog, ids *idgen.Source) *Bibliography {
	return &Bibliography{catalog: catalog, ids: ids}
}

// AddWithTransaction mints one BibliographicMetadata node per item,
// attaching it to manifestationID via BIBLIOGRAPHY_OF, typed by biblioType.
func (b *Bibliography) AddWithTransaction(ctx context.Context, tx neo4j.ManagedTransaction, manifestationID, biblioType string, items []BibliographyInput) ([]string, error) {
	specs := make([]map[string]any, 0, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		id := b.ids.Generate()
		ids = append(ids, id)
		specs = append(specs, map[string]any{"id": id, "spans": spanParams(item.Spans)})
	}
	if len(specs) == 0 {
		return ids, nil
	}
	if err := graph.Exec(ctx, tx, b.catalog.Bibliography["create_batch"], map[string]any{
		"manifestation_id": manifestationID, "biblio_type": biblioType, "items": specs,
	}); err != nil {
		return nil, apperrors.NewInternal("create bibliographic metadata", err)
	}
	return ids, nil
}

// DeleteWithTransaction removes one BibliographicMetadata and its spans.
func (b *Bibliography) DeleteWithTransaction(ctx context.Context, tx neo4j.ManagedTransaction, id string) error {
	if err := graph.Exec(ctx, tx, b.catalog.Bibliography["delete"], map[string]any{"id": id}); err != nil {
		return apperrors.NewInternal("delete bibliographic metadata", err)
	}
	return nil
}

// DeleteAllForManifestation removes every BibliographicMetadata attached to
// manifestationID.
func (b *Bibliography) DeleteAllForManifestation(ctx context.Context, tx neo4j.ManagedTransaction, manifestationID string) error {
	return graph.Exec(ctx, tx, b.catalog.Bibliography["delete_all_for_manifestation"], map[string]any{"manifestation_id": manifestationID})
}
