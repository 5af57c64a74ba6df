// Package category implements the category tree (component J): a forest of
// named nodes per Application, each titled in multiple languages, with
// per-(application, parent) case-insensitive title uniqueness.
package category

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/openpecha/corpusgraph/internal/domain"
	"github.com/openpecha/corpusgraph/internal/graph"
	"github.com/openpecha/corpusgraph/internal/idgen"
	"github.com/openpecha/corpusgraph/internal/nomen"
	"github.com/openpecha/corpusgraph/internal/validate"
	"github.com/openpecha/corpusgraph/pkg/apperrors"
)

type Repository struct {
	client    *graph.Client
	catalog   *graph.Catalog
	ids       *idgen.Source
	nomens    *nomen.Builder
	checker   *validate.Checker
}

func New(client *graph.Client, catalog *graph.Catalog, ids *idgen.Source, nomens *nomen.Builder, checker *validate.Checker) *Repository {
	return &Repository{client: client, catalog: catalog, ids: ids, nomens: nomens, checker: checker}
}

// CreateInput is the caller-supplied shape for a new Category.
type CreateInput struct {
	Application string
	ParentID    *string
	Title       nomen.Input
}

// Create enforces sibling title uniqueness, then mints the node, its title
// Nomen, and the optional HAS_PARENT edge, all in one write transaction.
func (r *Repository) Create(ctx context.Context, in CreateInput) (*domain.Category, error) {
	if len(in.Title.Primary) == 0 {
		return nil, apperrors.NewUnprocessable("category requires a title")
	}

	return graph.ExecuteWrite(ctx, r.client, func(tx neo4j.ManagedTransaction) (*domain.Category, error) {
		if in.ParentID != nil {
			if err := r.checker.CategoryExists(ctx, tx, *in.ParentID); err != nil {
				return nil, err
			}
		}
		for _, lt := range in.Title.Primary {
			if err := r.checker.CategoryTitleUnique(ctx, tx, in.Application, in.ParentID, lt.BaseLanguageCode, lt.Text); err != nil {
				return nil, err
			}
		}

		titleID, err := r.nomens.Create(ctx, tx, in.Title)
		if err != nil {
			return nil, err
		}

		id := r.ids.Generate()
		var parent any
		if in.ParentID != nil {
			parent = *in.ParentID
		}
		if err := graph.Exec(ctx, tx, r.catalog.Categories["create"], map[string]any{
			"id": id, "application": in.Application, "nomen_id": titleID,
			"parent_id": parent, "localized_texts": localizedParams(in.Title.Primary),
		}); err != nil {
			return nil, apperrors.NewInternal("create category", err)
		}

		return &domain.Category{
			ID: id, Application: in.Application, ParentID: in.ParentID,
			Title: domain.Nomen{ID: titleID, Primary: in.Title.Primary, Alternatives: in.Title.Alternatives},
		}, nil
	})
}

// GetAll returns the siblings of one (application, parentID) level, each
// annotated with has_child.
func (r *Repository) GetAll(ctx context.Context, application, language string, parentID *string) ([]domain.Category, error) {
	return graph.ExecuteRead(ctx, r.client, func(tx neo4j.ManagedTransaction) ([]domain.Category, error) {
		var parent any
		if parentID != nil {
			parent = *parentID
		}
		records, err := graph.Collect(ctx, tx, r.catalog.Categories["get_all"], map[string]any{
			"application": application, "parent_id": parent,
		})
		if err != nil {
			return nil, apperrors.NewInternal("list categories", err)
		}
		out := make([]domain.Category, 0, len(records))
		for _, rec := range records {
			cat, _ := rec.Get("category")
			m, ok := cat.(map[string]any)
			if !ok {
				continue
			}
			out = append(out, categoryFromRecord(m, application, language, parentID))
		}
		return out, nil
	})
}

func categoryFromRecord(m map[string]any, application, language string, parentID *string) domain.Category {
	id, _ := m["id"].(string)
	hasChild, _ := m["has_child"].(bool)
	var title []domain.LocalizedText
	titles, _ := m["title"].([]any)
	for _, t := range titles {
		lt, _ := t.(map[string]any)
		if lang, _ := lt["language"].(string); lang == language {
			text, _ := lt["text"].(string)
			title = append(title, domain.LocalizedText{BaseLanguageCode: lang, Text: text})
		}
	}
	return domain.Category{
		ID:          id,
		Application: application,
		ParentID:    parentID,
		Title:       domain.Nomen{Primary: title},
		HasChild:    hasChild,
	}
}

func localizedParams(lts []domain.LocalizedText) []map[string]any {
	out := make([]map[string]any, 0, len(lts))
	for _, lt := range lts {
		out = append(out, map[string]any{"language": lt.BaseLanguageCode, "text": lt.Text})
	}
	return out
}
