// Package expression implements the Expression entity repository
// (component F), covering spec §4.F's "Expression create" contract points.
package expression

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
	client  *graph.Client
	catalog *graph.Catalog
	ids     *idgen.Source
	nomens  *nomen.Builder
	checker *validate.Checker
}

func New(client *graph.Client, catalog *graph.Catalog, ids *idgen.Source, nomens *nomen.Builder, checker *validate.Checker) *Repository {
	return &Repository{client: client, catalog: catalog, ids: ids, nomens: nomens, checker: checker}
}

// CreateInput is the caller-supplied shape for POST /v2/texts.
type CreateInput struct {
	BDRC          *string
	Wiki          *string
	Type          domain.ExpressionType
	LanguageCode  string
	BCP47Tag      string
	Date          *string
	Title         nomen.Input
	Contributions []domain.Contribution
	License       domain.LicenseType
	Copyright     domain.CopyrightStatus
	CategoryID    *string
	// TargetID names the Expression or Work to attach COMMENTARY_OF/
	// TRANSLATION_OF to; required for every type except root.
	TargetID string
	// TargetLanguageCode is the target's language, required by the caller
	// so the translation-language-difference invariant can be checked
	// without an extra round trip.
	TargetLanguageCode string
}

// Create implements spec §4.F's Expression-create contract: title
// uniqueness, language validation, category validation, contributor
// validation, translation target-language-difference check, Work minting
// with the `original` edge flag, and AI-contributor upsert.
type createResult struct {
	Expression *domain.Expression
	Existed    bool
}

func (r *Repository) Create(ctx context.Context, in CreateInput) (*domain.Expression, bool, error) {
	if in.Type != domain.ExpressionRoot && in.TargetID == "" {
		return nil, false, apperrors.NewNotImplemented("standalone commentary/translation creation is not supported")
	}

	result, err := graph.ExecuteWrite(ctx, r.client, func(tx neo4j.ManagedTransaction) (createResult, error) {
		if in.BDRC != nil {
			if existing, err := r.findByExternal(ctx, tx, *in.BDRC); err != nil {
				return createResult{}, err
			} else if existing != nil {
				return createResult{Expression: existing, Existed: true}, nil
			}
		}

		if err := r.checker.LanguageExists(ctx, tx, in.LanguageCode); err != nil {
			return createResult{}, err
		}
		if in.CategoryID != nil {
			if err := r.checker.CategoryExists(ctx, tx, *in.CategoryID); err != nil {
				return createResult{}, err
			}
		}
		for _, lt := range in.Title.Primary {
			if err := r.checker.TitleUnique(ctx, tx, lt.BaseLanguageCode, lt.Text, ""); err != nil {
				return createResult{}, err
			}
		}
		personIDs := make([]string, 0, len(in.Contributions))
		for _, c := range in.Contributions {
			if !c.IsAI {
				personIDs = append(personIDs, c.PersonID)
			}
		}
		if err := r.checker.PersonsExist(ctx, tx, personIDs); err != nil {
			return createResult{}, err
		}
		if in.Type == domain.ExpressionTranslation {
			if err := r.checker.TranslationTargetLanguageDiffers(in.TargetLanguageCode, in.LanguageCode); err != nil {
				return createResult{}, err
			}
		}

		titleID, err := r.nomens.Create(ctx, tx, in.Title)
		if err != nil {
			return createResult{}, err
		}

		id := r.ids.Generate()
		// Every Expression mints its own Work 1:1 (see Expressions["create"]
		// below), so a freshly generated workID can never already carry a
		// root: the at-most-one-root-per-work invariant holds by
		// construction and needs no runtime check here.
		workID := r.ids.Generate()
		isOriginal := in.Type == domain.ExpressionRoot
		if err := graph.Exec(ctx, tx, r.catalog.Expressions["create"], map[string]any{
			"work_id": workID, "id": id, "bdrc": in.BDRC, "wiki": in.Wiki,
			"type": string(in.Type), "language": in.LanguageCode, "bcp47": in.BCP47Tag,
			"date": in.Date, "license": string(in.License), "copyright": string(in.Copyright),
			"category_id": in.CategoryID, "is_original": isOriginal, "title_nomen_id": titleID,
		}); err != nil {
			return createResult{}, apperrors.NewInternal("create expression", err)
		}

		if in.Type != domain.ExpressionRoot {
			relationship := "COMMENTARY_OF"
			if in.Type == domain.ExpressionTranslation {
				relationship = "TRANSLATION_OF"
			}
			if err := graph.Exec(ctx, tx, graph.AttachTargetQuery(relationship), map[string]any{
				"id": id, "target_id": in.TargetID,
			}); err != nil {
				return createResult{}, apperrors.NewInternal("attach expression target", err)
			}
		}

		for _, c := range in.Contributions {
			personID := c.PersonID
			if c.IsAI {
				rec, err := graph.Single(ctx, tx, r.catalog.AI["find_or_create"], map[string]any{"id": c.PersonID})
				if err != nil {
					return createResult{}, apperrors.NewInternal("upsert AI contributor", err)
				}
				if rec != nil {
					if v, ok := rec.Get("id"); ok {
						personID, _ = v.(string)
					}
				}
			}
			if err := graph.Exec(ctx, tx, r.catalog.Expressions["attach_contributor"], map[string]any{
				"id": id, "person_id": personID, "role": c.Role,
			}); err != nil {
				return createResult{}, apperrors.NewInternal("attach contributor", err)
			}
		}

		return createResult{Expression: &domain.Expression{
			ID: id, WorkID: workID, BDRC: in.BDRC, Wiki: in.Wiki, Type: in.Type,
			LanguageCode: in.LanguageCode, BCP47Tag: in.BCP47Tag, Date: in.Date,
			Title:         domain.Nomen{ID: titleID, Primary: in.Title.Primary, Alternatives: in.Title.Alternatives},
			Contributions: in.Contributions, License: in.License, Copyright: in.Copyright,
			CategoryID: in.CategoryID, TargetID: in.TargetID, IsOriginal: isOriginal,
		}}, nil
	})
	if err != nil {
		return nil, false, err
	}
	return result.Expression, result.Existed, nil
}

func (r *Repository) findByExternal(ctx context.Context, tx neo4j.ManagedTransaction, externalID string) (*domain.Expression, error) {
	rec, err := graph.Single(ctx, tx, r.catalog.Expressions["fetch_by_external"], map[string]any{"external_id": externalID})
	if err != nil {
		return nil, apperrors.NewInternal("lookup expression by external id", err)
	}
	if rec == nil {
		return nil, nil
	}
	id, _ := rec.Get("id")
	return r.fetchByID(ctx, tx, id.(string))
}

func (r *Repository) fetchByID(ctx context.Context, tx neo4j.ManagedTransaction, id string) (*domain.Expression, error) {
	rec, err := graph.Single(ctx, tx, r.catalog.Expressions["fetch_by_id"], map[string]any{"id": id})
	if err != nil {
		return nil, apperrors.NewInternal("fetch expression", err)
	}
	if rec == nil {
		return nil, apperrors.NewNotFound("expression not found")
	}
	raw, _ := rec.Get("expression")
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, apperrors.NewInternal("malformed expression record", nil)
	}
	return expressionFromMap(m), nil
}

// Get fetches by internal or external registry id.
func (r *Repository) Get(ctx context.Context, id string) (*domain.Expression, error) {
	return graph.ExecuteRead(ctx, r.client, func(tx neo4j.ManagedTransaction) (*domain.Expression, error) {
		if e, err := r.fetchByID(ctx, tx, id); err == nil {
			return e, nil
		}
		return r.findByExternal(ctx, tx, id)
	})
}

// Filter narrows GET /v2/texts.
type Filter struct {
	Type     *domain.ExpressionType
	Language *string
	Offset   int
	Limit    int
}

func (r *Repository) GetAll(ctx context.Context, f Filter) ([]domain.Expression, error) {
	return graph.ExecuteRead(ctx, r.client, func(tx neo4j.ManagedTransaction) ([]domain.Expression, error) {
		var typ, lang any
		if f.Type != nil {
			typ = string(*f.Type)
		}
		if f.Language != nil {
			lang = *f.Language
		}
		ids, err := graph.Collect(ctx, tx, r.catalog.Expressions["fetch_all"], map[string]any{
			"type": typ, "language": lang, "offset": f.Offset, "limit": f.Limit,
		})
		if err != nil {
			return nil, apperrors.NewInternal("list expressions", err)
		}
		out := make([]domain.Expression, 0, len(ids))
		for _, rec := range ids {
			idRaw, _ := rec.Get("id")
			id, _ := idRaw.(string)
			e, err := r.fetchByID(ctx, tx, id)
			if err != nil {
				continue
			}
			out = append(out, *e)
		}
		return out, nil
	})
}

// UpdateTitle merges new localizations into the Expression's title Nomen,
// preserving untouched languages (spec §6 PUT title, §8 merge example).
func (r *Repository) UpdateTitle(ctx context.Context, id string, updates []domain.LocalizedText) error {
	_, err := graph.ExecuteWrite(ctx, r.client, func(tx neo4j.ManagedTransaction) (any, error) {
		e, err := r.fetchByID(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		for _, lt := range updates {
			if err := r.nomens.MergeLocalization(ctx, tx, e.Title.ID, lt); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

// AllRelations returns the whole-corpus COMMENTARY_OF/TRANSLATION_OF
// adjacency map, recovered in SPEC_FULL.md from the original's
// get_all_expression_relations.
func (r *Repository) AllRelations(ctx context.Context) (map[string][]string, error) {
	return graph.ExecuteRead(ctx, r.client, func(tx neo4j.ManagedTransaction) (map[string][]string, error) {
		records, err := graph.Collect(ctx, tx, r.catalog.Expressions["relations_all"], nil)
		if err != nil {
			return nil, apperrors.NewInternal("fetch expression relations", err)
		}
		out := map[string][]string{}
		for _, rec := range records {
			idRaw, _ := rec.Get("id")
			id, _ := idRaw.(string)
			relsRaw, _ := rec.Get("relations")
			var rels []string
			if list, ok := relsRaw.([]any); ok {
				for _, v := range list {
					if s, ok := v.(string); ok {
						rels = append(rels, s)
					}
				}
			}
			out[id] = rels
		}
		return out, nil
	})
}

// Related resolves the hub-and-spoke relation set around id's root: the
// root Expression itself (unless id already is the root, or typeFilter
// excludes it) plus every other commentary/translation naming that root,
// optionally narrowed to typeFilter.
func (r *Repository) Related(ctx context.Context, id string, typeFilter *domain.ExpressionType) ([]domain.Expression, error) {
	return graph.ExecuteRead(ctx, r.client, func(tx neo4j.ManagedTransaction) ([]domain.Expression, error) {
		e, err := r.fetchByID(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		rootID := e.ID
		if e.Type != domain.ExpressionRoot {
			rootID = e.TargetID
		}

		var typ any
		if typeFilter != nil {
			typ = string(*typeFilter)
		}
		records, err := graph.Collect(ctx, tx, r.catalog.Expressions["siblings_of_root"], map[string]any{
			"root_id": rootID, "exclude_id": id, "type": typ,
		})
		if err != nil {
			return nil, apperrors.NewInternal("fetch related expressions", err)
		}

		out := make([]domain.Expression, 0, len(records)+1)
		if rootID != id && (typeFilter == nil || *typeFilter == domain.ExpressionRoot) {
			if root, err := r.fetchByID(ctx, tx, rootID); err == nil {
				out = append(out, *root)
			}
		}
		for _, rec := range records {
			idRaw, _ := rec.Get("id")
			sid, _ := idRaw.(string)
			sib, err := r.fetchByID(ctx, tx, sid)
			if err != nil {
				continue
			}
			out = append(out, *sib)
		}
		return out, nil
	})
}

func expressionFromMap(m map[string]any) *domain.Expression {
	e := &domain.Expression{
		ID:           asString(m["id"]),
		WorkID:       asString(m["work_id"]),
		Type:         domain.ExpressionType(asString(m["type"])),
		LanguageCode: asString(m["language"]),
		BCP47Tag:     asString(m["bcp47"]),
		License:      domain.LicenseType(asString(m["license"])),
		Copyright:    domain.CopyrightStatus(asString(m["copyright"])),
		TargetID:     asString(m["target"]),
	}
	if bdrc := asString(m["bdrc"]); bdrc != "" {
		e.BDRC = &bdrc
	}
	if wiki := asString(m["wiki"]); wiki != "" {
		e.Wiki = &wiki
	}
	if catID := asString(m["category_id"]); catID != "" {
		e.CategoryID = &catID
	}
	if title, ok := m["title"].([]any); ok {
		e.Title.Primary = localizedTextsFromAny(title)
	}
	return e
}

func localizedTextsFromAny(items []any) []domain.LocalizedText {
	out := make([]domain.LocalizedText, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, domain.LocalizedText{
			BaseLanguageCode: asString(m["language"]),
			Text:             asString(m["text"]),
		})
	}
	return out
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
