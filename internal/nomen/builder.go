// Package nomen builds the localized-name subgraph (component D) shared by
// Expression titles, Manifestation incipits, Person names and Category
// titles: one primary Nomen carrying one LocalizedText per language, plus
// zero or more alternative Nomens attached via ALTERNATIVE_OF.
package nomen

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/openpecha/corpusgraph/internal/domain"
	"github.com/openpecha/corpusgraph/internal/graph"
	"github.com/openpecha/corpusgraph/internal/idgen"
	"github.com/openpecha/corpusgraph/pkg/apperrors"
)

// Input is the caller-supplied shape for a title/name: one primary set of
// localizations and any number of alternative sets.
type Input struct {
	Primary      []domain.LocalizedText
	Alternatives [][]domain.LocalizedText
}

// Builder mints Nomen subgraphs inside an already-open write transaction.
// It never opens its own session: every call is meant to compose with a
// larger mutation (creating an Expression, a Category, ...).
type Builder struct {
	catalog *graph.Catalog
	ids     *idgen.Source
}

func New(catalog *graph.Catalog, ids *idgen.Source) *Builder {
	return &Builder{catalog: catalog, ids: ids}
}

// Create validates every language code against existing Language nodes,
// then writes the primary Nomen and each alternative Nomen, returning the
// primary Nomen's id. Caller is responsible for attaching the returned id
// via whatever edge names the title (HAS_TITLE, HAS_NAME, HAS_INCIPIT_TITLE).
func (b *Builder) Create(ctx context.Context, tx neo4j.ManagedTransaction, in Input) (string, error) {
	if len(in.Primary) == 0 {
		return "", apperrors.NewUnprocessable("nomen requires at least one localized text")
	}
	if err := b.validateLanguages(ctx, tx, in); err != nil {
		return "", err
	}

	primaryID := b.ids.Generate()
	if err := graph.Exec(ctx, tx, b.catalog.Nomens["create"], map[string]any{
		"nomen_id":         primaryID,
		"primary_nomen_id": nil,
		"localized_texts":  toParams(in.Primary),
	}); err != nil {
		return "", apperrors.NewInternal("create primary nomen", err)
	}

	for _, alt := range in.Alternatives {
		altID := b.ids.Generate()
		if err := graph.Exec(ctx, tx, b.catalog.Nomens["create"], map[string]any{
			"nomen_id":         altID,
			"primary_nomen_id": primaryID,
			"localized_texts":  toParams(alt),
		}); err != nil {
			return "", apperrors.NewInternal("create alternative nomen", err)
		}
	}
	return primaryID, nil
}

// MergeLocalization replaces the localization for one base language on an
// existing Nomen, leaving other languages and all alternatives untouched.
// This backs the title-update path (spec §4.F's "PUT title" semantics).
func (b *Builder) MergeLocalization(ctx context.Context, tx neo4j.ManagedTransaction, nomenID string, lt domain.LocalizedText) error {
	if err := b.languageExists(ctx, tx, lt.BaseLanguageCode); err != nil {
		return err
	}
	return graph.Exec(ctx, tx, b.catalog.Nomens["merge_localizations"], map[string]any{
		"nomen_id":       nomenID,
		"base_lang_code": lt.BaseLanguageCode,
		"bcp47_tag":      lt.BCP47Tag,
		"text":           lt.Text,
	})
}

// Delete removes a Nomen, every alternative attached to it, and every
// LocalizedText leaf in that subgraph.
func (b *Builder) Delete(ctx context.Context, tx neo4j.ManagedTransaction, nomenID string) error {
	return graph.Exec(ctx, tx, b.catalog.Nomens["delete_with_alternatives"], map[string]any{"nomen_id": nomenID})
}

func (b *Builder) validateLanguages(ctx context.Context, tx neo4j.ManagedTransaction, in Input) error {
	codes := make([]string, 0, len(in.Primary))
	for _, lt := range in.Primary {
		codes = append(codes, lt.BaseLanguageCode)
	}
	for _, alt := range in.Alternatives {
		for _, lt := range alt {
			codes = append(codes, lt.BaseLanguageCode)
		}
	}
	records, err := graph.Collect(ctx, tx, b.catalog.Languages["exists_batch"], map[string]any{"codes": codes})
	if err != nil {
		return apperrors.NewInternal("validate languages", err)
	}
	for _, rec := range records {
		found, _ := rec.Get("found")
		if f, ok := found.(bool); !ok || !f {
			code, _ := rec.Get("code")
			return apperrors.NewValidation(fmt.Sprintf("unknown language code %v", code))
		}
	}
	return nil
}

func (b *Builder) languageExists(ctx context.Context, tx neo4j.ManagedTransaction, code string) error {
	rec, err := graph.Single(ctx, tx, b.catalog.Languages["exists"], map[string]any{"code": code})
	if err != nil {
		return apperrors.NewInternal("validate language", err)
	}
	if rec == nil {
		return apperrors.NewValidation(fmt.Sprintf("unknown language code %s", code))
	}
	return nil
}

func toParams(lts []domain.LocalizedText) []map[string]any {
	out := make([]map[string]any, 0, len(lts))
	for _, lt := range lts {
		out = append(out, map[string]any{
			"base_lang_code": lt.BaseLanguageCode,
			"bcp47_tag":      lt.BCP47Tag,
			"text":           lt.Text,
		})
	}
	return out
}
