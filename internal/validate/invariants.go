// Package validate hosts the graph-level invariant checks (component E)
// that repositories run inside the same write transaction as the mutation
// they guard, so a violated invariant aborts the whole transaction instead
// of leaving a partially-applied write.
package validate

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/openpecha/corpusgraph/internal/domain"
	"github.com/openpecha/corpusgraph/internal/graph"
	"github.com/openpecha/corpusgraph/pkg/apperrors"
)

// Checker bundles the catalog so every check runs against named queries
// rather than inline Cypher.
type Checker struct {
	catalog *graph.Catalog
}

func New(catalog *graph.Catalog) *Checker {
	return &Checker{catalog: catalog}
}

// LanguageExists fails unless code names a known Language node.
func (c *Checker) LanguageExists(ctx context.Context, tx neo4j.ManagedTransaction, code string) error {
	rec, err := graph.Single(ctx, tx, c.catalog.Languages["exists"], map[string]any{"code": code})
	if err != nil {
		return apperrors.NewInternal("check language exists", err)
	}
	if rec == nil {
		return apperrors.NewValidation(fmt.Sprintf("unknown language code %q", code))
	}
	return nil
}

// CategoryExists fails unless id names a known Category node.
func (c *Checker) CategoryExists(ctx context.Context, tx neo4j.ManagedTransaction, id string) error {
	rec, err := graph.Single(ctx, tx, c.catalog.Categories["exists"], map[string]any{"id": id})
	if err != nil {
		return apperrors.NewInternal("check category exists", err)
	}
	if rec == nil {
		return apperrors.NewNotFound(fmt.Sprintf("category %q does not exist", id))
	}
	return nil
}

// ExpressionExists fails unless id names a known Expression.
func (c *Checker) ExpressionExists(ctx context.Context, tx neo4j.ManagedTransaction, id string) error {
	rec, err := graph.Single(ctx, tx, c.catalog.Expressions["exists"], map[string]any{"id": id})
	if err != nil {
		return apperrors.NewInternal("check expression exists", err)
	}
	if rec == nil {
		return apperrors.NewNotFound(fmt.Sprintf("expression %q does not exist", id))
	}
	return nil
}

// ManifestationExists fails unless id names a known Manifestation.
func (c *Checker) ManifestationExists(ctx context.Context, tx neo4j.ManagedTransaction, id string) error {
	rec, err := graph.Single(ctx, tx, c.catalog.Manifestations["exists"], map[string]any{"id": id})
	if err != nil {
		return apperrors.NewInternal("check manifestation exists", err)
	}
	if rec == nil {
		return apperrors.NewNotFound(fmt.Sprintf("manifestation %q does not exist", id))
	}
	return nil
}

// CriticalUniquePerExpression fails if a critical Manifestation already
// exists for expressionID. Spec §4.F: an Expression may have at most one
// critical Manifestation.
func (c *Checker) CriticalUniquePerExpression(ctx context.Context, tx neo4j.ManagedTransaction, expressionID string) error {
	rec, err := graph.Single(ctx, tx, c.catalog.Manifestations["critical_exists_for_expression"], map[string]any{"expression_id": expressionID})
	if err != nil {
		return apperrors.NewInternal("check critical manifestation uniqueness", err)
	}
	if rec != nil {
		return apperrors.NewValidation(fmt.Sprintf("expression %q already has a critical manifestation", expressionID))
	}
	return nil
}

// TitleUnique fails if another Expression already carries text (case
// insensitive) as a title localization in language. excludeID, when
// non-empty, exempts that Expression's own title from the check (update path).
func (c *Checker) TitleUnique(ctx context.Context, tx neo4j.ManagedTransaction, language, text, excludeID string) error {
	var exclude any
	if excludeID != "" {
		exclude = excludeID
	}
	rec, err := graph.Single(ctx, tx, c.catalog.Expressions["title_exists"], map[string]any{
		"language": language, "text": text, "exclude_id": exclude,
	})
	if err != nil {
		return apperrors.NewInternal("check title uniqueness", err)
	}
	if rec != nil {
		return apperrors.NewValidation(fmt.Sprintf("title %q already in use for language %q", text, language))
	}
	return nil
}

// CategoryTitleUnique fails if a sibling Category under the same
// (application, parent) already carries text case-insensitively.
func (c *Checker) CategoryTitleUnique(ctx context.Context, tx neo4j.ManagedTransaction, application string, parentID *string, language, text string) error {
	var parent any
	if parentID != nil {
		parent = *parentID
	}
	rec, err := graph.Single(ctx, tx, c.catalog.Categories["title_exists_for_siblings"], map[string]any{
		"application": application, "parent_id": parent, "language": language, "text": text,
	})
	if err != nil {
		return apperrors.NewInternal("check category title uniqueness", err)
	}
	if rec != nil {
		return apperrors.NewValidation(fmt.Sprintf("sibling category already titled %q", text))
	}
	return nil
}

// NoDuplicateAnnotationKind fails if manifestationID already carries a
// Segmentation of kind (segmentation/pagination/table-of-contents are each
// singletons per manifestation; alignment is not, since a manifestation may
// align against many peers).
func (c *Checker) NoDuplicateAnnotationKind(ctx context.Context, tx neo4j.ManagedTransaction, manifestationID string, kind domain.AnnotationKind) error {
	if kind == domain.KindAlignment {
		return nil
	}
	rec, err := graph.Single(ctx, tx, c.catalog.Segmentations["exists_of_kind"], map[string]any{
		"manifestation_id": manifestationID, "kind": string(kind),
	})
	if err != nil {
		return apperrors.NewInternal("check duplicate annotation kind", err)
	}
	if rec != nil {
		return apperrors.NewValidation(fmt.Sprintf("manifestation %q already has a %s layer", manifestationID, kind))
	}
	return nil
}

// PersonsExist fails unless every id in ids names a known Person, returning
// the first missing id in the error message.
func (c *Checker) PersonsExist(ctx context.Context, tx neo4j.ManagedTransaction, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	records, err := graph.Collect(ctx, tx, c.catalog.Persons["exists_batch"], map[string]any{"ids": ids})
	if err != nil {
		return apperrors.NewInternal("check persons exist", err)
	}
	for _, rec := range records {
		found, _ := rec.Get("found")
		if f, ok := found.(bool); !ok || !f {
			id, _ := rec.Get("id")
			return apperrors.NewValidation(fmt.Sprintf("unknown person %v", id))
		}
	}
	return nil
}

// TranslationTargetLanguageDiffers fails if targetLanguage equals
// sourceLanguage: a translation must be in a different language than what
// it translates.
func (c *Checker) TranslationTargetLanguageDiffers(sourceLanguage, targetLanguage string) error {
	if sourceLanguage == targetLanguage {
		return apperrors.NewValidation("a translation must use a different language than its source")
	}
	return nil
}

// AlignmentNotAlreadyPresent fails if manifestationAID and manifestationBID
// are already linked by an alignment pair, preventing duplicate alignment
// layers between the same two editions.
func (c *Checker) AlignmentNotAlreadyPresent(ctx context.Context, tx neo4j.ManagedTransaction, manifestationAID, manifestationBID string) error {
	pairs, err := graph.Collect(ctx, tx, c.catalog.Alignments["pairs_for_manifestation"], map[string]any{
		"manifestation_id": manifestationAID,
	})
	if err != nil {
		return apperrors.NewInternal("check existing alignment pairs", err)
	}
	for _, pair := range pairs {
		peerSegmentationID, _ := pair.Get("target_segmentation_id")
		id, ok := peerSegmentationID.(string)
		if !ok {
			continue
		}
		peerRec, err := graph.Single(ctx, tx, c.catalog.Alignments["peer_manifestation"], map[string]any{"segmentation_id": id})
		if err != nil {
			return apperrors.NewInternal("resolve peer manifestation", err)
		}
		if peerRec == nil {
			continue
		}
		peerManifestationID, _ := peerRec.Get("manifestation_id")
		if peerManifestationID == manifestationBID {
			return apperrors.NewValidation(fmt.Sprintf("manifestations %q and %q are already aligned", manifestationAID, manifestationBID))
		}
	}
	return nil
}
