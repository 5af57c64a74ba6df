// Package manifestation implements the Manifestation entity repository
// (component F), covering spec §4.F's "Manifestation create"/"Manifestation
// update" contract points and the base-text/blob-store coordination of §5.
package manifestation

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/openpecha/corpusgraph/internal/annotation"
	"github.com/openpecha/corpusgraph/internal/blobstore"
	"github.com/openpecha/corpusgraph/internal/domain"
	"github.com/openpecha/corpusgraph/internal/graph"
	"github.com/openpecha/corpusgraph/internal/idgen"
	"github.com/openpecha/corpusgraph/internal/indexer"
	"github.com/openpecha/corpusgraph/internal/nomen"
	"github.com/openpecha/corpusgraph/internal/relocation"
	"github.com/openpecha/corpusgraph/internal/validate"
	"github.com/openpecha/corpusgraph/pkg/apperrors"
)

type Repository struct {
	client       *graph.Client
	catalog      *graph.Catalog
	ids          *idgen.Source
	nomens       *nomen.Builder
	checker      *validate.Checker
	blobs        *blobstore.Store
	relocator    *relocation.Engine
	segmentation *annotation.Segmentation
	pagination   *annotation.Pagination
	alignment    *annotation.Alignment
	notes        *annotation.Note
	bibliography *annotation.Bibliography
	notifier     *indexer.Notifier
}

func New(
	client *graph.Client,
	catalog *graph.Catalog,
	ids *idgen.Source,
	nomens *nomen.Builder,
	checker *validate.Checker,
	blobs *blobstore.Store,
	relocator *relocation.Engine,
	segmentation *annotation.Segmentation,
	pagination *annotation.Pagination,
	alignment *annotation.Alignment,
	notes *annotation.Note,
	bibliography *annotation.Bibliography,
	notifier *indexer.Notifier,
) *Repository {
	return &Repository{
		client: client, catalog: catalog, ids: ids, nomens: nomens, checker: checker,
		blobs: blobs, relocator: relocator, segmentation: segmentation, pagination: pagination,
		alignment: alignment, notes: notes, bibliography: bibliography, notifier: notifier,
	}
}

// InitialAnnotations carries the optional layers a Manifestation may be
// created with in the same transaction (spec §4.F: "attaches initial
// annotation layer (if provided) in the same transaction").
type InitialAnnotations struct {
	Segmentation []annotation.SegmentInput
	Pagination   []annotation.SegmentInput
}

type CreateInput struct {
	ExpressionID string
	BDRC         *string
	Wiki         *string
	Type         domain.ManifestationType
	Source       string
	Colophon     *string
	Content      []byte
	IncipitTitle *nomen.Input
	Initial      InitialAnnotations
}

// Create validates expression existence, the diplomatic-vs-critical bdrc
// rule, critical uniqueness, writes base text to the blob store, then the
// graph subgraph; on any graph failure the blob write is rolled back.
func (r *Repository) Create(ctx context.Context, in CreateInput) (*domain.Manifestation, error) {
	if in.Type == domain.ManifestationDiplomatic && in.BDRC == nil {
		return nil, apperrors.NewValidation("diplomatic manifestations require an external registry id")
	}
	if in.Type == domain.ManifestationCritical && in.BDRC != nil {
		return nil, apperrors.NewValidation("critical manifestations must not carry an external registry id")
	}

	id := r.ids.Generate()
	if err := r.blobs.Put(ctx, in.ExpressionID, id, in.Content); err != nil {
		return nil, err
	}

	result, err := graph.ExecuteWrite(ctx, r.client, func(tx neo4j.ManagedTransaction) (*domain.Manifestation, error) {
		if err := r.checker.ExpressionExists(ctx, tx, in.ExpressionID); err != nil {
			return nil, err
		}
		if in.Type == domain.ManifestationCritical {
			if err := r.checker.CriticalUniquePerExpression(ctx, tx, in.ExpressionID); err != nil {
				return nil, err
			}
		}

		if err := graph.Exec(ctx, tx, r.catalog.Manifestations["create"], map[string]any{
			"id": id, "expression_id": in.ExpressionID, "bdrc": in.BDRC, "wiki": in.Wiki,
			"type": string(in.Type), "source": in.Source, "colophon": in.Colophon,
		}); err != nil {
			return nil, apperrors.NewInternal("create manifestation", err)
		}

		m := &domain.Manifestation{
			ID: id, ExpressionID: in.ExpressionID, BDRC: in.BDRC, Wiki: in.Wiki,
			Type: in.Type, Source: in.Source, Colophon: in.Colophon,
		}

		if in.IncipitTitle != nil {
			titleID, err := r.nomens.Create(ctx, tx, *in.IncipitTitle)
			if err != nil {
				return nil, err
			}
			if err := graph.Exec(ctx, tx, r.catalog.Manifestations["attach_incipit"], map[string]any{
				"id": id, "nomen_id": titleID,
			}); err != nil {
				return nil, apperrors.NewInternal("attach incipit title", err)
			}
			m.IncipitTitle = &domain.Nomen{ID: titleID, Primary: in.IncipitTitle.Primary, Alternatives: in.IncipitTitle.Alternatives}
		}

		if len(in.Initial.Segmentation) > 0 {
			if _, err := r.segmentation.AddWithTransaction(ctx, tx, id, in.Initial.Segmentation); err != nil {
				return nil, err
			}
		}
		if len(in.Initial.Pagination) > 0 {
			if _, err := r.pagination.AddWithTransaction(ctx, tx, id, in.Initial.Pagination); err != nil {
				return nil, err
			}
		}

		return m, nil
	})
	if err != nil {
		r.blobs.RollbackBaseText(ctx, in.ExpressionID, id, nil)
		return nil, err
	}
	r.notifier.Notify(indexer.Event{Kind: "manifestation", ExpressionID: in.ExpressionID, ManifestationID: id})
	return result, nil
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.Manifestation, error) {
	return graph.ExecuteRead(ctx, r.client, func(tx neo4j.ManagedTransaction) (*domain.Manifestation, error) {
		rec, err := graph.Single(ctx, tx, r.catalog.Manifestations["fetch_by_id"], map[string]any{"id": id})
		if err != nil {
			return nil, apperrors.NewInternal("fetch manifestation", err)
		}
		if rec == nil {
			return nil, apperrors.NewNotFound("manifestation not found")
		}
		raw, _ := rec.Get("manifestation")
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, apperrors.NewInternal("malformed manifestation record", nil)
		}
		return manifestationFromMap(m), nil
	})
}

func (r *Repository) GetAllByExpression(ctx context.Context, expressionID string, typ *domain.ManifestationType) ([]domain.Manifestation, error) {
	return graph.ExecuteRead(ctx, r.client, func(tx neo4j.ManagedTransaction) ([]domain.Manifestation, error) {
		var t any
		if typ != nil {
			t = string(*typ)
		}
		records, err := graph.Collect(ctx, tx, r.catalog.Manifestations["fetch_all_by_expression"], map[string]any{
			"expression_id": expressionID, "type": t,
		})
		if err != nil {
			return nil, apperrors.NewInternal("list manifestations", err)
		}
		out := make([]domain.Manifestation, 0, len(records))
		for _, rec := range records {
			idRaw, _ := rec.Get("id")
			id, _ := idRaw.(string)
			m, err := r.Get(ctx, id)
			if err != nil {
				continue
			}
			out = append(out, *m)
		}
		return out, nil
	})
}

// Content returns the full base text, or the [start,end) slice when both
// are non-nil.
func (r *Repository) Content(ctx context.Context, expressionID, manifestationID string, start, end *int) ([]byte, error) {
	if start == nil && end == nil {
		return r.blobs.Get(ctx, expressionID, manifestationID)
	}
	if start == nil || end == nil {
		return nil, apperrors.NewInvalidRequest("span_start and span_end must both be present or both absent")
	}
	return r.blobs.Slice(ctx, expressionID, manifestationID, *start, *end)
}

// UpdateMetadataInput is the scalar-property replace for PUT
// /v2/editions/{id}/metadata; annotation subgraphs are not touched by this
// path (only full recreation via ReplaceAnnotations does that).
type UpdateMetadataInput struct {
	BDRC     *string
	Wiki     *string
	Source   string
	Colophon *string
}

func (r *Repository) UpdateMetadata(ctx context.Context, id string, in UpdateMetadataInput) error {
	_, err := graph.ExecuteWrite(ctx, r.client, func(tx neo4j.ManagedTransaction) (any, error) {
		if err := r.checker.ManifestationExists(ctx, tx, id); err != nil {
			return nil, err
		}
		return nil, graph.Exec(ctx, tx, r.catalog.Manifestations["update_scalars"], map[string]any{
			"id": id, "bdrc": in.BDRC, "wiki": in.Wiki, "source": in.Source, "colophon": in.Colophon,
		})
	})
	return err
}

// ReplaceAnnotations implements spec §3's "updates to a Manifestation's
// metadata delete its prior annotation subgraphs wholesale and create the
// new ones": every Segmentation, Note and BibliographicMetadata attached to
// id is removed, then Initial is recreated, in one transaction. Alignment
// Segmentations are deleted on both sides via the Alignment handler so the
// peer is cleaned up too.
func (r *Repository) ReplaceAnnotations(ctx context.Context, id string, in InitialAnnotations) error {
	_, err := graph.ExecuteWrite(ctx, r.client, func(tx neo4j.ManagedTransaction) (any, error) {
		if err := r.checker.ManifestationExists(ctx, tx, id); err != nil {
			return nil, err
		}

		segmentations, err := graph.Collect(ctx, tx, r.catalog.Manifestations["segmentations_of"], map[string]any{"id": id})
		if err != nil {
			return nil, apperrors.NewInternal("list segmentations", err)
		}
		for _, rec := range segmentations {
			segID, _ := rec.Get("id")
			kindRaw, _ := rec.Get("kind")
			sid, _ := segID.(string)
			kind, _ := kindRaw.(string)
			if kind == string(domain.KindAlignment) {
				if err := r.alignment.DeleteWithTransaction(ctx, tx, sid); err != nil {
					return nil, err
				}
				continue
			}
			if err := r.segmentation.DeleteWithTransaction(ctx, tx, sid); err != nil {
				return nil, err
			}
		}
		if err := r.notes.DeleteAllForManifestation(ctx, tx, id); err != nil {
			return nil, err
		}
		if err := r.bibliography.DeleteAllForManifestation(ctx, tx, id); err != nil {
			return nil, err
		}

		if len(in.Segmentation) > 0 {
			if _, err := r.segmentation.AddWithTransaction(ctx, tx, id, in.Segmentation); err != nil {
				return nil, err
			}
		}
		if len(in.Pagination) > 0 {
			if _, err := r.pagination.AddWithTransaction(ctx, tx, id, in.Pagination); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

// Replace applies a base-text edit: runs the span-relocation engine over
// every span anchored to id (outside excludeOwnerID) in the same
// transaction as the blob rewrite, rolling the blob back on failure.
func (r *Repository) Replace(ctx context.Context, expressionID, id string, start, end, newLength int, newContent []byte, excludeOwnerID string) error {
	previous, err := r.blobs.Get(ctx, expressionID, id)
	if err != nil {
		return err
	}
	updated := blobstore.Replace(previous, start, end, newContent)
	if err := r.blobs.Put(ctx, expressionID, id, updated); err != nil {
		return err
	}

	_, err = graph.ExecuteWrite(ctx, r.client, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, r.relocator.Apply(ctx, tx, relocation.Replacement{
			ManifestationID: id, Start: start, End: end, NewLength: newLength, ExcludeOwnerID: excludeOwnerID,
		})
	})
	if err != nil {
		r.blobs.RollbackBaseText(ctx, expressionID, id, previous)
		return err
	}
	r.notifier.Notify(indexer.Event{Kind: "manifestation", ExpressionID: expressionID, ManifestationID: id})
	return nil
}

func manifestationFromMap(m map[string]any) *domain.Manifestation {
	mf := &domain.Manifestation{
		ID:           asString(m["id"]),
		ExpressionID: asString(m["expression_id"]),
		Type:         domain.ManifestationType(asString(m["type"])),
		Source:       asString(m["source"]),
	}
	if bdrc := asString(m["bdrc"]); bdrc != "" {
		mf.BDRC = &bdrc
	}
	if wiki := asString(m["wiki"]); wiki != "" {
		mf.Wiki = &wiki
	}
	if colophon := asString(m["colophon"]); colophon != "" {
		mf.Colophon = &colophon
	}
	return mf
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
