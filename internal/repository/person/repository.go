// Package person implements the Person entity repository (component F).
package person

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/openpecha/corpusgraph/internal/domain"
	"github.com/openpecha/corpusgraph/internal/graph"
	"github.com/openpecha/corpusgraph/internal/idgen"
	"github.com/openpecha/corpusgraph/internal/nomen"
	"github.com/openpecha/corpusgraph/pkg/apperrors"
)

type Repository struct {
	client  *graph.Client
	catalog *graph.Catalog
	ids     *idgen.Source
	nomens  *nomen.Builder
}

func New(client *graph.Client, catalog *graph.Catalog, ids *idgen.Source, nomens *nomen.Builder) *Repository {
	return &Repository{client: client, catalog: catalog, ids: ids, nomens: nomens}
}

type CreateInput struct {
	BDRC *string
	Wiki *string
	Name nomen.Input
}

func (r *Repository) Create(ctx context.Context, in CreateInput) (*domain.Person, error) {
	return graph.ExecuteWrite(ctx, r.client, func(tx neo4j.ManagedTransaction) (*domain.Person, error) {
		nameID, err := r.nomens.Create(ctx, tx, in.Name)
		if err != nil {
			return nil, err
		}
		id := r.ids.Generate()
		if err := graph.Exec(ctx, tx, r.catalog.Persons["create"], map[string]any{
			"id": id, "bdrc": in.BDRC, "wiki": in.Wiki, "primary_nomen_id": nameID,
		}); err != nil {
			return nil, apperrors.NewInternal("create person", err)
		}
		return &domain.Person{ID: id, BDRC: in.BDRC, Wiki: in.Wiki, Name: domain.Nomen{ID: nameID, Primary: in.Name.Primary, Alternatives: in.Name.Alternatives}}, nil
	})
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.Person, error) {
	return graph.ExecuteRead(ctx, r.client, func(tx neo4j.ManagedTransaction) (*domain.Person, error) {
		rec, err := graph.Single(ctx, tx, r.catalog.Persons["fetch_by_id"], map[string]any{"id": id})
		if err != nil {
			return nil, apperrors.NewInternal("fetch person", err)
		}
		if rec == nil {
			return nil, apperrors.NewNotFound("person not found")
		}
		return personFromRecord(rec)
	})
}

func (r *Repository) GetAll(ctx context.Context, offset, limit int) ([]domain.Person, error) {
	return graph.ExecuteRead(ctx, r.client, func(tx neo4j.ManagedTransaction) ([]domain.Person, error) {
		records, err := graph.Collect(ctx, tx, r.catalog.Persons["fetch_all"], map[string]any{"offset": offset, "limit": limit})
		if err != nil {
			return nil, apperrors.NewInternal("list persons", err)
		}
		out := make([]domain.Person, 0, len(records))
		for _, rec := range records {
			p, err := personFromRecord(rec)
			if err != nil {
				continue
			}
			out = append(out, *p)
		}
		return out, nil
	})
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := graph.ExecuteWrite(ctx, r.client, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, graph.Exec(ctx, tx, r.catalog.Persons["delete"], map[string]any{"id": id})
	})
	return err
}

func personFromRecord(rec *neo4j.Record) (*domain.Person, error) {
	raw, _ := rec.Get("person")
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, apperrors.NewInternal("malformed person record", nil)
	}
	p := &domain.Person{ID: asString(m["id"])}
	if bdrc := asString(m["bdrc"]); bdrc != "" {
		p.BDRC = &bdrc
	}
	if wiki := asString(m["wiki"]); wiki != "" {
		p.Wiki = &wiki
	}
	return p, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
