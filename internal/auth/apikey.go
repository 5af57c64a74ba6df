// Package auth implements the authentication boundary (component K):
// hashed API keys optionally bound to a named Application tenant.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/openpecha/corpusgraph/internal/domain"
	"github.com/openpecha/corpusgraph/internal/graph"
	"github.com/openpecha/corpusgraph/internal/idgen"
	"github.com/openpecha/corpusgraph/pkg/apperrors"
)

// Repository manages ApiKey nodes.
type Repository struct {
	client  *graph.Client
	catalog *graph.Catalog
	ids     *idgen.Source
}

func New(client *graph.Client, catalog *graph.Catalog, ids *idgen.Source) *Repository {
	return &Repository{client: client, catalog: catalog, ids: ids}
}

func hashKey(rawKey string) string {
	sum := sha256.Sum256([]byte(rawKey))
	return hex.EncodeToString(sum[:])
}

// Create mints an ApiKey, optionally bound to applicationID, and returns the
// raw secret exactly once.
func (r *Repository) Create(ctx context.Context, name, email string, applicationID *string) (keyID, rawKey string, err error) {
	rawKey = idgen.GenerateSecret()
	hash := hashKey(rawKey)
	id := r.ids.Generate()

	_, err = graph.ExecuteWrite(ctx, r.client, func(tx neo4j.ManagedTransaction) (any, error) {
		params := map[string]any{
			"id": id, "name": name, "email": email, "hash": hash,
			"created_at": time.Now().UTC().Format(time.RFC3339),
		}
		if applicationID != nil {
			params["application_id"] = *applicationID
			return nil, graph.Exec(ctx, tx, r.catalog.ApiKeys["create_with_binding"], params)
		}
		return nil, graph.Exec(ctx, tx, r.catalog.ApiKeys["create"], params)
	})
	if err != nil {
		return "", "", apperrors.NewInternal("create api key", err)
	}
	return id, rawKey, nil
}

// Validate looks up the active ApiKey matching rawKey's hash and returns the
// resolved Principal, per spec §4.K steps 2-3.
func (r *Repository) Validate(ctx context.Context, rawKey string) (*domain.Principal, error) {
	hash := hashKey(rawKey)
	return graph.ExecuteRead(ctx, r.client, func(tx neo4j.ManagedTransaction) (*domain.Principal, error) {
		rec, err := graph.Single(ctx, tx, r.catalog.ApiKeys["validate"], map[string]any{"hash": hash})
		if err != nil {
			return nil, apperrors.NewInternal("validate api key", err)
		}
		if rec == nil {
			return nil, apperrors.NewAuthFailure("invalid API key")
		}
		id, _ := rec.Get("id")
		principal := &domain.Principal{APIKeyID: id.(string)}
		if boundRaw, ok := rec.Get("bound_application_id"); ok && boundRaw != nil {
			bound := boundRaw.(string)
			principal.BoundApplicationID = &bound
		}
		return principal, nil
	})
}

// Revoke sets is_active = false.
func (r *Repository) Revoke(ctx context.Context, id string) error {
	_, err := graph.ExecuteWrite(ctx, r.client, func(tx neo4j.ManagedTransaction) (any, error) {
		rec, err := graph.Single(ctx, tx, r.catalog.ApiKeys["revoke"], map[string]any{"id": id})
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, apperrors.NewNotFound("api key not found")
		}
		return nil, nil
	})
	return err
}

// Rotate replaces the key's hash and returns the new raw secret once.
func (r *Repository) Rotate(ctx context.Context, id string) (rawKey string, err error) {
	rawKey = idgen.GenerateSecret()
	hash := hashKey(rawKey)
	_, err = graph.ExecuteWrite(ctx, r.client, func(tx neo4j.ManagedTransaction) (any, error) {
		rec, err := graph.Single(ctx, tx, r.catalog.ApiKeys["rotate"], map[string]any{"id": id, "hash": hash})
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, apperrors.NewNotFound("api key not found")
		}
		return nil, nil
	})
	if err != nil {
		return "", err
	}
	return rawKey, nil
}

// List returns every ApiKey, newest first, never including hashes or raw keys.
func (r *Repository) List(ctx context.Context) ([]domain.ApiKey, error) {
	return graph.ExecuteRead(ctx, r.client, func(tx neo4j.ManagedTransaction) ([]domain.ApiKey, error) {
		records, err := graph.Collect(ctx, tx, r.catalog.ApiKeys["list"], nil)
		if err != nil {
			return nil, apperrors.NewInternal("list api keys", err)
		}
		out := make([]domain.ApiKey, 0, len(records))
		for _, rec := range records {
			id, _ := rec.Get("id")
			name, _ := rec.Get("name")
			email, _ := rec.Get("email")
			isActive, _ := rec.Get("is_active")
			createdAt, _ := rec.Get("created_at")
			key := domain.ApiKey{
				ID:       id.(string),
				Name:     name.(string),
				Email:    email.(string),
				IsActive: isActive.(bool),
			}
			if t, ok := createdAt.(time.Time); ok {
				key.CreatedAt = t
			}
			if boundRaw, ok := rec.Get("bound_application_id"); ok && boundRaw != nil {
				bound := boundRaw.(string)
				key.BoundApplicationID = &bound
			}
			out = append(out, key)
		}
		return out, nil
	})
}
