package annotation

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/openpecha/corpusgraph/internal/domain"
	"github.com/openpecha/corpusgraph/pkg/apperrors"
)

// Pagination wraps Segmentation's create/delete, enforcing at most one
// pagination layer per manifestation and requiring a Reference per segment.
type Pagination struct {
	*Segmentation
}

func NewPagination(s *Segmentation) *Pagination {
	return &Pagination{Segmentation: s}
}

// AddWithTransaction creates the pagination Segmentation; every segment is
// expected to carry a Reference (page label).
func (p *Pagination) AddWithTransaction(ctx context.Context, tx neo4j.ManagedTransaction, manifestationID string, pages []SegmentInput) (string, error) {
	if err := p.checker.NoDuplicateAnnotationKind(ctx, tx, manifestationID, domain.KindPagination); err != nil {
		return "", err
	}
	for _, page := range pages {
		if page.Reference == nil {
			return "", apperrors.NewUnprocessable("pagination segments require a reference")
		}
	}
	return p.create(ctx, tx, manifestationID, domain.KindPagination, pages)
}
