package ports

import (
	"context"

	"github.com/storelane/admin-panel/internal/core/domain"
)

// ListProductsFilter carries all query parameters for listing products.
type ListProductsFilter struct {
	OwnerID string // empty = no owner filter; non-empty = scoped to that owner
	Search  string // optional: case-insensitive substring match on name
	Page    int    // 1-based
	Limit   int    // rows per page
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	// FindByID retrieves a product by id. When ownerID is non-empty, the query
	// is additionally filtered by owner, so another owner's product is
	// indistinguishable from a missing one.
	FindByID(ctx context.Context, id string, ownerID string) (*domain.Product, error)
	// List returns a page of products matching filter and the total count of
	// matching rows independent of pagination. Ordering is created_at
	// descending.
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
	// Update replaces all mutable fields (name, slug, price, description,
	// image) of the product identified by p.ID.
	Update(ctx context.Context, p *domain.Product) error
	// Delete removes the product. A second delete of the same id reports
	// domain.ErrProductNotFound rather than succeeding silently.
	Delete(ctx context.Context, id string) error
}
