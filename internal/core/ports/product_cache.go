package ports

import (
	"context"

	"github.com/storelane/admin-panel/internal/core/domain"
)

// CachedList is a cached page of list results.
type CachedList struct {
	Items []*domain.Product
	Total int64
}

// ProductCache is the shared read cache in front of the product store. After
// any mutation entries are invalidated wholesale, never patched in place; the
// next read goes back to the source of truth. Implementations swallow
// transport errors: a failing cache degrades to the repository.
type ProductCache interface {
	GetList(ctx context.Context, filter ListProductsFilter) (*CachedList, bool)
	SetList(ctx context.Context, filter ListProductsFilter, items []*domain.Product, total int64)
	GetProduct(ctx context.Context, id string) (*domain.Product, bool)
	SetProduct(ctx context.Context, p *domain.Product)
	// InvalidateList drops every cached list page belonging to ownerID.
	InvalidateList(ctx context.Context, ownerID string)
	InvalidateProduct(ctx context.Context, id string)
}
