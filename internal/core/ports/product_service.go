package ports

import (
	"context"

	"github.com/storelane/admin-panel/internal/core/domain"
)

// ProductPayload carries the user-editable fields of a product. Owner and
// timestamps are stamped by the service, never taken from the caller.
type ProductPayload struct {
	Name        string
	Slug        string
	Price       float64
	Description string
	Image       string
}

// ListProductsInput carries all parameters for the list operation.
type ListProductsInput struct {
	OwnerID string
	Search  string
	Page    int
	Limit   int
}

// ListProductsResult is returned by List.
type ListProductsResult struct {
	Items      []*domain.Product
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProductService defines use-case operations for products.
type ProductService interface {
	List(ctx context.Context, input ListProductsInput) (*ListProductsResult, error)
	Get(ctx context.Context, id, ownerID string) (*domain.Product, error)
	Create(ctx context.Context, payload ProductPayload, ownerID string) (*domain.Product, error)
	Update(ctx context.Context, id string, payload ProductPayload, ownerID string) error
	Delete(ctx context.Context, id, ownerID string) error
}
