package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/storelane/admin-panel/internal/core/domain"
	"github.com/storelane/admin-panel/internal/core/listing"
	"github.com/storelane/admin-panel/internal/core/ports"
	"github.com/storelane/admin-panel/internal/core/validation"
)

// ProductService implements owner-scoped product use cases on top of the
// repository, with a read cache invalidated after every mutation.
type ProductService struct {
	repo   ports.ProductRepository
	cache  ports.ProductCache
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, cache ports.ProductCache, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, logger: logger}
}

// List returns one page of the owner's products plus the total count matching
// the filter independent of pagination.
func (s *ProductService) List(ctx context.Context, input ports.ListProductsInput) (*ports.ListProductsResult, error) {
	page := input.Page
	if page < 1 {
		page = listing.DefaultPage
	}
	limit := input.Limit
	if limit < 1 {
		limit = listing.DefaultLimit
	}
	if limit > listing.MaxLimit {
		limit = listing.MaxLimit
	}

	filter := ports.ListProductsFilter{
		OwnerID: input.OwnerID,
		Search:  input.Search,
		Page:    page,
		Limit:   limit,
	}

	if cached, ok := s.cache.GetList(ctx, filter); ok {
		return listResult(cached.Items, cached.Total, page, limit), nil
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", input.OwnerID).Msg("failed to list products")
		return nil, err
	}

	s.cache.SetList(ctx, filter, items, total)
	return listResult(items, total, page, limit), nil
}

// Get retrieves one product visible to ownerID. The read is owner-scoped at
// the store: a product owned by someone else reads as
// domain.ErrProductNotFound, never as a distinct error that would reveal the
// id exists.
func (s *ProductService) Get(ctx context.Context, id, ownerID string) (*domain.Product, error) {
	if cached, ok := s.cache.GetProduct(ctx, id); ok {
		if ownerID != "" && cached.OwnerID != ownerID {
			return nil, domain.ErrProductNotFound
		}
		return cached, nil
	}

	p, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	s.cache.SetProduct(ctx, p)
	return p, nil
}

// Create validates the payload and inserts a new product. The owner id and
// timestamps are stamped here; a malformed payload never reaches the store.
func (s *ProductService) Create(ctx context.Context, payload ports.ProductPayload, ownerID string) (*domain.Product, error) {
	if fe := validatePayload(payload); fe != nil {
		return nil, fe
	}

	now := time.Now().UTC()
	p := &domain.Product{
		Name:        payload.Name,
		Slug:        payload.Slug,
		Price:       payload.Price,
		Description: payload.Description,
		Image:       payload.Image,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create product")
		return nil, err
	}

	s.cache.InvalidateList(ctx, ownerID)
	s.logger.Info().Str("product_id", p.ID).Str("owner_id", ownerID).Msg("product created")

	return p, nil
}

// Update full-replaces the mutable fields of the product. The target must
// exist and belong to ownerID.
func (s *ProductService) Update(ctx context.Context, id string, payload ports.ProductPayload, ownerID string) error {
	if fe := validatePayload(payload); fe != nil {
		return fe
	}

	current, err := s.repo.FindByID(ctx, id, "")
	if err != nil {
		return err
	}
	if err := checkOwner(current, ownerID); err != nil {
		return err
	}

	current.Name = payload.Name
	current.Slug = payload.Slug
	current.Price = payload.Price
	current.Description = payload.Description
	current.Image = payload.Image
	current.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, current); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return err
	}

	s.cache.InvalidateProduct(ctx, id)
	s.cache.InvalidateList(ctx, ownerID)
	s.logger.Info().Str("product_id", id).Str("owner_id", ownerID).Msg("product updated")

	return nil
}

// Delete removes the product. Deleting an already-deleted product reports
// domain.ErrProductNotFound rather than succeeding silently.
func (s *ProductService) Delete(ctx context.Context, id, ownerID string) error {
	current, err := s.repo.FindByID(ctx, id, "")
	if err != nil {
		return err
	}
	if err := checkOwner(current, ownerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return err
	}

	s.cache.InvalidateProduct(ctx, id)
	s.cache.InvalidateList(ctx, ownerID)
	s.logger.Info().Str("product_id", id).Str("owner_id", ownerID).Msg("product deleted")

	return nil
}

func checkOwner(p *domain.Product, ownerID string) error {
	if ownerID != "" && p.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}

func validatePayload(payload ports.ProductPayload) validation.FieldErrors {
	return validation.ValidateProduct(validation.ProductForm{
		Name:        payload.Name,
		Slug:        payload.Slug,
		Price:       payload.Price,
		Description: payload.Description,
		Image:       payload.Image,
	})
}

func listResult(items []*domain.Product, total int64, page, limit int) *ports.ListProductsResult {
	return &ports.ListProductsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: listing.TotalPages(total, limit),
	}
}
