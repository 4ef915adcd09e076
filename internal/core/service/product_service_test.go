package service

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/storelane/admin-panel/internal/core/domain"
	"github.com/storelane/admin-panel/internal/core/ports"
	"github.com/storelane/admin-panel/internal/core/validation"
)

type stubProductRepo struct {
	products map[string]*domain.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func cloneProduct(p *domain.Product) *domain.Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id, ownerID string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if ownerID != "" && p.OwnerID != ownerID {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) List(_ context.Context, filter ports.ListProductsFilter) ([]*domain.Product, int64, error) {
	var matched []*domain.Product
	for _, p := range r.products {
		if filter.OwnerID != "" && p.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, cloneProduct(p))
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

// stubProductCache records invalidations and serves nothing, so every read
// goes to the repository.
type stubProductCache struct {
	listInvalidations    []string
	productInvalidations []string
}

func (c *stubProductCache) GetList(context.Context, ports.ListProductsFilter) (*ports.CachedList, bool) {
	return nil, false
}
func (c *stubProductCache) SetList(context.Context, ports.ListProductsFilter, []*domain.Product, int64) {
}
func (c *stubProductCache) GetProduct(context.Context, string) (*domain.Product, bool) {
	return nil, false
}
func (c *stubProductCache) SetProduct(context.Context, *domain.Product) {}
func (c *stubProductCache) InvalidateList(_ context.Context, ownerID string) {
	c.listInvalidations = append(c.listInvalidations, ownerID)
}
func (c *stubProductCache) InvalidateProduct(_ context.Context, id string) {
	c.productInvalidations = append(c.productInvalidations, id)
}

func newProductService(repo ports.ProductRepository, cache ports.ProductCache) *ProductService {
	return NewProductService(repo, cache, zerolog.Nop())
}

func validPayload() ports.ProductPayload {
	return ports.ProductPayload{
		Name:  "Espresso Machine",
		Slug:  "espresso-machine",
		Price: 249.99,
	}
}

func TestProductService_Create_StampsOwnerAndTimestamps(t *testing.T) {
	repo := newStubProductRepo()
	cache := &stubProductCache{}
	svc := newProductService(repo, cache)

	before := time.Now().UTC()
	p, err := svc.Create(context.Background(), validPayload(), "owner_1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected id to be assigned")
	}
	if p.OwnerID != "owner_1" {
		t.Fatalf("expected owner_1, got %q", p.OwnerID)
	}
	if p.CreatedAt.Before(before) || p.UpdatedAt.Before(before) {
		t.Fatalf("expected timestamps to be stamped")
	}
	if len(cache.listInvalidations) != 1 || cache.listInvalidations[0] != "owner_1" {
		t.Fatalf("expected one list invalidation for owner_1, got %v", cache.listInvalidations)
	}
}

func TestProductService_Create_InvalidPayloadNeverStored(t *testing.T) {
	repo := newStubProductRepo()
	svc := newProductService(repo, &stubProductCache{})

	payload := ports.ProductPayload{
		Name:  "",
		Slug:  "Not A Slug",
		Price: -5,
		Image: "not-a-url",
	}

	_, err := svc.Create(context.Background(), payload, "owner_1")
	fe, ok := err.(validation.FieldErrors)
	if !ok {
		t.Fatalf("expected FieldErrors, got %T: %v", err, err)
	}
	for _, field := range []string{"name", "slug", "price", "image"} {
		if _, present := fe[field]; !present {
			t.Fatalf("expected error for field %q, got %v", field, fe)
		}
	}
	if len(repo.products) != 0 {
		t.Fatalf("expected no products stored, got %d", len(repo.products))
	}
}

func TestProductService_Get_RoundTrip(t *testing.T) {
	repo := newStubProductRepo()
	svc := newProductService(repo, &stubProductCache{})

	created, err := svc.Create(context.Background(), validPayload(), "owner_1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := svc.Get(context.Background(), created.ID, "owner_1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Name != "Espresso Machine" || got.Slug != "espresso-machine" {
		t.Fatalf("unexpected product: %+v", got)
	}
}

func TestProductService_Get_OtherOwnerReadsAsNotFound(t *testing.T) {
	repo := newStubProductRepo()
	svc := newProductService(repo, &stubProductCache{})

	created, _ := svc.Create(context.Background(), validPayload(), "owner_1")

	// another owner's product is indistinguishable from a missing one
	if _, err := svc.Get(context.Background(), created.ID, "owner_2"); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_Get_CachedDetailStaysOwnerScoped(t *testing.T) {
	repo := newStubProductRepo()
	cache := &detailServingCache{
		product: &domain.Product{ID: "p1", Name: "Hidden", OwnerID: "owner_1"},
	}
	svc := newProductService(repo, cache)

	// a cache hit must not widen visibility beyond the store's owner scope
	if _, err := svc.Get(context.Background(), "p1", "owner_2"); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	got, err := svc.Get(context.Background(), "p1", "owner_1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.ID != "p1" {
		t.Fatalf("unexpected product: %+v", got)
	}
}

type detailServingCache struct {
	stubProductCache
	product *domain.Product
}

func (c *detailServingCache) GetProduct(context.Context, string) (*domain.Product, bool) {
	return c.product, true
}

func TestProductService_Get_NotFound(t *testing.T) {
	svc := newProductService(newStubProductRepo(), &stubProductCache{})

	if _, err := svc.Get(context.Background(), "missing", "owner_1"); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_Update_FullReplace(t *testing.T) {
	repo := newStubProductRepo()
	cache := &stubProductCache{}
	svc := newProductService(repo, cache)

	created, _ := svc.Create(context.Background(), ports.ProductPayload{
		Name:        "Grinder",
		Slug:        "grinder",
		Price:       99,
		Description: "Burr grinder",
		Image:       "https://img.example.com/grinder.png",
	}, "owner_1")

	// Omitted optional fields are cleared, not preserved.
	err := svc.Update(context.Background(), created.ID, ports.ProductPayload{
		Name:  "Grinder Pro",
		Slug:  "grinder-pro",
		Price: 149,
	}, "owner_1")
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	got, err := svc.Get(context.Background(), created.ID, "owner_1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Name != "Grinder Pro" || got.Slug != "grinder-pro" || got.Price != 149 {
		t.Fatalf("unexpected product after update: %+v", got)
	}
	if got.Description != "" || got.Image != "" {
		t.Fatalf("expected description and image to be cleared, got %+v", got)
	}
	if got.UpdatedAt.Before(created.UpdatedAt) {
		t.Fatalf("expected updated_at to advance")
	}
	if got.CreatedAt != created.CreatedAt {
		t.Fatalf("expected created_at to be preserved")
	}

	if len(cache.productInvalidations) != 1 || cache.productInvalidations[0] != created.ID {
		t.Fatalf("expected detail invalidation for %s, got %v", created.ID, cache.productInvalidations)
	}
}

func TestProductService_Update_ForbiddenForOtherOwner(t *testing.T) {
	repo := newStubProductRepo()
	svc := newProductService(repo, &stubProductCache{})

	created, _ := svc.Create(context.Background(), validPayload(), "owner_1")

	err := svc.Update(context.Background(), created.ID, validPayload(), "owner_2")
	if err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestProductService_Delete_SecondDeleteNotFound(t *testing.T) {
	repo := newStubProductRepo()
	cache := &stubProductCache{}
	svc := newProductService(repo, cache)

	created, _ := svc.Create(context.Background(), validPayload(), "owner_1")

	if err := svc.Delete(context.Background(), created.ID, "owner_1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID, "owner_1"); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound on second delete, got %v", err)
	}

	if len(cache.productInvalidations) != 1 {
		t.Fatalf("expected one detail invalidation, got %v", cache.productInvalidations)
	}
}

func TestProductService_Delete_ForbiddenForOtherOwner(t *testing.T) {
	repo := newStubProductRepo()
	svc := newProductService(repo, &stubProductCache{})

	created, _ := svc.Create(context.Background(), validPayload(), "owner_1")

	if err := svc.Delete(context.Background(), created.ID, "owner_2"); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID, "owner_1"); err != nil {
		t.Fatalf("product should still exist: %v", err)
	}
}

func TestProductService_List_NormalizesPageAndLimit(t *testing.T) {
	repo := newStubProductRepo()
	svc := newProductService(repo, &stubProductCache{})

	result, err := svc.List(context.Background(), ports.ListProductsInput{
		OwnerID: "owner_1",
		Page:    0,
		Limit:   -3,
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Page != 1 || result.Limit != 10 {
		t.Fatalf("expected page 1 limit 10, got page %d limit %d", result.Page, result.Limit)
	}

	result, err = svc.List(context.Background(), ports.ListProductsInput{
		OwnerID: "owner_1",
		Page:    1,
		Limit:   5000,
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Limit != 100 {
		t.Fatalf("expected limit capped at 100, got %d", result.Limit)
	}
}

func TestProductService_List_ScopedToOwnerWithSearch(t *testing.T) {
	repo := newStubProductRepo()
	svc := newProductService(repo, &stubProductCache{})

	for i, spec := range []struct {
		name, slug, owner string
	}{
		{"Coffee Beans", "coffee-beans", "owner_1"},
		{"Coffee Filter", "coffee-filter", "owner_1"},
		{"Tea Pot", "tea-pot", "owner_1"},
		{"Coffee Mug", "coffee-mug", "owner_2"},
	} {
		_, err := svc.Create(context.Background(), ports.ProductPayload{
			Name:  spec.name,
			Slug:  spec.slug,
			Price: float64(i + 1),
		}, spec.owner)
		if err != nil {
			t.Fatalf("seed %d failed: %v", i, err)
		}
	}

	result, err := svc.List(context.Background(), ports.ListProductsInput{
		OwnerID: "owner_1",
		Search:  "coffee",
		Page:    1,
		Limit:   10,
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("expected total 2, got %d", result.Total)
	}
	for _, p := range result.Items {
		if p.OwnerID != "owner_1" {
			t.Fatalf("expected only owner_1 products, got %+v", p)
		}
	}
}

func TestProductService_List_TotalCountsAllPages(t *testing.T) {
	repo := newStubProductRepo()
	svc := newProductService(repo, &stubProductCache{})

	for i := 0; i < 23; i++ {
		_, err := svc.Create(context.Background(), ports.ProductPayload{
			Name:  "Item",
			Slug:  "item",
			Price: 1,
		}, "owner_1")
		if err != nil {
			t.Fatalf("seed %d failed: %v", i, err)
		}
	}

	result, err := svc.List(context.Background(), ports.ListProductsInput{
		OwnerID: "owner_1",
		Page:    3,
		Limit:   10,
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Total != 23 {
		t.Fatalf("expected total 23, got %d", result.Total)
	}
	if len(result.Items) != 3 {
		t.Fatalf("expected 3 items on last page, got %d", len(result.Items))
	}
	if result.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", result.TotalPages)
	}
}

func TestProductService_List_ServedFromCache(t *testing.T) {
	repo := newStubProductRepo()
	cached := &servingCache{
		stubProductCache: stubProductCache{},
		list: &ports.CachedList{
			Items: []*domain.Product{{ID: "cached", Name: "Cached", OwnerID: "owner_1"}},
			Total: 1,
		},
	}
	svc := newProductService(repo, cached)

	result, err := svc.List(context.Background(), ports.ListProductsInput{OwnerID: "owner_1"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].ID != "cached" {
		t.Fatalf("expected cached items, got %+v", result.Items)
	}
}

type servingCache struct {
	stubProductCache
	list *ports.CachedList
}

func (c *servingCache) GetList(context.Context, ports.ListProductsFilter) (*ports.CachedList, bool) {
	return c.list, true
}
