package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storelane/admin-panel/internal/api/metrics"
	"github.com/storelane/admin-panel/internal/core/domain"
	"github.com/storelane/admin-panel/internal/core/listing"
	"github.com/storelane/admin-panel/internal/core/ports"
	"github.com/storelane/admin-panel/internal/core/validation"
)

// ProductHandler handles HTTP requests for product operations. Every route is
// behind the Auth middleware; the owner scope always comes from the session,
// never from the request body.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

type productRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}

type listProductsResponse struct {
	Items      []*domain.Product `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	HasPrev    bool              `json:"has_prev"`
	HasNext    bool              `json:"has_next"`
}

// List handles GET /v1/products. Query state (page, limit, search) is read
// from the URL on every request — the URL is the source of truth, so a
// manually edited or shared link is immediately authoritative.
//
// @Summary      List the caller's products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 10, max 100)"
// @Param        search  query     string  false  "Case-insensitive substring match on name"
// @Success      200     {object}  listProductsResponse
// @Failure      401     {object}  map[string]string
// @Router       /v1/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	q := listing.ParseQuery(c.QueryParams())
	result, err := h.service.List(c.Request().Context(), ports.ListProductsInput{
		OwnerID: id.UserID,
		Search:  q.Search,
		Page:    q.Page,
		Limit:   q.Limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listProductsResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
		HasPrev:    listing.HasPrev(result.Page),
		HasNext:    listing.HasNext(result.Page, result.Limit, result.Total),
	})
}

// Get handles GET /v1/products/:id. Reads are owner-scoped: another owner's
// product responds 404, same as a missing id.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  map[string]string
// @Router       /v1/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	p, err := h.service.Get(c.Request().Context(), c.Param("id"), id.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, p)
}

// Create handles POST /v1/products. Validation failures are reported for
// every invalid field at once and never reach the store.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product fields"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]string
// @Router       /v1/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if fe := validateRequest(req); fe != nil {
		metrics.ProductMutationsTotal.WithLabelValues("create", "invalid").Inc()
		return fe
	}

	p, err := h.service.Create(c.Request().Context(), payload(req), id.UserID)
	if err != nil {
		metrics.ProductMutationsTotal.WithLabelValues("create", mutationOutcome(err)).Inc()
		return err
	}

	metrics.ProductMutationsTotal.WithLabelValues("create", "ok").Inc()
	return c.JSON(http.StatusCreated, p)
}

// Update handles PUT /v1/products/:id with full-replace semantics on the
// mutable fields.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Product fields"
// @Success      204   "No Content"
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if fe := validateRequest(req); fe != nil {
		metrics.ProductMutationsTotal.WithLabelValues("update", "invalid").Inc()
		return fe
	}

	if err := h.service.Update(c.Request().Context(), c.Param("id"), payload(req), id.UserID); err != nil {
		metrics.ProductMutationsTotal.WithLabelValues("update", mutationOutcome(err)).Inc()
		return err
	}

	metrics.ProductMutationsTotal.WithLabelValues("update", "ok").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/products/:id. Deleting an already-deleted
// product reports 404 rather than succeeding silently.
//
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Param        id  path  string  true  "Product id"
// @Success      204  "No Content"
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), id.UserID); err != nil {
		metrics.ProductMutationsTotal.WithLabelValues("delete", mutationOutcome(err)).Inc()
		return err
	}

	metrics.ProductMutationsTotal.WithLabelValues("delete", "ok").Inc()
	return c.NoContent(http.StatusNoContent)
}

func validateRequest(req productRequest) validation.FieldErrors {
	return validation.ValidateProduct(validation.ProductForm{
		Name:        req.Name,
		Slug:        req.Slug,
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
	})
}

func payload(req productRequest) ports.ProductPayload {
	return ports.ProductPayload{
		Name:        req.Name,
		Slug:        req.Slug,
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
	}
}

func mutationOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}
