package product

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Qathar8/Arianna-beauty/internal/auth"
	"github.com/Qathar8/Arianna-beauty/internal/config"
	"github.com/Qathar8/Arianna-beauty/internal/dto"
	"github.com/Qathar8/Arianna-beauty/internal/entity"
	"github.com/Qathar8/Arianna-beauty/internal/presentation/http/response"
	"github.com/Qathar8/Arianna-beauty/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/Qathar8/Arianna-beauty/transport/http/product")

// Catalog is the service surface the handler depends on.
type Catalog interface {
	List(ctx context.Context) ([]entity.Product, error)
	Get(ctx context.Context, id int64) (*entity.Product, error)
	Create(ctx context.Context, req dto.CreateProductRequest) (*entity.Product, error)
	Update(ctx context.Context, id int64, req dto.UpdateProductRequest) (*entity.Product, error)
	Delete(ctx context.Context, id int64) error
}

// Handler exposes catalog endpoints over HTTP.
type Handler struct {
	svc         Catalog
	placeholder string
}

// NewHandler constructs a catalog Handler.
func NewHandler(svc Catalog, cfg config.Config) *Handler {
	return &Handler{svc: svc, placeholder: cfg.Store.PlaceholderImage}
}

// Register routes with the provided Echo instance. Write operations sit
// behind the admin gate.
func Register(e *echo.Echo, h *Handler, gate *auth.Gate) {
	g := e.Group("/api/products")
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("", h.create, gate.RequireAdmin)
	g.PUT("/:id", h.update, gate.RequireAdmin)
	g.DELETE("/:id", h.delete, gate.RequireAdmin)
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "products.list")
	defer span.End()

	products, err := h.svc.List(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}

	views := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		views = append(views, h.toDTO(&products[i]))
	}
	return b.WithData(views).Build()
}

func (h *Handler) get(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "products.get", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	product, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(h.toDTO(product)).Build()
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	var payload dto.CreateProductRequest
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "products.create", trace.WithAttributes(
		attribute.String("product.name", payload.Name),
	))
	defer span.End()

	created, err := h.svc.Create(ctx, payload)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(h.toDTO(created)).Build()
}

func (h *Handler) update(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	var payload dto.UpdateProductRequest
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "products.update", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	updated, err := h.svc.Update(ctx, id, payload)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(h.toDTO(updated)).Build()
}

func (h *Handler) delete(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "products.delete", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	if err := h.svc.Delete(ctx, id); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(map[string]string{"message": "product deleted"}).Build()
}

// toDTO renders a product for transport. The image placeholder is filled
// in here, never persisted.
func (h *Handler) toDTO(product *entity.Product) dto.ProductResponse {
	imageURL := h.placeholder
	if product.ImageURL != nil && *product.ImageURL != "" {
		imageURL = *product.ImageURL
	}
	return dto.ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ImageURL:    imageURL,
		InStock:     product.InStock,
		CreatedAt:   product.CreatedAt,
	}
}
