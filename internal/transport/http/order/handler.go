package order

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Qathar8/Arianna-beauty/internal/auth"
	"github.com/Qathar8/Arianna-beauty/internal/dto"
	"github.com/Qathar8/Arianna-beauty/internal/presentation/http/response"
	"github.com/Qathar8/Arianna-beauty/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/Qathar8/Arianna-beauty/transport/http/order")

// Intake is the service surface the handler depends on.
type Intake interface {
	List(ctx context.Context) ([]dto.OrderResponse, error)
	Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	Patch(ctx context.Context, id int64, req dto.PatchOrderRequest) (*dto.OrderResponse, error)
}

// Handler exposes order intake endpoints over HTTP.
type Handler struct {
	svc Intake
}

// NewHandler constructs an order Handler.
func NewHandler(svc Intake) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance. Checkout (create) is
// public; the dashboard listing and patching sit behind the admin gate.
func Register(e *echo.Echo, h *Handler, gate *auth.Gate) {
	g := e.Group("/api/orders")
	g.GET("", h.list, gate.RequireAdmin)
	g.POST("", h.create)
	g.PATCH("/:id", h.patch, gate.RequireAdmin)
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.list")
	defer span.End()

	orders, err := h.svc.List(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(orders).Build()
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	var payload dto.CreateOrderRequest
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.create", trace.WithAttributes(
		attribute.Int("order.items", len(payload.Items)),
	))
	defer span.End()

	created, err := h.svc.Create(ctx, payload)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(created).Build()
}

func (h *Handler) patch(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	var payload dto.PatchOrderRequest
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.patch", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	patched, err := h.svc.Patch(ctx, id, payload)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(patched).Build()
}
