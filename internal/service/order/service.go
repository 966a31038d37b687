package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Qathar8/Arianna-beauty/internal/config"
	"github.com/Qathar8/Arianna-beauty/internal/dto"
	"github.com/Qathar8/Arianna-beauty/internal/entity"
	"github.com/Qathar8/Arianna-beauty/internal/messaging"
	repo "github.com/Qathar8/Arianna-beauty/internal/repository/order"
	"github.com/Qathar8/Arianna-beauty/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Qathar8/Arianna-beauty/service/order")

// Store is the persistence surface the service needs; satisfied by the
// order repository.
type Store interface {
	ListRecent(ctx context.Context) ([]entity.Order, error)
	GetByIDFromWriter(ctx context.Context, id int64) (*entity.Order, error)
	Create(ctx context.Context, order *entity.Order) error
	Patch(ctx context.Context, id int64, fields map[string]any) error
}

// Service encapsulates order intake logic: validation, item
// serialization, canonical re-reads, and order-created events.
type Service struct {
	store     Store
	logger    *zap.Logger
	publisher messaging.Client
	messaging messagingConfig
}

type messagingConfig struct {
	enabled bool
	topic   string
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Config     config.Config
	Logger     *zap.Logger
	Publisher  messaging.Client
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		store:     p.Repository,
		logger:    p.Logger,
		publisher: p.Publisher,
		messaging: messagingConfig{
			enabled: p.Config.Messaging.Enabled,
			topic:   p.Config.Messaging.Kafka.Topic,
		},
	}
}

// List returns the most recent orders with items deserialized for every row.
func (s *Service) List(ctx context.Context) ([]dto.OrderResponse, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.List")
	defer span.End()

	orders, err := s.store.ListRecent(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to list orders", errorbank.WithCause(err))
	}

	views := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		view, err := toView(&orders[i])
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "items decode failed")
			return nil, errorbank.Internal("failed to decode order items", errorbank.WithCause(err))
		}
		views = append(views, view)
	}
	return views, nil
}

// Create validates the checkout payload, persists the order, and returns
// the canonical stored row with items deserialized again. Items and total
// are checked independently so each failure names its field. Total is
// taken as supplied by the client and not recomputed from the items.
func (s *Service) Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Create", trace.WithAttributes(attribute.Int("order.items", len(req.Items))))
	defer span.End()

	if len(req.Items) == 0 {
		return nil, errorbank.BadRequest("items must be a non-empty list")
	}
	if req.Total == nil {
		return nil, errorbank.BadRequest("total is required and must be a number")
	}
	if *req.Total < 0 {
		return nil, errorbank.BadRequest("total cannot be negative")
	}

	whatsapp := req.Whatsapp
	if whatsapp == "" {
		whatsapp = entity.SentinelPendingContact
	}

	raw, err := encodeItems(req.Items)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "items encode failed")
		return nil, errorbank.Internal("failed to encode order items", errorbank.WithCause(err))
	}

	order := &entity.Order{
		Items:     raw,
		Total:     *req.Total,
		Whatsapp:  whatsapp,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Create(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to create order", errorbank.WithCause(err))
	}

	created, err := s.store.GetByIDFromWriter(ctx, order.ID)
	if err != nil {
		// Write/read inconsistency; surface it, don't mask it.
		span.RecordError(err)
		span.SetStatus(codes.Error, "post-write read failed")
		return nil, errorbank.Internal("failed to load created order", errorbank.WithCause(err))
	}

	view, err := toView(created)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "items decode failed")
		return nil, errorbank.Internal("failed to decode order items", errorbank.WithCause(err))
	}

	s.publishOrderCreated(ctx, view)
	return &view, nil
}

// Patch applies a non-empty subset of {status, whatsapp} to an order.
func (s *Service) Patch(ctx context.Context, id int64, req dto.PatchOrderRequest) (*dto.OrderResponse, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Patch", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if req.Empty() {
		return nil, errorbank.BadRequest("no fields to update")
	}

	fields := make(map[string]any)
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Whatsapp != nil {
		fields["whatsapp"] = *req.Whatsapp
	}

	if err := s.store.Patch(ctx, id, fields); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to update order", errorbank.WithCause(err))
	}

	patched, err := s.store.GetByIDFromWriter(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "post-write read failed")
		return nil, errorbank.Internal("failed to load updated order", errorbank.WithCause(err))
	}

	view, err := toView(patched)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "items decode failed")
		return nil, errorbank.Internal("failed to decode order items", errorbank.WithCause(err))
	}
	return &view, nil
}

func toView(order *entity.Order) (dto.OrderResponse, error) {
	items, err := decodeItems(order.Items)
	if err != nil {
		return dto.OrderResponse{}, err
	}
	return dto.OrderResponse{
		ID:        order.ID,
		Items:     items,
		Total:     order.Total,
		Whatsapp:  order.Whatsapp,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	}, nil
}

func (s *Service) publishOrderCreated(ctx context.Context, view dto.OrderResponse) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	event := OrderCreatedEvent{
		ID:        view.ID,
		Total:     view.Total,
		Whatsapp:  view.Whatsapp,
		ItemCount: len(view.Items),
		CreatedAt: view.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("marshal order created", zap.Error(err))
		}
		return
	}
	if err := s.publisher.Publish(ctx, []byte(fmt.Sprintf("order-%d", view.ID)), payload); err != nil {
		if s.logger != nil {
			s.logger.Error("publish order created", zap.Error(err))
		}
	}
}

// OrderCreatedEvent is emitted when a new order is persisted. Consumers
// use it to surface orders still awaiting WhatsApp follow-up.
type OrderCreatedEvent struct {
	ID        int64     `json:"id"`
	Total     int64     `json:"total"`
	Whatsapp  string    `json:"whatsapp"`
	ItemCount int       `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
}
