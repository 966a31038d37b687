package order

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Qathar8/Arianna-beauty/internal/config"
	"github.com/Qathar8/Arianna-beauty/internal/entity"
	"github.com/Qathar8/Arianna-beauty/internal/messaging"
	ordersvc "github.com/Qathar8/Arianna-beauty/internal/service/order"
	"github.com/Qathar8/Arianna-beauty/internal/worker"
)

var workerTracer = otel.Tracer("github.com/Qathar8/Arianna-beauty/worker/order")

// Module registers order-related worker handlers.
var Module = fx.Module("worker_order",
	fx.Provide(
		fx.Annotate(
			NewOrderCreatedHandler,
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

// NewOrderCreatedHandler sets up a worker handler that surfaces new
// orders for the admin's WhatsApp follow-up queue.
func NewOrderCreatedHandler(logger *zap.Logger, cfg config.Config) worker.HandlerRegistration {
	handler := func(ctx context.Context, msg messaging.Message) error {
		ctx, span := workerTracer.Start(ctx, "worker.orders.process", trace.WithAttributes(
			attribute.String("messaging.topic", msg.Topic),
		))
		defer span.End()

		var event ordersvc.OrderCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("failed to decode order created", zap.Error(err))

			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			return err
		}

		awaitingContact := event.Whatsapp == entity.SentinelPendingContact
		logger.Info("order received",
			zap.Int64("id", event.ID),
			zap.Int64("total", event.Total),
			zap.Int("item_count", event.ItemCount),
			zap.String("whatsapp", event.Whatsapp),
			zap.Bool("awaiting_contact", awaitingContact),
		)

		return nil
	}

	return worker.HandlerRegistration{
		Topic:   cfg.Messaging.Kafka.Topic,
		Handler: handler,
	}
}
