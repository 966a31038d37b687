package order

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Qathar8/Arianna-beauty/internal/config"
	"github.com/Qathar8/Arianna-beauty/internal/database"
	"github.com/Qathar8/Arianna-beauty/internal/entity"
)

var repoTracer = otel.Tracer("github.com/Qathar8/Arianna-beauty/repository/order")

// ErrNotFound is returned when an order is missing.
var ErrNotFound = errors.New("order not found")

// ListLimit caps the order listing window.
const ListLimit = 100

// Repository encapsulates read/write access for orders. Every store
// call is bounded by the configured query timeout.
type Repository struct {
	writer  *bun.DB
	reader  *bun.DB
	timeout time.Duration
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(cfg config.Config, conns *database.Connections) *Repository {
	return &Repository{
		writer:  conns.Writer,
		reader:  conns.Reader,
		timeout: cfg.Database.QueryTimeout,
	}
}

func (r *Repository) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// ListRecent returns the most recent orders, newest first, capped at ListLimit.
func (r *Repository) ListRecent(ctx context.Context) ([]entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.ListRecent")
	defer span.End()
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var orders []entity.Order
	err := r.reader.NewSelect().Model(&orders).Order("created_at DESC").Limit(ListLimit).Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return orders, nil
}

// GetByIDFromWriter fetches an order through the write connection. The only
// by-id reads are the canonical re-reads after a write, which must not race
// replication.
func (r *Repository) GetByIDFromWriter(ctx context.Context, id int64) (*entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.GetByIDFromWriter", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()
	ctx, cancel := r.bound(ctx)
	defer cancel()

	order := new(entity.Order)
	err := r.writer.NewSelect().Model(order).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return order, nil
}

// Create persists a new order using the write connection.
func (r *Repository) Create(ctx context.Context, order *entity.Order) error {
	if order == nil {
		return errors.New("nil order")
	}
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Create", trace.WithAttributes(attribute.Int64("order.total", order.Total)))
	defer span.End()
	ctx, cancel := r.bound(ctx)
	defer cancel()

	_, err := r.writer.NewInsert().Model(order).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
	}
	return err
}

// Patch applies only the supplied column assignments (status/whatsapp)
// to the row. ErrNotFound is reported when no row matched the id.
func (r *Repository) Patch(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return errors.New("empty field set")
	}
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Patch", trace.WithAttributes(
		attribute.Int64("order.id", id),
		attribute.Int("order.fields", len(fields)),
	))
	defer span.End()
	ctx, cancel := r.bound(ctx)
	defer cancel()

	q := r.writer.NewUpdate().Model((*entity.Order)(nil)).Where("id = ?", id)
	for _, column := range sortedColumns(fields) {
		q = q.Set("? = ?", bun.Ident(column), fields[column])
	}

	res, err := q.Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		span.RecordError(err)
		return err
	}
	if affected == 0 {
		span.SetStatus(codes.Error, "not found")
		return ErrNotFound
	}
	return nil
}

func sortedColumns(fields map[string]any) []string {
	columns := make([]string, 0, len(fields))
	for column := range fields {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return columns
}
