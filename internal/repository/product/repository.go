package product

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

var repoTracer = otel.Tracer("github.com/Qathar8/Arianna-beauty/repository/product")

// ErrNotFound is returned when a product is missing.
var ErrNotFound = errors.New("product not found")

// Repository encapsulates read/write access for products. Every store
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

// List returns every product, newest first.
func (r *Repository) List(ctx context.Context) ([]entity.Product, error) {
	ctx, span := repoTracer.Start(ctx, "ProductRepository.List")
	defer span.End()
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var products []entity.Product
	err := r.reader.NewSelect().Model(&products).Order("created_at DESC").Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return products, nil
}

// GetByID fetches a product by primary key using the read replica when available.
func (r *Repository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getByID(ctx, r.reader, id)
}

// GetByIDFromWriter fetches a product through the write connection. Write
// paths re-read through it so the canonical row never races replication.
func (r *Repository) GetByIDFromWriter(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getByID(ctx, r.writer, id)
}

func (r *Repository) getByID(ctx context.Context, db *bun.DB, id int64) (*entity.Product, error) {
	ctx, span := repoTracer.Start(ctx, "ProductRepository.GetByID", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()
	ctx, cancel := r.bound(ctx)
	defer cancel()

	product := new(entity.Product)
	err := db.NewSelect().Model(product).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return product, nil
}

// Create persists a new product using the write connection; the assigned
// id is written back into the model.
func (r *Repository) Create(ctx context.Context, product *entity.Product) error {
	if product == nil {
		return errors.New("nil product")
	}
	ctx, span := repoTracer.Start(ctx, "ProductRepository.Create", trace.WithAttributes(attribute.String("product.name", product.Name)))
	defer span.End()
	ctx, cancel := r.bound(ctx)
	defer cancel()

	_, err := r.writer.NewInsert().Model(product).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
	}
	return err
}

// Update applies only the supplied column assignments to the row. The
// assignment list is built from the map so omitted columns stay untouched.
// ErrNotFound is reported when no row matched the id.
func (r *Repository) Update(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return errors.New("empty field set")
	}
	ctx, span := repoTracer.Start(ctx, "ProductRepository.Update", trace.WithAttributes(
		attribute.Int64("product.id", id),
		attribute.Int("product.fields", len(fields)),
	))
	defer span.End()
	ctx, cancel := r.bound(ctx)
	defer cancel()

	q := r.writer.NewUpdate().Model((*entity.Product)(nil)).Where("id = ?", id)
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

// Delete removes a product after an explicit existence check, so an
// absent id is reported as ErrNotFound rather than a silent no-op.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, span := repoTracer.Start(ctx, "ProductRepository.Delete", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()
	ctx, cancel := r.bound(ctx)
	defer cancel()

	exists, err := r.writer.NewSelect().Model((*entity.Product)(nil)).Where("id = ?", id).Exists(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "existence check failed")
		return err
	}
	if !exists {
		span.SetStatus(codes.Error, "not found")
		return ErrNotFound
	}

	if _, err := r.writer.NewDelete().Model((*entity.Product)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
		return err
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
