package product

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Qathar8/Arianna-beauty/internal/cache"
	"github.com/Qathar8/Arianna-beauty/internal/config"
	"github.com/Qathar8/Arianna-beauty/internal/dto"
	"github.com/Qathar8/Arianna-beauty/internal/entity"
	repo "github.com/Qathar8/Arianna-beauty/internal/repository/product"
	"github.com/Qathar8/Arianna-beauty/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Qathar8/Arianna-beauty/service/product")

const listCacheKey = "products:catalog"

// Store is the persistence surface the service needs; satisfied by the
// product repository.
type Store interface {
	List(ctx context.Context) ([]entity.Product, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByIDFromWriter(ctx context.Context, id int64) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
}

// Service encapsulates catalog business logic: validation, canonical
// re-reads after writes, and catalog cache upkeep.
type Service struct {
	store    Store
	cache    cache.Store
	cacheTTL time.Duration
	logger   *zap.Logger
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Cache      cache.Store
	Config     config.Config
	Logger     *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		store:    p.Repository,
		cache:    p.Cache,
		cacheTTL: p.Config.Cache.DefaultTTL,
		logger:   p.Logger,
	}
}

// List returns the whole catalog, newest first, consulting the cache first.
func (s *Service) List(ctx context.Context) ([]entity.Product, error) {
	ctx, span := serviceTracer.Start(ctx, "ProductService.List")
	defer span.End()

	if products, err := s.listFromCache(ctx); err == nil {
		return products, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		if s.logger != nil {
			s.logger.Warn("catalog cache read failed", zap.Error(err))
		}
	}

	products, err := s.store.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to list products", errorbank.WithCause(err))
	}

	if err := s.storeListInCache(ctx, products); err != nil {
		if s.logger != nil {
			s.logger.Warn("catalog cache write failed", zap.Error(err))
		}
	}
	return products, nil
}

// Get retrieves a single product by id.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Product, error) {
	ctx, span := serviceTracer.Start(ctx, "ProductService.Get", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	product, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("product not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load product", errorbank.WithCause(err))
	}
	return product, nil
}

// Create validates the payload, persists it, and returns the canonical
// stored row read back by its assigned id. A zero price is rejected, not
// coerced: the catalog has no free items.
func (s *Service) Create(ctx context.Context, req dto.CreateProductRequest) (*entity.Product, error) {
	ctx, span := serviceTracer.Start(ctx, "ProductService.Create", trace.WithAttributes(attribute.String("product.name", req.Name)))
	defer span.End()

	if strings.TrimSpace(req.Name) == "" || req.Price == 0 {
		return nil, errorbank.BadRequest("name and price are required")
	}
	if req.Price < 0 {
		return nil, errorbank.BadRequest("price must be a positive amount")
	}

	product := &entity.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		InStock:     true,
		CreatedAt:   time.Now().UTC(),
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if err := s.store.Create(ctx, product); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to create product", errorbank.WithCause(err))
	}

	created, err := s.store.GetByIDFromWriter(ctx, product.ID)
	if err != nil {
		// The row we just wrote is unreadable; surface it, don't mask it.
		span.RecordError(err)
		span.SetStatus(codes.Error, "post-write read failed")
		return nil, errorbank.Internal("failed to load created product", errorbank.WithCause(err))
	}

	s.invalidateListCache(ctx)
	return created, nil
}

// Update applies a partial field set: only supplied fields change,
// omitted fields retain their prior values.
func (s *Service) Update(ctx context.Context, id int64, req dto.UpdateProductRequest) (*entity.Product, error) {
	ctx, span := serviceTracer.Start(ctx, "ProductService.Update", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	if req.Empty() {
		return nil, errorbank.BadRequest("no fields to update")
	}

	fields := make(map[string]any)
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errorbank.BadRequest("name cannot be empty")
		}
		fields["name"] = name
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, errorbank.BadRequest("price must be a positive amount")
		}
		fields["price"] = *req.Price
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.ImageURL != nil {
		fields["image_url"] = *req.ImageURL
	}
	if req.InStock != nil {
		fields["in_stock"] = *req.InStock
	}

	if err := s.store.Update(ctx, id, fields); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("product not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to update product", errorbank.WithCause(err))
	}

	updated, err := s.store.GetByIDFromWriter(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "post-write read failed")
		return nil, errorbank.Internal("failed to load updated product", errorbank.WithCause(err))
	}

	s.invalidateListCache(ctx)
	return updated, nil
}

// Delete removes a product; a missing id is NotFound, and deleting the
// same id twice reports NotFound on the second call.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := serviceTracer.Start(ctx, "ProductService.Delete", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorbank.NotFound("product not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to delete product", errorbank.WithCause(err))
	}

	s.invalidateListCache(ctx)
	return nil
}

func (s *Service) listFromCache(ctx context.Context) ([]entity.Product, error) {
	if s.cache == nil {
		return nil, cache.ErrCacheMiss
	}
	raw, err := s.cache.Get(ctx, listCacheKey)
	if err != nil {
		return nil, err
	}
	var products []entity.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Service) storeListInCache(ctx context.Context, products []entity.Product) error {
	if s.cache == nil {
		return nil
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, listCacheKey, raw, s.cacheTTL)
}

func (s *Service) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, listCacheKey); err != nil && s.logger != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.String("key", listCacheKey), zap.Error(err))
	}
}
