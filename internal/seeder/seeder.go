package seeder

import (
	"context"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Qathar8/Arianna-beauty/internal/database"
	"github.com/Qathar8/Arianna-beauty/internal/entity"
)

// Module provides the seeder to Fx.
var Module = fx.Provide(New)

// Seeder performs database seeding for local/dev setups.
type Seeder struct {
	db     *bun.DB
	logger *zap.Logger
}

// New constructs a Seeder backed by the primary database connection.
func New(conns *database.Connections, logger *zap.Logger) *Seeder {
	return &Seeder{db: conns.Writer, logger: logger}
}

// Products seeds the sample catalog when the products table is empty.
// Prices are in minor currency units.
func (s *Seeder) Products(ctx context.Context) error {
	exists, err := s.db.NewSelect().Model((*entity.Product)(nil)).Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		if s.logger != nil {
			s.logger.Info("catalog already seeded; skipping")
		}
		return nil
	}

	now := time.Now().UTC()
	samples := []entity.Product{
		{Name: "Chanel No. 5 Eau de Parfum", Description: ptr("The legendary fragrance with notes of ylang-ylang, rose, and sandalwood."), Price: 850000, InStock: true, CreatedAt: now},
		{Name: "Dior Sauvage Cologne", Description: ptr("Fresh and woody fragrance with notes of bergamot and pepper."), Price: 720000, InStock: true, CreatedAt: now},
		{Name: "Tom Ford Black Orchid", Description: ptr("Luxurious and sensual fragrance with black orchid and dark chocolate."), Price: 980000, InStock: true, CreatedAt: now},
		{Name: "Vitamin C Serum", Description: ptr("Brightening serum with 20% Vitamin C for radiant skin."), Price: 250000, InStock: true, CreatedAt: now},
		{Name: "Hyaluronic Acid Moisturizer", Description: ptr("Intensive hydrating cream with hyaluronic acid."), Price: 320000, InStock: true, CreatedAt: now},
		{Name: "Matte Lipstick Set", Description: ptr("Set of 6 long-lasting matte lipsticks in popular shades."), Price: 180000, InStock: true, CreatedAt: now},
		{Name: "Eyeshadow Palette", Description: ptr("12-shade eyeshadow palette with matte and shimmer finishes."), Price: 280000, InStock: true, CreatedAt: now},
	}

	if _, err := s.db.NewInsert().Model(&samples).Exec(ctx); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("seeded catalog", zap.Int("count", len(samples)))
	}
	return nil
}

func ptr(s string) *string { return &s }
