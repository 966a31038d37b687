package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Product is a catalog item stored in the relational database.
// Price is held in minor currency units (cents) everywhere; no
// conversion happens at any read/write boundary.
type Product struct {
	bun.BaseModel `bun:"table:products"`

	ID          int64     `bun:",pk,autoincrement"`
	Name        string    `bun:"name,notnull"`
	Description *string   `bun:"description"`
	Price       int64     `bun:"price,notnull"`
	ImageURL    *string   `bun:"image_url"`
	InStock     bool      `bun:"in_stock,notnull,default:true"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
}
