package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// SentinelPendingContact marks an order whose customer has not been
// reached yet; any other whatsapp value means contact info was collected.
const SentinelPendingContact = "pending"

// Order is a customer order as persisted. Items is the JSON-serialized
// item list; the order service owns encoding and decoding it. Items and
// Total are immutable after creation, only Status and Whatsapp are ever
// patched.
type Order struct {
	bun.BaseModel `bun:"table:orders"`

	ID        int64     `bun:",pk,autoincrement"`
	Items     string    `bun:"items,notnull"`
	Total     int64     `bun:"total,notnull"`
	Whatsapp  string    `bun:"whatsapp,notnull,default:'pending'"`
	Status    string    `bun:"status,nullzero"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
}
