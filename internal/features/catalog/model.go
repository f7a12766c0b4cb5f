package catalog

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is one catalog entry addressable by SKU. A nil StockQuantity means
// the product does not track stock yet.
type Product struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SKU           string             `json:"sku" bson:"sku"`
	Name          string             `json:"name" bson:"name"`
	StockQuantity *int               `json:"stock_quantity" bson:"stock_quantity"`
	ManageStock   bool               `json:"manage_stock" bson:"manage_stock"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`

	// Key is the store specific identifier, the hex ObjectID for Mongo or the
	// row id for Postgres.
	Key string `json:"-" bson:"-"`
}

func (p *Product) SetStockQuantity(quantity int) {
	p.StockQuantity = &quantity
}
