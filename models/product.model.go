package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Price carries the list price alongside the strike-through MRP and the
// discount percentage shown in the catalog. Order totals use Org only.
type Price struct {
	Org float64 `bson:"org" json:"org"`
	Mrp float64 `bson:"mrp" json:"mrp"`
	Off float64 `bson:"off" json:"off"`
}

// Product is a catalog item. The cart/order core reads identity fields and
// Price.Org and never mutates a product.
type Product struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title    string             `bson:"title" json:"title"`
	Name     string             `bson:"name" json:"name"`
	Desc     string             `bson:"desc,omitempty" json:"desc,omitempty"`
	Img      string             `bson:"img,omitempty" json:"img,omitempty"`
	Price    Price              `bson:"price" json:"price"`
	Sizes    []string           `bson:"sizes,omitempty" json:"sizes,omitempty"`
	Category []string           `bson:"category,omitempty" json:"category,omitempty"`
}

// CartItem is a cart line joined with its catalog product for display.
// Product is nil when the referenced product no longer exists.
type CartItem struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}
