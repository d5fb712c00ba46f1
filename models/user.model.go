package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartLine is one (product, quantity) pair in a user's cart. A user's cart
// holds at most one line per product; adds merge into the existing line.
type CartLine struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// User represents a user in the system. The cart and favourites live embedded
// in the user document and are only reachable through the owning user's id.
type User struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Name       string               `bson:"name" json:"name"`
	Email      string               `bson:"email" json:"email"`
	Password   string               `bson:"password,omitempty" json:"-"`
	Img        string               `bson:"img,omitempty" json:"img,omitempty"`
	Cart       []CartLine           `bson:"cart" json:"cart"`
	Favourites []primitive.ObjectID `bson:"favourites" json:"favourites"`
}

// CartLineIndex reports the position of the cart line for productID, or -1
// when the product is not in the cart.
func (u *User) CartLineIndex(productID primitive.ObjectID) int {
	for i, line := range u.Cart {
		if line.Product == productID {
			return i
		}
	}
	return -1
}

// HasFavourite reports whether productID is in the favourites set.
func (u *User) HasFavourite(productID primitive.ObjectID) bool {
	for _, id := range u.Favourites {
		if id == productID {
			return true
		}
	}
	return false
}
