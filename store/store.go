// Package store defines the persistence contracts for users (with their
// embedded carts and favourites), the product catalog, and orders. The Mongo
// implementation is the production backend; Memory backs tests.
package store

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"krist-backend/apperr"
	"krist-backend/models"
)

var (
	ErrUserNotFound     = apperr.New(apperr.UserNotFound, http.StatusNotFound, "User not found")
	ErrEmailInUse       = apperr.New(apperr.EmailInUse, http.StatusConflict, "Email is already in use")
	ErrProductNotFound  = apperr.New(apperr.ProductNotFound, http.StatusNotFound, "Product not found")
	ErrProductNotInCart = apperr.New(apperr.ProductNotInCart, http.StatusNotFound, "Product not found in cart")
)

// UserStore persists users and their embedded cart and favourites state.
//
// Cart mutations must be atomic at the storage layer: two concurrent
// AddCartLine calls for the same line must both land (their quantities sum),
// and RemoveCartLine must distinguish a decrement from a line that is
// already gone (ErrProductNotInCart, never a silent no-op).
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)

	// AddCartLine merge-increments the line for productID by quantity, or
	// appends a new line when none exists.
	AddCartLine(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.User, error)

	// RemoveCartLine decrements the line by *quantity, deleting it when the
	// result would drop below 1. A nil quantity deletes the line outright.
	RemoveCartLine(ctx context.Context, userID, productID primitive.ObjectID, quantity *int) (*models.User, error)

	// ClearCart removes every line. Used by checkout after the order is
	// persisted.
	ClearCart(ctx context.Context, userID primitive.ObjectID) error

	// ToggleFavourite adds productID to the favourites set when absent and
	// removes it when present.
	ToggleFavourite(ctx context.Context, userID, productID primitive.ObjectID) (*models.User, error)

	// RemoveFavourite removes productID from the favourites set. Removing an
	// absent favourite is a no-op, not an error.
	RemoveFavourite(ctx context.Context, userID, productID primitive.ObjectID) (*models.User, error)
}

// ProductStore is the read-mostly catalog. The cart/order core never updates
// or deletes products.
type ProductStore interface {
	CreateProducts(ctx context.Context, products []models.Product) ([]models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	FindProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)

	// FindProductsByIDs resolves ids to products in one round trip. Missing
	// ids are simply absent from the result map.
	FindProductsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error)
}

// OrderStore persists placed orders. Orders are write-once.
type OrderStore interface {
	CreateOrder(ctx context.Context, order models.Order) (*models.Order, error)

	// ListOrdersByUser returns the user's orders newest first.
	ListOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
}

// JoinCart resolves a user's cart lines against the catalog for display.
// Lines whose product no longer exists join with a nil Product; callers
// decide whether that warrants a warning.
func JoinCart(ctx context.Context, products ProductStore, cart []models.CartLine) ([]models.CartItem, error) {
	ids := make([]primitive.ObjectID, 0, len(cart))
	for _, line := range cart {
		ids = append(ids, line.Product)
	}
	byID, err := products.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	items := make([]models.CartItem, 0, len(cart))
	for _, line := range cart {
		item := models.CartItem{Quantity: line.Quantity}
		if p, ok := byID[line.Product]; ok {
			product := p
			item.Product = &product
		}
		items = append(items, item)
	}
	return items, nil
}
