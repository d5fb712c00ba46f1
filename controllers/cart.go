package controllers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"krist-backend/apperr"
	"krist-backend/store"
)

// CartController handles cart-related requests.
type CartController struct {
	Users    store.UserStore
	Products store.ProductStore
}

// NewCartController creates a new CartController.
func NewCartController(users store.UserStore, products store.ProductStore) *CartController {
	return &CartController{Users: users, Products: products}
}

type cartMutation struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

func (cm cartMutation) productID() (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(cm.ProductID)
	if err != nil {
		return primitive.NilObjectID, apperr.Wrap(apperr.BadRequest, http.StatusBadRequest, "Invalid product ID", err)
	}
	return id, nil
}

// AddToCart adds a product to the user's cart, merging into an existing
// line when the product is already present.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUserID(r)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	var input cartMutation
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.BadRequest, http.StatusBadRequest, "Invalid input", err))
		return
	}
	productID, err := input.productID()
	if err != nil {
		apperr.Write(w, err)
		return
	}

	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	if quantity < 1 {
		apperr.Write(w, apperr.New(apperr.BadRequest, http.StatusBadRequest, "Quantity must be a positive integer"))
		return
	}

	user, err := cc.Users.AddCartLine(r.Context(), userID, productID, quantity)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product added to cart successfully",
		"user":    user,
	})
}

// RemoveFromCart decrements a cart line by the requested quantity, or
// deletes the line outright when no quantity is given or the decrement
// would exhaust it.
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUserID(r)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	var input cartMutation
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.BadRequest, http.StatusBadRequest, "Invalid input", err))
		return
	}
	productID, err := input.productID()
	if err != nil {
		apperr.Write(w, err)
		return
	}

	// A non-positive quantity means full removal, same as an absent one.
	quantity := input.Quantity
	if quantity != nil && *quantity <= 0 {
		quantity = nil
	}

	user, err := cc.Users.RemoveCartLine(r.Context(), userID, productID, quantity)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product quantity updated in cart",
		"cart":    user.Cart,
	})
}

// GetCart returns the user's cart lines joined with current catalog data,
// so prices reflect the catalog until checkout freezes them.
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUserID(r)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	user, err := cc.Users.FindUserByID(r.Context(), userID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	items, err := store.JoinCart(r.Context(), cc.Products, user.Cart)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}
