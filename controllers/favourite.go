package controllers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"krist-backend/apperr"
	"krist-backend/models"
	"krist-backend/store"
)

// FavouriteController handles the user's favourites set.
type FavouriteController struct {
	Users    store.UserStore
	Products store.ProductStore
}

// NewFavouriteController creates a new FavouriteController.
func NewFavouriteController(users store.UserStore, products store.ProductStore) *FavouriteController {
	return &FavouriteController{Users: users, Products: products}
}

func favouriteProductID(r *http.Request) (primitive.ObjectID, error) {
	var input struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return primitive.NilObjectID, apperr.Wrap(apperr.BadRequest, http.StatusBadRequest, "Invalid input", err)
	}
	id, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		return primitive.NilObjectID, apperr.Wrap(apperr.BadRequest, http.StatusBadRequest, "Invalid product ID", err)
	}
	return id, nil
}

// ToggleFavourite adds the product to the favourites set when absent and
// removes it when present, so toggling twice restores the original state.
func (fc *FavouriteController) ToggleFavourite(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUserID(r)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	productID, err := favouriteProductID(r)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	user, err := fc.Users.ToggleFavourite(r.Context(), userID, productID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	message := "Product added to favorites"
	if !user.HasFavourite(productID) {
		message = "Removed from favorites"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"user":    user,
	})
}

// RemoveFavourite removes the product from the favourites set. Removing an
// absent favourite succeeds without change.
func (fc *FavouriteController) RemoveFavourite(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUserID(r)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	productID, err := favouriteProductID(r)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	user, err := fc.Users.RemoveFavourite(r.Context(), userID, productID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Removed from favorites",
		"user":    user,
	})
}

// GetFavourites returns the joined product records for the user's
// favourites set.
func (fc *FavouriteController) GetFavourites(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUserID(r)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	user, err := fc.Users.FindUserByID(r.Context(), userID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	byID, err := fc.Products.FindProductsByIDs(r.Context(), user.Favourites)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	favourites := []models.Product{}
	for _, id := range user.Favourites {
		if p, ok := byID[id]; ok {
			favourites = append(favourites, p)
		}
	}
	writeJSON(w, http.StatusOK, favourites)
}
