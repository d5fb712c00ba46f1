package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"krist-backend/apperr"
	"krist-backend/models"
	"krist-backend/store"
)

// ProductController serves the catalog. The cart/order core only reads it.
type ProductController struct {
	Products store.ProductStore
}

// NewProductController creates a new ProductController.
func NewProductController(products store.ProductStore) *ProductController {
	return &ProductController{Products: products}
}

// AddProducts inserts catalog products. Accepts a single product object or
// an array, the seed endpoint shape.
func (pc *ProductController) AddProducts(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.BadRequest, http.StatusBadRequest, "Invalid input", err))
		return
	}

	var products []models.Product
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&products); err != nil {
		var single models.Product
		if err := json.NewDecoder(bytes.NewReader(body)).Decode(&single); err != nil {
			apperr.Write(w, apperr.Wrap(apperr.BadRequest, http.StatusBadRequest, "Invalid input", err))
			return
		}
		products = []models.Product{single}
	}

	created, err := pc.Products.CreateProducts(r.Context(), products)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetProducts retrieves all products.
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := pc.Products.ListProducts(r.Context())
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// GetProductByID retrieves a single product by ID.
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.BadRequest, http.StatusBadRequest, "Invalid product ID", err))
		return
	}

	product, err := pc.Products.FindProductByID(r.Context(), id)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}
