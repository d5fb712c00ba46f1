package routes

import (
	"github.com/gorilla/mux"

	"krist-backend/controllers"
	"krist-backend/middleware"
)

// RegisterRoutes sets up all the routes for the application under /api.
func RegisterRoutes(router *mux.Router, userController *controllers.UserController, productController *controllers.ProductController, cartController *controllers.CartController, favouriteController *controllers.FavouriteController, orderController *controllers.OrderController) {
	api := router.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/user/signup", userController.Register).Methods("POST")
	api.HandleFunc("/user/login", userController.Login).Methods("POST")

	// Product routes
	api.HandleFunc("/products/add", productController.AddProducts).Methods("POST")
	api.HandleFunc("/products", productController.GetProducts).Methods("GET")
	api.HandleFunc("/products/{id}", productController.GetProductByID).Methods("GET")

	// User-scoped routes, bearer token required
	user := api.PathPrefix("/user").Subrouter()
	user.Use(middleware.AuthMiddleware)
	user.HandleFunc("/cart", cartController.GetCart).Methods("GET")
	user.HandleFunc("/cart", cartController.AddToCart).Methods("POST")
	user.HandleFunc("/cart", cartController.RemoveFromCart).Methods("DELETE")
	user.HandleFunc("/favourites", favouriteController.GetFavourites).Methods("GET")
	user.HandleFunc("/favourites", favouriteController.ToggleFavourite).Methods("POST")
	user.HandleFunc("/favourites", favouriteController.RemoveFavourite).Methods("DELETE")
	user.HandleFunc("/order", orderController.PlaceOrder).Methods("POST")
	user.HandleFunc("/orders", orderController.GetOrders).Methods("GET")
}
