package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"krist-backend/controllers"
	"krist-backend/routes"
	"krist-backend/store"
	"krist-backend/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	// Set the JWT secret key
	utils.JwtKey = []byte(os.Getenv("JWT_SECRET"))

	// Connect to MongoDB
	client := utils.ConnectDB()
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()
	db := store.NewMongo(client, utils.DatabaseName())

	// Email is optional; a nil service disables order confirmations.
	var mailer controllers.Mailer
	if emailService := utils.NewEmailService(); emailService != nil {
		mailer = emailService
	}

	// Initialize controllers
	userController := controllers.NewUserController(db)
	productController := controllers.NewProductController(db)
	cartController := controllers.NewCartController(db, db)
	favouriteController := controllers.NewFavouriteController(db, db)
	orderController := controllers.NewOrderController(db, db, db, mailer)

	// Set up the router
	router := mux.NewRouter()
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Hello Developers"})
	}).Methods("GET")
	routes.RegisterRoutes(router, userController, productController, cartController, favouriteController, orderController)

	// CORS and access logging around the whole router
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)
	handler := handlers.LoggingHandler(os.Stdout, cors(router))

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Server is running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
