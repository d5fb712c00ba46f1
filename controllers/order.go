package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"krist-backend/apperr"
	"krist-backend/models"
	"krist-backend/pricing"
	"krist-backend/store"
)

// Mailer sends the post-checkout confirmation mail. utils.EmailService
// implements it; a nil Mailer disables email.
type Mailer interface {
	SendOrderConfirmationEmail(toEmail string, order models.Order) error
}

// OrderController handles checkout and order listing.
type OrderController struct {
	Users    store.UserStore
	Products store.ProductStore
	Orders   store.OrderStore
	Mailer   Mailer
}

// NewOrderController creates a new OrderController.
func NewOrderController(users store.UserStore, products store.ProductStore, orders store.OrderStore, mailer Mailer) *OrderController {
	return &OrderController{Users: users, Products: products, Orders: orders, Mailer: mailer}
}

type placeOrderRequest struct {
	DeliveryDetails models.DeliveryDetails `json:"deliveryDetails"`
	PaymentDetails  models.PaymentDetails  `json:"paymentDetails"`
}

func (req *placeOrderRequest) validate() error {
	d := req.DeliveryDetails
	if d.FirstName == "" || d.LastName == "" || d.CompleteAddress == "" || d.PhoneNumber == "" || d.EmailAddress == "" {
		return apperr.New(apperr.IncompleteForm, http.StatusBadRequest, "Please fill all required fields in the delivery details form")
	}
	p := req.PaymentDetails
	if p.CardNumber == "" || p.ExpiryDate == "" || p.CVV == "" || p.CardHolderName == "" {
		return apperr.New(apperr.IncompleteForm, http.StatusBadRequest, "Please fill all required fields in the payment details form")
	}
	return nil
}

// composeAddress flattens the delivery form into the single address string
// stored on the order.
func composeAddress(d models.DeliveryDetails) string {
	return fmt.Sprintf("%s %s, %s, %s, %s", d.FirstName, d.LastName, d.CompleteAddress, d.PhoneNumber, d.EmailAddress)
}

// PlaceOrder converts the user's cart into a persisted order and clears the
// cart. The order is persisted first; any persistence failure leaves the
// cart untouched so the user can retry.
func (oc *OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUserID(r)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	user, err := oc.Users.FindUserByID(r.Context(), userID)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	if len(user.Cart) == 0 {
		apperr.Write(w, apperr.New(apperr.EmptyCart, http.StatusBadRequest, "Your cart is empty"))
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.BadRequest, http.StatusBadRequest, "Invalid input", err))
		return
	}
	if err := req.validate(); err != nil {
		apperr.Write(w, err)
		return
	}

	// Total from current catalog prices; the order stores a frozen copy so
	// later price changes never alter it.
	items, err := store.JoinCart(r.Context(), oc.Products, user.Cart)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	subtotal, warnings := pricing.Subtotal(items)

	snapshot := make([]models.OrderItem, len(user.Cart))
	for i, line := range user.Cart {
		snapshot[i] = models.OrderItem{Product: line.Product, Quantity: line.Quantity}
	}

	order := models.Order{
		User:           user.ID,
		Products:       snapshot,
		TotalAmount:    pricing.Round2(subtotal),
		Address:        composeAddress(req.DeliveryDetails),
		PaymentDetails: req.PaymentDetails,
		Status:         "Placed",
		CreatedAt:      time.Now().UTC(),
	}

	created, err := oc.Orders.CreateOrder(r.Context(), order)
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.OrderSubmissionFailed, http.StatusInternalServerError, "Failed to place order. Try again.", err))
		return
	}

	if err := oc.Users.ClearCart(r.Context(), user.ID); err != nil {
		apperr.Write(w, err)
		return
	}

	if oc.Mailer != nil {
		go func(email string, order models.Order) {
			if err := oc.Mailer.SendOrderConfirmationEmail(email, order); err != nil {
				log.Printf("Failed to send email to %s: %v", email, err)
			}
		}(user.Email, *created)
	}

	response := map[string]interface{}{
		"message": "Order placed successfully",
		"order":   created,
	}
	if len(warnings) > 0 {
		response["warnings"] = warnings
	}
	writeJSON(w, http.StatusOK, response)
}

// GetOrders returns the user's orders, newest first.
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUserID(r)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	orders, err := oc.Orders.ListOrdersByUser(r.Context(), userID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}
