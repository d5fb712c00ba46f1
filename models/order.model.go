package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is an immutable snapshot of one cart line at submission time.
// It references the product by id only; quantities and the order total are
// frozen copies, so later catalog changes never alter a placed order.
type OrderItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// PaymentDetails is the payment form stored verbatim with an order. The
// values are opaque strings; nothing validates or charges them.
type PaymentDetails struct {
	CardNumber     string `bson:"card_number" json:"cardNumber"`
	ExpiryDate     string `bson:"expiry_date" json:"expiryDate"`
	CVV            string `bson:"cvv" json:"cvv"`
	CardHolderName string `bson:"card_holder_name" json:"cardHolderName"`
}

// DeliveryDetails is the delivery form submitted at checkout. It is composed
// into the order's single address string and not stored structurally.
type DeliveryDetails struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	CompleteAddress string `json:"completeAddress"`
	PhoneNumber     string `json:"phoneNumber"`
	EmailAddress    string `json:"emailAddress"`
}

// Order represents a user's placed order. Created once by checkout, never
// updated or deleted.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	User           primitive.ObjectID `bson:"user" json:"user"`
	Products       []OrderItem        `bson:"products" json:"products"`
	TotalAmount    float64            `bson:"total_amount" json:"total_amount"`
	Address        string             `bson:"address" json:"address"`
	PaymentDetails PaymentDetails     `bson:"payment_details" json:"payment_details"`
	Status         string             `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}
