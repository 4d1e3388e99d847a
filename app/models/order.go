package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses with special meaning. Status is free-form otherwise.
const (
	OrderPending   = "Pending"
	OrderDelivered = "Delivered"
)

// Customer is the embedded buyer reference on an Order.
type Customer struct {
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
}

// Order is a purchase record, stored in the orders collection.
// PlantID references a Plant by hex id; the link is loose — deleting the
// plant later leaves the order intact.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Customer      Customer           `bson:"customer" json:"customer"`
	Seller        string             `bson:"seller" json:"seller"`
	PlantID       string             `bson:"plantId" json:"plantId"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	Price         float64            `bson:"price" json:"price"`
	Status        string             `bson:"status" json:"status"`
	Address       string             `bson:"address,omitempty" json:"address,omitempty"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`

	// Joined plant fields, populated only by the enriched listings.
	PlantName  string `bson:"name,omitempty" json:"name,omitempty"`
	PlantImage string `bson:"image,omitempty" json:"image,omitempty"`
	Category   string `bson:"category,omitempty" json:"category,omitempty"`
}
