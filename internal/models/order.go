package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

type ShippingAddress struct {
	Details    string `json:"details" bson:"details"`
	Phone      string `json:"phone" bson:"phone"`
	City       string `json:"city" bson:"city"`
	PostalCode string `json:"postalCode" bson:"postalCode"`
}

type Order struct {
	ID                primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User              primitive.ObjectID `json:"user" bson:"user"`
	CartItems         []CartItem         `json:"cartItems" bson:"cartItems"`
	ShippingAddress   ShippingAddress    `json:"shippingAddress" bson:"shippingAddress"`
	TaxPrice          float64            `json:"taxPrice" bson:"taxPrice"`
	ShippingPrice     float64            `json:"shippingPrice" bson:"shippingPrice"`
	TotalOrderPrice   float64            `json:"totalOrderPrice" bson:"totalOrderPrice"`
	PaymentMethodType string             `json:"paymentMethodType" bson:"paymentMethodType"`
	IsPaid            bool               `json:"isPaid" bson:"isPaid"`
	PaidAt            *time.Time         `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	IsDelivered       bool               `json:"isDelivered" bson:"isDelivered"`
	DeliveredAt       *time.Time         `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	Timestamps        `bson:",inline"`
}
