package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type CartItem struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Product  primitive.ObjectID `json:"product" bson:"product"`
	Quantity int                `json:"quantity" bson:"quantity"`
	Color    string             `json:"color,omitempty" bson:"color,omitempty"`
	Price    float64            `json:"price" bson:"price"`
}

type Cart struct {
	ID                      primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User                    primitive.ObjectID `json:"user" bson:"user"`
	CartItems               []CartItem         `json:"cartItems" bson:"cartItems"`
	TotalCartPrice          float64            `json:"totalCartPrice" bson:"totalCartPrice"`
	TotalPriceAfterDiscount float64            `json:"totalPriceAfterDiscount,omitempty" bson:"totalPriceAfterDiscount,omitempty"`
	Timestamps              `bson:",inline"`
}
