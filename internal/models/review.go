package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Review struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title      string             `json:"title,omitempty" bson:"title,omitempty" binding:"omitempty,max=100"`
	Ratings    float64            `json:"ratings" bson:"ratings" binding:"required,min=1,max=5"`
	User       primitive.ObjectID `json:"user" bson:"user"`
	Product    primitive.ObjectID `json:"product" bson:"product"`
	Timestamps `bson:",inline"`
}

// ProductRating est le résultat de l'agrégation des avis d'un produit.
type ProductRating struct {
	Average  float64 `bson:"average"`
	Quantity int     `bson:"quantity"`
}
