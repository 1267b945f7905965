package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Product struct {
	ID                 primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Title              string               `json:"title" bson:"title" binding:"required,min=3,max=100"`
	Slug               string               `json:"slug" bson:"slug"`
	Description        string               `json:"description" bson:"description" binding:"required,min=20"`
	Quantity           int                  `json:"quantity" bson:"quantity" binding:"required,gt=0"`
	Sold               int                  `json:"sold" bson:"sold"`
	Price              float64              `json:"price" bson:"price" binding:"required,gt=0,max=10000000"`
	PriceAfterDiscount float64              `json:"priceAfterDiscount,omitempty" bson:"priceAfterDiscount,omitempty" binding:"omitempty,ltfield=Price"`
	Colors             []string             `json:"colors,omitempty" bson:"colors,omitempty"`
	ImageCover         string               `json:"imageCover" bson:"imageCover"`
	Images             []string             `json:"images,omitempty" bson:"images,omitempty"`
	Category           primitive.ObjectID   `json:"category" bson:"category" binding:"required"`
	SubCategories      []primitive.ObjectID `json:"subCategories,omitempty" bson:"subCategories,omitempty"`
	Brand              *primitive.ObjectID  `json:"brand,omitempty" bson:"brand,omitempty"`
	RatingsAverage     float64              `json:"ratingsAverage" bson:"ratingsAverage"`
	RatingsQuantity    int                  `json:"ratingsQuantity" bson:"ratingsQuantity"`
	Timestamps         `bson:",inline"`
}
