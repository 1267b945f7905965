package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Category struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name" binding:"required,min=3,max=32"`
	Slug       string             `json:"slug" bson:"slug"`
	Image      string             `json:"image,omitempty" bson:"image,omitempty"`
	Timestamps `bson:",inline"`
}

type SubCategory struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name" binding:"required,min=2,max=32"`
	Slug       string             `json:"slug" bson:"slug"`
	// Vient du corps ou de l'URL sur la route imbriquée, contrôlé au hook.
	Category   primitive.ObjectID `json:"category" bson:"category"`
	Timestamps `bson:",inline"`
}

type Brand struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name" binding:"required,min=3,max=32"`
	Slug       string             `json:"slug" bson:"slug"`
	Image      string             `json:"image,omitempty" bson:"image,omitempty"`
	Timestamps `bson:",inline"`
}
