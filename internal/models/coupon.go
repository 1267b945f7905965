package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Coupon struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name" binding:"required"`
	Expire     time.Time          `json:"expire" bson:"expire" binding:"required"`
	Discount   float64            `json:"discount" bson:"discount" binding:"required,gt=0,lte=100"`
	Timestamps `bson:",inline"`
}
