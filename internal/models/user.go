package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser    = "user"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

type Address struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Alias      string             `json:"alias" bson:"alias"`
	Details    string             `json:"details" bson:"details"`
	Phone      string             `json:"phone" bson:"phone"`
	City       string             `json:"city" bson:"city"`
	PostalCode string             `json:"postalCode" bson:"postalCode"`
}

type User struct {
	ID           primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Name         string               `json:"name" bson:"name" binding:"required,min=2"`
	Slug         string               `json:"slug" bson:"slug"`
	Email        string               `json:"email" bson:"email" binding:"required,email"`
	Phone        string               `json:"phone,omitempty" bson:"phone,omitempty"`
	ProfileImage string               `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
	Password     string               `json:"-" bson:"password" binding:"required,min=6"`
	Role         string               `json:"role" bson:"role" binding:"omitempty,oneof=user manager admin"`
	Active       bool                 `json:"active" bson:"active"`
	Wishlist     []primitive.ObjectID `json:"wishlist,omitempty" bson:"wishlist,omitempty"`
	Addresses    []Address            `json:"addresses,omitempty" bson:"addresses,omitempty"`

	PasswordChangedAt     *time.Time `json:"-" bson:"passwordChangedAt,omitempty"`
	PasswordResetCode     string     `json:"-" bson:"passwordResetCode,omitempty"`
	PasswordResetExpires  *time.Time `json:"-" bson:"passwordResetExpires,omitempty"`
	PasswordResetVerified *bool      `json:"-" bson:"passwordResetVerified,omitempty"`

	Timestamps `bson:",inline"`
}
