// Package model contains the persistence representations of the domain
// entities, kept separate so bson concerns never leak into the domain.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountModel is the document stored in the citizens collection.
// The collection carries a unique index on email and a unique sparse index
// on externalId.
type AccountModel struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FullName     string             `bson:"fullName"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password,omitempty"`
	PhoneNumber  string             `bson:"phonenumber,omitempty"`
	ExternalID   string             `bson:"externalId,omitempty"`
	IsVerified   bool               `bson:"isVerified"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}
