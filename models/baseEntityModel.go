package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BaseEntity is inlined into every stored document.
type BaseEntity struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}
