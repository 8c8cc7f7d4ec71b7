package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Package is a membership plan. Packages are maintained outside this
// service and only read here.
type Package struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
	Benefits []string           `bson:"benefits,omitempty" json:"benefits,omitempty"`
}
