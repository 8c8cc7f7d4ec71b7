package query

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealFilter holds the query-string parameters accepted by the meal list.
type MealFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	MinPrice string `form:"minPrice"`
	MaxPrice string `form:"maxPrice"`
}

// Build returns the filter document. Empty parameters add no constraint.
func (f MealFilter) Build() (bson.M, error) {
	filter := bson.M{}

	if term := strings.TrimSpace(f.Search); term != "" {
		filter["title"] = Contains(term)
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}

	price, err := priceRange(f.MinPrice, f.MaxPrice)
	if err != nil {
		return nil, err
	}
	if price != nil {
		filter["price"] = price
	}
	return filter, nil
}

// UserFilter holds the query-string parameters accepted by the user list.
type UserFilter struct {
	Search string `form:"search"`
	Role   string `form:"role"`
}

// Build matches search against name OR email.
func (f UserFilter) Build() bson.M {
	filter := bson.M{}
	if term := strings.TrimSpace(f.Search); term != "" {
		re := Contains(term)
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"email": re},
		}
	}
	if f.Role != "" {
		filter["role"] = f.Role
	}
	return filter
}

// RequestedMealFilter holds the parameters accepted by the requested-meal list.
type RequestedMealFilter struct {
	Search string `form:"search"`
	Status string `form:"status"`
	Email  string `form:"email"`
}

func (f RequestedMealFilter) Build() bson.M {
	filter := bson.M{}
	if term := strings.TrimSpace(f.Search); term != "" {
		filter["title"] = Contains(term)
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Email != "" {
		filter["email"] = f.Email
	}
	return filter
}

// ReviewFilter holds the parameters accepted by the review list.
type ReviewFilter struct {
	Email  string `form:"email"`
	MealID string `form:"mealId"`
}

func (f ReviewFilter) Build() bson.M {
	filter := bson.M{}
	if f.Email != "" {
		filter["email"] = f.Email
	}
	if f.MealID != "" {
		filter["mealId"] = f.MealID
	}
	return filter
}

// Contains is a case-insensitive literal substring match.
func Contains(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

// ObjectID parses an opaque document identifier.
func ObjectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, Invalid("id", "malformed identifier")
	}
	return id, nil
}

func priceRange(minRaw, maxRaw string) (bson.M, error) {
	var (
		rng          = bson.M{}
		lo, hi       float64
		hasLo, hasHi bool
	)
	if s := strings.TrimSpace(minRaw); s != "" {
		v, err := NumberOf(s).Float()
		if err != nil {
			return nil, Invalid("minPrice", "must be a number")
		}
		lo, hasLo = v, true
		rng["$gte"] = v
	}
	if s := strings.TrimSpace(maxRaw); s != "" {
		v, err := NumberOf(s).Float()
		if err != nil {
			return nil, Invalid("maxPrice", "must be a number")
		}
		hi, hasHi = v, true
		rng["$lte"] = v
	}
	if hasLo && hasHi && lo > hi {
		return nil, Invalid("minPrice", "must not exceed maxPrice")
	}
	if len(rng) == 0 {
		return nil, nil
	}
	return rng, nil
}
