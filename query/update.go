package query

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Update records use pointer fields: a nil field was not sent (or was sent
// as null) and is left alone in storage. A non-nil field is written even
// when it holds a zero value.

// MealUpdate is the writable subset of a meal.
type MealUpdate struct {
	Title       *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Category    *string   `json:"category" validate:"omitempty,min=1,max=50"`
	Description *string   `json:"description"`
	Ingredients *[]string `json:"ingredients"`
	Price       *Number   `json:"price"`
	Image       *string   `json:"image"`
	Like        *int      `json:"like" validate:"omitempty,min=0"`
	ReviewCount *int      `json:"reviewCount" validate:"omitempty,min=0"`
	AdminName   *string   `json:"adminName"`
	AdminEmail  *string   `json:"adminEmail" validate:"omitempty,email"`
}

// Fields returns the $set body. Price is truncated to an integer.
func (u MealUpdate) Fields() (bson.D, error) {
	var updateObj primitive.D

	if u.Title != nil {
		updateObj = append(updateObj, bson.E{Key: "title", Value: *u.Title})
	}
	if u.Category != nil {
		updateObj = append(updateObj, bson.E{Key: "category", Value: *u.Category})
	}
	if u.Description != nil {
		updateObj = append(updateObj, bson.E{Key: "description", Value: *u.Description})
	}
	if u.Ingredients != nil {
		updateObj = append(updateObj, bson.E{Key: "ingredients", Value: *u.Ingredients})
	}
	if u.Price != nil {
		price, err := u.Price.Int()
		if err != nil {
			return nil, Invalid("price", "must be a number")
		}
		// -0.5 truncates to 0 but is still a negative input
		if f, _ := u.Price.Float(); price < 0 || f < 0 {
			return nil, Invalid("price", "must not be negative")
		}
		updateObj = append(updateObj, bson.E{Key: "price", Value: price})
	}
	if u.Image != nil {
		updateObj = append(updateObj, bson.E{Key: "image", Value: *u.Image})
	}
	if u.Like != nil {
		updateObj = append(updateObj, bson.E{Key: "like", Value: *u.Like})
	}
	if u.ReviewCount != nil {
		updateObj = append(updateObj, bson.E{Key: "reviewCount", Value: *u.ReviewCount})
	}
	if u.AdminName != nil {
		updateObj = append(updateObj, bson.E{Key: "adminName", Value: *u.AdminName})
	}
	if u.AdminEmail != nil {
		updateObj = append(updateObj, bson.E{Key: "adminEmail", Value: *u.AdminEmail})
	}
	return nonEmpty(updateObj)
}

// UpcomingMealUpdate carries the meal fields plus the planned serving date.
type UpcomingMealUpdate struct {
	MealUpdate
	ServeDate *string `json:"serveDate"`
}

func (u UpcomingMealUpdate) Fields() (bson.D, error) {
	updateObj, err := u.MealUpdate.Fields()
	// an empty meal part is fine as long as serveDate was sent
	if err != nil && !isEmptyUpdate(err) {
		return nil, err
	}
	if u.ServeDate != nil {
		updateObj = append(updateObj, bson.E{Key: "serveDate", Value: *u.ServeDate})
	}
	return nonEmpty(updateObj)
}

// LikeUpdate is the only meal field an ordinary user may change.
type LikeUpdate struct {
	Like *int `json:"like" validate:"omitempty,min=0"`
}

func (u LikeUpdate) Fields() (bson.D, error) {
	if u.Like == nil {
		return nil, Invalid("like", "required")
	}
	return bson.D{{Key: "like", Value: *u.Like}}, nil
}

// UserUpdate is the profile a client syncs after sign-in. Email is the
// lookup key; role and badge are not writable here.
type UserUpdate struct {
	Email *string `json:"email" validate:"required,email"`
	Name  *string `json:"name" validate:"omitempty,max=100"`
	Image *string `json:"image"`
}

// Fields always includes email, so an upsert creates a record with the
// key plus whatever else was sent.
func (u UserUpdate) Fields() (bson.D, error) {
	if u.Email == nil || *u.Email == "" {
		return nil, Invalid("email", "required")
	}
	updateObj := primitive.D{{Key: "email", Value: *u.Email}}
	if u.Name != nil {
		updateObj = append(updateObj, bson.E{Key: "name", Value: *u.Name})
	}
	if u.Image != nil {
		updateObj = append(updateObj, bson.E{Key: "image", Value: *u.Image})
	}
	return updateObj, nil
}

// BadgeUpdate sets the membership badge bought with a package.
type BadgeUpdate struct {
	Badge *string `json:"badge" validate:"omitempty,oneof=Bronze Silver Gold Platinum"`
}

func (u BadgeUpdate) Fields() (bson.D, error) {
	if u.Badge == nil {
		return nil, Invalid("badge", "required")
	}
	return bson.D{{Key: "badge", Value: *u.Badge}}, nil
}

// RoleUpdate changes a user's role.
type RoleUpdate struct {
	Role *string `json:"role" validate:"omitempty,oneof=admin user"`
}

func (u RoleUpdate) Fields() (bson.D, error) {
	if u.Role == nil {
		return nil, Invalid("role", "required")
	}
	return bson.D{{Key: "role", Value: *u.Role}}, nil
}

// StatusUpdate moves a requested meal through its states.
type StatusUpdate struct {
	Status *string `json:"status" validate:"omitempty,oneof=pending delivered"`
}

func (u StatusUpdate) Fields() (bson.D, error) {
	if u.Status == nil {
		return nil, Invalid("status", "required")
	}
	return bson.D{{Key: "status", Value: *u.Status}}, nil
}

// ReviewUpdate edits a review's text or rating.
type ReviewUpdate struct {
	Review *string `json:"review" validate:"omitempty,max=2000"`
	Rating *Number `json:"rating"`
}

func (u ReviewUpdate) Fields() (bson.D, error) {
	var updateObj primitive.D
	if u.Review != nil {
		updateObj = append(updateObj, bson.E{Key: "review", Value: *u.Review})
	}
	if u.Rating != nil {
		rating, err := u.Rating.Int()
		if err != nil {
			return nil, Invalid("rating", "must be a number")
		}
		if rating < 0 || rating > 5 {
			return nil, Invalid("rating", "must be between 0 and 5")
		}
		updateObj = append(updateObj, bson.E{Key: "rating", Value: rating})
	}
	return nonEmpty(updateObj)
}

// Set wraps fields in a $set operator.
func Set(fields bson.D) bson.D {
	return bson.D{{Key: "$set", Value: fields}}
}

// Require reports the first name missing from fields.
func Require(fields bson.D, names ...string) error {
	for _, name := range names {
		found := false
		for _, e := range fields {
			if e.Key == name {
				found = true
				break
			}
		}
		if !found {
			return Invalid(name, "required")
		}
	}
	return nil
}

// RequireDoc is Require for a document read back from storage.
func RequireDoc(doc bson.M, names ...string) error {
	for _, name := range names {
		if _, ok := doc[name]; !ok {
			return Invalid(name, "required")
		}
	}
	return nil
}

var errEmptyUpdate = Invalid("", "no updatable fields supplied")

func nonEmpty(fields bson.D) (bson.D, error) {
	if len(fields) == 0 {
		return nil, errEmptyUpdate
	}
	return fields, nil
}

func isEmptyUpdate(err error) bool {
	return err == errEmptyUpdate
}
