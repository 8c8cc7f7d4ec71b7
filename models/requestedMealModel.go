package models

const (
	StatusPending   = "pending"
	StatusDelivered = "delivered"
)

type RequestedMeal struct {
	BaseEntity `bson:",inline"`
	MealID     string `bson:"mealId" json:"mealId" validate:"required"`
	Title      string `bson:"title" json:"title" validate:"required"`
	Email      string `bson:"email" json:"email" validate:"required,email"`
	Name       string `bson:"name,omitempty" json:"name,omitempty"`
	Status     string `bson:"status" json:"status"`
}
