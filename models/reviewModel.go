package models

type Review struct {
	BaseEntity `bson:",inline"`
	MealID     string `bson:"mealId" json:"mealId" validate:"required"`
	MealTitle  string `bson:"mealTitle,omitempty" json:"mealTitle,omitempty"`
	Email      string `bson:"email" json:"email" validate:"required,email"`
	Name       string `bson:"name,omitempty" json:"name,omitempty"`
	Review     string `bson:"review" json:"review" validate:"required,max=2000"`
	Rating     int    `bson:"rating" json:"rating" validate:"min=0,max=5"`
}
