package models

type Meal struct {
	BaseEntity  `bson:",inline"`
	Title       string   `bson:"title" json:"title"`
	Category    string   `bson:"category" json:"category"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Ingredients []string `bson:"ingredients,omitempty" json:"ingredients,omitempty"`
	Price       int64    `bson:"price" json:"price"`
	Image       string   `bson:"image,omitempty" json:"image,omitempty"`
	Like        int      `bson:"like" json:"like"`
	ReviewCount int      `bson:"reviewCount" json:"reviewCount"`
	AdminName   string   `bson:"adminName,omitempty" json:"adminName,omitempty"`
	AdminEmail  string   `bson:"adminEmail,omitempty" json:"adminEmail,omitempty"`
}

// UpcomingMeal is a meal that has been planned but not yet published.
type UpcomingMeal struct {
	Meal      `bson:",inline"`
	ServeDate string `bson:"serveDate,omitempty" json:"serveDate,omitempty"`
}
