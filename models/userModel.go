package models

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	BaseEntity `bson:",inline"`
	Name       string `bson:"name,omitempty" json:"name,omitempty"`
	Email      string `bson:"email" json:"email"`
	Image      string `bson:"image,omitempty" json:"image,omitempty"`
	Role       string `bson:"role,omitempty" json:"role,omitempty"`
	Badge      string `bson:"badge,omitempty" json:"badge,omitempty"`
	Password   string `bson:"password,omitempty" json:"-"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
