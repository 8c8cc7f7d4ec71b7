package models

// Payment is the record a client stores after the provider confirmed a
// payment intent. It is append-only.
type Payment struct {
	BaseEntity    `bson:",inline"`
	Email         string            `bson:"email" json:"email" validate:"required,email"`
	Name          string            `bson:"name,omitempty" json:"name,omitempty"`
	Price         float64           `bson:"price" json:"price" validate:"gt=0"`
	TransactionID string            `bson:"transactionId" json:"transactionId" validate:"required"`
	PackageName   string            `bson:"packageName,omitempty" json:"packageName,omitempty"`
	Metadata      map[string]string `bson:"metadata,omitempty" json:"metadata,omitempty"`
}
