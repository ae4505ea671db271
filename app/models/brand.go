package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultBrandDescription is stored when a brand is created without one.
const DefaultBrandDescription = "No description."

// Brand names are unique and stored lower-case.
type Brand struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name"          json:"name"`
	Logo        string             `bson:"logo"          json:"logo"`
	Description string             `bson:"description"   json:"description"`
	CreatedAt   time.Time          `bson:"createdAt"     json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"     json:"updatedAt"`
}
