package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a node of the category tree. Parent is nil for roots.
type Category struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Name        string              `bson:"name"          json:"name"`
	Description string              `bson:"description"   json:"description"`
	Image       string              `bson:"image"         json:"image"`
	Parent      *primitive.ObjectID `bson:"parent"        json:"parent"`
	CreatedAt   time.Time           `bson:"createdAt"     json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt"     json:"updatedAt"`
}

// CategoryNode is a category with its direct children expanded.
type CategoryNode struct {
	Category `bson:",inline"`
	Children []Category `bson:"children" json:"children"`
}
