package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// TierOption is one value of a tier ("L", "Red"). Options are never
// modified once created.
type TierOption struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Value       string             `bson:"value"         json:"value"`
	IsAvailable bool               `bson:"isAvailable"   json:"isAvailable"`
}

// Tier is a named axis of variation owning an ordered list of options.
type Tier struct {
	ID      primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name    string               `bson:"name"          json:"name"`
	Options []primitive.ObjectID `bson:"options"       json:"options"`
}

// TierDetail is a tier with its options expanded, in tier order.
type TierDetail struct {
	ID      primitive.ObjectID `json:"_id"`
	Name    string             `json:"name"`
	Options []TierOption       `json:"options"`
}
