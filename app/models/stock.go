package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location is a warehouse or shop holding stock.
type Location struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name"          json:"name"`
	Address   string             `bson:"address"       json:"address"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"     json:"updatedAt"`
}

// Stock is a ledger row: quantity of a product, optionally a specific
// variant, at a location.
type Stock struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Product   primitive.ObjectID  `bson:"product"       json:"product"`
	Variant   *primitive.ObjectID `bson:"variant"       json:"variant"`
	Location  primitive.ObjectID  `bson:"location"      json:"location"`
	Quantity  int                 `bson:"quantity"      json:"quantity"`
	CreatedAt time.Time           `bson:"createdAt"     json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt"     json:"updatedAt"`
}

// ProductRef and VariantRef are references expanded for display.
type ProductRef struct {
	ID    primitive.ObjectID `json:"_id"`
	Title string             `json:"title"`
}

type VariantRef struct {
	ID   primitive.ObjectID `json:"_id"`
	Name string             `json:"name"`
}

// StockEntry is a ledger row with product title and variant name expanded.
type StockEntry struct {
	ID        primitive.ObjectID `json:"_id"`
	Product   ProductRef         `json:"product"`
	Variant   *VariantRef        `json:"variant"`
	Location  primitive.ObjectID `json:"location"`
	Quantity  int                `json:"quantity"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
