package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attribute is a free-form name/value pair shown on the product page.
type Attribute struct {
	Name  string `bson:"name"  json:"name"`
	Value string `bson:"value" json:"value"`
}

// Product is the header record of the product aggregate. Variants holds the
// ids of the variants it owns, in creation order. Stock is the sum of its
// variants' stock.
type Product struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty"    json:"_id"`
	Title          string               `bson:"title"            json:"title"`
	Thumbnail      string               `bson:"thumbnail"        json:"thumbnail"`
	Description    string               `bson:"description"      json:"description"`
	Images         []string             `bson:"images"           json:"images"`
	Like           int                  `bson:"like"             json:"like"`
	Stock          int                  `bson:"stock"            json:"stock"`
	Sold           int                  `bson:"sold"             json:"sold"`
	IsAvailable    bool                 `bson:"isAvailable"      json:"isAvailable"`
	Brand          *primitive.ObjectID  `bson:"brand"            json:"brand"`
	Category       *primitive.ObjectID  `bson:"category"         json:"category"`
	TierVariations []primitive.ObjectID `bson:"tier_variations"  json:"tier_variations"`
	Variants       []primitive.ObjectID `bson:"product_variants" json:"product_variants"`
	TotalRating    float64              `bson:"totalRating"      json:"totalRating"`
	TotalReviews   int                  `bson:"totalReviews"     json:"totalReviews"`
	Attributes     []Attribute          `bson:"attributes"       json:"attributes"`
	CreatedAt      time.Time            `bson:"createdAt"        json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt"        json:"updatedAt"`
}

// Variant is one purchasable configuration of a product. Combination is the
// option values joined with " - ", copied at creation time.
type Variant struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Product     primitive.ObjectID   `bson:"product"       json:"product"`
	Name        string               `bson:"name"          json:"name"`
	Combination string               `bson:"combination"   json:"combination"`
	Options     []primitive.ObjectID `bson:"options"       json:"options"`
	Price       float64              `bson:"price"         json:"price"`
	Stock       int                  `bson:"stock"         json:"stock"`
	Images      []string             `bson:"images"        json:"images"`
	IsAvailable bool                 `bson:"isAvailable"   json:"isAvailable"`
	CreatedAt   time.Time            `bson:"createdAt"     json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"     json:"updatedAt"`
}

// ProductDetail is a product with its category and variants expanded.
// The outer fields shadow the id-only fields of the embedded Product in
// JSON output.
type ProductDetail struct {
	Product
	Category *Category `json:"category"`
	Variants []Variant `json:"product_variants"`
}

// VariantEntry is a variant with its product title expanded. The outer
// Product field shadows the id-only field in JSON output.
type VariantEntry struct {
	Variant
	Product ProductRef `json:"product"`
}
