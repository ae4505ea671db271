package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
)

// VariantInput adds one variant to an existing product.
type VariantInput struct {
	Product     string   `json:"product"     validate:"required,objectid"`
	Name        string   `json:"name"        validate:"omitempty,max=200"`
	Options     []string `json:"options"     validate:"required,min=1,dive,objectid"`
	Price       float64  `json:"price"       validate:"gte=0"`
	Stock       int      `json:"stock"       validate:"gte=0"`
	Images      []string `json:"images"      validate:"omitempty,max=20"`
	IsAvailable *bool    `json:"isAvailable"`
	Location    string   `json:"location"    validate:"omitempty,objectid"`
}

func (in VariantInput) spec() VariantSpec {
	return VariantSpec{
		Name:        in.Name,
		Options:     in.Options,
		Price:       in.Price,
		Stock:       in.Stock,
		Images:      in.Images,
		IsAvailable: in.IsAvailable,
		Location:    in.Location,
	}
}

type VariantService struct {
	repos *repositories.Set
}

func NewVariantService(repos *repositories.Set) *VariantService {
	return &VariantService{repos: repos}
}

// List returns all variants, or those of product, with the product title.
func (s *VariantService) List(ctx context.Context, product *primitive.ObjectID) ([]models.VariantEntry, error) {
	variants, err := s.repos.Variants.List(ctx, product)
	if err != nil {
		return nil, err
	}

	titles := map[primitive.ObjectID]string{}
	out := make([]models.VariantEntry, len(variants))
	for i, v := range variants {
		title, seen := titles[v.Product]
		if !seen {
			p, err := s.repos.Products.FindByID(ctx, v.Product)
			if err != nil && !repositories.IsNotFound(err) {
				return nil, err
			}
			if p != nil {
				title = p.Title
			}
			titles[v.Product] = title
		}
		out[i] = models.VariantEntry{Variant: v, Product: models.ProductRef{ID: v.Product, Title: title}}
	}
	return out, nil
}

// Create inserts the variant, its stock row and the product's reference to
// it as one unit of work.
func (s *VariantService) Create(ctx context.Context, in VariantInput) (*models.Variant, error) {
	pid, _ := primitive.ObjectIDFromHex(in.Product)
	p, err := s.repos.Products.FindByID(ctx, pid)
	if err != nil {
		return nil, notFound(err, "Product not found")
	}

	optionTier, err := tierOptions(ctx, s.repos, p.TierVariations)
	if err != nil {
		return nil, err
	}
	spec := in.spec()
	noPrefix := func(int) string { return "" }
	if err := checkVariantSpecs(ctx, s.repos, optionTier, []VariantSpec{spec}, noPrefix); err != nil {
		return nil, err
	}

	var created *models.Variant
	err = transact(ctx, s.repos.Tx, "variant.create", func(ctx context.Context) error {
		v, err := createVariant(ctx, s.repos, pid, spec)
		if err != nil {
			return err
		}
		if err := s.repos.Products.AddVariant(ctx, pid, v.ID, v.Stock); err != nil {
			return err
		}
		created = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Delete removes the variant, its stock rows and the product's reference to
// it as one unit of work.
func (s *VariantService) Delete(ctx context.Context, id primitive.ObjectID) error {
	v, err := s.repos.Variants.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "Variant not found")
	}
	return transact(ctx, s.repos.Tx, "variant.delete", func(ctx context.Context) error {
		if _, err := s.repos.Stocks.DeleteByVariant(ctx, id); err != nil {
			return err
		}
		if err := s.repos.Variants.Delete(ctx, id); err != nil {
			return err
		}
		err := s.repos.Products.RemoveVariant(ctx, v.Product, id, v.Stock)
		if repositories.IsNotFound(err) {
			return nil
		}
		return err
	})
}
