package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/apperr"
)

type StockInput struct {
	Product  string `json:"product"  validate:"required,objectid"`
	Variant  string `json:"variant"  validate:"omitempty,objectid"`
	Location string `json:"location" validate:"required,objectid"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

// StockService writes the ledger. A row is a single insert; the product and
// variant counters are not touched.
type StockService struct {
	repos *repositories.Set
}

func NewStockService(repos *repositories.Set) *StockService {
	return &StockService{repos: repos}
}

// Create checks the references and inserts a single ledger row. There is no
// unit of work: a product deleted between the checks and the insert leaves
// an orphan row, which is accepted since product and variant counters are
// not touched here.
func (s *StockService) Create(ctx context.Context, in StockInput) (*models.Stock, error) {
	pid, _ := primitive.ObjectIDFromHex(in.Product)
	if _, err := s.repos.Products.FindByID(ctx, pid); err != nil {
		return nil, notFound(err, "Product not found")
	}

	variant := optionalID(in.Variant)
	if variant != nil {
		v, err := s.repos.Variants.FindByID(ctx, *variant)
		if err != nil {
			return nil, notFound(err, "Variant not found")
		}
		if v.Product != pid {
			return nil, apperr.Validation("", map[string]string{
				"variant": "The variant does not belong to the product.",
			})
		}
	}

	lid, _ := primitive.ObjectIDFromHex(in.Location)
	if _, err := s.repos.Locations.FindByID(ctx, lid); err != nil {
		return nil, notFound(err, "Location not found")
	}

	row := &models.Stock{Product: pid, Variant: variant, Location: lid, Quantity: in.Quantity}
	if err := s.repos.Stocks.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// List returns ledger rows with product title and variant name expanded.
func (s *StockService) List(ctx context.Context, q repositories.StockQuery) ([]models.StockEntry, error) {
	rows, err := s.repos.Stocks.List(ctx, q)
	if err != nil {
		return nil, err
	}

	var variantIDs []primitive.ObjectID
	for _, r := range rows {
		if r.Variant != nil {
			variantIDs = append(variantIDs, *r.Variant)
		}
	}
	variants, err := s.repos.Variants.FindByIDs(ctx, variantIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[primitive.ObjectID]string, len(variants))
	for _, v := range variants {
		names[v.ID] = v.Name
	}

	titles := map[primitive.ObjectID]string{}
	out := make([]models.StockEntry, len(rows))
	for i, r := range rows {
		title, seen := titles[r.Product]
		if !seen {
			p, err := s.repos.Products.FindByID(ctx, r.Product)
			if err != nil && !repositories.IsNotFound(err) {
				return nil, err
			}
			if p != nil {
				title = p.Title
			}
			titles[r.Product] = title
		}

		e := models.StockEntry{
			ID:        r.ID,
			Product:   models.ProductRef{ID: r.Product, Title: title},
			Location:  r.Location,
			Quantity:  r.Quantity,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		}
		if r.Variant != nil {
			e.Variant = &models.VariantRef{ID: *r.Variant, Name: names[*r.Variant]}
		}
		out[i] = e
	}
	return out, nil
}
