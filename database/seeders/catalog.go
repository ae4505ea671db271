package seeders

import (
	"context"

	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/app/services"
)

func init() {
	Register("catalog", SeedCatalog)
}

// SeedCatalog writes a small demo catalog into an empty store: two tiers,
// a two-level category tree, a brand, a location and one product.
func SeedCatalog(ctx context.Context, svc *services.Services, repos *repositories.Set) error {
	existing, err := repos.Tiers.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	color, err := svc.Tiers.Create(ctx, services.TierInput{
		Name:    "Color",
		Options: []services.TierOptionInput{{Value: "Black"}, {Value: "White"}},
	})
	if err != nil {
		return err
	}
	size, err := svc.Tiers.Create(ctx, services.TierInput{
		Name:    "Size",
		Options: []services.TierOptionInput{{Value: "M"}, {Value: "L"}},
	})
	if err != nil {
		return err
	}

	clothing, err := svc.Categories.Create(ctx, services.CategoryInput{Name: "Clothing"})
	if err != nil {
		return err
	}
	shirts, err := svc.Categories.Create(ctx, services.CategoryInput{Name: "T-Shirts", Parent: clothing.ID.Hex()})
	if err != nil {
		return err
	}
	brand, err := svc.Brands.Create(ctx, services.BrandInput{Name: "Acme"})
	if err != nil {
		return err
	}
	warehouse, err := svc.Locations.Create(ctx, services.LocationInput{Name: "Main warehouse", Address: "1 Depot Street"})
	if err != nil {
		return err
	}

	var variants []services.VariantSpec
	for _, c := range color.Options {
		for _, s := range size.Options {
			variants = append(variants, services.VariantSpec{
				Options:  []string{c.ID.Hex(), s.ID.Hex()},
				Price:    19.99,
				Stock:    10,
				Location: warehouse.ID.Hex(),
			})
		}
	}
	_, err = svc.Products.Create(ctx, services.ProductInput{
		Title:          "Classic tee",
		Description:    "Plain cotton t-shirt.",
		Brand:          brand.ID.Hex(),
		Category:       shirts.ID.Hex(),
		TierVariations: []string{color.ID.Hex(), size.ID.Hex()},
		Variants:       variants,
	})
	return err
}
