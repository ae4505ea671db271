package services

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/apperr"
	"github.com/shashiranjanraj/catalog/pkg/response"
)

// CombinationSeparator joins option values into a variant's combination.
const CombinationSeparator = " - "

// VariantSpec describes one variant to create. Options are tier option ids,
// one per tier, in display order. With a Location, a stock ledger row of
// Stock units is written for the variant.
type VariantSpec struct {
	Name        string   `json:"name"        validate:"omitempty,max=200"`
	Options     []string `json:"options"     validate:"required,min=1,dive,objectid"`
	Price       float64  `json:"price"       validate:"gte=0"`
	Stock       int      `json:"stock"       validate:"gte=0"`
	Images      []string `json:"images"      validate:"omitempty,max=20"`
	IsAvailable *bool    `json:"isAvailable"`
	Location    string   `json:"location"    validate:"omitempty,objectid"`
}

type ProductInput struct {
	Title          string             `json:"title"           validate:"required,max=200"`
	Thumbnail      string             `json:"thumbnail"       validate:"omitempty,max=500"`
	Description    string             `json:"description"     validate:"omitempty,max=2000"`
	Images         []string           `json:"images"          validate:"omitempty,max=20"`
	IsAvailable    *bool              `json:"isAvailable"`
	Brand          string             `json:"brand"           validate:"omitempty,objectid"`
	Category       string             `json:"category"        validate:"omitempty,objectid"`
	TierVariations []string           `json:"tier_variations" validate:"omitempty,max=5,dive,objectid"`
	Attributes     []models.Attribute `json:"attributes"      validate:"omitempty,max=50"`
	Variants       []VariantSpec      `json:"product_variants" validate:"omitempty,max=100,dive"`
}

// ProductListQuery pages the listing. Zero values take the defaults.
type ProductListQuery struct {
	Category *primitive.ObjectID
	Page     int
	Limit    int
}

type ProductService struct {
	repos *repositories.Set
}

func NewProductService(repos *repositories.Set) *ProductService {
	return &ProductService{repos: repos}
}

// refs are the references of a product input resolved before any write.
type refs struct {
	category *primitive.ObjectID
	brand    *primitive.ObjectID
	tiers    []primitive.ObjectID
	// optionTier maps each option of the product's tiers to its tier.
	optionTier map[primitive.ObjectID]primitive.ObjectID
}

// Create writes the product header, its variants and their stock rows as
// one unit of work. References are checked first; a failure after the unit
// has opened rolls everything back and is reported as a generic failure.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.ProductDetail, error) {
	r, err := s.resolve(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := checkVariantSpecs(ctx, s.repos, r.optionTier, in.Variants, variantField); err != nil {
		return nil, err
	}

	var id primitive.ObjectID
	err = transact(ctx, s.repos.Tx, "product.create", func(ctx context.Context) error {
		p := &models.Product{
			Title:          in.Title,
			Thumbnail:      in.Thumbnail,
			Description:    in.Description,
			Images:         in.Images,
			IsAvailable:    boolOr(in.IsAvailable, true),
			Brand:          r.brand,
			Category:       r.category,
			TierVariations: r.tiers,
			Attributes:     in.Attributes,
			Variants:       []primitive.ObjectID{},
		}
		if err := s.repos.Products.Create(ctx, p); err != nil {
			return err
		}

		variants := make([]primitive.ObjectID, 0, len(in.Variants))
		total := 0
		for i, spec := range in.Variants {
			v, err := createVariant(ctx, s.repos, p.ID, spec)
			if err != nil {
				return fmt.Errorf("variant %d: %w", i, err)
			}
			variants = append(variants, v.ID)
			total += v.Stock
		}

		if err := s.repos.Products.SetVariants(ctx, p.ID, variants, total); err != nil {
			return err
		}
		id = p.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// createVariant resolves the options of spec, inserts the variant and, when
// spec names a location, its stock row. Errors are plain so that callers
// inside a unit of work collapse them.
func createVariant(ctx context.Context, repos *repositories.Set, product primitive.ObjectID, spec VariantSpec) (*models.Variant, error) {
	ids := parseIDs(spec.Options)
	opts, err := repos.Tiers.FindOptionsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.TierOption, len(opts))
	for _, o := range opts {
		byID[o.ID] = o
	}

	values := make([]string, len(ids))
	for i, oid := range ids {
		o, ok := byID[oid]
		if !ok {
			return nil, fmt.Errorf("tier option %s: %w", oid.Hex(), repositories.ErrNotFound)
		}
		values[i] = o.Value
	}
	combination := strings.Join(values, CombinationSeparator)

	name := spec.Name
	if name == "" {
		name = combination
	}
	v := &models.Variant{
		Product:     product,
		Name:        name,
		Combination: combination,
		Options:     ids,
		Price:       spec.Price,
		Stock:       spec.Stock,
		Images:      spec.Images,
		IsAvailable: boolOr(spec.IsAvailable, true),
	}
	if err := repos.Variants.Create(ctx, v); err != nil {
		return nil, err
	}

	if loc := optionalID(spec.Location); loc != nil {
		vid := v.ID
		row := &models.Stock{Product: product, Variant: &vid, Location: *loc, Quantity: spec.Stock}
		if err := repos.Stocks.Create(ctx, row); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// resolve checks the category, brand and tier references of in.
func (s *ProductService) resolve(ctx context.Context, in ProductInput) (*refs, error) {
	r := &refs{
		category: optionalID(in.Category),
		brand:    optionalID(in.Brand),
		tiers:    parseIDs(in.TierVariations),
	}
	if r.category != nil {
		if _, err := s.repos.Categories.FindByID(ctx, *r.category); err != nil {
			return nil, notFound(err, "Category not found")
		}
	}
	if r.brand != nil {
		if _, err := s.repos.Brands.FindByID(ctx, *r.brand); err != nil {
			return nil, notFound(err, "Brand not found")
		}
	}
	optionTier, err := tierOptions(ctx, s.repos, r.tiers)
	if err != nil {
		return nil, err
	}
	r.optionTier = optionTier
	return r, nil
}

// tierOptions loads tiers and maps each of their options to its tier.
func tierOptions(ctx context.Context, repos *repositories.Set, tierIDs []primitive.ObjectID) (map[primitive.ObjectID]primitive.ObjectID, error) {
	if len(tierIDs) == 0 {
		return nil, nil
	}
	tiers, err := repos.Tiers.FindByIDs(ctx, tierIDs)
	if err != nil {
		return nil, err
	}
	found := make(map[primitive.ObjectID]bool, len(tiers))
	out := make(map[primitive.ObjectID]primitive.ObjectID)
	for _, t := range tiers {
		found[t.ID] = true
		for _, o := range t.Options {
			out[o] = t.ID
		}
	}
	for _, id := range tierIDs {
		if !found[id] {
			return nil, apperr.NotFound("Tier not found")
		}
	}
	return out, nil
}

func variantField(i int) string { return fmt.Sprintf("product_variants[%d].", i) }

// checkVariantSpecs validates variant references that can be checked
// without writing: locations must exist and, when the product declares
// tiers, every option must belong to one of them with at most one option per
// tier. prefix names the spec in field errors.
func checkVariantSpecs(ctx context.Context, repos *repositories.Set, optionTier map[primitive.ObjectID]primitive.ObjectID, specs []VariantSpec, prefix func(i int) string) error {
	var locations []primitive.ObjectID
	seenLoc := map[primitive.ObjectID]bool{}
	for _, spec := range specs {
		if loc := optionalID(spec.Location); loc != nil && !seenLoc[*loc] {
			seenLoc[*loc] = true
			locations = append(locations, *loc)
		}
	}
	if len(locations) > 0 {
		found, err := repos.Locations.FindByIDs(ctx, locations)
		if err != nil {
			return err
		}
		if len(found) != len(locations) {
			return apperr.NotFound("Location not found")
		}
	}

	if optionTier == nil {
		return nil
	}
	fields := map[string]string{}
	for i, spec := range specs {
		usedTier := map[primitive.ObjectID]bool{}
		for j, oid := range parseIDs(spec.Options) {
			key := fmt.Sprintf("%soptions[%d]", prefix(i), j)
			tier, ok := optionTier[oid]
			switch {
			case !ok:
				fields[key] = "The option does not belong to the product's tiers."
			case usedTier[tier]:
				fields[key] = "Only one option per tier may be selected."
			default:
				usedTier[tier] = true
			}
		}
	}
	if len(fields) > 0 {
		return apperr.Validation("", fields)
	}
	return nil
}

func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (*models.ProductDetail, error) {
	p, err := s.repos.Products.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Product not found")
	}
	details, err := s.expand(ctx, []models.Product{*p})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// List returns a page of products, newest first, with category and
// variants expanded.
func (s *ProductService) List(ctx context.Context, q ProductListQuery) ([]models.ProductDetail, response.Pagination, error) {
	page, limit := pageBounds(q.Page, q.Limit)
	items, total, err := s.repos.Products.List(ctx, repositories.ProductQuery{
		Category: q.Category,
		Skip:     int64((page - 1) * limit),
		Limit:    int64(limit),
	})
	if err != nil {
		return nil, response.Pagination{}, err
	}
	details, err := s.expand(ctx, items)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return details, response.NewPagination(page, limit, total), nil
}

// Update replaces the product's own fields. Variants are managed through
// the variant endpoints.
func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, in ProductInput) (*models.ProductDetail, error) {
	if len(in.Variants) > 0 {
		return nil, apperr.Validation("", map[string]string{
			"product_variants": "Variants cannot be replaced here; use the variant endpoints.",
		})
	}
	p, err := s.repos.Products.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Product not found")
	}
	r, err := s.resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	p.Title = in.Title
	p.Thumbnail = in.Thumbnail
	p.Description = in.Description
	p.Images = in.Images
	p.IsAvailable = boolOr(in.IsAvailable, p.IsAvailable)
	p.Brand = r.brand
	p.Category = r.category
	p.TierVariations = r.tiers
	p.Attributes = in.Attributes
	if err := s.repos.Products.Update(ctx, p); err != nil {
		return nil, notFound(err, "Product not found")
	}
	return s.Get(ctx, id)
}

// Delete removes the product with its variants and stock rows.
func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.repos.Products.FindByID(ctx, id); err != nil {
		return notFound(err, "Product not found")
	}
	return transact(ctx, s.repos.Tx, "product.delete", func(ctx context.Context) error {
		if _, err := s.repos.Stocks.DeleteByProduct(ctx, id); err != nil {
			return err
		}
		if _, err := s.repos.Variants.DeleteByProduct(ctx, id); err != nil {
			return err
		}
		return s.repos.Products.Delete(ctx, id)
	})
}

// expand resolves categories and variants for products, keeping the
// product's variant order.
func (s *ProductService) expand(ctx context.Context, products []models.Product) ([]models.ProductDetail, error) {
	var variantIDs []primitive.ObjectID
	for _, p := range products {
		variantIDs = append(variantIDs, p.Variants...)
	}
	variants, err := s.repos.Variants.FindByIDs(ctx, variantIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Variant, len(variants))
	for _, v := range variants {
		byID[v.ID] = v
	}

	categories := map[primitive.ObjectID]*models.Category{}
	out := make([]models.ProductDetail, len(products))
	for i, p := range products {
		d := models.ProductDetail{Product: p, Variants: make([]models.Variant, 0, len(p.Variants))}
		for _, vid := range p.Variants {
			if v, ok := byID[vid]; ok {
				d.Variants = append(d.Variants, v)
			}
		}

		if p.Category != nil {
			c, seen := categories[*p.Category]
			if !seen {
				c, err = s.repos.Categories.FindByID(ctx, *p.Category)
				if err != nil && !repositories.IsNotFound(err) {
					return nil, err
				}
				categories[*p.Category] = c
			}
			d.Category = c
		}
		out[i] = d
	}
	return out, nil
}
