package services_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/apperr"
)

func TestCreateStockForMissingProduct(t *testing.T) {
	f := newFixture(t)
	loc := f.location(t)

	_, err := f.svc.Stocks.Create(f.ctx, services.StockInput{
		Product: primitive.NewObjectID().Hex(), Location: loc.ID.Hex(), Quantity: 5,
	})
	assert.Equal(t, http.StatusNotFound, apperr.Code(err))
	assert.Equal(t, "Product not found", apperr.From(err).Message)

	rows, err := f.svc.Stocks.List(f.ctx, repositories.StockQuery{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCreateStockChecksVariant(t *testing.T) {
	f := newFixture(t)
	color := f.tier(t, "Color", "Black")
	loc := f.location(t)
	a, err := f.svc.Products.Create(f.ctx, services.ProductInput{
		Title:    "A",
		Variants: []services.VariantSpec{{Options: []string{option(t, color, "Black")}}},
	})
	require.NoError(t, err)
	b, err := f.svc.Products.Create(f.ctx, services.ProductInput{Title: "B"})
	require.NoError(t, err)

	_, err = f.svc.Stocks.Create(f.ctx, services.StockInput{
		Product: a.ID.Hex(), Variant: primitive.NewObjectID().Hex(), Location: loc.ID.Hex(),
	})
	assert.Equal(t, http.StatusNotFound, apperr.Code(err))

	_, err = f.svc.Stocks.Create(f.ctx, services.StockInput{
		Product: b.ID.Hex(), Variant: a.Variants[0].ID.Hex(), Location: loc.ID.Hex(),
	})
	assert.Equal(t, http.StatusBadRequest, apperr.Code(err))

	_, err = f.svc.Stocks.Create(f.ctx, services.StockInput{
		Product: a.ID.Hex(), Location: primitive.NewObjectID().Hex(),
	})
	assert.Equal(t, http.StatusNotFound, apperr.Code(err))
}

func TestListStocksExpandsNames(t *testing.T) {
	f := newFixture(t)
	color := f.tier(t, "Color", "Black")
	loc := f.location(t)
	p, err := f.svc.Products.Create(f.ctx, services.ProductInput{
		Title:    "Tee",
		Variants: []services.VariantSpec{{Options: []string{option(t, color, "Black")}}},
	})
	require.NoError(t, err)

	_, err = f.svc.Stocks.Create(f.ctx, services.StockInput{
		Product: p.ID.Hex(), Variant: p.Variants[0].ID.Hex(), Location: loc.ID.Hex(), Quantity: 9,
	})
	require.NoError(t, err)
	_, err = f.svc.Stocks.Create(f.ctx, services.StockInput{Product: p.ID.Hex(), Location: loc.ID.Hex(), Quantity: 1})
	require.NoError(t, err)

	vid := p.Variants[0].ID
	rows, err := f.svc.Stocks.List(f.ctx, repositories.StockQuery{Variant: &vid})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Tee", rows[0].Product.Title)
	require.NotNil(t, rows[0].Variant)
	assert.Equal(t, "Black", rows[0].Variant.Name)
	assert.Equal(t, 9, rows[0].Quantity)

	rows, err = f.svc.Stocks.List(f.ctx, repositories.StockQuery{Product: &p.ID})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestDeleteLocationInUse(t *testing.T) {
	f := newFixture(t)
	loc := f.location(t)
	p, err := f.svc.Products.Create(f.ctx, services.ProductInput{Title: "Tee"})
	require.NoError(t, err)
	_, err = f.svc.Stocks.Create(f.ctx, services.StockInput{Product: p.ID.Hex(), Location: loc.ID.Hex(), Quantity: 1})
	require.NoError(t, err)

	err = f.svc.Locations.Delete(f.ctx, loc.ID)
	assert.Equal(t, http.StatusConflict, apperr.Code(err))

	items, page, err := f.svc.Locations.List(f.ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(1), page.Total)
}

func TestVariantLifecycle(t *testing.T) {
	f := newFixture(t)
	color := f.tier(t, "Color", "Black", "White")
	loc := f.location(t)
	p, err := f.svc.Products.Create(f.ctx, services.ProductInput{
		Title:          "Tee",
		TierVariations: []string{color.ID.Hex()},
		Variants:       []services.VariantSpec{{Options: []string{option(t, color, "Black")}, Stock: 2}},
	})
	require.NoError(t, err)

	v, err := f.svc.Variants.Create(f.ctx, services.VariantInput{
		Product: p.ID.Hex(), Options: []string{option(t, color, "White")}, Stock: 5, Location: loc.ID.Hex(),
	})
	require.NoError(t, err)
	assert.Equal(t, "White", v.Combination)

	got, err := f.svc.Products.Get(f.ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Variants, 2)
	assert.Equal(t, 7, got.Stock)

	entries, err := f.svc.Variants.List(f.ctx, &p.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Tee", entries[0].Product.Title)

	require.NoError(t, f.svc.Variants.Delete(f.ctx, v.ID))
	got, err = f.svc.Products.Get(f.ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Variants, 1)
	assert.Equal(t, 2, got.Stock)

	rows, err := f.repos.Stocks.List(f.ctx, repositories.StockQuery{Variant: &v.ID})
	require.NoError(t, err)
	assert.Empty(t, rows)

	err = f.svc.Variants.Delete(f.ctx, v.ID)
	assert.Equal(t, http.StatusNotFound, apperr.Code(err))
}

func TestCreateVariantRejectsForeignOption(t *testing.T) {
	f := newFixture(t)
	color := f.tier(t, "Color", "Black")
	size := f.tier(t, "Size", "L")
	p, err := f.svc.Products.Create(f.ctx, services.ProductInput{Title: "Tee", TierVariations: []string{color.ID.Hex()}})
	require.NoError(t, err)

	_, err = f.svc.Variants.Create(f.ctx, services.VariantInput{Product: p.ID.Hex(), Options: []string{option(t, size, "L")}})
	require.Error(t, err)
	assert.Contains(t, apperr.From(err).Fields, "options[0]")
}
