package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/app/repositories/memory"
)

func TestTransactionRollsBackEveryCollection(t *testing.T) {
	repos := memory.NewSet()
	ctx := context.Background()

	boom := errors.New("boom")
	err := repos.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		p := &models.Product{Title: "Tee"}
		require.NoError(t, repos.Products.Create(ctx, p))
		require.NoError(t, repos.Variants.Create(ctx, &models.Variant{Product: p.ID, Name: "Red"}))
		require.NoError(t, repos.Stocks.Create(ctx, &models.Stock{Product: p.ID, Quantity: 3}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	products, total, err := repos.Products.List(ctx, repositories.ProductQuery{Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, products)

	variants, err := repos.Variants.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, variants)

	stocks, err := repos.Stocks.List(ctx, repositories.StockQuery{})
	require.NoError(t, err)
	assert.Empty(t, stocks)
}

func TestTransactionCommits(t *testing.T) {
	repos := memory.NewSet()
	ctx := context.Background()

	var p models.Product
	err := repos.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		p = models.Product{Title: "Mug"}
		return repos.Products.Create(ctx, &p)
	})
	require.NoError(t, err)

	got, err := repos.Products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mug", got.Title)
}

func TestUserSaveVersionConflict(t *testing.T) {
	repos := memory.NewSet()
	ctx := context.Background()

	u := &models.User{Email: "Jane@Example.com", Roles: []string{"user"}}
	require.NoError(t, repos.Users.Create(ctx, u))
	assert.Equal(t, "jane@example.com", u.Email)

	a, err := repos.Users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	b, err := repos.Users.FindByID(ctx, u.ID)
	require.NoError(t, err)

	a.FirstName = "A"
	require.NoError(t, repos.Users.Save(ctx, a))

	b.FirstName = "B"
	err = repos.Users.Save(ctx, b)
	assert.ErrorIs(t, err, repositories.ErrVersionConflict)

	stored, err := repos.Users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", stored.FirstName)
}

func TestDuplicateEmail(t *testing.T) {
	repos := memory.NewSet()
	ctx := context.Background()

	require.NoError(t, repos.Users.Create(ctx, &models.User{Email: "a@b.co"}))
	err := repos.Users.Create(ctx, &models.User{Email: "A@B.co"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
}

func TestReadsReturnCopies(t *testing.T) {
	repos := memory.NewSet()
	ctx := context.Background()

	p := &models.Product{Title: "Cap", Images: []string{"a.png"}}
	require.NoError(t, repos.Products.Create(ctx, p))

	got, err := repos.Products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	got.Images[0] = "mutated.png"

	again, err := repos.Products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.png", again.Images[0])
}

func TestNotFoundIsWrapped(t *testing.T) {
	repos := memory.NewSet()
	_, err := repos.Categories.FindByID(context.Background(), [12]byte{1})
	assert.True(t, repositories.IsNotFound(err))
}
