package services_test

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/apperr"
)

func TestCreateCategoryWithMissingParent(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Categories.Create(f.ctx, services.CategoryInput{
		Name: "Shoes", Parent: primitive.NewObjectID().Hex(),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.Code(err))
	assert.Equal(t, "Parent category does not exist", apperr.From(err).Message)

	list, err := f.svc.Categories.List(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCategorySelfParentIsRejected(t *testing.T) {
	f := newFixture(t)
	c := f.category(t, "Shoes", nil)

	_, err := f.svc.Categories.Update(f.ctx, c.ID, services.CategoryInput{Name: "Shoes", Parent: c.ID.Hex()})
	assert.Equal(t, http.StatusBadRequest, apperr.Code(err))
	assert.Equal(t, "Category cannot be parent of itself", apperr.From(err).Message)
}

func TestCategoryCycleIsRejected(t *testing.T) {
	f := newFixture(t)
	a := f.category(t, "A", nil)
	b := f.category(t, "B", a)
	c := f.category(t, "C", b)

	_, err := f.svc.Categories.Update(f.ctx, a.ID, services.CategoryInput{Name: "A", Parent: c.ID.Hex()})
	assert.Equal(t, http.StatusBadRequest, apperr.Code(err))

	stored, err := f.repos.Categories.FindByID(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Parent)
}

func TestCategoryReparent(t *testing.T) {
	f := newFixture(t)
	a := f.category(t, "A", nil)
	b := f.category(t, "B", nil)

	updated, err := f.svc.Categories.Update(f.ctx, b.ID, services.CategoryInput{Name: "B2", Parent: a.ID.Hex()})
	require.NoError(t, err)
	require.NotNil(t, updated.Parent)
	assert.Equal(t, a.ID, *updated.Parent)
	assert.Equal(t, "B2", updated.Name)
}

func TestConcurrentReparentCannotFormCycle(t *testing.T) {
	f := newFixture(t)
	a := f.category(t, "A", nil)
	b := f.category(t, "B", nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	moves := [][2]*models.Category{{a, b}, {b, a}}
	for i, m := range moves {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.svc.Categories.Update(f.ctx, m[0].ID, services.CategoryInput{
				Name: m[0].Name, Parent: m[1].ID.Hex(),
			})
		}()
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
			assert.Equal(t, http.StatusBadRequest, apperr.Code(err))
		}
	}
	assert.Equal(t, 1, failed)

	storedA, err := f.repos.Categories.FindByID(f.ctx, a.ID)
	require.NoError(t, err)
	storedB, err := f.repos.Categories.FindByID(f.ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, storedA.Parent != nil && storedB.Parent != nil, "A and B are parents of each other")
}

func TestCreateChildRacingParentDelete(t *testing.T) {
	f := newFixture(t)
	parent := f.category(t, "Clothing", nil)

	var wg sync.WaitGroup
	var createErr, deleteErr error
	var child *models.Category
	wg.Add(2)
	go func() {
		defer wg.Done()
		child, createErr = f.svc.Categories.Create(f.ctx, services.CategoryInput{Name: "Shirts", Parent: parent.ID.Hex()})
	}()
	go func() {
		defer wg.Done()
		deleteErr = f.svc.Categories.Delete(f.ctx, parent.ID)
	}()
	wg.Wait()

	if createErr == nil {
		// The child landed first, so the parent must have survived.
		assert.Equal(t, http.StatusConflict, apperr.Code(deleteErr))
		_, err := f.repos.Categories.FindByID(f.ctx, parent.ID)
		require.NoError(t, err)
		require.NotNil(t, child.Parent)
		return
	}
	assert.Equal(t, http.StatusNotFound, apperr.Code(createErr))
	require.NoError(t, deleteErr)
	all, err := f.svc.Categories.List(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDeleteCategoryBlockedByChildren(t *testing.T) {
	f := newFixture(t)
	parent := f.category(t, "Clothing", nil)
	child := f.category(t, "Shirts", parent)

	err := f.svc.Categories.Delete(f.ctx, parent.ID)
	assert.Equal(t, http.StatusConflict, apperr.Code(err))

	require.NoError(t, f.svc.Categories.Delete(f.ctx, child.ID))
	require.NoError(t, f.svc.Categories.Delete(f.ctx, parent.ID))

	err = f.svc.Categories.Delete(f.ctx, parent.ID)
	assert.Equal(t, http.StatusNotFound, apperr.Code(err))
}

func TestDeleteCategoryBlockedByProducts(t *testing.T) {
	f := newFixture(t)
	c := f.category(t, "Shoes", nil)
	_, err := f.svc.Products.Create(f.ctx, services.ProductInput{Title: "Runner", Category: c.ID.Hex()})
	require.NoError(t, err)

	err = f.svc.Categories.Delete(f.ctx, c.ID)
	assert.Equal(t, http.StatusConflict, apperr.Code(err))

	_, err = f.repos.Categories.FindByID(f.ctx, c.ID)
	assert.NoError(t, err)
}

func TestListCategoriesExpandsOneLevel(t *testing.T) {
	f := newFixture(t)
	root := f.category(t, "Clothing", nil)
	child := f.category(t, "Shirts", root)
	f.category(t, "Polo", child)
	f.category(t, "Shoes", nil)

	list, err := f.svc.Categories.List(f.ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Clothing", list[0].Name)
	require.Len(t, list[0].Children, 1)
	assert.Equal(t, "Shirts", list[0].Children[0].Name)
	assert.Empty(t, list[1].Children)

	node, err := f.svc.Categories.Get(f.ctx, child.ID)
	require.NoError(t, err)
	require.Len(t, node.Children, 1)
	assert.Equal(t, "Polo", node.Children[0].Name)
}
