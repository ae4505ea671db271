package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/apperr"
)

type CategoryInput struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Image       string `json:"image"       validate:"omitempty,max=500"`
	Parent      string `json:"parent"      validate:"omitempty,objectid"`
}

// CategoryService maintains the category tree. A parent must exist when it
// is assigned, and no category may become its own ancestor.
type CategoryService struct {
	repos *repositories.Set
}

func NewCategoryService(repos *repositories.Set) *CategoryService {
	return &CategoryService{repos: repos}
}

// Create checks the parent and inserts the category as one unit of work.
// The parent is touched so that a concurrent delete of it conflicts.
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	parent := optionalID(in.Parent)
	c := &models.Category{
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
		Parent:      parent,
	}
	err := transact(ctx, s.repos.Tx, "category.create", func(ctx context.Context) error {
		if parent != nil {
			if err := s.repos.Categories.Touch(ctx, *parent); err != nil {
				return notFound(err, "Parent category does not exist")
			}
		}
		return s.repos.Categories.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Update runs the ancestor walk and the write as one unit of work. Every
// category on the walk is touched, so two reparents that would close a cycle
// between them cannot both commit.
func (s *CategoryService) Update(ctx context.Context, id primitive.ObjectID, in CategoryInput) (*models.Category, error) {
	var updated *models.Category
	err := transact(ctx, s.repos.Tx, "category.update", func(ctx context.Context) error {
		c, err := s.repos.Categories.FindByID(ctx, id)
		if err != nil {
			return notFound(err, "Category not found")
		}

		parent := optionalID(in.Parent)
		if parent != nil {
			ancestors, err := s.checkParent(ctx, id, *parent)
			if err != nil {
				return err
			}
			for _, a := range ancestors {
				if err := s.repos.Categories.Touch(ctx, a); err != nil && !repositories.IsNotFound(err) {
					return err
				}
			}
		}

		c.Name = in.Name
		c.Description = in.Description
		c.Image = in.Image
		c.Parent = parent
		if err := s.repos.Categories.Update(ctx, c); err != nil {
			return notFound(err, "Category not found")
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// checkParent walks up from parent to the root and rejects the assignment
// when id appears on the way. It returns the categories it walked through,
// parent first.
func (s *CategoryService) checkParent(ctx context.Context, id, parent primitive.ObjectID) ([]primitive.ObjectID, error) {
	if parent == id {
		return nil, apperr.InvalidOperation("Category cannot be parent of itself")
	}
	p, err := s.repos.Categories.FindByID(ctx, parent)
	if err != nil {
		return nil, notFound(err, "Parent category does not exist")
	}

	walked := []primitive.ObjectID{parent}
	visited := map[primitive.ObjectID]bool{parent: true}
	for cur := p.Parent; cur != nil; {
		if *cur == id {
			return nil, apperr.InvalidOperation("Category cannot be a descendant of itself")
		}
		if visited[*cur] {
			break
		}
		visited[*cur] = true

		anc, err := s.repos.Categories.FindByID(ctx, *cur)
		if repositories.IsNotFound(err) {
			break
		}
		if err != nil {
			return nil, err
		}
		walked = append(walked, *cur)
		cur = anc.Parent
	}
	return walked, nil
}

// Delete is refused while children or products reference the category.
func (s *CategoryService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return transact(ctx, s.repos.Tx, "category.delete", func(ctx context.Context) error {
		if _, err := s.repos.Categories.FindByID(ctx, id); err != nil {
			return notFound(err, "Category not found")
		}

		children, err := s.repos.Categories.CountChildren(ctx, id)
		if err != nil {
			return err
		}
		if children > 0 {
			return apperr.Conflict("Category has child categories")
		}

		products, err := s.repos.Products.CountByCategory(ctx, id)
		if err != nil {
			return err
		}
		if products > 0 {
			return apperr.Conflict("Category is referenced by products")
		}

		return s.repos.Categories.Delete(ctx, id)
	})
}

// List returns the root categories with their direct children.
func (s *CategoryService) List(ctx context.Context) ([]models.CategoryNode, error) {
	roots, err := s.repos.Categories.Roots(ctx)
	if err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return []models.CategoryNode{}, nil
	}

	ids := make([]primitive.ObjectID, len(roots))
	for i, r := range roots {
		ids[i] = r.ID
	}
	children, err := s.repos.Categories.Children(ctx, ids)
	if err != nil {
		return nil, err
	}

	byParent := make(map[primitive.ObjectID][]models.Category, len(roots))
	for _, c := range children {
		byParent[*c.Parent] = append(byParent[*c.Parent], c)
	}

	nodes := make([]models.CategoryNode, len(roots))
	for i, r := range roots {
		kids := byParent[r.ID]
		if kids == nil {
			kids = []models.Category{}
		}
		nodes[i] = models.CategoryNode{Category: r, Children: kids}
	}
	return nodes, nil
}

// Get returns one category with its direct children.
func (s *CategoryService) Get(ctx context.Context, id primitive.ObjectID) (*models.CategoryNode, error) {
	c, err := s.repos.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Category not found")
	}
	children, err := s.repos.Categories.Children(ctx, []primitive.ObjectID{id})
	if err != nil {
		return nil, err
	}
	if children == nil {
		children = []models.Category{}
	}
	return &models.CategoryNode{Category: *c, Children: children}, nil
}
