package services

import (
	"context"

	"github.com/pkg/errors"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/apperr"
)

type BrandInput struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Logo        string `json:"logo"        validate:"omitempty,max=500"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

type BrandService struct {
	brands repositories.BrandRepository
}

func NewBrandService(brands repositories.BrandRepository) *BrandService {
	return &BrandService{brands: brands}
}

func (s *BrandService) Create(ctx context.Context, in BrandInput) (*models.Brand, error) {
	b := &models.Brand{Name: in.Name, Logo: in.Logo, Description: in.Description}
	if b.Description == "" {
		b.Description = models.DefaultBrandDescription
	}
	if err := s.brands.Create(ctx, b); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperr.Validation("Brand already exists", map[string]string{
				"name": "The name has already been taken.",
			})
		}
		return nil, err
	}
	return b, nil
}

func (s *BrandService) List(ctx context.Context) ([]models.Brand, error) {
	return s.brands.List(ctx)
}
