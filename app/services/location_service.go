package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/apperr"
	"github.com/shashiranjanraj/catalog/pkg/response"
)

type LocationInput struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Address string `json:"address" validate:"required,max=300"`
}

type LocationService struct {
	repos *repositories.Set
}

func NewLocationService(repos *repositories.Set) *LocationService {
	return &LocationService{repos: repos}
}

func (s *LocationService) Create(ctx context.Context, in LocationInput) (*models.Location, error) {
	l := &models.Location{Name: in.Name, Address: in.Address}
	if err := s.repos.Locations.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *LocationService) Get(ctx context.Context, id primitive.ObjectID) (*models.Location, error) {
	l, err := s.repos.Locations.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Location not found")
	}
	return l, nil
}

func (s *LocationService) Update(ctx context.Context, id primitive.ObjectID, in LocationInput) (*models.Location, error) {
	l, err := s.repos.Locations.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Location not found")
	}
	l.Name = in.Name
	l.Address = in.Address
	if err := s.repos.Locations.Update(ctx, l); err != nil {
		return nil, notFound(err, "Location not found")
	}
	return l, nil
}

// Delete is refused while any stock row references the location.
func (s *LocationService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return transact(ctx, s.repos.Tx, "location.delete", func(ctx context.Context) error {
		if _, err := s.repos.Locations.FindByID(ctx, id); err != nil {
			return notFound(err, "Location not found")
		}
		n, err := s.repos.Stocks.CountByLocation(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict("Location is referenced by stock records")
		}
		return s.repos.Locations.Delete(ctx, id)
	})
}

func (s *LocationService) List(ctx context.Context, page, limit int) ([]models.Location, response.Pagination, error) {
	page, limit = pageBounds(page, limit)
	items, total, err := s.repos.Locations.List(ctx, int64((page-1)*limit), int64(limit))
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return items, response.NewPagination(page, limit, total), nil
}
