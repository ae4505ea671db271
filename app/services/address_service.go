package services

import (
	"context"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/apperr"
)

// AddressInput never carries the default flag; only SetPrimary changes it.
type AddressInput struct {
	FirstName    string `json:"first_name"    validate:"required,max=50"`
	LastName     string `json:"last_name"     validate:"required,max=50"`
	Phone        string `json:"phone"         validate:"required,max=20"`
	Address1     string `json:"address1"      validate:"required,max=200"`
	Address2     string `json:"address2"      validate:"omitempty,max=200"`
	Company      string `json:"company"       validate:"omitempty,max=100"`
	Country      string `json:"country"       validate:"omitempty,max=100"`
	CountryCode  string `json:"country_code"  validate:"omitempty,max=10"`
	Province     string `json:"province"      validate:"omitempty,max=100"`
	ProvinceCode string `json:"province_code" validate:"omitempty,max=20"`
	District     string `json:"district"      validate:"omitempty,max=100"`
	DistrictCode string `json:"district_code" validate:"omitempty,max=20"`
	Ward         string `json:"ward"          validate:"omitempty,max=100"`
	WardCode     string `json:"ward_code"     validate:"omitempty,max=20"`
}

func (in AddressInput) apply(a *models.Address) {
	a.FirstName = in.FirstName
	a.LastName = in.LastName
	a.Phone = in.Phone
	a.Address1 = in.Address1
	a.Address2 = in.Address2
	a.Company = in.Company
	a.Country = in.Country
	a.CountryCode = in.CountryCode
	a.Province = in.Province
	a.ProvinceCode = in.ProvinceCode
	a.District = in.District
	a.DistrictCode = in.DistrictCode
	a.Ward = in.Ward
	a.WardCode = in.WardCode
}

// AddressService manages the addresses embedded in a user. Every mutation
// is one versioned save of the user document and returns the new list.
type AddressService struct {
	users repositories.UserRepository
}

func NewAddressService(users repositories.UserRepository) *AddressService {
	return &AddressService{users: users}
}

func (s *AddressService) List(ctx context.Context, userID primitive.ObjectID) ([]models.Address, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	return addressList(u), nil
}

func (s *AddressService) Add(ctx context.Context, userID primitive.ObjectID, in AddressInput) ([]models.Address, error) {
	u, err := mutateUser(ctx, s.users, userID, func(u *models.User) error {
		now := time.Now().UTC()
		a := models.Address{ID: primitive.NewObjectID(), CreatedAt: now, UpdatedAt: now}
		in.apply(&a)
		u.Addresses = append(u.Addresses, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return addressList(u), nil
}

func (s *AddressService) Update(ctx context.Context, userID, addressID primitive.ObjectID, in AddressInput) ([]models.Address, error) {
	u, err := mutateUser(ctx, s.users, userID, func(u *models.User) error {
		i := u.AddressIndex(addressID)
		if i < 0 {
			return apperr.NotFound("Address not found")
		}
		in.apply(&u.Addresses[i])
		u.Addresses[i].UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return addressList(u), nil
}

// SetPrimary clears every default flag and sets the target's, in one save.
func (s *AddressService) SetPrimary(ctx context.Context, userID, addressID primitive.ObjectID) ([]models.Address, error) {
	u, err := mutateUser(ctx, s.users, userID, func(u *models.User) error {
		target := u.AddressIndex(addressID)
		if target < 0 {
			return apperr.NotFound("Address not found")
		}
		for i := range u.Addresses {
			u.Addresses[i].Default = i == target
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return addressList(u), nil
}

// Delete refuses to remove the default address.
func (s *AddressService) Delete(ctx context.Context, userID, addressID primitive.ObjectID) ([]models.Address, error) {
	u, err := mutateUser(ctx, s.users, userID, func(u *models.User) error {
		i := u.AddressIndex(addressID)
		if i < 0 {
			return apperr.NotFound("Address not found")
		}
		if u.Addresses[i].Default {
			return apperr.Conflict("Cannot delete the default address; set another address as primary first")
		}
		u.Addresses = slices.Delete(u.Addresses, i, i+1)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return addressList(u), nil
}

func addressList(u *models.User) []models.Address {
	if u.Addresses == nil {
		return []models.Address{}
	}
	return u.Addresses
}
