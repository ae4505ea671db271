package services

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/apperr"
)

type TierOptionInput struct {
	Value       string `json:"value"       validate:"required,max=100"`
	IsAvailable *bool  `json:"isAvailable"`
}

type TierInput struct {
	Name    string            `json:"name"    validate:"required,max=100"`
	Options []TierOptionInput `json:"options" validate:"required,min=1,max=100,dive"`
}

// TierService owns tiers and their options. Options are written once,
// together with their tier, and never modified.
type TierService struct {
	repos *repositories.Set
}

func NewTierService(repos *repositories.Set) *TierService {
	return &TierService{repos: repos}
}

// Create inserts the options and then the tier referencing them as one
// unit of work.
func (s *TierService) Create(ctx context.Context, in TierInput) (*models.TierDetail, error) {
	seen := make(map[string]int, len(in.Options))
	for i, o := range in.Options {
		key := strings.ToLower(strings.TrimSpace(o.Value))
		if first, dup := seen[key]; dup {
			return nil, apperr.Validation("", map[string]string{
				fmt.Sprintf("options[%d].value", i): fmt.Sprintf("The value duplicates options[%d].", first),
			})
		}
		seen[key] = i
	}

	var detail *models.TierDetail
	err := transact(ctx, s.repos.Tx, "tier.create", func(ctx context.Context) error {
		opts := make([]models.TierOption, len(in.Options))
		for i, o := range in.Options {
			opts[i] = models.TierOption{Value: o.Value, IsAvailable: boolOr(o.IsAvailable, true)}
		}
		if err := s.repos.Tiers.CreateOptions(ctx, opts); err != nil {
			return err
		}

		t := &models.Tier{Name: in.Name, Options: make([]primitive.ObjectID, len(opts))}
		for i, o := range opts {
			t.Options[i] = o.ID
		}
		if err := s.repos.Tiers.Create(ctx, t); err != nil {
			return err
		}
		detail = &models.TierDetail{ID: t.ID, Name: t.Name, Options: opts}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *TierService) Get(ctx context.Context, id primitive.ObjectID) (*models.TierDetail, error) {
	t, err := s.repos.Tiers.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Tier not found")
	}
	details, err := s.expand(ctx, []models.Tier{*t})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *TierService) List(ctx context.Context) ([]models.TierDetail, error) {
	tiers, err := s.repos.Tiers.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, tiers)
}

func (s *TierService) GetOption(ctx context.Context, id primitive.ObjectID) (*models.TierOption, error) {
	o, err := s.repos.Tiers.FindOptionByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Tier option not found")
	}
	return o, nil
}

// expand resolves every tier's options with one lookup, keeping tier order.
func (s *TierService) expand(ctx context.Context, tiers []models.Tier) ([]models.TierDetail, error) {
	var ids []primitive.ObjectID
	for _, t := range tiers {
		ids = append(ids, t.Options...)
	}
	opts, err := s.repos.Tiers.FindOptionsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.TierOption, len(opts))
	for _, o := range opts {
		byID[o.ID] = o
	}

	out := make([]models.TierDetail, len(tiers))
	for i, t := range tiers {
		d := models.TierDetail{ID: t.ID, Name: t.Name, Options: make([]models.TierOption, 0, len(t.Options))}
		for _, oid := range t.Options {
			if o, ok := byID[oid]; ok {
				d.Options = append(d.Options, o)
			}
		}
		out[i] = d
	}
	return out, nil
}
