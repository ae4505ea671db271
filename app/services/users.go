package services

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/apperr"
)

// maxSaveAttempts bounds the reload-and-retry loop of mutateUser.
const maxSaveAttempts = 3

// mutateUser loads the user, applies fn and saves it with a version check.
// A lost race reloads and reapplies fn. An error from fn aborts without
// saving.
func mutateUser(ctx context.Context, users repositories.UserRepository, id primitive.ObjectID, fn func(u *models.User) error) (*models.User, error) {
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		u, err := users.FindByID(ctx, id)
		if err != nil {
			return nil, notFound(err, "User not found")
		}
		if err := fn(u); err != nil {
			return nil, err
		}

		err = users.Save(ctx, u)
		if errors.Is(err, repositories.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, notFound(err, "User not found")
		}
		return u, nil
	}
	return nil, apperr.Conflict("User was modified concurrently, please retry")
}
