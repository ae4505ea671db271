package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
)

type userRepo struct{ s *Store }

func cloneUser(u models.User) models.User {
	u.Roles = slices.Clone(u.Roles)
	u.Addresses = slices.Clone(u.Addresses)
	if u.Birthdate != nil {
		b := *u.Birthdate
		u.Birthdate = &b
	}
	return u
}

func (r *userRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	defer r.s.lock(ctx)()
	u, ok := r.s.users[id]
	if !ok {
		return nil, notFound("users")
	}
	out := cloneUser(u)
	return &out, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	defer r.s.lock(ctx)()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.s.users {
		if u.Email == email {
			out := cloneUser(u)
			return &out, nil
		}
	}
	return nil, notFound("users")
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	defer r.s.lock(ctx)()
	email := strings.ToLower(strings.TrimSpace(u.Email))
	for _, existing := range r.s.users {
		if existing.Email == email {
			return errors.Wrap(repositories.ErrDuplicate, "users")
		}
	}

	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.Email = email
	u.Version = 1
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = cloneUser(*u)
	return nil
}

func (r *userRepo) Save(ctx context.Context, u *models.User) error {
	defer r.s.lock(ctx)()
	stored, ok := r.s.users[u.ID]
	if !ok {
		return notFound("users")
	}
	if stored.Version != u.Version {
		return errors.Wrap(repositories.ErrVersionConflict, "users")
	}

	u.Version++
	u.UpdatedAt = time.Now().UTC()
	r.s.users[u.ID] = cloneUser(*u)
	return nil
}
