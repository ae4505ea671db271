package seeders

import (
	"context"
	"slices"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/config"
	"github.com/shashiranjanraj/catalog/pkg/rbac"
)

func init() {
	Register("admin", SeedAdmin)
}

// SeedAdmin creates the account named by ADMIN_EMAIL / ADMIN_PASSWORD when
// both are set.
func SeedAdmin(ctx context.Context, svc *services.Services, repos *repositories.Set) error {
	email, password := config.Get("ADMIN_EMAIL", ""), config.Get("ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		return nil
	}
	_, err := CreateAdmin(ctx, svc, repos, services.RegisterInput{
		FirstName: "Admin",
		LastName:  "User",
		Email:     email,
		Password:  password,
	})
	return err
}

// CreateAdmin registers the account if needed and grants it the admin role.
func CreateAdmin(ctx context.Context, svc *services.Services, repos *repositories.Set, in services.RegisterInput) (*models.User, error) {
	u, err := repos.Users.FindByEmail(ctx, in.Email)
	if repositories.IsNotFound(err) {
		if _, err := svc.Auth.Register(ctx, in); err != nil {
			return nil, err
		}
		u, err = repos.Users.FindByEmail(ctx, in.Email)
	}
	if err != nil {
		return nil, err
	}

	if slices.Contains(u.Roles, rbac.RoleAdmin) {
		return u, nil
	}
	u.Roles = append(u.Roles, rbac.RoleAdmin)
	if err := repos.Users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
