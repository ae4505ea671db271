package services_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/apperr"
	"github.com/shashiranjanraj/catalog/pkg/auth"
)

func register(t *testing.T, f *fixture, email string) *services.Session {
	t.Helper()
	s, err := f.svc.Auth.Register(f.ctx, services.RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  "Secret123",
		Phone:     "0123456789",
	})
	require.NoError(t, err)
	return s
}

func TestRegisterCreatesDefaultAddress(t *testing.T) {
	f := newFixture(t)
	s := register(t, f, "Ada@Example.com")

	assert.Equal(t, "Ada", s.FirstName)
	assert.Equal(t, []string{"user"}, s.Roles)
	assert.NotEmpty(t, s.AccessToken)
	assert.NotEmpty(t, s.RefreshToken)

	u, err := f.repos.Users.FindByEmail(f.ctx, "ada@example.com")
	require.NoError(t, err)
	require.Len(t, u.Addresses, 1)
	assert.True(t, u.Addresses[0].Default)
	assert.Equal(t, "Lovelace", u.Addresses[0].LastName)
	assert.NotEqual(t, "Secret123", u.Password)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	register(t, f, "ada@example.com")

	_, err := f.svc.Auth.Register(f.ctx, services.RegisterInput{
		FirstName: "Other", LastName: "User", Email: "ADA@example.com", Password: "Secret123",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.Code(err))
	assert.Equal(t, "Email already exists", apperr.From(err).Message)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	register(t, f, "ada@example.com")

	s, err := f.svc.Auth.Login(f.ctx, services.LoginInput{Email: "ada@example.com", Password: "Secret123"})
	require.NoError(t, err)
	claims, err := auth.ValidateToken(s.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.HasRole("user"))

	_, err = f.svc.Auth.Login(f.ctx, services.LoginInput{Email: "ada@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, apperr.Code(err))

	_, err = f.svc.Auth.Login(f.ctx, services.LoginInput{Email: "nobody@example.com", Password: "Secret123"})
	assert.Equal(t, http.StatusUnauthorized, apperr.Code(err))
}

func TestRefreshTokenIsSingleUse(t *testing.T) {
	f := newFixture(t)
	s := register(t, f, "ada@example.com")

	tokens, err := f.svc.Auth.Refresh(f.ctx, services.RefreshInput{RefreshToken: s.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, s.RefreshToken, tokens.RefreshToken)

	_, err = f.svc.Auth.Refresh(f.ctx, services.RefreshInput{RefreshToken: s.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, apperr.Code(err))

	_, err = f.svc.Auth.Refresh(f.ctx, services.RefreshInput{RefreshToken: tokens.RefreshToken})
	assert.NoError(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	f := newFixture(t)
	s := register(t, f, "ada@example.com")

	_, err := f.svc.Auth.Refresh(f.ctx, services.RefreshInput{RefreshToken: s.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, apperr.Code(err))
}

func TestForgotPasswordNeverRevealsAccounts(t *testing.T) {
	f := newFixture(t)
	register(t, f, "ada@example.com")

	assert.NoError(t, f.svc.Auth.ForgotPassword(f.ctx, services.ForgotPasswordInput{Email: "ada@example.com"}))
	assert.NoError(t, f.svc.Auth.ForgotPassword(f.ctx, services.ForgotPasswordInput{Email: "nobody@example.com"}))
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	register(t, f, "ada@example.com")
	u, err := f.repos.Users.FindByEmail(f.ctx, "ada@example.com")
	require.NoError(t, err)

	err = f.svc.Auth.ChangePassword(f.ctx, u.ID, services.ChangePasswordInput{
		CurrentPassword: "Wrong123", NewPassword: "Newpass123",
	})
	assert.Equal(t, http.StatusUnauthorized, apperr.Code(err))

	require.NoError(t, f.svc.Auth.ChangePassword(f.ctx, u.ID, services.ChangePasswordInput{
		CurrentPassword: "Secret123", NewPassword: "Newpass123",
	}))
	_, err = f.svc.Auth.Login(f.ctx, services.LoginInput{Email: "ada@example.com", Password: "Newpass123"})
	assert.NoError(t, err)
}

func TestProfileMasksContactDetails(t *testing.T) {
	f := newFixture(t)
	register(t, f, "ada@example.com")
	u, err := f.repos.Users.FindByEmail(f.ctx, "ada@example.com")
	require.NoError(t, err)

	p, err := f.svc.Auth.Profile(f.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "***********.com", p.Email)
	assert.Equal(t, "******6789", p.Phone)

	p, err = f.svc.Auth.UpdateProfile(f.ctx, u.ID, services.ProfileInput{
		FirstName: "Augusta", LastName: "King", Gender: "female",
	})
	require.NoError(t, err)
	assert.Equal(t, "Augusta", p.FirstName)
	assert.Empty(t, p.Phone)
}
