package services

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/apperr"
	"github.com/shashiranjanraj/catalog/pkg/auth"
	"github.com/shashiranjanraj/catalog/pkg/cache"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/rbac"
)

const refreshKeyPrefix = "refresh:"

type RegisterInput struct {
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name"  validate:"required,max=50"`
	Email     string `json:"email"      validate:"required,email,max=100"`
	Password  string `json:"password"   validate:"required,password"`
	Phone     string `json:"phone"      validate:"omitempty,max=20"`
}

type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,password,nefield=CurrentPassword"`
}

type ProfileInput struct {
	FirstName string     `json:"first_name" validate:"required,max=50"`
	LastName  string     `json:"last_name"  validate:"required,max=50"`
	Gender    string     `json:"gender"     validate:"omitempty,oneof=male female other"`
	Phone     string     `json:"phone"      validate:"omitempty,max=20"`
	Birthdate *time.Time `json:"birthdate"`
}

// Session is returned by login and register.
type Session struct {
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Roles        []string `json:"roles"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
}

// Tokens is returned by refresh.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Profile is the user as shown to its owner, with contact details masked.
type Profile struct {
	ID        primitive.ObjectID `json:"_id"`
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	Email     string             `json:"email"`
	Phone     string             `json:"phone,omitempty"`
	Gender    string             `json:"gender,omitempty"`
	Birthdate *time.Time         `json:"birthdate,omitempty"`
	Roles     []string           `json:"roles"`
}

type AuthService struct {
	users  repositories.UserRepository
	tokens cache.Store
}

func NewAuthService(users repositories.UserRepository, tokens cache.Store) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a user with one default address built from its names.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  hash,
		Phone:     in.Phone,
		Roles:     []string{rbac.RoleUser},
		Addresses: []models.Address{{
			ID:        primitive.NewObjectID(),
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Phone:     in.Phone,
			Default:   true,
			CreatedAt: now,
			UpdatedAt: now,
		}},
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperr.Validation("Email already exists", map[string]string{
				"email": "The email has already been taken.",
			})
		}
		return nil, err
	}
	return s.session(ctx, u)
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	u, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperr.Authentication("Invalid credentials")
		}
		return nil, err
	}
	if !auth.CheckPassword(u.Password, in.Password) {
		return nil, apperr.Authentication("Invalid credentials")
	}
	return s.session(ctx, u)
}

// Refresh exchanges a refresh token for a new pair. With a token store
// configured, each refresh token is accepted once.
func (s *AuthService) Refresh(ctx context.Context, in RefreshInput) (*Tokens, error) {
	claims, err := auth.ValidateRefreshToken(in.RefreshToken)
	if err != nil {
		return nil, apperr.Authentication("Invalid refresh token")
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, apperr.Authentication("Invalid refresh token")
	}

	if s.tokens != nil {
		owner, ok, err := s.tokens.Take(ctx, refreshKeyPrefix+claims.ID)
		if err != nil {
			return nil, err
		}
		if !ok || owner != claims.UserID {
			return nil, apperr.Authentication("Invalid refresh token")
		}
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperr.Authentication("Invalid refresh token")
		}
		return nil, err
	}
	pair, err := s.issue(ctx, u)
	if err != nil {
		return nil, err
	}
	return &Tokens{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

// ForgotPassword never reveals whether the address is registered.
func (s *AuthService) ForgotPassword(ctx context.Context, in ForgotPasswordInput) error {
	u, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		logger.WithCtx(ctx).Info("password reset requested", "user_id", u.ID.Hex())
	case !repositories.IsNotFound(err):
		return err
	}
	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, id primitive.ObjectID, in ChangePasswordInput) error {
	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	_, err = mutateUser(ctx, s.users, id, func(u *models.User) error {
		if !auth.CheckPassword(u.Password, in.CurrentPassword) {
			return apperr.Authentication("Current password is incorrect")
		}
		u.Password = hash
		return nil
	})
	return err
}

func (s *AuthService) Profile(ctx context.Context, id primitive.ObjectID) (*Profile, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	return profileOf(u), nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, id primitive.ObjectID, in ProfileInput) (*Profile, error) {
	u, err := mutateUser(ctx, s.users, id, func(u *models.User) error {
		u.FirstName = in.FirstName
		u.LastName = in.LastName
		u.Gender = in.Gender
		u.Phone = in.Phone
		u.Birthdate = in.Birthdate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profileOf(u), nil
}

func (s *AuthService) session(ctx context.Context, u *models.User) (*Session, error) {
	pair, err := s.issue(ctx, u)
	if err != nil {
		return nil, err
	}
	return &Session{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Roles:        u.Roles,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// issue signs a new pair and records the refresh jti.
func (s *AuthService) issue(ctx context.Context, u *models.User) (auth.Pair, error) {
	pair, err := auth.GeneratePair(u.ID.Hex(), u.Roles)
	if err != nil {
		return auth.Pair{}, err
	}
	if s.tokens != nil {
		ttl := time.Until(pair.RefreshExpiresAt)
		if err := s.tokens.Set(ctx, refreshKeyPrefix+pair.RefreshID, u.ID.Hex(), ttl); err != nil {
			return auth.Pair{}, err
		}
	}
	return pair, nil
}

func profileOf(u *models.User) *Profile {
	return &Profile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     mask(u.Email),
		Phone:     mask(u.Phone),
		Gender:    u.Gender,
		Birthdate: u.Birthdate,
		Roles:     u.Roles,
	}
}

// mask replaces all but the last four characters with '*'.
func mask(s string) string {
	r := []rune(s)
	if len(r) <= 4 {
		return s
	}
	return strings.Repeat("*", len(r)-4) + string(r[len(r)-4:])
}
