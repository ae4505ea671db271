package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/catalog/config"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// ErrWrongTokenType is returned when a refresh token is presented as an
// access token or the other way round.
var ErrWrongTokenType = errors.New("auth: wrong token type")

// Claims holds the typed JWT payload.
type Claims struct {
	UserID string   `json:"uid"`
	Roles  []string `json:"roles"`
	Type   string   `json:"typ"`
	jwt.RegisteredClaims
}

// HasRole reports whether the claims carry any of roles.
func (c *Claims) HasRole(roles ...string) bool {
	for _, have := range c.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Pair is what login and refresh hand back to the client.
type Pair struct {
	AccessToken  string
	RefreshToken string
	// RefreshID is the refresh token's jti, used for single-use rotation.
	RefreshID        string
	RefreshExpiresAt time.Time
}

func secret() []byte {
	return []byte(config.JWTSecret())
}

func sign(userID string, roles []string, typ string, ttl time.Duration) (string, string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)
	jti := uuid.NewString()
	claims := Claims{
		UserID: userID,
		Roles:  roles,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
	return token, jti, exp, err
}

// GenerateToken creates a signed access token (JWT_ACCESS_TTL, default 24h).
func GenerateToken(userID string, roles []string) (string, error) {
	token, _, _, err := sign(userID, roles, TypeAccess, config.JWTAccessTTL())
	return token, err
}

// GeneratePair creates an access token and a refresh token (JWT_REFRESH_TTL,
// default 7 days).
func GeneratePair(userID string, roles []string) (Pair, error) {
	access, err := GenerateToken(userID, roles)
	if err != nil {
		return Pair{}, err
	}
	refresh, jti, exp, err := sign(userID, roles, TypeRefresh, config.JWTRefreshTTL())
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh, RefreshID: jti, RefreshExpiresAt: exp}, nil
}

func parse(t, typ string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (any, error) {
		return secret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Type != typ {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// ValidateToken parses and validates an access token.
func ValidateToken(t string) (*Claims, error) { return parse(t, TypeAccess) }

// ValidateRefreshToken parses and validates a refresh token.
func ValidateRefreshToken(t string) (*Claims, error) { return parse(t, TypeRefresh) }

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ─── Request context ──────────────────────────────────────────────────────────

type ctxKey struct{}

// WithClaims stores the authenticated caller in ctx.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// ClaimsFromCtx returns the authenticated caller, if any.
func ClaimsFromCtx(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(*Claims)
	return c, ok && c != nil
}
