// Package rbac provides role-based access control middleware.
package rbac

import (
	"net/http"

	"github.com/shashiranjanraj/catalog/pkg/auth"
	"github.com/shashiranjanraj/catalog/pkg/response"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// HasRole allows the request through only when the caller carries one of
// roles. middleware.Auth must run first.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := auth.ClaimsFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w)
				return
			}
			if !claims.HasRole(roles...) {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Admin is HasRole(RoleAdmin).
func Admin(next http.Handler) http.Handler {
	return HasRole(RoleAdmin)(next)
}
