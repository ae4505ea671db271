// Package ctx provides the request context handlers are written against.
//
// A handler receives a single *Context instead of (w, r):
//
//	func (h *ProductController) Show(c *ctx.Context) {
//	    id, ok := c.ParamID("id")
//	    if !ok {
//	        return
//	    }
//	    product, err := h.svc.Get(c.Context(), id)
//	    if err != nil {
//	        c.Fail(err)
//	        return
//	    }
//	    c.Success(product)
//	}
//
// and is registered with ctx.Wrap.
package ctx

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/pkg/apperr"
	"github.com/shashiranjanraj/catalog/pkg/auth"
	"github.com/shashiranjanraj/catalog/pkg/bind"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/response"
	"github.com/shashiranjanraj/catalog/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	mu     sync.RWMutex
	store  map[string]any
	status int
}

var pool = sync.Pool{
	New: func() any { return &Context{store: make(map[string]any)} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	for k := range c.store {
		delete(c.store, k)
	}
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamID parses a path parameter as a document id. On failure it answers
// 400 with a field error and returns false.
func (c *Context) ParamID(key string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(key))
	if err != nil {
		c.ValidationError(map[string]string{key: fmt.Sprintf("The %s must be a valid id.", key)})
		return primitive.NilObjectID, false
	}
	return id, true
}

// Query returns a query-string value. Returns "" if not present.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// DefaultQuery returns a query-string value, or def if it is empty.
func (c *Context) DefaultQuery(key, def string) string {
	if v := c.Query(key); v != "" {
		return v
	}
	return def
}

// QueryInt reads a positive integer from the query string, or def.
func (c *Context) QueryInt(key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// QueryID reads an optional document id from the query string. An absent
// value yields (nil, true); a malformed one answers 400 and returns false.
func (c *Context) QueryID(key string) (*primitive.ObjectID, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		c.ValidationError(map[string]string{key: fmt.Sprintf("The %s must be a valid id.", key)})
		return nil, false
	}
	return &id, true
}

// Header returns the value of a request header.
func (c *Context) Header(key string) string {
	return c.R.Header.Get(key)
}

// ClientIP returns the real client IP, respecting X-Forwarded-For.
func (c *Context) ClientIP() string {
	if fwd := c.R.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	if real := c.R.Header.Get("X-Real-Ip"); real != "" {
		return real
	}
	ip := c.R.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Logger returns the request-scoped logger.
func (c *Context) Logger() *slog.Logger { return logger.WithCtx(c.Context()) }

// UserID returns the authenticated caller's id. It is only meaningful behind
// the Auth middleware; otherwise it answers 401 and returns false.
func (c *Context) UserID() (primitive.ObjectID, bool) {
	claims, ok := auth.ClaimsFromCtx(c.Context())
	if ok {
		if id, err := primitive.ObjectIDFromHex(claims.UserID); err == nil {
			return id, true
		}
	}
	c.Error(http.StatusUnauthorized, "Unauthorized")
	return primitive.NilObjectID, false
}

// ─── Per-request store ────────────────────────────────────────────────────────

func (c *Context) Set(key string, val any) {
	c.mu.Lock()
	c.store[key] = val
	c.mu.Unlock()
}

func (c *Context) Get(key string) (any, bool) {
	c.mu.RLock()
	v, ok := c.store[key]
	c.mu.RUnlock()
	return v, ok
}

// ─── Binding / Validation ─────────────────────────────────────────────────────

// BindJSON decodes the JSON body into dest and runs validation. Malformed
// bodies and validation failures both answer 400; the caller just returns
// when BindJSON reports false.
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// JSON writes v with the given status code.
func (c *Context) JSON(code int, v any) {
	c.W.Header().Set("Content-Type", "application/json")
	c.W.WriteHeader(code)
	c.status = code
	json.NewEncoder(c.W).Encode(v) //nolint:errcheck
}

// Status writes just the HTTP status code with an empty body.
func (c *Context) Status(code int) {
	c.status = code
	c.W.WriteHeader(code)
}

// Success sends a 200 envelope.
func (c *Context) Success(data any) {
	c.JSON(http.StatusOK, response.Envelope{Success: true, Data: data})
}

// Created sends a 201 envelope.
func (c *Context) Created(data any) {
	c.JSON(http.StatusCreated, response.Envelope{Success: true, Data: data})
}

// Message sends a 200 envelope carrying only a message.
func (c *Context) Message(message string) {
	c.JSON(http.StatusOK, response.Envelope{Success: true, Message: message})
}

// NoContent sends 204 with no body.
func (c *Context) NoContent() {
	c.Status(http.StatusNoContent)
}

// Paginated sends {items, pagination} inside a 200 envelope.
func (c *Context) Paginated(items any, p response.Pagination) {
	c.Success(map[string]any{"items": items, "pagination": p})
}

// Error sends an error envelope with the given status and message.
func (c *Context) Error(code int, message string) {
	c.JSON(code, response.Envelope{Success: false, Message: message})
}

// ValidationError sends a 400 with field-level errors.
func (c *Context) ValidationError(errs map[string]string) {
	c.JSON(http.StatusBadRequest, response.Envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Fail renders any error returned by a service. Errors without a status
// code, and every 5xx, answer "Internal Server Error"; the cause is logged.
func (c *Context) Fail(err error) {
	e := apperr.From(err)
	if e.Code >= http.StatusInternalServerError {
		c.Logger().Error("request failed",
			"method", c.R.Method,
			"path", c.R.URL.Path,
			"error", err.Error(),
		)
		c.Error(e.Code, "Internal Server Error")
		return
	}
	if len(e.Fields) > 0 {
		c.JSON(e.Code, response.Envelope{Success: false, Message: e.Message, Errors: e.Fields})
		return
	}
	c.Error(e.Code, e.Message)
}

// WrittenStatus returns the status written so far, or 0.
func (c *Context) WrittenStatus() int { return c.status }
