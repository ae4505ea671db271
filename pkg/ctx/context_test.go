package ctx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog/pkg/apperr"
	"github.com/shashiranjanraj/catalog/pkg/auth"
	appctx "github.com/shashiranjanraj/catalog/pkg/ctx"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func serve(t *testing.T, req *http.Request, h appctx.HandlerFunc) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	appctx.Wrap(h)(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func withParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestSuccessEnvelope(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec, env := serve(t, req, func(c *appctx.Context) {
		c.Success(map[string]any{"id": 1})
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"id":1}`, string(env.Data))
}

func TestCreatedAndNoContent(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec, env := serve(t, req, func(c *appctx.Context) { c.Created("ok") })
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)

	rec, _ = serve(t, req, func(c *appctx.Context) { c.NoContent() })
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestBindJSONValid(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Shoes"}`))
	rec, _ := serve(t, req, func(c *appctx.Context) {
		var in struct {
			Name string `json:"name" validate:"required"`
		}
		require.True(t, c.BindJSON(&in))
		assert.Equal(t, "Shoes", in.Name)
		c.Success(nil)
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBindJSONValidationFailure(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"parent":"nope"}`))
	rec, env := serve(t, req, func(c *appctx.Context) {
		var in struct {
			Name   string `json:"name"   validate:"required"`
			Parent string `json:"parent" validate:"omitempty,objectid"`
		}
		assert.False(t, c.BindJSON(&in))
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Contains(t, env.Errors, "name")
	assert.Contains(t, env.Errors, "parent")
}

func TestBindJSONMalformed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	rec, env := serve(t, req, func(c *appctx.Context) {
		var in struct{ Name string }
		assert.False(t, c.BindJSON(&in))
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
}

func TestParamID(t *testing.T) {
	req := withParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "64b7f0c2a1b2c3d4e5f60718")
	rec, _ := serve(t, req, func(c *appctx.Context) {
		id, ok := c.ParamID("id")
		require.True(t, ok)
		c.Success(id.Hex())
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	req = withParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "123")
	rec, env := serve(t, req, func(c *appctx.Context) {
		_, ok := c.ParamID("id")
		assert.False(t, ok)
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Errors, "id")
}

func TestQueryHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=3&limit=x&category=64b7f0c2a1b2c3d4e5f60718", nil)
	serve(t, req, func(c *appctx.Context) {
		assert.Equal(t, 3, c.QueryInt("page", 1))
		assert.Equal(t, 10, c.QueryInt("limit", 10))
		id, ok := c.QueryID("category")
		require.True(t, ok)
		require.NotNil(t, id)
		none, ok := c.QueryID("product")
		assert.True(t, ok)
		assert.Nil(t, none)
		c.NoContent()
	})
}

func TestFailMapsStatusCodes(t *testing.T) {
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{apperr.NotFound("Category not found"), http.StatusNotFound, "Category not found"},
		{apperr.Conflict("Cannot delete default address"), http.StatusConflict, "Cannot delete default address"},
		{apperr.Authentication(""), http.StatusUnauthorized, "Unauthorized"},
		{apperr.TransactionFailed("Create product", errors.New("write conflict")), http.StatusInternalServerError, "Internal Server Error"},
		{errors.New("socket closed"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec, env := serve(t, req, func(c *appctx.Context) { c.Fail(tc.err) })
		assert.Equal(t, tc.code, rec.Code)
		assert.False(t, env.Success)
		assert.Equal(t, tc.message, env.Message)
	}
}

func TestUserID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec, _ := serve(t, req, func(c *appctx.Context) {
		_, ok := c.UserID()
		assert.False(t, ok)
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = req.WithContext(auth.WithClaims(req.Context(), &auth.Claims{UserID: "64b7f0c2a1b2c3d4e5f60718"}))
	rec, _ = serve(t, req, func(c *appctx.Context) {
		id, ok := c.UserID()
		require.True(t, ok)
		c.Success(id.Hex())
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetAndGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	serve(t, req, func(c *appctx.Context) {
		c.Set("k", 42)
		v, ok := c.Get("k")
		assert.True(t, ok)
		assert.Equal(t, 42, v)
		c.NoContent()
	})
}
