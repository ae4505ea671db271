package apperr_test

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/catalog/pkg/apperr"
)

func TestCodes(t *testing.T) {
	cases := map[int]error{
		http.StatusUnauthorized:        apperr.Authentication(""),
		http.StatusBadRequest:          apperr.Validation("", nil),
		http.StatusForbidden:           apperr.Forbidden(""),
		http.StatusNotFound:            apperr.NotFound("Category not found"),
		http.StatusConflict:            apperr.Conflict("in use"),
		http.StatusInternalServerError: apperr.TransactionFailed("Create product", errors.New("boom")),
		http.StatusTeapot:              apperr.New(http.StatusTeapot, "tea"),
	}
	for code, err := range cases {
		assert.Equal(t, code, apperr.Code(err))
		assert.True(t, apperr.Is(err, code))
	}
}

func TestFromUnknownError(t *testing.T) {
	e := apperr.From(errors.New("dial tcp: refused"))
	assert.Equal(t, http.StatusInternalServerError, e.Code)
	assert.Equal(t, "Internal Server Error", e.Message)
	assert.EqualError(t, e.Cause(), "dial tcp: refused")
}

func TestFromWrapped(t *testing.T) {
	err := errors.Wrap(apperr.NotFound("Product not found"), "load product")
	assert.Equal(t, http.StatusNotFound, apperr.Code(err))
	assert.Equal(t, "Product not found", apperr.From(err).Message)
}

func TestTransactionFailedKeepsCause(t *testing.T) {
	cause := errors.New("write conflict")
	err := apperr.TransactionFailed("Create tier", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Create tier failed", err.Message)
}

func TestNilIsNotAnError(t *testing.T) {
	assert.Nil(t, apperr.From(nil))
	assert.False(t, apperr.Is(nil, http.StatusNotFound))
}
