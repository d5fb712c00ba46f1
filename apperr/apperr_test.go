package apperr_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krist-backend/apperr"
)

func TestKindOf(t *testing.T) {
	err := apperr.New(apperr.EmptyCart, http.StatusBadRequest, "Your cart is empty")
	assert.Equal(t, apperr.EmptyCart, apperr.KindOf(err))
	assert.Equal(t, apperr.EmptyCart, apperr.KindOf(fmt.Errorf("handling request: %w", err)))
	assert.Equal(t, apperr.Internal, apperr.KindOf(errors.New("plain")))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperr.Wrap(apperr.OrderSubmissionFailed, http.StatusInternalServerError, "Failed to place order", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "OrderSubmissionFailed")
}

func TestWriteBody(t *testing.T) {
	rec := httptest.NewRecorder()
	apperr.Write(rec, apperr.New(apperr.ProductNotInCart, http.StatusNotFound, "Product not found in cart"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body struct {
		Success bool   `json:"success"`
		Status  int    `json:"status"`
		Message string `json:"message"`
		Kind    string `json:"kind"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, http.StatusNotFound, body.Status)
	assert.Equal(t, "Product not found in cart", body.Message)
	assert.Equal(t, "ProductNotInCart", body.Kind)
}

func TestWriteMasksUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	apperr.Write(rec, errors.New("mongo: internal detail"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "mongo", "internal details must not leak to clients")
}
