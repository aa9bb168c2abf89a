package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NewValidation("name is required"), http.StatusBadRequest},
		{NewAuthentication("invalid email or password"), http.StatusUnauthorized},
		{NewAuthorization("access denied"), http.StatusForbidden},
		{NewNotFound("Order"), http.StatusNotFound},
		{NewConflict("duplicate lookup code"), http.StatusConflict},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), "for %v", tc.err)
	}
}

func TestStatusForWrappedError(t *testing.T) {
	err := fmt.Errorf("loading order: %w", NewNotFound("Order"))
	assert.Equal(t, http.StatusNotFound, StatusFor(err))
}

func TestValidationErrorJoinsDetails(t *testing.T) {
	err := NewValidation("carrier_id is required", "Warehouse not found")
	assert.Equal(t, "carrier_id is required; Warehouse not found", err.Error())
	assert.Equal(t, []string{"carrier_id is required", "Warehouse not found"}, DetailsFor(err))
}

func TestDetailsForNonValidation(t *testing.T) {
	assert.Nil(t, DetailsFor(NewConflict("nope")))
	assert.Nil(t, DetailsFor(errors.New("boom")))
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "Order not found", NewNotFound("Order").Error())
}
