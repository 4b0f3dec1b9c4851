package statemachine

import (
	"testing"

	"ecommerce-api/models"

	"github.com/stretchr/testify/assert"
)

func TestCanCancel(t *testing.T) {
	tests := []struct {
		from    models.OrderStatus
		allowed bool
	}{
		{from: models.StatusPending, allowed: true},
		{from: models.StatusCanceled, allowed: true},
		{from: "Processing", allowed: true},
		{from: models.StatusShipped, allowed: false},
		{from: models.StatusCompleted, allowed: false},
	}
	for _, tc := range tests {
		t.Run(string(tc.from), func(t *testing.T) {
			err := CanCancel(tc.from)
			if tc.allowed {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.ErrorContains(t, err, "Shipped, Completed")
		})
	}
}

func TestCanTransition_FreeWrites(t *testing.T) {
	assert.NoError(t, CanTransition(models.StatusCompleted, models.StatusShipped))
	assert.NoError(t, CanTransition(models.StatusShipped, models.StatusCompleted))
	assert.NoError(t, CanTransition(models.StatusPending, "On hold"))
}

func TestGetAllRules(t *testing.T) {
	r := GetAllRules()
	assert.Len(t, r, 1)
	assert.Equal(t, models.StatusCanceled, r[0].To)
	assert.Len(t, KnownStatuses(), 4)
}
