package order_test

import (
	"testing"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	for _, s := range []order.Status{
		order.StatusPending,
		order.StatusAccepted,
		order.StatusOutForDelivery,
		order.StatusDelivered,
		order.StatusFailed,
		order.StatusCancelled,
	} {
		assert.NoError(t, s.Validate(), s)
	}

	require.ErrorIs(t, order.Status("shipped").Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.Status("").Validate(), errs.ErrValueIsInvalid)
}

func TestStatus_TransitionTable(t *testing.T) {
	tests := []struct {
		name    string
		from    order.Status
		to      order.Status
		allowed bool
	}{
		{"pending to accepted", order.StatusPending, order.StatusAccepted, true},
		{"pending to cancelled", order.StatusPending, order.StatusCancelled, true},
		{"pending to out_for_delivery skips accept", order.StatusPending, order.StatusOutForDelivery, false},
		{"pending to delivered skips everything", order.StatusPending, order.StatusDelivered, false},
		{"accepted to out_for_delivery", order.StatusAccepted, order.StatusOutForDelivery, true},
		{"accepted to cancelled", order.StatusAccepted, order.StatusCancelled, true},
		{"accepted to delivered skips dispatch", order.StatusAccepted, order.StatusDelivered, false},
		{"accepted back to pending", order.StatusAccepted, order.StatusPending, false},
		{"out_for_delivery to delivered", order.StatusOutForDelivery, order.StatusDelivered, true},
		{"out_for_delivery to failed", order.StatusOutForDelivery, order.StatusFailed, true},
		{"out_for_delivery to cancelled", order.StatusOutForDelivery, order.StatusCancelled, true},
		{"delivered is terminal", order.StatusDelivered, order.StatusCancelled, false},
		{"failed is terminal", order.StatusFailed, order.StatusAccepted, false},
		{"cancelled is terminal", order.StatusCancelled, order.StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))

			next, err := tt.from.TransitionTo(tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, next)
			} else {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			}
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.StatusPending.IsTerminal())
	assert.False(t, order.StatusAccepted.IsTerminal())
	assert.False(t, order.StatusOutForDelivery.IsTerminal())
	assert.True(t, order.StatusDelivered.IsTerminal())
	assert.True(t, order.StatusFailed.IsTerminal())
	assert.True(t, order.StatusCancelled.IsTerminal())
}
