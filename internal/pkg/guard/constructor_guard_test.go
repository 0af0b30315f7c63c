package guard_test

import (
	"errors"
	"testing"

	"marketplace/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed guard passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero-value guard returns the caller's error", func(t *testing.T) {
		var g guard.ConstructorGuard
		sentinel := errors.New("command must be created via its constructor")

		assert.Equal(t, sentinel, g.Validate(sentinel))
	})

	t.Run("zero-value guard falls back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})

	t.Run("copies stay valid", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		cp := g

		require.NoError(t, cp.Validate(errors.New("not constructed")))
	})
}

// The commands and queries in this module embed a guard and check it in
// Validate before Handle touches anything; this mirrors that shape.
func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	errNotConstructed := errors.New("CancelOrderCommand must be created via NewCancelOrderCommand")

	type cancelOrderCommand struct {
		orderID string
		reason  string
		guard   guard.ConstructorGuard
	}

	newCancelOrderCommand := func(orderID, reason string) (cancelOrderCommand, error) {
		if orderID == "" {
			return cancelOrderCommand{}, errors.New("order id is required")
		}
		if reason == "" {
			return cancelOrderCommand{}, errors.New("cancel reason is required")
		}
		return cancelOrderCommand{
			orderID: orderID,
			reason:  reason,
			guard:   guard.NewConstructorGuard(),
		}, nil
	}

	t.Run("constructor output validates", func(t *testing.T) {
		cmd, err := newCancelOrderCommand("order-1", "changed my mind")

		require.NoError(t, err)
		require.NoError(t, cmd.guard.Validate(errNotConstructed))
	})

	t.Run("a literal fails validation", func(t *testing.T) {
		cmd := cancelOrderCommand{orderID: "order-1", reason: "sneaked past the constructor"}

		assert.Equal(t, errNotConstructed, cmd.guard.Validate(errNotConstructed))
	})
}

func TestConstructorGuard_ConcurrentReads(t *testing.T) {
	g := guard.NewConstructorGuard()
	sentinel := errors.New("not constructed")

	done := make(chan struct{})
	for range 16 {
		go func() {
			for range 1000 {
				assert.NoError(t, g.Validate(sentinel))
			}
			done <- struct{}{}
		}()
	}
	for range 16 {
		<-done
	}
}
