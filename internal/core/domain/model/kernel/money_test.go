package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func TestNewMoney(t *testing.T) {
	t.Run("rounds to two decimal places", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("10.555"))

		require.NoError(t, err)
		assert.Equal(t, "10.56", m.String())
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero money renders with two places", func(t *testing.T) {
		assert.Equal(t, "0.00", kernel.ZeroMoney().String())
	})
}

func TestMoneyArithmetic(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		sum := mustMoney(t, "10.50").Add(mustMoney(t, "4.50"))
		assert.Equal(t, "15.00", sum.String())
	})

	t.Run("sub rejects negative results", func(t *testing.T) {
		_, err := mustMoney(t, "10.00").Sub(mustMoney(t, "20.00"))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("sub or zero floors at zero", func(t *testing.T) {
		result := mustMoney(t, "10.00").SubOrZero(mustMoney(t, "20.00"))
		assert.True(t, result.IsZero())
	})

	t.Run("mul ratio splits proportionally", func(t *testing.T) {
		// 60 scaled by 20/40 = 30
		result := mustMoney(t, "60.00").MulRatio(decimal.NewFromInt(20), decimal.NewFromInt(40))
		assert.Equal(t, "30.00", result.String())
	})

	t.Run("mul ratio with zero denominator yields zero", func(t *testing.T) {
		result := mustMoney(t, "60.00").MulRatio(decimal.NewFromInt(20), decimal.Zero)
		assert.True(t, result.IsZero())
	})

	t.Run("min", func(t *testing.T) {
		smaller := mustMoney(t, "40.00").Min(mustMoney(t, "50.00"))
		assert.Equal(t, "40.00", smaller.String())
	})
}

func TestPercent(t *testing.T) {
	t.Run("rejects values above 100", func(t *testing.T) {
		_, err := kernel.PercentFromInt(101)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects negative values", func(t *testing.T) {
		_, err := kernel.NewPercent(decimal.NewFromInt(-5))
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("apply to computes the rate", func(t *testing.T) {
		p, err := kernel.PercentFromInt(10)
		require.NoError(t, err)

		assert.Equal(t, "100.00", p.ApplyTo(mustMoney(t, "1000.00")).String())
	})

	t.Run("apply rounds half up", func(t *testing.T) {
		p, err := kernel.NewPercent(decimal.RequireFromString("12.5"))
		require.NoError(t, err)

		// 33.33 * 12.5% = 4.16625 -> 4.17
		assert.Equal(t, "4.17", p.ApplyTo(mustMoney(t, "33.33")).String())
	})
}
