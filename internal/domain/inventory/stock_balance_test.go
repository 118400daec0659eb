package inventory

import (
	"testing"

	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockBalance(t *testing.T) {
	t.Run("creates zero balance for item", func(t *testing.T) {
		itemID := uuid.New()
		balance, err := NewStockBalance(itemID)
		require.NoError(t, err)
		assert.Equal(t, itemID, balance.ItemID)
		assert.True(t, balance.QuantityOnHand.IsZero())
		assert.True(t, balance.MinimumStockLevel.IsZero())
		assert.True(t, balance.PreviousMaxStock.IsZero())
	})

	t.Run("rejects nil item ID", func(t *testing.T) {
		_, err := NewStockBalance(uuid.Nil)
		assert.Error(t, err)
	})
}

func TestStockBalanceCredit(t *testing.T) {
	t.Run("increases quantity on hand", func(t *testing.T) {
		balance, err := NewStockBalance(uuid.New())
		require.NoError(t, err)

		err = balance.Credit(decimal.NewFromInt(100))
		require.NoError(t, err)
		assert.True(t, balance.QuantityOnHand.Equal(decimal.NewFromInt(100)))
	})

	t.Run("advances high-water mark only upward", func(t *testing.T) {
		balance, err := NewStockBalance(uuid.New())
		require.NoError(t, err)

		require.NoError(t, balance.Credit(decimal.NewFromInt(100)))
		assert.True(t, balance.PreviousMaxStock.Equal(decimal.NewFromInt(100)))

		require.NoError(t, balance.Debit(decimal.NewFromInt(60)))
		require.NoError(t, balance.Credit(decimal.NewFromInt(20)))
		// 60 on hand < 100 high water
		assert.True(t, balance.PreviousMaxStock.Equal(decimal.NewFromInt(100)))

		require.NoError(t, balance.Credit(decimal.NewFromInt(80)))
		assert.True(t, balance.PreviousMaxStock.Equal(decimal.NewFromInt(140)))
	})

	t.Run("rejects zero and negative quantity", func(t *testing.T) {
		balance, err := NewStockBalance(uuid.New())
		require.NoError(t, err)

		assert.Error(t, balance.Credit(decimal.Zero))
		assert.Error(t, balance.Credit(decimal.NewFromInt(-5)))
	})

	t.Run("raises StockCredited event", func(t *testing.T) {
		balance, err := NewStockBalance(uuid.New())
		require.NoError(t, err)
		balance.ClearDomainEvents()

		require.NoError(t, balance.Credit(decimal.NewFromInt(40)))

		events := balance.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeStockCredited, events[0].EventType())
	})
}

func TestStockBalanceDebit(t *testing.T) {
	t.Run("decreases quantity on hand", func(t *testing.T) {
		balance, err := NewStockBalance(uuid.New())
		require.NoError(t, err)
		require.NoError(t, balance.Credit(decimal.NewFromInt(100)))

		err = balance.Debit(decimal.NewFromInt(30))
		require.NoError(t, err)
		assert.True(t, balance.QuantityOnHand.Equal(decimal.NewFromInt(70)))
	})

	t.Run("over-balance debit is rejected whole", func(t *testing.T) {
		balance, err := NewStockBalance(uuid.New())
		require.NoError(t, err)
		require.NoError(t, balance.Credit(decimal.NewFromInt(100)))
		require.NoError(t, balance.Debit(decimal.NewFromInt(30)))

		err = balance.Debit(decimal.NewFromInt(80))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)

		// balance unchanged, no partial debit
		assert.True(t, balance.QuantityOnHand.Equal(decimal.NewFromInt(70)))
	})

	t.Run("debit down to exactly zero succeeds", func(t *testing.T) {
		balance, err := NewStockBalance(uuid.New())
		require.NoError(t, err)
		require.NoError(t, balance.Credit(decimal.NewFromInt(50)))

		require.NoError(t, balance.Debit(decimal.NewFromInt(50)))
		assert.True(t, balance.QuantityOnHand.IsZero())
	})

	t.Run("rejects zero and negative quantity", func(t *testing.T) {
		balance, err := NewStockBalance(uuid.New())
		require.NoError(t, err)
		require.NoError(t, balance.Credit(decimal.NewFromInt(10)))

		assert.Error(t, balance.Debit(decimal.Zero))
		assert.Error(t, balance.Debit(decimal.NewFromInt(-1)))
	})

	t.Run("raises below-minimum event when threshold crossed", func(t *testing.T) {
		balance, err := NewStockBalance(uuid.New())
		require.NoError(t, err)
		require.NoError(t, balance.Credit(decimal.NewFromInt(100)))
		require.NoError(t, balance.SetMinimumStockLevel(decimal.NewFromInt(50)))
		balance.ClearDomainEvents()

		require.NoError(t, balance.Debit(decimal.NewFromInt(60)))

		events := balance.GetDomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, EventTypeStockDebited, events[0].EventType())
		assert.Equal(t, EventTypeStockBelowMinimum, events[1].EventType())
	})

	t.Run("no below-minimum event when threshold unset", func(t *testing.T) {
		balance, err := NewStockBalance(uuid.New())
		require.NoError(t, err)
		require.NoError(t, balance.Credit(decimal.NewFromInt(100)))
		balance.ClearDomainEvents()

		require.NoError(t, balance.Debit(decimal.NewFromInt(99)))

		events := balance.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeStockDebited, events[0].EventType())
	})
}

func TestStockBalanceMinimumLevel(t *testing.T) {
	t.Run("SetMinimumStockLevel rejects negative", func(t *testing.T) {
		balance, err := NewStockBalance(uuid.New())
		require.NoError(t, err)
		assert.Error(t, balance.SetMinimumStockLevel(decimal.NewFromInt(-1)))
	})

	t.Run("IsBelowMinimum compares against threshold", func(t *testing.T) {
		balance, err := NewStockBalance(uuid.New())
		require.NoError(t, err)
		require.NoError(t, balance.Credit(decimal.NewFromInt(30)))
		require.NoError(t, balance.SetMinimumStockLevel(decimal.NewFromInt(50)))

		assert.True(t, balance.IsBelowMinimum())

		require.NoError(t, balance.Credit(decimal.NewFromInt(20)))
		assert.False(t, balance.IsBelowMinimum())
	})
}

func TestStockBalanceCanFulfill(t *testing.T) {
	balance, err := NewStockBalance(uuid.New())
	require.NoError(t, err)
	require.NoError(t, balance.Credit(decimal.NewFromInt(70)))

	assert.True(t, balance.CanFulfill(decimal.NewFromInt(70)))
	assert.True(t, balance.CanFulfill(decimal.NewFromInt(10)))
	assert.False(t, balance.CanFulfill(decimal.NewFromInt(71)))
}
