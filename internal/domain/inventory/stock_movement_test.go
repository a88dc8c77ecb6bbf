package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolved() *Resolved {
	return &Resolved{ID: uuid.New(), Ref: "WIDGET-01"}
}

func TestMovementKind_NewQuantity(t *testing.T) {
	prev := decimal.NewFromInt(10)

	t.Run("entry adds", func(t *testing.T) {
		got := MovementKindEntry.NewQuantity(prev, decimal.NewFromInt(4))
		assert.True(t, got.Equal(decimal.NewFromInt(14)))
	})

	t.Run("exit subtracts", func(t *testing.T) {
		got := MovementKindExit.NewQuantity(prev, decimal.NewFromInt(4))
		assert.True(t, got.Equal(decimal.NewFromInt(6)))
	})

	t.Run("adjust applies signed quantity", func(t *testing.T) {
		got := MovementKindAdjust.NewQuantity(prev, decimal.NewFromInt(-3))
		assert.True(t, got.Equal(decimal.NewFromInt(7)))
	})
}

func TestNewStockMovement(t *testing.T) {
	tenantID := uuid.New()

	t.Run("computes new quantity for entry", func(t *testing.T) {
		m, err := NewStockMovement(tenantID, testResolved(), MovementKindEntry,
			decimal.NewFromInt(10), decimal.NewFromInt(5), "purchase receiving", decimal.NewFromInt(50))
		require.NoError(t, err)
		assert.True(t, m.NewQty.Equal(decimal.NewFromInt(15)))
		assert.False(t, m.IsOversold())
	})

	t.Run("exit below zero is permitted", func(t *testing.T) {
		m, err := NewStockMovement(tenantID, testResolved(), MovementKindExit,
			decimal.NewFromInt(3), decimal.NewFromInt(1), "sale shipment", decimal.NewFromInt(30))
		require.NoError(t, err)
		assert.True(t, m.NewQty.Equal(decimal.NewFromInt(-2)))
		assert.True(t, m.IsOversold())
	})

	t.Run("adjust accepts negative quantity", func(t *testing.T) {
		m, err := NewStockMovement(tenantID, testResolved(), MovementKindAdjust,
			decimal.NewFromInt(-2), decimal.NewFromInt(8), "shrinkage", decimal.NewFromInt(10))
		require.NoError(t, err)
		assert.True(t, m.NewQty.Equal(decimal.NewFromInt(6)))
	})

	t.Run("rejects non-positive quantity for entry and exit", func(t *testing.T) {
		_, err := NewStockMovement(tenantID, testResolved(), MovementKindEntry,
			decimal.Zero, decimal.Zero, "", decimal.Zero)
		assert.Error(t, err)

		_, err = NewStockMovement(tenantID, testResolved(), MovementKindExit,
			decimal.NewFromInt(-1), decimal.Zero, "", decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := NewStockMovement(tenantID, testResolved(), MovementKind("TRANSFER"),
			decimal.NewFromInt(1), decimal.Zero, "", decimal.Zero)
		assert.Error(t, err)
	})
}

func TestNewStockMovementAppliedEvent(t *testing.T) {
	m, err := NewStockMovement(uuid.New(), testResolved(), MovementKindExit,
		decimal.NewFromInt(2), decimal.NewFromInt(9), "sale shipment", decimal.NewFromInt(20))
	require.NoError(t, err)
	m.WithSaleRef("SO-1001")

	evt := NewStockMovementAppliedEvent(m)
	assert.Equal(t, EventTypeStockMovementApplied, evt.EventType())
	assert.Equal(t, m.ID, evt.MovementID)
	assert.Equal(t, m.TenantID, evt.TenantID())
	assert.Equal(t, "SO-1001", evt.SaleRef)
	assert.True(t, evt.PreviousQty.Equal(decimal.NewFromInt(9)))
	assert.True(t, evt.NewQty.Equal(decimal.NewFromInt(7)))
}
