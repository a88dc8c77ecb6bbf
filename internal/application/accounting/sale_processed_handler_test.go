package accounting

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nexa-erp/backend/internal/domain/accounting"
	"github.com/nexa-erp/backend/internal/domain/shared/valueobject"
	"github.com/nexa-erp/backend/internal/domain/trade"
)

func TestSaleProcessedHandler(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	chart := accounting.DefaultChartPolicy()
	costFraction := decimal.NewFromFloat(0.70)

	t.Run("posts the five line template for a cash sale", func(t *testing.T) {
		poster := &capturingPoster{}
		handler := NewSaleProcessedHandler(poster, chart, costFraction, zap.NewNop())

		event := trade.NewSaleProcessedEvent(
			tenantID, uuid.New(), "SALE-001",
			decimal.NewFromFloat(118.00), decimal.NewFromFloat(100.00), decimal.NewFromFloat(18.00),
			valueobject.PaymentMethodCash,
			[]trade.SaleLine{
				{ProductRef: "SKU-1", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
			},
		)

		require.NoError(t, handler.Handle(ctx, event))
		entry := poster.last()
		require.NotNil(t, entry)

		assert.Equal(t, accounting.EntryStatusConfirmed, entry.Status)
		assert.Equal(t, "SALE-001", entry.Reference)
		require.Len(t, entry.Lines, 5)

		assert.Equal(t, chart.Cash, entry.Lines[0].AccountCode)
		assert.True(t, entry.Lines[0].Debit.Equal(decimal.NewFromFloat(118.00)))

		assert.Equal(t, chart.Revenue, entry.Lines[1].AccountCode)
		assert.True(t, entry.Lines[1].Credit.Equal(decimal.NewFromFloat(100.00)))

		assert.Equal(t, chart.TaxPayable, entry.Lines[2].AccountCode)
		assert.True(t, entry.Lines[2].Credit.Equal(decimal.NewFromFloat(18.00)))

		// Estimated cost: 0.70 × 100 × 1 = 70
		assert.Equal(t, chart.CostOfGoodsSold, entry.Lines[3].AccountCode)
		assert.True(t, entry.Lines[3].Debit.Equal(decimal.NewFromInt(70)))

		assert.Equal(t, chart.Inventory, entry.Lines[4].AccountCode)
		assert.True(t, entry.Lines[4].Credit.Equal(decimal.NewFromInt(70)))

		assert.True(t, entry.IsBalanced())
	})

	t.Run("bank sales settle against the bank account", func(t *testing.T) {
		poster := &capturingPoster{}
		handler := NewSaleProcessedHandler(poster, chart, costFraction, zap.NewNop())

		event := trade.NewSaleProcessedEvent(
			tenantID, uuid.New(), "SALE-002",
			decimal.NewFromInt(59), decimal.NewFromInt(50), decimal.NewFromInt(9),
			valueobject.PaymentMethodBank, nil,
		)

		require.NoError(t, handler.Handle(ctx, event))
		entry := poster.last()
		require.NotNil(t, entry)
		assert.Equal(t, chart.Bank, entry.Lines[0].AccountCode)
	})

	t.Run("no lines means no cost estimate pair", func(t *testing.T) {
		poster := &capturingPoster{}
		handler := NewSaleProcessedHandler(poster, chart, costFraction, zap.NewNop())

		event := trade.NewSaleProcessedEvent(
			tenantID, uuid.New(), "SALE-003",
			decimal.NewFromInt(118), decimal.NewFromInt(100), decimal.NewFromInt(18),
			valueobject.PaymentMethodCash, nil,
		)

		require.NoError(t, handler.Handle(ctx, event))
		require.NotNil(t, poster.last())
		assert.Len(t, poster.last().Lines, 3)
	})

	t.Run("estimate sums and rounds across lines", func(t *testing.T) {
		poster := &capturingPoster{}
		handler := NewSaleProcessedHandler(poster, chart, costFraction, zap.NewNop())

		event := trade.NewSaleProcessedEvent(
			tenantID, uuid.New(), "SALE-004",
			decimal.NewFromFloat(35.40), decimal.NewFromFloat(30.00), decimal.NewFromFloat(5.40),
			valueobject.PaymentMethodCash,
			[]trade.SaleLine{
				{ProductRef: "SKU-1", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromFloat(9.99)},
				{ProductRef: "SKU-2", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromFloat(10.02)},
			},
		)

		require.NoError(t, handler.Handle(ctx, event))
		entry := poster.last()
		require.NotNil(t, entry)
		// 0.70 × (2×9.99 + 10.02) = 21.00
		assert.True(t, entry.Lines[3].Debit.Equal(decimal.NewFromInt(21)), "got %s", entry.Lines[3].Debit)
	})

	t.Run("rejects foreign event types", func(t *testing.T) {
		poster := &capturingPoster{}
		handler := NewSaleProcessedHandler(poster, chart, costFraction, zap.NewNop())

		event := trade.NewDocumentIssuedEvent(tenantID, uuid.New(), "DOC-1", trade.DocumentTypeSalesInvoice, decimal.NewFromInt(1), time.Now())
		assert.Error(t, handler.Handle(ctx, event))
		assert.Nil(t, poster.last())
	})
}
