package accounting

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nexa-erp/backend/internal/domain/accounting"
	"github.com/nexa-erp/backend/internal/domain/finance"
	"github.com/nexa-erp/backend/internal/domain/shared/valueobject"
)

func TestInvoiceCollectedHandler(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	chart := accounting.DefaultChartPolicy()

	t.Run("clears the receivable", func(t *testing.T) {
		poster := &capturingPoster{}
		handler := NewInvoiceCollectedHandler(poster, chart, zap.NewNop())

		event := finance.NewInvoiceCollectedEvent(
			tenantID, uuid.New(), "INV-001",
			decimal.NewFromFloat(118.00), valueobject.PaymentMethodBank,
		)
		require.NoError(t, handler.Handle(ctx, event))

		entry := poster.last()
		require.NotNil(t, entry)
		assert.Equal(t, accounting.EntryStatusConfirmed, entry.Status)
		assert.Equal(t, "INV-001", entry.Reference)
		require.Len(t, entry.Lines, 2)
		assert.Equal(t, chart.Bank, entry.Lines[0].AccountCode)
		assert.Equal(t, chart.AccountsReceivable, entry.Lines[1].AccountCode)
		assert.True(t, entry.IsBalanced())
	})
}

func TestExpenseRecordedHandler(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	chart := accounting.DefaultChartPolicy()

	t.Run("books the expense against cash", func(t *testing.T) {
		poster := &capturingPoster{}
		handler := NewExpenseRecordedHandler(poster, chart, zap.NewNop())

		event := finance.NewExpenseRecordedEvent(
			tenantID, uuid.New(), "EXP-001", "office supplies",
			decimal.NewFromInt(200), valueobject.PaymentMethodCash,
		)
		require.NoError(t, handler.Handle(ctx, event))

		entry := poster.last()
		require.NotNil(t, entry)
		require.Len(t, entry.Lines, 2)
		assert.Equal(t, chart.OperatingExpense, entry.Lines[0].AccountCode)
		assert.True(t, entry.Lines[0].Debit.Equal(decimal.NewFromInt(200)))
		assert.Equal(t, chart.Cash, entry.Lines[1].AccountCode)
		assert.True(t, entry.Lines[1].Credit.Equal(decimal.NewFromInt(200)))
	})
}
