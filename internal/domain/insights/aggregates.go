package insights

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinanceAggregates is the read-only query surface the indicator cache
// computes from. Implementations sum over the sales, purchases,
// receivables and payables tables by date range.
type FinanceAggregates interface {
	// SumSales totals completed sales within [from, to)
	SumSales(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error)

	// SumPurchases totals received purchases within [from, to)
	SumPurchases(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error)

	// SumOutstandingReceivables totals uncollected customer claims
	SumOutstandingReceivables(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error)

	// SumOutstandingPayables totals unpaid supplier debt
	SumOutstandingPayables(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error)
}
