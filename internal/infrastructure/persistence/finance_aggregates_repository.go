package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nexa-erp/backend/internal/domain/accounting"
	"github.com/nexa-erp/backend/internal/domain/insights"
)

// GormFinanceAggregates implements the FinanceAggregates port over the
// journal. The journal is the only financial source of truth here, so
// the sums read derived account activity: revenue credits count as
// sales, inventory debits as purchases, and the receivable/payable
// balances come from the running net of their control accounts.
type GormFinanceAggregates struct {
	db    *gorm.DB
	chart accounting.ChartPolicy
}

// NewGormFinanceAggregates creates a new GormFinanceAggregates
func NewGormFinanceAggregates(db *gorm.DB, chart accounting.ChartPolicy) *GormFinanceAggregates {
	return &GormFinanceAggregates{db: db, chart: chart}
}

// SumSales totals revenue credits within [from, to)
func (r *GormFinanceAggregates) SumSales(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	return r.sumLines(ctx, tenantID, r.chart.Revenue, "credit", &from, &to)
}

// SumPurchases totals inventory debits within [from, to)
func (r *GormFinanceAggregates) SumPurchases(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	return r.sumLines(ctx, tenantID, r.chart.Inventory, "debit", &from, &to)
}

// SumOutstandingReceivables nets the accounts receivable control account
func (r *GormFinanceAggregates) SumOutstandingReceivables(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	debits, err := r.sumLines(ctx, tenantID, r.chart.AccountsReceivable, "debit", nil, nil)
	if err != nil {
		return decimal.Zero, err
	}
	credits, err := r.sumLines(ctx, tenantID, r.chart.AccountsReceivable, "credit", nil, nil)
	if err != nil {
		return decimal.Zero, err
	}
	return debits.Sub(credits), nil
}

// SumOutstandingPayables nets the accounts payable control account
func (r *GormFinanceAggregates) SumOutstandingPayables(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	credits, err := r.sumLines(ctx, tenantID, r.chart.AccountsPayable, "credit", nil, nil)
	if err != nil {
		return decimal.Zero, err
	}
	debits, err := r.sumLines(ctx, tenantID, r.chart.AccountsPayable, "debit", nil, nil)
	if err != nil {
		return decimal.Zero, err
	}
	return credits.Sub(debits), nil
}

func (r *GormFinanceAggregates) sumLines(ctx context.Context, tenantID uuid.UUID, accountCode, column string, from, to *time.Time) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Table("journal_lines").
		Joins("JOIN journal_entries ON journal_entries.id = journal_lines.entry_id").
		Where("journal_entries.tenant_id = ?", tenantID).
		Where("journal_lines.account_code = ?", accountCode)
	if from != nil && to != nil {
		query = query.Where("journal_entries.entry_date >= ? AND journal_entries.entry_date < ?", *from, *to)
	}

	var total decimal.Decimal
	row := query.Select("COALESCE(SUM(journal_lines." + column + "), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// Ensure interface compliance
var _ insights.FinanceAggregates = (*GormFinanceAggregates)(nil)
