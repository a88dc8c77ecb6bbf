package insights

import (
	"time"

	"github.com/shopspring/decimal"
)

// Classification labels for the derived financial indicators. The
// thresholds are a fixed lookup table, not configurable state.
type (
	// LiquidityClass rates short-term payment capacity
	LiquidityClass string
	// ProfitabilityClass rates the trading margin
	ProfitabilityClass string
	// GrowthClass rates recent sales momentum
	GrowthClass string
)

const (
	LiquidityExcellent LiquidityClass = "EXCELLENT"
	LiquidityGood      LiquidityClass = "GOOD"
	LiquidityAdequate  LiquidityClass = "ADEQUATE"
	LiquidityTight     LiquidityClass = "TIGHT"

	ProfitabilityExcellent ProfitabilityClass = "EXCELLENT"
	ProfitabilityGood      ProfitabilityClass = "GOOD"
	ProfitabilityThin      ProfitabilityClass = "THIN"
	ProfitabilityLoss      ProfitabilityClass = "LOSS"

	GrowthGrowing   GrowthClass = "GROWING"
	GrowthStable    GrowthClass = "STABLE"
	GrowthDeclining GrowthClass = "DECLINING"
)

// Indicators are the numeric inputs backing a snapshot
type Indicators struct {
	Sales30d               decimal.Decimal `json:"sales_30d"`
	Sales60d               decimal.Decimal `json:"sales_60d"`
	Purchases30d           decimal.Decimal `json:"purchases_30d"`
	OutstandingReceivables decimal.Decimal `json:"outstanding_receivables"`
	OutstandingPayables    decimal.Decimal `json:"outstanding_payables"`
	LiquidityRatio         decimal.Decimal `json:"liquidity_ratio"`
	Margin                 decimal.Decimal `json:"margin"`
	GrowthRatio            decimal.Decimal `json:"growth_ratio"`
}

// KPISnapshot is a cached view of the computed indicators. It is valid
// until the TTL elapses or a mutating business event invalidates it.
type KPISnapshot struct {
	Liquidity     LiquidityClass     `json:"liquidity"`
	Profitability ProfitabilityClass `json:"profitability"`
	Growth        GrowthClass        `json:"growth"`
	Indicators    Indicators         `json:"indicators"`
	ComputedAt    time.Time          `json:"computed_at"`
}

// Age returns how long ago the snapshot was computed
func (s *KPISnapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.ComputedAt)
}

var (
	liquidityExcellentMin = decimal.NewFromInt(2)
	liquidityGoodMin      = decimal.NewFromFloat(1.5)
	liquidityAdequateMin  = decimal.NewFromInt(1)

	marginExcellentMin = decimal.NewFromFloat(0.30)
	marginGoodMin      = decimal.NewFromFloat(0.15)

	growthGrowingMin = decimal.NewFromFloat(1.2)
	growthStableMin  = decimal.NewFromFloat(0.95)
)

// ClassifyLiquidity rates the ratio of liquid claims to short-term debt
func ClassifyLiquidity(ratio decimal.Decimal) LiquidityClass {
	switch {
	case ratio.GreaterThanOrEqual(liquidityExcellentMin):
		return LiquidityExcellent
	case ratio.GreaterThanOrEqual(liquidityGoodMin):
		return LiquidityGood
	case ratio.GreaterThanOrEqual(liquidityAdequateMin):
		return LiquidityAdequate
	default:
		return LiquidityTight
	}
}

// ClassifyProfitability rates the 30-day trading margin
func ClassifyProfitability(margin decimal.Decimal) ProfitabilityClass {
	switch {
	case margin.GreaterThanOrEqual(marginExcellentMin):
		return ProfitabilityExcellent
	case margin.GreaterThanOrEqual(marginGoodMin):
		return ProfitabilityGood
	case margin.IsPositive():
		return ProfitabilityThin
	default:
		return ProfitabilityLoss
	}
}

// ClassifyGrowth rates the ratio of the last 30 days of sales against
// the 30 days before them
func ClassifyGrowth(ratio decimal.Decimal) GrowthClass {
	switch {
	case ratio.GreaterThanOrEqual(growthGrowingMin):
		return GrowthGrowing
	case ratio.GreaterThanOrEqual(growthStableMin):
		return GrowthStable
	default:
		return GrowthDeclining
	}
}

// ComputeSnapshot derives classifications from raw aggregates. Ratios
// with a zero denominator degrade to zero rather than erroring, which
// yields the most pessimistic class.
func ComputeSnapshot(ind Indicators, computedAt time.Time) *KPISnapshot {
	if !ind.OutstandingPayables.IsZero() {
		ind.LiquidityRatio = ind.OutstandingReceivables.Div(ind.OutstandingPayables)
	} else if ind.OutstandingReceivables.IsPositive() {
		// Claims with no short-term debt: best possible liquidity
		ind.LiquidityRatio = liquidityExcellentMin
	}
	if !ind.Sales30d.IsZero() {
		ind.Margin = ind.Sales30d.Sub(ind.Purchases30d).Div(ind.Sales30d)
	}
	previous30 := ind.Sales60d.Sub(ind.Sales30d)
	if !previous30.IsZero() {
		ind.GrowthRatio = ind.Sales30d.Div(previous30)
	}

	return &KPISnapshot{
		Liquidity:     ClassifyLiquidity(ind.LiquidityRatio),
		Profitability: ClassifyProfitability(ind.Margin),
		Growth:        ClassifyGrowth(ind.GrowthRatio),
		Indicators:    ind,
		ComputedAt:    computedAt,
	}
}
