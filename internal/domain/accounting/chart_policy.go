package accounting

import "github.com/nexa-erp/backend/internal/domain/shared/valueobject"

// ChartPolicy maps posting roles to account codes of the chart of
// accounts. The chart is assumed static for the process lifetime;
// hot-reloading the account structure is not supported.
type ChartPolicy struct {
	Cash               string
	Bank               string
	AccountsReceivable string
	AccountsPayable    string
	Inventory          string
	TaxPayable         string
	Revenue            string
	CostOfGoodsSold    string
	PayrollExpense     string
	PayrollPayable     string
	OperatingExpense   string
	AdjustmentGain     string
	AdjustmentLoss     string
}

// DefaultChartPolicy returns the standard chart mapping
func DefaultChartPolicy() ChartPolicy {
	return ChartPolicy{
		Cash:               "1001",
		Bank:               "1002",
		AccountsReceivable: "1122",
		AccountsPayable:    "2202",
		Inventory:          "1405",
		TaxPayable:         "2221",
		Revenue:            "6001",
		CostOfGoodsSold:    "6401",
		PayrollExpense:     "6602",
		PayrollPayable:     "2211",
		OperatingExpense:   "6603",
		AdjustmentGain:     "6901",
		AdjustmentLoss:     "6711",
	}
}

// SettlementAccount returns the cash or bank account code for a
// payment method. Unknown methods settle against cash.
func (p ChartPolicy) SettlementAccount(method valueobject.PaymentMethod) string {
	if method == valueobject.PaymentMethodBank {
		return p.Bank
	}
	return p.Cash
}
