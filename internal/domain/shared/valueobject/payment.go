package valueobject

// PaymentMethod represents how money was received or paid out
type PaymentMethod string

const (
	// PaymentMethodCash settles against the cash account
	PaymentMethodCash PaymentMethod = "CASH"
	// PaymentMethodBank settles against the bank account
	PaymentMethodBank PaymentMethod = "BANK"
)

// String returns the string representation of PaymentMethod
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid returns true if the payment method is recognized
func (p PaymentMethod) IsValid() bool {
	return p == PaymentMethodCash || p == PaymentMethodBank
}
