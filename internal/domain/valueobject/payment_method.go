package valueobject

import "fmt"

// PaymentMethod represents how a customer settled an amount.
type PaymentMethod struct {
	value string
}

var (
	PaymentMethodCash     = PaymentMethod{"CASH"}
	PaymentMethodCard     = PaymentMethod{"CARD"}
	PaymentMethodTransfer = PaymentMethod{"TRANSFER"}
	PaymentMethodCredit   = PaymentMethod{"CREDIT"}
)

var validPaymentMethods = map[string]PaymentMethod{
	"CASH":     PaymentMethodCash,
	"CARD":     PaymentMethodCard,
	"TRANSFER": PaymentMethodTransfer,
	"CREDIT":   PaymentMethodCredit,
}

// NewPaymentMethod validates and creates a PaymentMethod from a string.
func NewPaymentMethod(s string) (PaymentMethod, error) {
	if method, ok := validPaymentMethods[s]; ok {
		return method, nil
	}
	return PaymentMethod{}, fmt.Errorf("invalid payment method: %q", s)
}

// String returns the string representation of the payment method.
func (m PaymentMethod) String() string {
	return m.value
}

// IsZero returns true if the method is uninitialized.
func (m PaymentMethod) IsZero() bool {
	return m.value == ""
}
