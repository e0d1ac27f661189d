package shared

import "github.com/shopspring/decimal"

// Money columns are stored as decimal(10,2)
const (
	MoneyScale  = 2
	moneyDigits = 10
)

// MaxMoney is the largest amount a money column can hold
var MaxMoney = decimal.New(1, moneyDigits-MoneyScale).Sub(decimal.New(1, -MoneyScale))

// ValidateMoney rejects negative amounts, amounts with more than two
// decimal places and amounts beyond MaxMoney
func ValidateMoney(field string, amount decimal.Decimal) error {
	switch {
	case amount.IsNegative():
		return NewValidationError("%s cannot be negative", field)
	case !amount.Equal(amount.Truncate(MoneyScale)):
		return NewValidationError("%s cannot have more than %d decimal places", field, MoneyScale)
	case amount.GreaterThan(MaxMoney):
		return NewValidationError("%s cannot exceed %s", field, MaxMoney.StringFixed(MoneyScale))
	}
	return nil
}
