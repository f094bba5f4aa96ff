package pay

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrCurrencyMismatch = errors.New("currency mismatch")

// Amount is a currency-tagged decimal value.
type Amount struct {
	currency string
	value    decimal.Decimal
}

func NewAmount(currency string, value decimal.Decimal) Amount {
	return Amount{currency: currency, value: value}
}

// ParseAmount builds an Amount from a decimal string such as "12.50".
func ParseAmount(currency, value string) (Amount, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Amount{}, fmt.Errorf("parse amount %q: %w", value, err)
	}
	return Amount{currency: currency, value: d}, nil
}

func (a Amount) Currency() string { return a.currency }

func (a Amount) Value() decimal.Decimal { return a.value }

func (a Amount) IsZero() bool { return a.value.IsZero() }

// Add sums two amounts of the same currency.
func (a Amount) Add(other Amount) (Amount, error) {
	if a.currency != other.currency {
		return Amount{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, a.currency, other.currency)
	}
	return Amount{currency: a.currency, value: a.value.Add(other.value)}, nil
}

func (a Amount) String() string {
	return a.value.String() + " " + a.currency
}
