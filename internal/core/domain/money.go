package domain

import (
	"strings"

	"github.com/shopspring/decimal"

	"credit-app/pkg/apperror"
)

// DefaultCurrency is applied when a caller does not name one.
const DefaultCurrency = "USD"

// Money is an immutable non-negative amount tagged with an upper-case currency code.
// The zero value is not valid; construct with NewMoney.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney validates and normalizes an amount/currency pair.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, apperror.ValidationField("amount", "amount cannot be negative")
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return Money{}, apperror.ValidationField("currency", "currency cannot be blank")
	}
	return Money{amount: amount, currency: currency}, nil
}

// MustMoney is NewMoney for literals known to be valid. It panics otherwise.
func MustMoney(amount, currency string) Money {
	m, err := NewMoney(decimal.RequireFromString(amount), currency)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }

func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, apperror.ErrCurrencyMismatch(m.currency, other.currency)
	}
	return NewMoney(m.amount.Add(other.amount), m.currency)
}

// Sub fails when currencies differ or when the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, apperror.ErrCurrencyMismatch(m.currency, other.currency)
	}
	return NewMoney(m.amount.Sub(other.amount), m.currency)
}

func (m Money) Mul(factor decimal.Decimal) (Money, error) {
	return NewMoney(m.amount.Mul(factor), m.currency)
}

func (m Money) Div(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, apperror.ErrDivisionByZero()
	}
	return NewMoney(m.amount.Div(divisor), m.currency)
}

// Equal compares amounts numerically, so 10 and 10.00 are equal.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) IsZero() bool { return m.amount.IsZero() }

func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}
