package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	// ErrInvalidAmount is returned for input that is not a decimal number
	// with at most two fractional digits.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNonPositiveAmount is returned by Validate for zero or negative
	// amounts.
	ErrNonPositiveAmount = errors.New("amount must be positive")
	// ErrUnknownCurrency is returned when a currency code is not ISO 4217.
	ErrUnknownCurrency = errors.New("unknown currency code")
)

// Amount is a monetary value in minor units (cents).
type Amount int64

// ParseAmount converts user decimal input like "12.34" into minor units.
// A leading minus sign is accepted so callers can give a precise
// validation error for negative input instead of a generic parse failure.
func ParseAmount(input string) (Amount, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, ErrInvalidAmount
	}
	if whole == "" {
		whole = "0"
	}

	// ParseUint keeps stray signs inside the number from slipping through.
	units, err := strconv.ParseUint(whole, 10, 63)
	if err != nil {
		return 0, errors.Join(ErrInvalidAmount, err)
	}
	if units > (1<<63-1)/100 {
		return 0, fmt.Errorf("%w: out of range", ErrInvalidAmount)
	}

	var cents uint64
	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("%w: at most two decimal places", ErrInvalidAmount)
		}
		cents, err = strconv.ParseUint(frac, 10, 63)
		if err != nil {
			return 0, errors.Join(ErrInvalidAmount, err)
		}
		if len(frac) == 1 {
			cents *= 10
		}
	}

	// units*100 cannot wrap uint64 after the range guard, but adding the
	// cents can still push the total past the int64 ceiling.
	total := units*100 + cents
	if total > 1<<63-1 {
		return 0, fmt.Errorf("%w: out of range", ErrInvalidAmount)
	}
	signed := int64(total)
	if negative {
		signed = -signed
	}
	return Amount(signed), nil
}

// Validate rejects amounts that cannot fund a wallet operation.
func (a Amount) Validate() error {
	if a <= 0 {
		return ErrNonPositiveAmount
	}
	return nil
}

// Float64 returns the amount in major units. Display only; arithmetic
// stays in minor units.
func (a Amount) Float64() float64 {
	return float64(a) / 100
}

// String formats the amount as a plain decimal without currency.
func (a Amount) String() string {
	sign := ""
	v := int64(a)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Format renders the amount with its currency symbol, e.g. "$12.34".
func Format(a Amount, code string) (string, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", errors.Join(ErrUnknownCurrency, err)
	}

	p := message.NewPrinter(language.English)
	return p.Sprint(currency.Symbol(unit.Amount(a.Float64()))), nil
}
