// Package money keeps currency amounts as integer cents so payroll sums of
// two-decimal inputs are exact.
package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in cents.
type Money int64

// MaxAbs bounds, in currency units, the amounts that convert to cents
// without overflowing int64.
const MaxAbs = float64(math.MaxInt64 / 100)

var ErrOutOfRange = errors.New("money: amount out of range")

// FromFloat converts without range checks. Use Parse for untrusted input.
func FromFloat(v float64) Money {
	return Money(math.Round(v * 100))
}

// Parse converts v to cents, rejecting NaN, infinities and magnitudes from MaxAbs up.
func Parse(v float64) (Money, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= MaxAbs {
		return 0, fmt.Errorf("%w: %g", ErrOutOfRange, v)
	}
	return FromFloat(v), nil
}

// Coerce reads a raw JSON value as a number. Numbers and numeric strings
// keep their value; anything else, including null and non-finite strings, is 0.
func Coerce(raw []byte) float64 {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func FromCents(c int64) Money {
	return Money(c)
}

func (m Money) Cents() int64 {
	return int64(m)
}

func (m Money) Float() float64 {
	return float64(m) / 100
}

// MulFloat multiplies by a factor (hours, fractions), rounding half away from zero to the cent.
func (m Money) MulFloat(f float64) Money {
	return Money(math.Round(float64(m) * f))
}

// Percent returns m * pct / 100 rounded to the cent.
func (m Money) Percent(pct float64) Money {
	return Money(math.Round(float64(m) * pct / 100))
}

func (m Money) String() string {
	return strconv.FormatFloat(m.Float(), 'f', 2, 64)
}

// Dollars formats as "$1234.50", or "$-200.00" for negatives.
func (m Money) Dollars() string {
	return fmt.Sprintf("$%.2f", m.Float())
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts numbers and numeric strings; null and "" become 0.
func (m *Money) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		v, err := Parse(f)
		if err != nil {
			return err
		}
		*m = v
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("money: cannot decode %s", string(data))
	}
	if s == "" {
		*m = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("money: invalid amount %q", s)
	}
	v, err := Parse(f)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
