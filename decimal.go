package coinpnl

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the canonical number of fractional digits for every stored
// amount and price. All arithmetic rescales its result to this scale,
// rounding half-up.
const Scale = 8

// divScale is the working scale for divisions before the result is
// brought back to Scale.
const divScale = 24

// Decimal is an exact decimal number with canonical scale 8.
// The zero value is the number 0.
type Decimal struct {
	v decimal.Decimal
}

var (
	Zero = Decimal{}
	One  = mustDecimal("1")
)

// ParseDecimal parses s into a Decimal, rescaling to the canonical scale.
// It rejects anything that is not a plain decimal number.
func ParseDecimal(s string) (Decimal, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return Decimal{v.Round(Scale)}, nil
}

func mustDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Decimal) Add(o Decimal) Decimal { return Decimal{d.v.Add(o.v).Round(Scale)} }
func (d Decimal) Sub(o Decimal) Decimal { return Decimal{d.v.Sub(o.v).Round(Scale)} }
func (d Decimal) Mul(o Decimal) Decimal { return Decimal{d.v.Mul(o.v).Round(Scale)} }

// Div divides d by o. Division is carried out at a higher working scale
// and the result is rounded half-up back to the canonical scale.
func (d Decimal) Div(o Decimal) (Decimal, error) {
	if o.v.IsZero() {
		return Decimal{}, fmt.Errorf("division of %s by zero", d.Nice())
	}
	return Decimal{d.v.DivRound(o.v, divScale).Round(Scale)}, nil
}

func (d Decimal) Negate() Decimal { return Decimal{d.v.Neg()} }
func (d Decimal) Abs() Decimal    { return Decimal{d.v.Abs()} }

func (d Decimal) IsZero() bool     { return d.v.IsZero() }
func (d Decimal) IsPositive() bool { return d.v.IsPositive() }
func (d Decimal) IsNegative() bool { return d.v.IsNegative() }

// Equal reports numeric equality, regardless of representation.
func (d Decimal) Equal(o Decimal) bool    { return d.v.Equal(o.v) }
func (d Decimal) LessThan(o Decimal) bool { return d.v.LessThan(o.v) }

// String renders the number with exactly Scale fractional digits.
func (d Decimal) String() string { return d.v.StringFixed(Scale) }

// Float64 returns the nearest float64. Display only, never feed the
// result back into the accounting.
func (d Decimal) Float64() float64 {
	f, _ := d.v.Float64()
	return f
}

// Nice renders the number without trailing zeros, "0" for zero.
func (d Decimal) Nice() string {
	if d.v.IsZero() {
		return "0"
	}
	s := strings.TrimRight(d.String(), "0")
	return strings.TrimSuffix(s, ".")
}
