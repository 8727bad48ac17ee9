// Package decimal wraps github.com/shopspring/decimal with the
// fixed-precision, pack/unpack-able exact decimal contract the
// simulation kernel's books and accounts are built on.
package decimal

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// DefaultPlaces is the default number of fractional digits used by
// Round when no explicit precision is given.
const DefaultPlaces = 8

// Decimal is an exact, arbitrary-precision decimal number with total
// ordering consistent with real-number ordering on representable
// values.
type Decimal struct {
	d decimal.Decimal
}

// Zero is the additive identity.
var Zero = Decimal{d: decimal.Zero}

// New builds a Decimal from an integer coefficient and base-10 exponent,
// i.e. value == coefficient * 10^exponent.
func New(coefficient int64, exponent int32) Decimal {
	return Decimal{d: decimal.New(coefficient, exponent)}
}

// NewFromFloat builds a Decimal from the shortest decimal form of a
// float64; no rounding is applied. Use sparingly — prefer
// NewFromString for literals.
func NewFromFloat(f float64) Decimal {
	return Decimal{d: decimal.NewFromFloat(f)}
}

// NewFromString parses an exact decimal literal such as "42.32125839".
func NewFromString(s string) (Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{d: d}, nil
}

// NewFromInt builds a Decimal representing an integer value exactly.
func NewFromInt(i int64) Decimal {
	return Decimal{d: decimal.NewFromInt(i)}
}

func (x Decimal) String() string { return x.d.String() }

// Float64 gives a lossy float64 approximation, the analogue of the
// original's decimal2double — intended for display/wire JSON, never
// for accounting math.
func (x Decimal) Float64() float64 {
	f, _ := x.d.Float64()
	return f
}

// Cmp implements total ordering: -1, 0, or 1 as x is less than, equal
// to, or greater than y.
func (x Decimal) Cmp(y Decimal) int { return x.d.Cmp(y.d) }

func (x Decimal) Equal(y Decimal) bool        { return x.d.Equal(y.d) }
func (x Decimal) LessThan(y Decimal) bool     { return x.d.Cmp(y.d) < 0 }
func (x Decimal) LessOrEqual(y Decimal) bool  { return x.d.Cmp(y.d) <= 0 }
func (x Decimal) GreaterThan(y Decimal) bool  { return x.d.Cmp(y.d) > 0 }
func (x Decimal) GreaterOrEqual(y Decimal) bool { return x.d.Cmp(y.d) >= 0 }
func (x Decimal) IsZero() bool                { return x.d.IsZero() }
func (x Decimal) IsNegative() bool            { return x.d.Sign() < 0 }
func (x Decimal) IsPositive() bool            { return x.d.Sign() > 0 }

func (x Decimal) Add(y Decimal) Decimal { return Decimal{d: x.d.Add(y.d)} }
func (x Decimal) Sub(y Decimal) Decimal { return Decimal{d: x.d.Sub(y.d)} }
func (x Decimal) Mul(y Decimal) Decimal { return Decimal{d: x.d.Mul(y.d)} }

// Div performs exact division rounded to DefaultPlaces fractional
// digits; the underlying arithmetic for +,-,* is exact, but division
// is not guaranteed to terminate, so it is rounded like the original's
// decimal_t division.
func (x Decimal) Div(y Decimal) Decimal {
	return Decimal{d: x.d.DivRound(y.d, DefaultPlaces)}
}

func (x Decimal) Neg() Decimal { return Decimal{d: x.d.Neg()} }

// Abs returns the absolute value, matching taosim::util::abs.
func (x Decimal) Abs() Decimal { return Decimal{d: x.d.Abs()} }

// FMA computes a*b + c in one exact operation, matching
// taosim::util::fma.
func FMA(a, b, c Decimal) Decimal {
	return Decimal{d: a.d.Mul(b.d).Add(c.d)}
}

// Pow raises a to an integer power b, matching taosim::util::pow.
func Pow(a Decimal, b int32) Decimal {
	return Decimal{d: a.d.Pow(decimal.New(int64(b), 0))}
}

// OnePlus returns 1 + val, matching taosim::util::dec1p.
func OnePlus(val Decimal) Decimal { return one.Add(val) }

// OneMinus returns 1 - val, matching taosim::util::dec1m.
func OneMinus(val Decimal) Decimal { return one.Sub(val) }

// InvOnePlus returns 1 / (1 + val), matching taosim::util::decInv1p.
// The collateral multiplier 1 + 1/leverage is OnePlus of a plain Div,
// not this function.
func InvOnePlus(val Decimal) Decimal { return one.Div(OnePlus(val)) }

var one = Decimal{d: decimal.NewFromInt(1)}

// Trunc rounds toward zero to at most n fractional digits.
func (x Decimal) Trunc(n int32) Decimal {
	return Decimal{d: x.d.Truncate(n)}
}

// Round is an alias for Trunc at DefaultPlaces, matching
// taosim::util::round (which truncates, despite the name).
func (x Decimal) Round() Decimal { return x.Trunc(DefaultPlaces) }

// CeilTo rounds toward +infinity to at most n fractional digits: the
// result has <= n fractional digits, result >= x, and no smaller
// representable value with <= n digits also satisfies >= x.
//
// Shift (not Div) moves the decimal point exactly, so the intermediate
// scaling never loses precision the way a generic division would.
func (x Decimal) CeilTo(n int32) Decimal {
	scaled := x.d.Shift(n)   // x * 10^n, exact
	ceiled := scaled.Ceil()  // integer part, rounded toward +inf
	return Decimal{d: ceiled.Shift(-n)} // / 10^n, exact
}

// RoundUp is an alias for CeilTo.
func (x Decimal) RoundUp(n int32) Decimal { return x.CeilTo(n) }

// RoundTo rounds half-away-from-zero to n fractional digits, the
// "rounded to roundingDecimals on entry" normalization accounting
// balances apply to every credit/debit amount.
func (x Decimal) RoundTo(n int32) Decimal { return Decimal{d: x.d.Round(n)} }

// MarshalJSON encodes the lossy float64 form used on public wire
// messages (decimal2double equivalent). Checkpoint-shaped structures
// that need exact round-tripping should use Pack/Unpack instead.
func (x Decimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.Float64())
}

// UnmarshalJSON accepts either a JSON number or a quoted exact
// literal, matching how shopspring/decimal parses wire payloads.
func (x *Decimal) UnmarshalJSON(data []byte) error {
	return x.d.UnmarshalJSON(data)
}
