package canonical

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"pobackend/internal/model"
)

// Scale is the number of decimal places every canonical amount carries.
const Scale = 2

// maxExponent bounds the decimal exponent taken verbatim from input text.
// Rounding rescales by 10^|exp|, so larger exponents go through float64.
const maxExponent = 64

// Amount parses a numeric-like value and rounds it to Scale places.
// Empty, unparsable and non-finite input yields zero.
func Amount(n model.Number) decimal.Decimal {
	return Round2(Parse(n))
}

// Parse returns the full-precision value of n, or zero when n is not a
// finite number.
func Parse(n model.Number) decimal.Decimal {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return decimal.Zero
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		// accepted by ParseFloat only (hex floats and the like)
		return decimal.NewFromFloat(f)
	}
	if e := d.Exponent(); e > maxExponent || e < -maxExponent {
		return decimal.NewFromFloat(f)
	}
	return d
}

// Round2 rounds half away from zero to Scale places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

// DeriveAmount computes quantity * rate * (1 + gst/100) at full precision
// and rounds once.
func DeriveAmount(quantity, rate, gst decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(gst.Shift(-2))
	return Round2(quantity.Mul(rate).Mul(factor))
}
