package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount leniently converts a stored amount. Numbers and numeric strings
// are accepted; anything else yields an invalid NullDecimal rather than an error.
func ParseAmount(v any) decimal.NullDecimal {
	switch t := v.(type) {
	case nil:
		return decimal.NullDecimal{}
	case decimal.Decimal:
		return decimal.NewNullDecimal(t)
	case float64:
		return decimal.NewNullDecimal(decimal.NewFromFloat(t))
	case float32:
		return decimal.NewNullDecimal(decimal.NewFromFloat32(t))
	case int:
		return decimal.NewNullDecimal(decimal.NewFromInt(int64(t)))
	case int64:
		return decimal.NewNullDecimal(decimal.NewFromInt(t))
	case int32:
		return decimal.NewNullDecimal(decimal.NewFromInt32(t))
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return decimal.NullDecimal{}
		}
		return decimal.NewNullDecimal(d)
	default:
		return decimal.NullDecimal{}
	}
}
