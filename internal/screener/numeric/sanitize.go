// Package numeric is the single gate through which raw snapshot values
// enter arithmetic. Upstream scrapers deliver numbers, nulls and text with
// thousands separators, percent signs or currency glyphs; everything is
// reduced here to a clamped, 2-decimal float or nil.
package numeric

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultMaxMagnitude is the saturation bound applied when no explicit
// bound is given. It matches the numeric(12,2) storage columns.
const DefaultMaxMagnitude = 9999999999.99

// markerStripper removes formatting the scrapers leave behind. The glyph
// list covers every currency seen in the source feeds.
var markerStripper = strings.NewReplacer(
	",", "",
	"%", "",
	"₹", "",
	"$", "",
	"€", "",
	"£", "",
	" ", "",
)

// Sanitize normalizes a raw value into a bounded, rounded float.
//
// It accepts nil, any Go numeric type, or text. Unparseable input and NaN
// yield nil; out-of-range values saturate at ±maxMagnitude, preserving
// sign. The result is rounded to 2 decimal places. Sanitize never panics
// and never returns an error: degraded input degrades to nil.
func Sanitize(value any, maxMagnitude float64) *float64 {
	if value == nil {
		return nil
	}

	var num float64
	switch v := value.(type) {
	case float64:
		num = v
	case float32:
		num = float64(v)
	case int:
		num = float64(v)
	case int32:
		num = float64(v)
	case int64:
		num = float64(v)
	case *float64:
		if v == nil {
			return nil
		}
		num = *v
	case *string:
		if v == nil {
			return nil
		}
		return parse(*v, maxMagnitude)
	case string:
		return parse(v, maxMagnitude)
	default:
		return parse(fmt.Sprintf("%v", value), maxMagnitude)
	}

	return bound(num, maxMagnitude)
}

// SanitizeDefault applies Sanitize with DefaultMaxMagnitude.
func SanitizeDefault(value any) *float64 {
	return Sanitize(value, DefaultMaxMagnitude)
}

func parse(s string, maxMagnitude float64) *float64 {
	cleaned := strings.TrimSpace(markerStripper.Replace(s))
	if cleaned == "" {
		return nil
	}

	num, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}

	return bound(num, maxMagnitude)
}

func bound(num, maxMagnitude float64) *float64 {
	if math.IsNaN(num) {
		return nil
	}
	if num > maxMagnitude {
		num = maxMagnitude
	} else if num < -maxMagnitude {
		num = -maxMagnitude
	}

	rounded := Round2(num)
	return &rounded
}

// Round2 rounds half away from zero to 2 decimal places.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Ptr returns a pointer to v. Convenience for literals in callers and tests.
func Ptr(v float64) *float64 {
	return &v
}
