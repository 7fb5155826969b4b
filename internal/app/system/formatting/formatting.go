// Package formatting turns raw model statistics and company names into the
// short strings shown on dashboard cards.
package formatting

import (
	"math"
	"strconv"

	"github.com/dalemusser/modeldash/internal/domain/models"
)

// FallbackGlyph is shown for companies without a dedicated glyph.
const FallbackGlyph = "🔬"

var companyGlyphs = map[string]string{
	"OpenAI":       "🤖",
	"Google":       "G",
	"Anthropic":    "A",
	"Meta":         "M",
	"Microsoft":    "⚡",
	"Stability AI": "S",
}

// FormatCount renders a download/like count: "N/A" for unavailable or zero,
// millions as "2.3M", thousands as "1.5K", anything smaller as-is. Scaled
// values are rounded to one decimal with exact halves rounded up, so 1250 is
// "1.3K" and 2,250,000 is "2.3M".
func FormatCount(c models.Count) string {
	n, ok := c.Value()
	if !ok || n == 0 || math.IsNaN(n) {
		return models.NotAvailable
	}
	switch {
	case n >= 1_000_000:
		return oneDecimal(n/1_000_000) + "M"
	case n >= 1_000:
		return oneDecimal(n/1_000) + "K"
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}

// oneDecimal formats a positive x with one decimal place, rounding an exact
// half at the second decimal up. strconv rounds exact halves to even. A
// float64 sits exactly on such a half only when 4x is an odd integer
// (fractional part .25 or .75); everything else already rounds to nearest.
func oneDecimal(x float64) string {
	if q := x * 4; q == math.Trunc(q) && math.Mod(q, 2) == 1 {
		return strconv.FormatFloat(math.Ceil(x*10)/10, 'f', 1, 64)
	}
	return strconv.FormatFloat(x, 'f', 1, 64)
}

// CompanyGlyph returns the short logo glyph for a company.
func CompanyGlyph(company string) string {
	if g, ok := companyGlyphs[company]; ok {
		return g
	}
	return FallbackGlyph
}
