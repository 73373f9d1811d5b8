package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spigell/talent-match/internal/records"
)

var monthlyPattern = regexp.MustCompile(`(?i)mensal\s*/\s*([\d.,]+)`)

// Compensation extracts the monthly amount from free-text compensation such as
// "Mensal / 5.000,00". Text without a monthly amount yields 0.
func Compensation(v any) float64 {
	if f, ok := typedFloat(v); ok {
		return f
	}

	match := monthlyPattern.FindStringSubmatch(records.ValueAsString(v))
	if match == nil {
		return 0
	}
	return parseBrazilianNumber(match[1])
}

// SaleValue reads a currency amount such as "R$ 10.000,00". Ranges, per-month
// figures and ambiguous thousand separators yield 0.
func SaleValue(v any) float64 {
	if f, ok := typedFloat(v); ok {
		return f
	}

	s := strings.TrimSpace(records.ValueAsString(v))
	if s == "-" || strings.Contains(s, "p/ mês") || strings.Contains(s, "(") || strings.Count(s, ".") > 1 {
		return 0
	}

	s = strings.ReplaceAll(s, "R$", "")
	return parseBrazilianNumber(s)
}

// parseBrazilianNumber drops thousand separators, turns the decimal comma into a
// point and ignores every other non-numeric character.
func parseBrazilianNumber(s string) float64 {
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return f
}

func typedFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	default:
		return 0, false
	}
}
