package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/spigell/talent-match/internal/records"
)

// Day-first layouts tried before any generic parsing. Single-digit day and
// month are accepted by the layout itself.
var dayFirstLayouts = []string{
	"2-1-2006",
	"2-1-2006 15:04",
	"2-1-2006 15:04:05",
	"2/1/2006",
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
}

var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
}

func coerceString(v any) string {
	return records.ValueAsString(v)
}

// coerceTime returns a time.Time value or nil when v cannot be read as a timestamp.
func coerceTime(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case time.Time:
		if val.IsZero() {
			return nil
		}
		return val
	case *time.Time:
		if val == nil || val.IsZero() {
			return nil
		}
		return *val
	case string:
		if ts, ok := parseTimestamp(val); ok {
			return ts
		}
		return nil
	default:
		return nil
	}
}

func parseTimestamp(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dayFirstLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	for _, layout := range isoLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}

	// Anything containing a slash left here would be read month-first.
	if strings.Contains(s, "/") {
		return time.Time{}, false
	}
	ts, err := dateparse.ParseIn(s, time.UTC)
	if err != nil || ts.IsZero() {
		return time.Time{}, false
	}
	return ts, true
}

// coerceInt parses v as an integer, truncating fractional values. Failure yields 0.
func coerceInt(v any) int64 {
	switch val := v.(type) {
	case int64:
		return val
	case int:
		return int64(val)
	case int32:
		return int64(val)
	case float64:
		return truncate(val)
	case float32:
		return truncate(float64(val))
	case bool:
		if val {
			return 1
		}
		return 0
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		f, err := val.Float64()
		if err != nil {
			return 0
		}
		return truncate(f)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return 0
		}
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return n
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0
		}
		return truncate(f)
	default:
		return 0
	}
}

func truncate(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(f)
}
