package prepare

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// parseCountOr coerces a spreadsheet cell to a non-negative integer.
// Thousands separators are stripped and fractions truncated; blank,
// non-numeric, non-finite and negative values return def.
func parseCountOr(s string, def int) int {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || s == "-" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		if v < 0 {
			return def
		}
		return v
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f >= float64(math.MaxInt64) {
		return def
	}
	return int(f)
}

// normalizeDistrict trims and NFC-normalizes a district name so that keys
// from different workbooks compare equal.
func normalizeDistrict(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
