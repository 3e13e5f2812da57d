package tabular

import (
	"math"
	"strconv"
	"strings"
)

var emptyNumberMarkers = map[string]struct{}{
	"nan": {}, "none": {}, "null": {}, "na": {}, "n/a": {}, "-": {},
}

// ParseNumber coerces the numeric spellings found in spreadsheet exports:
// thousands separators ("1,234,567"), embedded spaces ("1 234"), delta
// markers ("▲12.5" is positive, "▼100" is negative), percentages ("12.5%"
// keeps its magnitude, it is not divided by 100), explicit plus signs and
// currency glyphs. Values with multiple decimal points, multiple minus
// signs or an interior minus are rejected.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if _, empty := emptyNumberMarkers[strings.ToLower(s)]; empty {
		return 0, false
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")

	negative := false
	if strings.Contains(s, "▼") {
		negative = true
		s = strings.ReplaceAll(s, "▼", "")
	}
	if strings.Contains(s, "▲") {
		s = strings.ReplaceAll(s, "▲", "")
	}

	s = strings.ReplaceAll(s, "%", "")
	s = strings.ReplaceAll(s, "+", "")

	// Drop currency glyphs and any other decoration, keeping digits, the
	// decimal point and the minus sign.
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	s = b.String()

	switch s {
	case "", "-", ".", "-.", ".-":
		return 0, false
	}
	if strings.Count(s, ".") > 1 {
		return 0, false
	}
	if strings.Count(s, "-") > 1 {
		return 0, false
	}
	if i := strings.Index(s, "-"); i > 0 {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	if negative {
		f = -math.Abs(f)
	}
	return f, true
}
