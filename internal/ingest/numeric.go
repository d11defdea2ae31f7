package ingest

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumericOrNull parses a cell as a float.
// It returns nil for empty cells, unparsable text, NaN and ±Inf so that bad
// values surface as missing rather than as zero. A trailing "%" is accepted.
func ParseNumericOrNull(s string) *float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
