package selection

import (
	"sort"
	"strconv"
	"strings"
)

// ParseRange resolves a range expression such as "1-5 8 10-12" against a
// list of n items. Numbers are 1-based; the returned indices are 0-based,
// sorted and free of duplicates. Tokens are separated by spaces or commas.
// Malformed and out-of-bounds tokens are ignored, and a range that runs past
// either end keeps only its in-bounds part.
func ParseRange(expr string, n int) []int {
	seen := make(map[int]bool)
	fields := strings.FieldsFunc(expr, func(r rune) bool {
		return r == ' ' || r == ','
	})

	for _, tok := range fields {
		lo, hi, ok := parseToken(tok)
		if !ok {
			continue
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		lo, hi = max(lo, 1), min(hi, n)
		for i := lo; i <= hi; i++ {
			seen[i-1] = true
		}
	}

	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// parseToken parses "N" or "N-M".
func parseToken(tok string) (lo, hi int, ok bool) {
	a, b, isRange := strings.Cut(tok, "-")
	lo, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, false
	}
	if !isRange {
		return lo, lo, true
	}
	hi, err = strconv.Atoi(b)
	if err != nil {
		return 0, 0, false
	}
	return lo, hi, true
}
