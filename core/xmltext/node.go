package xmltext

import (
	"math"
	"strconv"
	"strings"
)

// AttrKey is the reserved key under which element attributes are stored when
// attribute capture is enabled via [WithAttributes].
const AttrKey = "@attrs"

// coerceLeaf converts leaf text into its primitive value. The literals true,
// false and null become bool and nil, text that parses entirely as a finite
// number becomes float64, everything else stays a trimmed string. The empty
// string is never treated as a number.
func coerceLeaf(text string, coerce bool) any {
	trimmed := strings.TrimSpace(text)
	if !coerce {
		return trimmed
	}
	switch trimmed {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	case "":
		return trimmed
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
		return n
	}
	return trimmed
}

// merge inserts value under key following the arrayization rule: the first
// occurrence is stored bare, a repeat promotes the slot to an ordered slice.
// Without arrayization the last write wins.
func merge(node map[string]any, key string, value any, arrayize bool) {
	existing, seen := node[key]
	if !seen || !arrayize {
		node[key] = value
		return
	}
	if seq, ok := existing.([]any); ok {
		node[key] = append(seq, value)
		return
	}
	node[key] = []any{existing, value}
}
