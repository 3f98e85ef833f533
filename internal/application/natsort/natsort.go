// Package natsort compares strings with numeric awareness: runs of digits
// compare as numbers and everything else compares as case-insensitive text,
// so sector tags sort "1", "2", "10" rather than "1", "10", "2".
package natsort

import (
	"strings"
	"unicode"
)

// Compare returns -1, 0, or 1 ordering a before, equal to, or after b.
// Digit runs are compared by length-then-value so arbitrarily long runs never
// overflow; non-digit runs compare case-insensitively. Equal keys under
// case-folding fall back to a byte comparison for a stable total order.
func Compare(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			ia, na := digitRun(a, i)
			jb, nb := digitRun(b, j)
			if c := compareDigits(na, nb); c != 0 {
				return c
			}
			i, j = ia, jb
			continue
		}
		ra := unicode.ToLower(rune(ca))
		rb := unicode.ToLower(rune(cb))
		if ra != rb {
			if ra < rb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case len(a)-i < len(b)-j:
		return -1
	case len(a)-i > len(b)-j:
		return 1
	}
	// Case-insensitively equal: fall back to exact bytes so the order is total.
	return strings.Compare(a, b)
}

// Less reports whether a orders before b under Compare.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// digitRun returns the index just past the digit run starting at i and the
// run itself with leading zeros stripped.
func digitRun(s string, i int) (int, string) {
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	run := s[start:i]
	trimmed := strings.TrimLeft(run, "0")
	if trimmed == "" {
		trimmed = "0"
	}
	return i, trimmed
}

// compareDigits compares two zero-stripped digit runs as numbers.
func compareDigits(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
