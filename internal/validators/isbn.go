// Package validators holds the format checks shared by the catalog model:
// the ISBN-10 check digit and title normalization.
package validators

import "strings"

// ISBN10Length is the number of characters in an ISBN-10 code.
const ISBN10Length = 10

// ValidISBN10 reports whether code is a well-formed ISBN-10.
//
// Surrounding whitespace is ignored. Every position must be a decimal digit,
// except the last which may also be 'X' or 'x' (worth 10). The weighted sum
// of value[i] * (10 - i) must be a multiple of 11.
func ValidISBN10(code string) bool {
	code = strings.TrimSpace(code)
	if len(code) != ISBN10Length {
		return false
	}

	sum := 0
	for i := 0; i < ISBN10Length; i++ {
		c := code[i]

		var value int
		switch {
		case c >= '0' && c <= '9':
			value = int(c - '0')
		case i == ISBN10Length-1 && (c == 'X' || c == 'x'):
			value = 10
		default:
			return false
		}

		sum += value * (ISBN10Length - i)
	}

	return sum%11 == 0
}
