package validators

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// NormalizeTitle puts the title on one line, trims it, upper-cases its first
// letter and lower-cases the rest. Blank input yields an empty string.
func NormalizeTitle(title string) string {
	title = strings.TrimSpace(lineBreaks.Replace(title))
	if title == "" {
		return ""
	}

	first, size := utf8.DecodeRuneInString(title)
	return string(unicode.ToUpper(first)) + strings.ToLower(title[size:])
}
