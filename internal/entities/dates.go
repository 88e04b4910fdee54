package entities

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the fixed-width text form used for dates in the store and in
// CSV files. Values are written in UTC so that lexical order matches time order.
const DateLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatDate renders t with DateLayout.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate reads a date written by FormatDate. RFC 3339 and offset-less
// ISO-8601 timestamps (interpreted in local time) are also accepted.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range []string{DateLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %q", s)
}
