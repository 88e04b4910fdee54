package entities

import (
	"fmt"
	"strings"
)

// Kind is the variant tag of a catalog item, persisted in the items table.
type Kind string

const (
	KindBook      Kind = "Book"
	KindAudiobook Kind = "Audiobook"

	// KindAll is the search filter matching every variant.
	KindAll Kind = ""
)

// ParseKind maps a variant tag to a Kind. Both the canonical English tags and
// the Spanish tags used by legacy CSV files are accepted.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "book", "libro":
		return KindBook, true
	case "audiobook", "audiolibro":
		return KindAudiobook, true
	default:
		return "", false
	}
}

// ParseKindFilter maps a search filter to a Kind. "All" (or empty) yields
// KindAll; singular and plural variant names are accepted.
func ParseKindFilter(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "todos":
		return KindAll, nil
	case "book", "books", "libro", "libros":
		return KindBook, nil
	case "audiobook", "audiobooks", "audiolibro", "audiolibros":
		return KindAudiobook, nil
	default:
		return "", &ValidationError{
			Field:   "Kind",
			Message: fmt.Sprintf("unknown kind filter %q (use All, Book or Audiobook)", s),
		}
	}
}
