package entities

import (
	"fmt"
	"time"

	"github.com/mrlokans/libcatalog/internal/validators"
)

// MinYear is the earliest publication year accepted for a catalog item.
const MinYear = 1500

// Item is a catalog entry. It is implemented only by *Book and *Audiobook;
// callers switch on the concrete type (or on Kind) to reach variant fields.
type Item interface {
	Common() *CatalogItem
	Kind() Kind
	isCatalogItem()
}

// Rateable is implemented by items that accept ratings.
type Rateable interface {
	Item
	AddRating(r Rating) error
	AverageRating() float64
	RatingList() []Rating
}

// Lendable is implemented by items that can be lent and returned.
type Lendable interface {
	Item
	Lend()
	Return()
	IsAvailable() bool
}

// CatalogItem holds the fields shared by every variant.
// ID is zero until the item has been persisted.
type CatalogItem struct {
	ID              uint
	Title           string
	Year            int
	AcquisitionDate time.Time
	Ratings         []Rating
}

func newCatalogItem(title string, year int, acquired time.Time) (CatalogItem, error) {
	currentYear := time.Now().Year()
	if year < MinYear {
		return CatalogItem{}, &ValidationError{
			Field:   "Year",
			Message: fmt.Sprintf("year must be between %d and %d", MinYear, currentYear),
		}
	}
	if year > currentYear {
		year = currentYear
	}

	return CatalogItem{
		Title:           validators.NormalizeTitle(title),
		Year:            year,
		AcquisitionDate: acquired,
	}, nil
}

// Common returns the shared part of the item.
func (c *CatalogItem) Common() *CatalogItem { return c }

func (c *CatalogItem) isCatalogItem() {}

// IsPersisted reports whether the store has assigned an identifier.
func (c *CatalogItem) IsPersisted() bool { return c.ID != 0 }

// AddRating validates r and appends it to the item's ratings.
func (c *CatalogItem) AddRating(r Rating) error {
	if err := r.Validate(); err != nil {
		return err
	}
	c.Ratings = append(c.Ratings, r)
	return nil
}

// AverageRating is the mean score of all ratings, or 0 when there are none.
func (c *CatalogItem) AverageRating() float64 {
	if len(c.Ratings) == 0 {
		return 0
	}
	total := 0
	for _, r := range c.Ratings {
		total += r.Score
	}
	return float64(total) / float64(len(c.Ratings))
}

// RatingList returns the ratings attached to the item.
func (c *CatalogItem) RatingList() []Rating { return c.Ratings }

// Validate re-checks the rules the constructors enforce, for items whose
// exported fields were changed after construction. Unlike the constructors
// it rejects a future year instead of clamping it.
func Validate(item Item) error {
	if item == nil {
		return &ValidationError{Message: "no item given"}
	}
	c := item.Common()
	if currentYear := time.Now().Year(); c.Year < MinYear || c.Year > currentYear {
		return &ValidationError{
			Field:   "Year",
			Message: fmt.Sprintf("year must be between %d and %d", MinYear, currentYear),
		}
	}
	if book, ok := item.(*Book); ok {
		return validateStruct(book)
	}
	return nil
}

// CheckDraft applies the editor rules that constructors deliberately leave
// out: a title is required and an audiobook window must not end before it
// starts.
func CheckDraft(item Item) error {
	if item.Common().Title == "" {
		return &ValidationError{Field: "Title", Message: "title is required"}
	}
	if a, ok := item.(*Audiobook); ok && a.AvailabilityEnd.Before(a.AvailabilityStart) {
		return &ValidationError{Field: "AvailabilityEnd", Message: "availability end cannot be before its start"}
	}
	return nil
}
