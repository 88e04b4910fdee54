package entities

import "time"

// Audiobook is a catalog item that can only be borrowed inside an
// availability window.
type Audiobook struct {
	CatalogItem
	AvailabilityStart time.Time
	AvailabilityEnd   time.Time
}

// NewAudiobook builds an Audiobook. The window is not checked here; see CheckDraft.
func NewAudiobook(title string, year int, acquired, start, end time.Time) (*Audiobook, error) {
	base, err := newCatalogItem(title, year, acquired)
	if err != nil {
		return nil, err
	}

	return &Audiobook{
		CatalogItem:       base,
		AvailabilityStart: start,
		AvailabilityEnd:   end,
	}, nil
}

func (a *Audiobook) Kind() Kind { return KindAudiobook }

// AvailableAt reports whether t falls inside [start, end].
func (a *Audiobook) AvailableAt(t time.Time) bool {
	return !t.Before(a.AvailabilityStart) && !t.After(a.AvailabilityEnd)
}

// IsCurrentlyAvailable reports whether the audiobook can be borrowed now.
func (a *Audiobook) IsCurrentlyAvailable() bool {
	return a.AvailableAt(time.Now())
}
