package catalog

import (
	"fmt"

	"github.com/mrlokans/libcatalog/internal/database"
	"github.com/mrlokans/libcatalog/internal/entities"
)

// joinedRow is one items row outer-joined with both specialization tables.
type joinedRow struct {
	ID                uint    `gorm:"column:id"`
	Title             string  `gorm:"column:title"`
	Year              int     `gorm:"column:year"`
	AcquisitionDate   string  `gorm:"column:acquisition_date"`
	Kind              string  `gorm:"column:kind"`
	ISBN10            *string `gorm:"column:isbn10"`
	Available         *bool   `gorm:"column:available"`
	AvailabilityStart *string `gorm:"column:availability_start"`
	AvailabilityEnd   *string `gorm:"column:availability_end"`
}

type kindCount struct {
	Kind  string `gorm:"column:kind"`
	Count int64  `gorm:"column:count"`
}

// toItem rebuilds the stored variant as written. Model rules are applied on
// the way in, so a stored row is never rejected here.
func (row joinedRow) toItem() (entities.Item, error) {
	acquired, err := entities.ParseDate(row.AcquisitionDate)
	if err != nil {
		return nil, fmt.Errorf("item %d: %w", row.ID, err)
	}
	common := entities.CatalogItem{
		ID:              row.ID,
		Title:           row.Title,
		Year:            row.Year,
		AcquisitionDate: acquired,
	}

	switch entities.Kind(row.Kind) {
	case entities.KindBook:
		if row.ISBN10 == nil {
			return nil, fmt.Errorf("book %d: %w", row.ID, database.ErrCorruptRow)
		}
		return &entities.Book{
			CatalogItem: common,
			ISBN10:      *row.ISBN10,
			Available:   row.Available != nil && *row.Available,
		}, nil

	case entities.KindAudiobook:
		if row.AvailabilityStart == nil || row.AvailabilityEnd == nil {
			return nil, fmt.Errorf("audiobook %d: %w", row.ID, database.ErrCorruptRow)
		}
		start, err := entities.ParseDate(*row.AvailabilityStart)
		if err != nil {
			return nil, fmt.Errorf("audiobook %d: %w", row.ID, err)
		}
		end, err := entities.ParseDate(*row.AvailabilityEnd)
		if err != nil {
			return nil, fmt.Errorf("audiobook %d: %w", row.ID, err)
		}
		return &entities.Audiobook{
			CatalogItem:       common,
			AvailabilityStart: start,
			AvailabilityEnd:   end,
		}, nil

	default:
		return nil, fmt.Errorf("item %d: unknown kind %q", row.ID, row.Kind)
	}
}
