package services

import "github.com/mrlokans/libcatalog/internal/entities"

// CatalogReader provides read-only access to catalog items and their ratings.
// Use this interface when you only need to query the catalog.
type CatalogReader interface {
	FindAll() ([]entities.Item, error)
	FindByID(id uint) (entities.Item, error)
	Search(text string, kind entities.Kind) ([]entities.Item, error)
	RatingsFor(itemID uint) ([]entities.Rating, error)
	Stats() (entities.CatalogStats, error)
}

// CatalogWriter persists catalog items and ratings.
type CatalogWriter interface {
	Insert(item entities.Item) error
	Update(id uint, item entities.Item) error
	Delete(id uint) error
	SetAvailability(itemID uint, available bool) error
	AddRating(itemID uint, rating entities.Rating) error
}

// CatalogStore is the full persistence contract the Service delegates to.
type CatalogStore interface {
	CatalogReader
	CatalogWriter
}

// ImportResult contains the outcome of a CSV import.
type ImportResult struct {
	BatchID     string   `json:"batch_id"`
	File        string   `json:"file"`
	Parsed      int      `json:"parsed"`
	Imported    int      `json:"imported"`
	Skipped     int      `json:"skipped"`
	Failed      int      `json:"failed"`
	ImportedIDs []uint   `json:"imported_ids"`
	Errors      []string `json:"errors,omitempty"`
}
