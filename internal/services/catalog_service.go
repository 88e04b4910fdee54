package services

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/libcatalog/internal/catalogcsv"
	"github.com/mrlokans/libcatalog/internal/entities"
)

// Service is the single entry point for callers working with the catalog.
// It validates through the entities constructors and delegates storage to a
// CatalogStore; CSV files go through catalogcsv.
type Service struct {
	store CatalogStore
	now   func() time.Time
}

// NewService creates a new Service.
func NewService(store CatalogStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// List returns every item in the catalog.
func (s *Service) List() ([]entities.Item, error) {
	return s.store.FindAll()
}

// Get returns one item with its ratings.
func (s *Service) Get(id uint) (entities.Item, error) {
	return s.store.FindByID(id)
}

// Search returns items whose title contains text, restricted by kindFilter
// ("All", "Book", "Audiobook" or one of their aliases).
func (s *Service) Search(text, kindFilter string) ([]entities.Item, error) {
	kind, err := entities.ParseKindFilter(kindFilter)
	if err != nil {
		return nil, err
	}
	return s.store.Search(text, kind)
}

// Add validates a new item, persists it and sets its ID.
func (s *Service) Add(item entities.Item) error {
	if err := entities.Validate(item); err != nil {
		return err
	}
	return s.store.Insert(item)
}

// Update validates item and overwrites the stored item with the given id.
func (s *Service) Update(id uint, item entities.Item) error {
	if err := entities.Validate(item); err != nil {
		return err
	}
	return s.store.Update(id, item)
}

// Remove deletes an item together with its ratings.
func (s *Service) Remove(id uint) error {
	return s.store.Delete(id)
}

// SetAvailability sets the availability flag of a book.
func (s *Service) SetAvailability(id uint, available bool) error {
	return s.store.SetAvailability(id, available)
}

// AddRating validates a rating and stores it for the item.
func (s *Service) AddRating(id uint, rating entities.Rating) error {
	if err := rating.Validate(); err != nil {
		return err
	}
	return s.store.AddRating(id, rating)
}

// Rate validates a new rating and stores it for the item. An empty userID
// is recorded as entities.DefaultRatingUser.
func (s *Service) Rate(id uint, score int, comment, keywords, userID string) (entities.Rating, error) {
	if userID == "" {
		userID = entities.DefaultRatingUser
	}
	rating, err := entities.NewRating(score, comment, keywords, userID)
	if err != nil {
		return entities.Rating{}, err
	}
	if err := s.store.AddRating(id, rating); err != nil {
		return entities.Rating{}, err
	}
	return rating, nil
}

// Ratings returns the ratings of an item.
func (s *Service) Ratings(id uint) ([]entities.Rating, error) {
	return s.store.RatingsFor(id)
}

// Lend marks a book as lent. Lending a lent book is a no-op.
func (s *Service) Lend(id uint) error {
	item, err := s.lendable(id)
	if err != nil {
		return err
	}
	if !item.IsAvailable() {
		return nil
	}
	item.Lend()
	return s.store.SetAvailability(id, item.IsAvailable())
}

// Return marks a book as available. Returning an available book is a no-op.
func (s *Service) Return(id uint) error {
	item, err := s.lendable(id)
	if err != nil {
		return err
	}
	if item.IsAvailable() {
		return nil
	}
	item.Return()
	return s.store.SetAvailability(id, item.IsAvailable())
}

// ToggleLoan lends an available book or returns a lent one, and reports the
// resulting availability.
func (s *Service) ToggleLoan(id uint) (bool, error) {
	item, err := s.lendable(id)
	if err != nil {
		return false, err
	}
	if item.IsAvailable() {
		item.Lend()
	} else {
		item.Return()
	}
	if err := s.store.SetAvailability(id, item.IsAvailable()); err != nil {
		return false, err
	}
	return item.IsAvailable(), nil
}

func (s *Service) lendable(id uint) (entities.Lendable, error) {
	item, err := s.store.FindByID(id)
	if err != nil {
		return nil, err
	}
	lendable, ok := item.(entities.Lendable)
	if !ok {
		return nil, &entities.ValidationError{
			Field:   "Kind",
			Message: fmt.Sprintf("item %d is an %s and cannot be lent", id, item.Kind()),
		}
	}
	return lendable, nil
}

// ExportCSV writes the given items to path. The items are taken as supplied,
// not re-read from the store.
func (s *Service) ExportCSV(path string, items []entities.Item) error {
	if err := catalogcsv.ExportFile(path, items); err != nil {
		return fmt.Errorf("failed to export catalog: %w", err)
	}
	log.Printf("Exported %d items to %s", len(items), path)
	return nil
}

// ImportCSV reads path and inserts every parsed item. Lines that do not
// parse or validate and items the store rejects are reported in the result
// without stopping the import. The error is non-nil only when the file
// cannot be read at all.
func (s *Service) ImportCSV(path string) (ImportResult, error) {
	result := ImportResult{
		BatchID:     uuid.NewString(),
		File:        path,
		ImportedIDs: []uint{},
	}

	report, err := catalogcsv.ImportFile(path)
	if err != nil {
		return result, fmt.Errorf("failed to import catalog: %w", err)
	}

	result.Parsed = len(report.Items)
	result.Skipped = report.Skipped
	for _, lineErr := range report.Errors {
		result.Failed++
		result.Errors = append(result.Errors, lineErr.Error())
	}

	for _, item := range report.Items {
		if err := s.store.Insert(item); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%q: %v", item.Common().Title, err))
			continue
		}
		result.Imported++
		result.ImportedIDs = append(result.ImportedIDs, item.Common().ID)
	}

	log.Printf("Import %s from %s: %d imported, %d skipped, %d failed",
		result.BatchID, path, result.Imported, result.Skipped, result.Failed)

	return result, nil
}

// Stats summarizes the stored catalog.
func (s *Service) Stats() (entities.CatalogStats, error) {
	return s.store.Stats()
}

// SeedIfEmpty stores a small sample catalog when the store holds no items.
// It returns the number of items inserted.
func (s *Service) SeedIfEmpty() (int, error) {
	stats, err := s.store.Stats()
	if err != nil {
		return 0, err
	}
	if stats.Items() > 0 {
		return 0, nil
	}

	samples, err := s.sampleItems()
	if err != nil {
		return 0, err
	}
	for _, item := range samples {
		if err := s.store.Insert(item); err != nil {
			return 0, fmt.Errorf("failed to seed %q: %w", item.Common().Title, err)
		}
	}

	log.Printf("Seeded empty catalog with %d items", len(samples))
	return len(samples), nil
}

func (s *Service) sampleItems() ([]entities.Item, error) {
	now := s.now()

	codex, err := entities.NewBook("El Códice de Avalonia", 2024, now, "843760494X")
	if err != nil {
		return nil, err
	}
	solitude, err := entities.NewBook("Cien años de soledad", 1967, now, "0307474720")
	if err != nil {
		return nil, err
	}
	sapiens, err := entities.NewAudiobook("Sapiens", 2014, now, now.AddDate(0, 0, -5), now.AddDate(0, 0, 25))
	if err != nil {
		return nil, err
	}

	return []entities.Item{codex, solitude, sapiens}, nil
}
