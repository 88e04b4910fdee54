// Package catalog provides database operations for catalog items and their ratings.
//
// Items are stored across a base table and one specialization table per
// variant. Writes touching both tables run in a single transaction, base row
// first; reads join both specialization tables and rebuild the typed variant
// from the kind tag.
//
// # Usage
//
//	repo := catalog.NewRepository(db)
//	err := repo.Insert(book)         // book.ID is set on success
//	items, err := repo.Search("", entities.KindAll)
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/libcatalog/internal/database"
	"github.com/mrlokans/libcatalog/internal/entities"
)

// ErrUnsupportedItem is returned for an entities.Item the repository cannot map.
var ErrUnsupportedItem = errors.New("unsupported catalog item")

// Repository handles all catalog item and rating database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Initialize creates the catalog tables if absent.
func (r *Repository) Initialize() error {
	return database.Migrate(r.db)
}

// Insert stores the base row and the specialization row of item atomically
// and assigns the generated identifier to item.
func (r *Repository) Insert(item entities.Item) error {
	if item == nil {
		return &database.PersistenceError{Op: "insert", Err: ErrUnsupportedItem}
	}

	var newID uint
	err := r.db.Transaction(func(tx *gorm.DB) error {
		c := item.Common()
		base := database.ItemRow{
			Title:           c.Title,
			Year:            c.Year,
			AcquisitionDate: entities.FormatDate(c.AcquisitionDate),
			Kind:            string(item.Kind()),
		}
		if err := tx.Create(&base).Error; err != nil {
			return fmt.Errorf("insert item: %w", err)
		}

		switch it := item.(type) {
		case *entities.Book:
			row := database.BookRow{ItemID: base.ID, ISBN10: it.ISBN10, Available: it.Available}
			if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
				return fmt.Errorf("insert book: %w", err)
			}
		case *entities.Audiobook:
			row := database.AudiobookRow{
				ItemID:            base.ID,
				AvailabilityStart: entities.FormatDate(it.AvailabilityStart),
				AvailabilityEnd:   entities.FormatDate(it.AvailabilityEnd),
			}
			if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
				return fmt.Errorf("insert audiobook: %w", err)
			}
		default:
			return fmt.Errorf("%w: %T", ErrUnsupportedItem, item)
		}

		newID = base.ID
		return nil
	})
	if err != nil {
		return &database.PersistenceError{Op: "insert", Err: err}
	}

	item.Common().ID = newID
	return nil
}

// Update overwrites the base and specialization fields of the item with the
// given id. Ratings are not touched. The variant of item must match the
// stored one.
func (r *Repository) Update(id uint, item entities.Item) error {
	if item == nil {
		return &database.PersistenceError{Op: "update", Err: ErrUnsupportedItem}
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		c := item.Common()
		res := tx.Model(&database.ItemRow{}).Where("id = ?", id).Updates(map[string]any{
			"title":            c.Title,
			"year":             c.Year,
			"acquisition_date": entities.FormatDate(c.AcquisitionDate),
		})
		if res.Error != nil {
			return fmt.Errorf("update item: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return database.ErrItemNotFound
		}

		switch it := item.(type) {
		case *entities.Book:
			res = tx.Model(&database.BookRow{}).Where("item_id = ?", id).Updates(map[string]any{
				"isbn10":    it.ISBN10,
				"available": it.Available,
			})
		case *entities.Audiobook:
			res = tx.Model(&database.AudiobookRow{}).Where("item_id = ?", id).Updates(map[string]any{
				"availability_start": entities.FormatDate(it.AvailabilityStart),
				"availability_end":   entities.FormatDate(it.AvailabilityEnd),
			})
		default:
			return fmt.Errorf("%w: %T", ErrUnsupportedItem, item)
		}
		if res.Error != nil {
			return fmt.Errorf("update %s: %w", strings.ToLower(string(item.Kind())), res.Error)
		}
		if res.RowsAffected == 0 {
			return database.ErrKindMismatch
		}
		return nil
	})
	if err != nil {
		return &database.PersistenceError{Op: "update", Err: err}
	}
	return nil
}

// Delete removes the item; its specialization row and ratings cascade.
// Deleting an unknown id is a no-op.
func (r *Repository) Delete(id uint) error {
	if err := r.db.Delete(&database.ItemRow{}, id).Error; err != nil {
		return &database.PersistenceError{Op: "delete", Err: err}
	}
	return nil
}

// SetAvailability updates the availability flag of a book. Ids that are not
// books are left untouched.
func (r *Repository) SetAvailability(itemID uint, available bool) error {
	err := r.db.Model(&database.BookRow{}).Where("item_id = ?", itemID).Update("available", available).Error
	if err != nil {
		return &database.PersistenceError{Op: "set availability", Err: err}
	}
	return nil
}

// AddRating stores one rating for the item. The rating is expected to have
// been validated by the model already.
func (r *Repository) AddRating(itemID uint, rating entities.Rating) error {
	row := database.RatingRow{
		ItemID:   itemID,
		Score:    rating.Score,
		Comment:  nullable(rating.Comment),
		Keywords: nullable(rating.Keywords),
		UserID:   nullable(rating.UserID),
	}
	if err := r.db.Omit(clause.Associations).Create(&row).Error; err != nil {
		return &database.PersistenceError{Op: "add rating", Err: err}
	}
	return nil
}

// RatingsFor returns every rating of the item. The result is never nil.
func (r *Repository) RatingsFor(itemID uint) ([]entities.Rating, error) {
	var rows []database.RatingRow
	if err := r.db.Where("item_id = ?", itemID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, &database.PersistenceError{Op: "ratings", Err: err}
	}

	ratings := make([]entities.Rating, 0, len(rows))
	for _, row := range rows {
		ratings = append(ratings, toRating(row))
	}
	return ratings, nil
}

// FindAll returns every stored item.
func (r *Repository) FindAll() ([]entities.Item, error) {
	return r.Search("", entities.KindAll)
}

// FindByID returns the item with the given id, with its ratings attached.
func (r *Repository) FindByID(id uint) (entities.Item, error) {
	items, err := r.find("find", func(q *gorm.DB) *gorm.DB {
		return q.Where("items.id = ?", id)
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &database.PersistenceError{Op: "find", Err: fmt.Errorf("id %d: %w", id, database.ErrItemNotFound)}
	}
	return items[0], nil
}

// Search returns the items whose title contains text (case-insensitive for
// ASCII, as SQLite LIKE), restricted to kind unless it is entities.KindAll.
// Each item carries its ratings. The result is never nil.
func (r *Repository) Search(text string, kind entities.Kind) ([]entities.Item, error) {
	return r.find("search", func(q *gorm.DB) *gorm.DB {
		q = q.Where(`items.title LIKE ? ESCAPE '\'`, "%"+escapeLike(text)+"%")
		if kind != entities.KindAll {
			q = q.Where("items.kind = ?", string(kind))
		}
		return q
	})
}

// Stats counts stored items per kind and ratings.
func (r *Repository) Stats() (entities.CatalogStats, error) {
	var stats entities.CatalogStats

	var counts []kindCount
	err := r.db.Model(&database.ItemRow{}).Select("kind, COUNT(*) AS count").Group("kind").Scan(&counts).Error
	if err != nil {
		return stats, &database.PersistenceError{Op: "stats", Err: err}
	}
	for _, c := range counts {
		switch entities.Kind(c.Kind) {
		case entities.KindBook:
			stats.Books = c.Count
		case entities.KindAudiobook:
			stats.Audiobooks = c.Count
		}
	}

	if err := r.db.Model(&database.RatingRow{}).Count(&stats.Ratings).Error; err != nil {
		return stats, &database.PersistenceError{Op: "stats", Err: err}
	}
	return stats, nil
}

func (r *Repository) find(op string, filter func(*gorm.DB) *gorm.DB) ([]entities.Item, error) {
	var rows []joinedRow
	query := r.db.Table("items").
		Select("items.id, items.title, items.year, items.acquisition_date, items.kind, " +
			"books.isbn10, books.available, " +
			"audiobooks.availability_start, audiobooks.availability_end").
		Joins("LEFT JOIN books ON books.item_id = items.id").
		Joins("LEFT JOIN audiobooks ON audiobooks.item_id = items.id")

	if err := filter(query).Order("items.id ASC").Scan(&rows).Error; err != nil {
		return nil, &database.PersistenceError{Op: op, Err: err}
	}

	ratings, err := r.ratingsByItem(rows)
	if err != nil {
		return nil, &database.PersistenceError{Op: op, Err: err}
	}

	items := make([]entities.Item, 0, len(rows))
	for _, row := range rows {
		item, err := row.toItem()
		if err != nil {
			return nil, &database.PersistenceError{Op: op, Err: err}
		}
		item.Common().Ratings = ratings[row.ID]
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) ratingsByItem(rows []joinedRow) (map[uint][]entities.Rating, error) {
	byItem := make(map[uint][]entities.Rating, len(rows))
	if len(rows) == 0 {
		return byItem, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
		byItem[row.ID] = []entities.Rating{}
	}

	var ratingRows []database.RatingRow
	if err := r.db.Where("item_id IN ?", ids).Order("id ASC").Find(&ratingRows).Error; err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}
	for _, row := range ratingRows {
		byItem[row.ItemID] = append(byItem[row.ItemID], toRating(row))
	}
	return byItem, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toRating(row database.RatingRow) entities.Rating {
	return entities.Rating{
		Score:    row.Score,
		Comment:  deref(row.Comment),
		Keywords: deref(row.Keywords),
		UserID:   deref(row.UserID),
	}
}
