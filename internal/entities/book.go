package entities

import (
	"strings"
	"time"
)

// Book is a printed catalog item identified by an ISBN-10.
type Book struct {
	CatalogItem
	ISBN10    string `validate:"isbn10_checksum"`
	Available bool
}

// NewBook builds an available Book, validating year and ISBN.
func NewBook(title string, year int, acquired time.Time, isbn10 string) (*Book, error) {
	base, err := newCatalogItem(title, year, acquired)
	if err != nil {
		return nil, err
	}

	book := &Book{
		CatalogItem: base,
		ISBN10:      strings.TrimSpace(isbn10),
		Available:   true,
	}
	if err := validateStruct(book); err != nil {
		return nil, err
	}
	return book, nil
}

func (b *Book) Kind() Kind { return KindBook }

// Lend marks the book as lent. Lending a lent book does nothing.
func (b *Book) Lend() { b.Available = false }

// Return marks the book as available again. Returning an available book does nothing.
func (b *Book) Return() { b.Available = true }

func (b *Book) IsAvailable() bool { return b.Available }
