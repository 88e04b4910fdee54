// Package database provides the data access layer for the catalog.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and schema migration
//	├── models.go        # Table rows: items, books, audiobooks, ratings
//	├── errors.go        # PersistenceError and sentinel errors
//	└── catalog/         # Catalog repository: CRUD, ratings and search
//
// # Schema
//
// Every catalog item owns one row in items tagged with its kind, plus exactly
// one row in the specialization table for that kind (books or audiobooks).
// Specialization rows and ratings reference items.id with ON DELETE CASCADE,
// so removing the base row removes everything the item owns. Foreign keys are
// enabled through the connection string on every pooled connection.
//
// Dates are stored as text in entities.DateLayout.
//
// # Usage
//
//	db, err := database.NewDatabase("./catalog.db")
//	repo := catalog.NewRepository(db.DB)
//	items, err := repo.Search("hobbit", entities.KindBook)
package database
