package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB *gorm.DB
}

type options struct {
	logLevel logger.LogLevel
}

// Option customizes NewDatabase.
type Option func(*options)

// WithLogLevel sets the GORM logger level.
func WithLogLevel(level logger.LogLevel) Option {
	return func(o *options) {
		o.logLevel = level
	}
}

// NewDatabase opens the SQLite store at dbPath, creating the file and the
// schema when absent.
func NewDatabase(dbPath string, opts ...Option) (*Database, error) {
	o := options{logLevel: logger.Warn}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := gorm.Open(sqlite.Open(dsn(dbPath)), &gorm.Config{
		Logger: logger.Default.LogMode(o.logLevel),
	})
	if err != nil {
		return nil, &PersistenceError{Op: "connect", Err: fmt.Errorf("failed to connect to database: %w", err)}
	}

	database := &Database{DB: db}
	if err := database.Initialize(); err != nil {
		database.Close()
		return nil, err
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

// dsn enables foreign keys on every pooled connection so that deleting an
// item cascades to its specialization row and ratings.
func dsn(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// Initialize creates the catalog tables if they do not exist. It is safe to
// call on every startup.
func (d *Database) Initialize() error {
	return Migrate(d.DB)
}

// Migrate creates or updates the catalog schema on db.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&ItemRow{},
		&BookRow{},
		&AudiobookRow{},
		&RatingRow{},
	)
	if err != nil {
		return &PersistenceError{Op: "initialize", Err: fmt.Errorf("failed to migrate database: %w", err)}
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ParseLogLevel maps a config value to a GORM log level. Unknown values fall back to Warn.
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
