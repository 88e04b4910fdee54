// Package cli implements the libcatalog sub-commands. Each command parses
// its own flags with ParseFlags and does its work in Run, writing results to
// Out.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mrlokans/libcatalog/internal/config"
	"github.com/mrlokans/libcatalog/internal/database"
	"github.com/mrlokans/libcatalog/internal/database/catalog"
	"github.com/mrlokans/libcatalog/internal/entities"
	"github.com/mrlokans/libcatalog/internal/services"
)

// base holds what every catalog command shares.
type base struct {
	DatabasePath string
	LogLevel     string
	Out          io.Writer
}

func newBase(cfg *config.Config) base {
	return base{
		DatabasePath: cfg.Database.Path,
		LogLevel:     cfg.Database.LogLevel,
		Out:          os.Stdout,
	}
}

func (b *base) newFlagSet(name, usage, synopsis string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&b.DatabasePath, "db", b.DatabasePath, "Path to the catalog database file")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s %s %s\n\n", os.Args[0], name, usage)
		fmt.Fprintf(fs.Output(), "%s\n\n", synopsis)
		fmt.Fprintf(fs.Output(), "Options:\n")
		fs.PrintDefaults()
	}
	return fs
}

// withService opens the catalog, runs fn and closes the catalog again.
func (b *base) withService(fn func(svc *services.Service) error) error {
	db, err := database.NewDatabase(b.DatabasePath, database.WithLogLevel(database.ParseLogLevel(b.LogLevel)))
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	return fn(services.NewService(catalog.NewRepository(db.DB)))
}

func (b *base) printf(format string, args ...any) {
	fmt.Fprintf(b.Out, format, args...)
}

// isSet reports whether the named flag was given on the command line.
func isSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func requireFlags(fs *flag.FlagSet, names ...string) error {
	for _, name := range names {
		if !isSet(fs, name) {
			return fmt.Errorf("required flag -%s not provided", name)
		}
	}
	return nil
}

// parseDateFlag reads a date flag, falling back to def when empty.
func parseDateFlag(name, value string, def time.Time) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return def, nil
	}
	t, err := entities.ParseDate(value)
	if err != nil {
		return time.Time{}, &entities.ValidationError{Field: name, Message: err.Error()}
	}
	return t, nil
}

func displayDate(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

func describe(item entities.Item) string {
	switch it := item.(type) {
	case *entities.Book:
		status := "available"
		if !it.IsAvailable() {
			status = "lent"
		}
		return fmt.Sprintf("ISBN %s, %s", it.ISBN10, status)
	case *entities.Audiobook:
		status := "not available now"
		if it.IsCurrentlyAvailable() {
			status = "available now"
		}
		return fmt.Sprintf("%s to %s, %s", displayDate(it.AvailabilityStart), displayDate(it.AvailabilityEnd), status)
	default:
		return ""
	}
}

func printItems(w io.Writer, items []entities.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No items found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tTITLE\tYEAR\tACQUIRED\tRATING\tDETAILS")
	for _, item := range items {
		c := item.Common()
		rating := "-"
		if rateable, ok := item.(entities.Rateable); ok && len(rateable.RatingList()) > 0 {
			rating = fmt.Sprintf("%.1f (%d)", rateable.AverageRating(), len(rateable.RatingList()))
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
			c.ID, item.Kind(), c.Title, c.Year, displayDate(c.AcquisitionDate), rating, describe(item))
	}
	tw.Flush()
}
