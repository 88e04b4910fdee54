// Command generate_demo creates a demo catalog with sample books, audiobooks and ratings.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mrlokans/libcatalog/internal/database"
	"github.com/mrlokans/libcatalog/internal/database/catalog"
	"github.com/mrlokans/libcatalog/internal/entities"
	"github.com/mrlokans/libcatalog/internal/services"
)

const defaultDemoDatabasePath = "./demo/demo.db"

type demoBook struct {
	Title   string
	Year    int
	ISBN    string
	Lent    bool
	Ratings []entities.Rating
}

type demoAudiobook struct {
	Title        string
	Year         int
	StartsInDays int
	LastsDays    int
	Ratings      []entities.Rating
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo catalog at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create demo directory: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	svc := services.NewService(catalog.NewRepository(db.DB))

	seeded, err := svc.SeedIfEmpty()
	if err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}
	log.Printf("Seeded %d sample items", seeded)

	now := time.Now()
	acquired := now.AddDate(0, -6, 0)

	for i, b := range getClassicBooks() {
		book, err := entities.NewBook(b.Title, b.Year, acquired.AddDate(0, 0, i*7), b.ISBN)
		if err != nil {
			log.Printf("Skipping %s: %v", b.Title, err)
			continue
		}
		if b.Lent {
			book.Lend()
		}
		if err := svc.Add(book); err != nil {
			log.Printf("Failed to save book %s: %v", b.Title, err)
			continue
		}
		addRatings(svc, book.ID, b.Ratings)
		log.Printf("Saved book: %s (%d ratings)", book.Title, len(b.Ratings))
	}

	for i, a := range getAudiobooks() {
		start := now.AddDate(0, 0, a.StartsInDays)
		audio, err := entities.NewAudiobook(a.Title, a.Year, acquired.AddDate(0, 0, i*11), start, start.AddDate(0, 0, a.LastsDays))
		if err != nil {
			log.Printf("Skipping %s: %v", a.Title, err)
			continue
		}
		if err := svc.Add(audio); err != nil {
			log.Printf("Failed to save audiobook %s: %v", a.Title, err)
			continue
		}
		addRatings(svc, audio.ID, a.Ratings)
		log.Printf("Saved audiobook: %s (%d ratings)", audio.Title, len(a.Ratings))
	}

	stats, err := svc.Stats()
	if err != nil {
		log.Fatalf("Failed to read stats: %v", err)
	}
	log.Printf("Demo catalog ready: %d books, %d audiobooks, %d ratings", stats.Books, stats.Audiobooks, stats.Ratings)
}

func addRatings(svc *services.Service, id uint, ratings []entities.Rating) {
	for _, r := range ratings {
		if _, err := svc.Rate(id, r.Score, r.Comment, r.Keywords, r.UserID); err != nil {
			log.Printf("Failed to rate item %d: %v", id, err)
		}
	}
}

func getClassicBooks() []demoBook {
	return []demoBook{
		{
			Title: "Pride and Prejudice", Year: 1813, ISBN: "0141439513",
			Ratings: []entities.Rating{
				{Score: 9, Comment: "Sharp and funny", Keywords: "romance, society", UserID: "lucia"},
				{Score: 8, UserID: "marcos"},
			},
		},
		{Title: "Emma", Year: 1815, ISBN: "0141439580"},
		{
			Title: "Nineteen eighty-four", Year: 1949, ISBN: "0451524934", Lent: true,
			Ratings: []entities.Rating{
				{Score: 10, Comment: "Still relevant", Keywords: "dystopia", UserID: "lucia"},
			},
		},
		{
			Title: "The great gatsby", Year: 1925, ISBN: "0743273567",
			Ratings: []entities.Rating{
				{Score: 7, Keywords: "jazz age"},
				{Score: 6, Comment: "Beautiful prose, thin plot", UserID: "ana"},
			},
		},
		{Title: "Crime and punishment", Year: 1866, ISBN: "0140449132", Lent: true},
		{Title: "Moby dick", Year: 1851, ISBN: "0553213113"},
	}
}

func getAudiobooks() []demoAudiobook {
	return []demoAudiobook{
		{
			Title: "Don Quijote de la Mancha", Year: 1605, StartsInDays: -10, LastsDays: 60,
			Ratings: []entities.Rating{
				{Score: 9, Comment: "Great narration", UserID: "marcos"},
			},
		},
		{Title: "Dracula", Year: 1897, StartsInDays: 14, LastsDays: 30},
		{Title: "Frankenstein", Year: 1818, StartsInDays: -90, LastsDays: 30},
	}
}
