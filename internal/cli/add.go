package cli

import (
	"time"

	"github.com/mrlokans/libcatalog/internal/config"
	"github.com/mrlokans/libcatalog/internal/entities"
	"github.com/mrlokans/libcatalog/internal/services"
)

// AddBookCommand adds a book to the catalog.
type AddBookCommand struct {
	base
	Title    string
	Year     int
	Acquired string
	ISBN     string
}

func NewAddBookCommand(cfg *config.Config) *AddBookCommand {
	return &AddBookCommand{base: newBase(cfg)}
}

func (cmd *AddBookCommand) ParseFlags(args []string) error {
	fs := cmd.newFlagSet("add-book", "-title <title> -year <year> -isbn <isbn10> [options]", "Add a book to the catalog.")
	fs.StringVar(&cmd.Title, "title", "", "Title (required)")
	fs.IntVar(&cmd.Year, "year", 0, "Publication year (required)")
	fs.StringVar(&cmd.ISBN, "isbn", "", "ISBN-10 (required)")
	fs.StringVar(&cmd.Acquired, "acquired", "", "Acquisition date, e.g. 2024-05-17 (default: now)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return requireFlags(fs, "title", "year", "isbn")
}

func (cmd *AddBookCommand) Run() error {
	acquired, err := parseDateFlag("AcquisitionDate", cmd.Acquired, time.Now())
	if err != nil {
		return err
	}
	book, err := entities.NewBook(cmd.Title, cmd.Year, acquired, cmd.ISBN)
	if err != nil {
		return err
	}
	return cmd.add(book)
}

// AddAudiobookCommand adds an audiobook to the catalog.
type AddAudiobookCommand struct {
	base
	Title    string
	Year     int
	Acquired string
	Start    string
	End      string
}

func NewAddAudiobookCommand(cfg *config.Config) *AddAudiobookCommand {
	return &AddAudiobookCommand{base: newBase(cfg)}
}

func (cmd *AddAudiobookCommand) ParseFlags(args []string) error {
	fs := cmd.newFlagSet("add-audiobook", "-title <title> -year <year> -start <date> -end <date> [options]",
		"Add an audiobook with its availability window to the catalog.")
	fs.StringVar(&cmd.Title, "title", "", "Title (required)")
	fs.IntVar(&cmd.Year, "year", 0, "Publication year (required)")
	fs.StringVar(&cmd.Acquired, "acquired", "", "Acquisition date (default: now)")
	fs.StringVar(&cmd.Start, "start", "", "Start of the availability window (required)")
	fs.StringVar(&cmd.End, "end", "", "End of the availability window (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return requireFlags(fs, "title", "year", "start", "end")
}

func (cmd *AddAudiobookCommand) Run() error {
	acquired, err := parseDateFlag("AcquisitionDate", cmd.Acquired, time.Now())
	if err != nil {
		return err
	}
	start, err := parseDateFlag("AvailabilityStart", cmd.Start, time.Time{})
	if err != nil {
		return err
	}
	end, err := parseDateFlag("AvailabilityEnd", cmd.End, time.Time{})
	if err != nil {
		return err
	}

	audio, err := entities.NewAudiobook(cmd.Title, cmd.Year, acquired, start, end)
	if err != nil {
		return err
	}
	return cmd.add(audio)
}

func (b *base) add(item entities.Item) error {
	if err := entities.CheckDraft(item); err != nil {
		return err
	}
	return b.withService(func(svc *services.Service) error {
		if err := svc.Add(item); err != nil {
			return err
		}
		b.printf("Added %s #%d %q\n", item.Kind(), item.Common().ID, item.Common().Title)
		return nil
	})
}
