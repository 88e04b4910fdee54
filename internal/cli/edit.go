package cli

import (
	"flag"
	"fmt"

	"github.com/mrlokans/libcatalog/internal/config"
	"github.com/mrlokans/libcatalog/internal/entities"
	"github.com/mrlokans/libcatalog/internal/services"
)

// EditCommand changes the fields of a stored item. Only the flags given are
// changed; ratings are kept.
type EditCommand struct {
	base
	ID       uint
	Title    string
	Year     int
	Acquired string
	ISBN     string
	Start    string
	End      string

	set map[string]bool
}

func NewEditCommand(cfg *config.Config) *EditCommand {
	return &EditCommand{base: newBase(cfg)}
}

func (cmd *EditCommand) ParseFlags(args []string) error {
	fs := cmd.newFlagSet("edit", "-id <id> [options]", "Edit a catalog item. Flags that do not apply to the item's kind are rejected.")
	fs.UintVar(&cmd.ID, "id", 0, "Item id (required)")
	fs.StringVar(&cmd.Title, "title", "", "New title")
	fs.IntVar(&cmd.Year, "year", 0, "New publication year")
	fs.StringVar(&cmd.Acquired, "acquired", "", "New acquisition date")
	fs.StringVar(&cmd.ISBN, "isbn", "", "New ISBN-10 (books only)")
	fs.StringVar(&cmd.Start, "start", "", "New availability start (audiobooks only)")
	fs.StringVar(&cmd.End, "end", "", "New availability end (audiobooks only)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(fs, "id"); err != nil {
		return err
	}

	cmd.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { cmd.set[f.Name] = true })
	return nil
}

func (cmd *EditCommand) Run() error {
	return cmd.withService(func(svc *services.Service) error {
		current, err := svc.Get(cmd.ID)
		if err != nil {
			return err
		}

		edited, err := cmd.apply(current)
		if err != nil {
			return err
		}
		if err := entities.CheckDraft(edited); err != nil {
			return err
		}
		if err := svc.Update(cmd.ID, edited); err != nil {
			return err
		}

		cmd.printf("Updated %s #%d %q\n", edited.Kind(), cmd.ID, edited.Common().Title)
		return nil
	})
}

func (cmd *EditCommand) apply(current entities.Item) (entities.Item, error) {
	c := current.Common()
	title, year := c.Title, c.Year
	if cmd.set["title"] {
		title = cmd.Title
	}
	if cmd.set["year"] {
		year = cmd.Year
	}
	acquired, err := parseDateFlag("AcquisitionDate", cmd.Acquired, c.AcquisitionDate)
	if err != nil {
		return nil, err
	}

	switch it := current.(type) {
	case *entities.Book:
		if cmd.set["start"] || cmd.set["end"] {
			return nil, &entities.ValidationError{Field: "Kind", Message: "books have no availability window"}
		}
		isbn := it.ISBN10
		if cmd.set["isbn"] {
			isbn = cmd.ISBN
		}
		book, err := entities.NewBook(title, year, acquired, isbn)
		if err != nil {
			return nil, err
		}
		book.Available = it.Available
		return book, nil

	case *entities.Audiobook:
		if cmd.set["isbn"] {
			return nil, &entities.ValidationError{Field: "Kind", Message: "audiobooks have no ISBN"}
		}
		start, err := parseDateFlag("AvailabilityStart", cmd.Start, it.AvailabilityStart)
		if err != nil {
			return nil, err
		}
		end, err := parseDateFlag("AvailabilityEnd", cmd.End, it.AvailabilityEnd)
		if err != nil {
			return nil, err
		}
		return entities.NewAudiobook(title, year, acquired, start, end)

	default:
		return nil, fmt.Errorf("unsupported item type %T", current)
	}
}

// RemoveCommand deletes an item and its ratings.
type RemoveCommand struct {
	base
	ID uint
}

func NewRemoveCommand(cfg *config.Config) *RemoveCommand {
	return &RemoveCommand{base: newBase(cfg)}
}

func (cmd *RemoveCommand) ParseFlags(args []string) error {
	fs := cmd.newFlagSet("remove", "-id <id>", "Remove an item together with its ratings. Unknown ids are ignored.")
	fs.UintVar(&cmd.ID, "id", 0, "Item id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return requireFlags(fs, "id")
}

func (cmd *RemoveCommand) Run() error {
	return cmd.withService(func(svc *services.Service) error {
		if err := svc.Remove(cmd.ID); err != nil {
			return err
		}
		cmd.printf("Removed item #%d\n", cmd.ID)
		return nil
	})
}
