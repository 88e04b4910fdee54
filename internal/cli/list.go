package cli

import (
	"github.com/mrlokans/libcatalog/internal/config"
	"github.com/mrlokans/libcatalog/internal/services"
)

// ListCommand prints every catalog item.
type ListCommand struct {
	base
}

func NewListCommand(cfg *config.Config) *ListCommand {
	return &ListCommand{base: newBase(cfg)}
}

func (cmd *ListCommand) ParseFlags(args []string) error {
	fs := cmd.newFlagSet("list", "[options]", "List every item in the catalog.")
	return fs.Parse(args)
}

func (cmd *ListCommand) Run() error {
	return cmd.withService(func(svc *services.Service) error {
		items, err := svc.List()
		if err != nil {
			return err
		}
		printItems(cmd.Out, items)
		return nil
	})
}

// SearchCommand prints the items matching a title fragment and a kind.
type SearchCommand struct {
	base
	Query string
	Kind  string
}

func NewSearchCommand(cfg *config.Config) *SearchCommand {
	return &SearchCommand{base: newBase(cfg)}
}

func (cmd *SearchCommand) ParseFlags(args []string) error {
	fs := cmd.newFlagSet("search", "[-q <text>] [-kind <All|Book|Audiobook>]",
		"Search the catalog by title fragment, optionally restricted to one kind.")
	fs.StringVar(&cmd.Query, "q", "", "Text contained in the title")
	fs.StringVar(&cmd.Kind, "kind", "All", "Kind filter: All, Book or Audiobook")
	return fs.Parse(args)
}

func (cmd *SearchCommand) Run() error {
	return cmd.withService(func(svc *services.Service) error {
		items, err := svc.Search(cmd.Query, cmd.Kind)
		if err != nil {
			return err
		}
		printItems(cmd.Out, items)
		return nil
	})
}
