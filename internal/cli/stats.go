package cli

import (
	"github.com/mrlokans/libcatalog/internal/config"
	"github.com/mrlokans/libcatalog/internal/services"
)

// StatsCommand prints catalog totals.
type StatsCommand struct {
	base
}

func NewStatsCommand(cfg *config.Config) *StatsCommand {
	return &StatsCommand{base: newBase(cfg)}
}

func (cmd *StatsCommand) ParseFlags(args []string) error {
	fs := cmd.newFlagSet("stats", "[options]", "Show how many items and ratings the catalog holds.")
	return fs.Parse(args)
}

func (cmd *StatsCommand) Run() error {
	return cmd.withService(func(svc *services.Service) error {
		stats, err := svc.Stats()
		if err != nil {
			return err
		}
		cmd.printf("Items:      %d\n", stats.Items())
		cmd.printf("Books:      %d\n", stats.Books)
		cmd.printf("Audiobooks: %d\n", stats.Audiobooks)
		cmd.printf("Ratings:    %d\n", stats.Ratings)
		return nil
	})
}

// SeedCommand fills an empty catalog with sample items.
type SeedCommand struct {
	base
}

func NewSeedCommand(cfg *config.Config) *SeedCommand {
	return &SeedCommand{base: newBase(cfg)}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := cmd.newFlagSet("seed", "[options]", "Add sample items when the catalog is empty.")
	return fs.Parse(args)
}

func (cmd *SeedCommand) Run() error {
	return cmd.withService(func(svc *services.Service) error {
		n, err := svc.SeedIfEmpty()
		if err != nil {
			return err
		}
		if n == 0 {
			cmd.printf("Catalog is not empty, nothing seeded\n")
			return nil
		}
		cmd.printf("Seeded %d sample items\n", n)
		return nil
	})
}
