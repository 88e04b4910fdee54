package cli

import (
	"github.com/mrlokans/libcatalog/internal/config"
	"github.com/mrlokans/libcatalog/internal/entities"
	"github.com/mrlokans/libcatalog/internal/services"
)

// RateCommand adds a rating to an item.
type RateCommand struct {
	base
	ID       uint
	Score    int
	Comment  string
	Keywords string
	UserID   string
}

func NewRateCommand(cfg *config.Config) *RateCommand {
	return &RateCommand{base: newBase(cfg)}
}

func (cmd *RateCommand) ParseFlags(args []string) error {
	fs := cmd.newFlagSet("rate", "-id <id> -score <0-10> [options]", "Rate a catalog item.")
	fs.UintVar(&cmd.ID, "id", 0, "Item id (required)")
	fs.IntVar(&cmd.Score, "score", 0, "Score between 0 and 10 (required)")
	fs.StringVar(&cmd.Comment, "comment", "", "Optional comment")
	fs.StringVar(&cmd.Keywords, "keywords", "", "Optional keywords")
	fs.StringVar(&cmd.UserID, "user", entities.DefaultRatingUser, "User giving the rating")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return requireFlags(fs, "id", "score")
}

func (cmd *RateCommand) Run() error {
	return cmd.withService(func(svc *services.Service) error {
		if _, err := svc.Get(cmd.ID); err != nil {
			return err
		}
		rating, err := svc.Rate(cmd.ID, cmd.Score, cmd.Comment, cmd.Keywords, cmd.UserID)
		if err != nil {
			return err
		}
		cmd.printf("Rated item #%d with %d by %s\n", cmd.ID, rating.Score, rating.UserID)
		return nil
	})
}

// RatingsCommand lists the ratings of an item.
type RatingsCommand struct {
	base
	ID uint
}

func NewRatingsCommand(cfg *config.Config) *RatingsCommand {
	return &RatingsCommand{base: newBase(cfg)}
}

func (cmd *RatingsCommand) ParseFlags(args []string) error {
	fs := cmd.newFlagSet("ratings", "-id <id>", "List the ratings of a catalog item.")
	fs.UintVar(&cmd.ID, "id", 0, "Item id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return requireFlags(fs, "id")
}

func (cmd *RatingsCommand) Run() error {
	return cmd.withService(func(svc *services.Service) error {
		item, err := svc.Get(cmd.ID)
		if err != nil {
			return err
		}

		rateable, ok := item.(entities.Rateable)
		if !ok || len(rateable.RatingList()) == 0 {
			cmd.printf("%q has no ratings\n", item.Common().Title)
			return nil
		}

		cmd.printf("%q: average %.2f from %d ratings\n", item.Common().Title, rateable.AverageRating(), len(rateable.RatingList()))
		for _, r := range rateable.RatingList() {
			line := ""
			if r.Comment != "" {
				line += " " + r.Comment
			}
			if r.Keywords != "" {
				line += " [" + r.Keywords + "]"
			}
			user := r.UserID
			if user == "" {
				user = entities.DefaultRatingUser
			}
			cmd.printf("  %2d  %s%s\n", r.Score, user, line)
		}
		return nil
	})
}
