package cli

import (
	"fmt"

	"github.com/mrlokans/libcatalog/internal/config"
	"github.com/mrlokans/libcatalog/internal/services"
)

type LoanAction string

const (
	LoanLend   LoanAction = "lend"
	LoanReturn LoanAction = "return"
	LoanToggle LoanAction = "toggle-loan"
)

// LoanCommand lends, returns or toggles the loan state of a book.
type LoanCommand struct {
	base
	Action LoanAction
	ID     uint
}

func NewLoanCommand(cfg *config.Config, action LoanAction) *LoanCommand {
	return &LoanCommand{base: newBase(cfg), Action: action}
}

func (cmd *LoanCommand) ParseFlags(args []string) error {
	var synopsis string
	switch cmd.Action {
	case LoanLend:
		synopsis = "Mark a book as lent. Lending a lent book does nothing."
	case LoanReturn:
		synopsis = "Mark a book as returned. Returning an available book does nothing."
	case LoanToggle:
		synopsis = "Lend an available book or return a lent one."
	default:
		return fmt.Errorf("unknown loan action %q", cmd.Action)
	}

	fs := cmd.newFlagSet(string(cmd.Action), "-id <id>", synopsis)
	fs.UintVar(&cmd.ID, "id", 0, "Book id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return requireFlags(fs, "id")
}

func (cmd *LoanCommand) Run() error {
	return cmd.withService(func(svc *services.Service) error {
		var err error
		available := false

		switch cmd.Action {
		case LoanLend:
			err = svc.Lend(cmd.ID)
		case LoanReturn:
			err = svc.Return(cmd.ID)
			available = true
		case LoanToggle:
			available, err = svc.ToggleLoan(cmd.ID)
		default:
			err = fmt.Errorf("unknown loan action %q", cmd.Action)
		}
		if err != nil {
			return err
		}

		if available {
			cmd.printf("Book #%d is available\n", cmd.ID)
		} else {
			cmd.printf("Book #%d is lent\n", cmd.ID)
		}
		return nil
	})
}
