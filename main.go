package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/libcatalog/internal/cli"
	"github.com/mrlokans/libcatalog/internal/config"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.NewConfig()
	name := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch name {
	case "list":
		cmd = cli.NewListCommand(cfg)
	case "search":
		cmd = cli.NewSearchCommand(cfg)
	case "add-book":
		cmd = cli.NewAddBookCommand(cfg)
	case "add-audiobook":
		cmd = cli.NewAddAudiobookCommand(cfg)
	case "edit":
		cmd = cli.NewEditCommand(cfg)
	case "remove":
		cmd = cli.NewRemoveCommand(cfg)
	case "lend":
		cmd = cli.NewLoanCommand(cfg, cli.LoanLend)
	case "return":
		cmd = cli.NewLoanCommand(cfg, cli.LoanReturn)
	case "toggle-loan":
		cmd = cli.NewLoanCommand(cfg, cli.LoanToggle)
	case "rate":
		cmd = cli.NewRateCommand(cfg)
	case "ratings":
		cmd = cli.NewRatingsCommand(cfg)
	case "export":
		cmd = cli.NewExportCommand(cfg)
	case "import":
		cmd = cli.NewImportCommand(cfg)
	case "stats":
		cmd = cli.NewStatsCommand(cfg)
	case "seed":
		cmd = cli.NewSeedCommand(cfg)
	case "daemon":
		cmd = cli.NewDaemonCommand(cfg, Version)

	case "version":
		fmt.Printf("libcatalog %s (%s)\n", Version, Commit)
		return

	case "-h", "--help", "help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  list           List every catalog item\n")
	fmt.Fprintf(os.Stderr, "  search         Search items by title and kind\n")
	fmt.Fprintf(os.Stderr, "  add-book       Add a book\n")
	fmt.Fprintf(os.Stderr, "  add-audiobook  Add an audiobook\n")
	fmt.Fprintf(os.Stderr, "  edit           Edit an item\n")
	fmt.Fprintf(os.Stderr, "  remove         Remove an item and its ratings\n")
	fmt.Fprintf(os.Stderr, "  lend           Mark a book as lent\n")
	fmt.Fprintf(os.Stderr, "  return         Mark a book as returned\n")
	fmt.Fprintf(os.Stderr, "  toggle-loan    Lend or return a book\n")
	fmt.Fprintf(os.Stderr, "  rate           Rate an item\n")
	fmt.Fprintf(os.Stderr, "  ratings        Show the ratings of an item\n")
	fmt.Fprintf(os.Stderr, "  export         Export the catalog to CSV\n")
	fmt.Fprintf(os.Stderr, "  import         Import items from CSV\n")
	fmt.Fprintf(os.Stderr, "  stats          Show catalog totals\n")
	fmt.Fprintf(os.Stderr, "  seed           Add sample items to an empty catalog\n")
	fmt.Fprintf(os.Stderr, "  daemon         Run scheduled backups\n")
	fmt.Fprintf(os.Stderr, "  version        Print the version\n")
	fmt.Fprintf(os.Stderr, "\nThe catalog file defaults to DATABASE_PATH (%s). Every command accepts -db.\n", config.DefaultDatabasePath)
	fmt.Fprintf(os.Stderr, "Use '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
