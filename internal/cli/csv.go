package cli

import (
	"github.com/mrlokans/libcatalog/internal/audit"
	"github.com/mrlokans/libcatalog/internal/config"
	"github.com/mrlokans/libcatalog/internal/services"
)

// ExportCommand writes the whole catalog to a CSV file.
type ExportCommand struct {
	base
	File string
}

func NewExportCommand(cfg *config.Config) *ExportCommand {
	return &ExportCommand{base: newBase(cfg)}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := cmd.newFlagSet("export", "-file <path>", "Export the catalog to a semicolon-delimited CSV file.")
	fs.StringVar(&cmd.File, "file", "", "Destination CSV file (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return requireFlags(fs, "file")
}

func (cmd *ExportCommand) Run() error {
	return cmd.withService(func(svc *services.Service) error {
		items, err := svc.List()
		if err != nil {
			return err
		}
		if err := svc.ExportCSV(cmd.File, items); err != nil {
			return err
		}
		cmd.printf("Exported %d items to %s\n", len(items), cmd.File)
		return nil
	})
}

// ImportCommand adds the items of a CSV file to the catalog.
type ImportCommand struct {
	base
	File     string
	Report   bool
	AuditDir string
}

func NewImportCommand(cfg *config.Config) *ImportCommand {
	return &ImportCommand{base: newBase(cfg), AuditDir: cfg.Audit.Dir}
}

func (cmd *ImportCommand) ParseFlags(args []string) error {
	fs := cmd.newFlagSet("import", "-file <path> [-report]",
		"Import items from a CSV file. Invalid lines are reported and skipped.")
	fs.StringVar(&cmd.File, "file", "", "CSV file to import (required)")
	fs.BoolVar(&cmd.Report, "report", false, "Save a JSON import report in the audit directory")
	fs.StringVar(&cmd.AuditDir, "audit-dir", cmd.AuditDir, "Directory for import reports")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return requireFlags(fs, "file")
}

func (cmd *ImportCommand) Run() error {
	return cmd.withService(func(svc *services.Service) error {
		result, err := svc.ImportCSV(cmd.File)
		if err != nil {
			return err
		}

		cmd.printf("Imported %d of %d items from %s (%d skipped, %d failed)\n",
			result.Imported, result.Parsed, cmd.File, result.Skipped, result.Failed)
		for _, msg := range result.Errors {
			cmd.printf("  %s\n", msg)
		}

		if cmd.Report {
			name, err := audit.NewAuditor(cmd.AuditDir).SaveReport("import", result.BatchID, result)
			if err != nil {
				return err
			}
			cmd.printf("Report saved as %s\n", name)
		}
		return nil
	})
}
