package cli

import (
	"github.com/mrlokans/libcatalog/internal/config"
	"github.com/mrlokans/libcatalog/internal/entrypoint"
)

// DaemonCommand runs scheduled catalog backups until interrupted.
type DaemonCommand struct {
	base
	cfg       *config.Config
	version   string
	BackupNow bool
}

func NewDaemonCommand(cfg *config.Config, version string) *DaemonCommand {
	return &DaemonCommand{base: newBase(cfg), cfg: cfg, version: version}
}

func (cmd *DaemonCommand) ParseFlags(args []string) error {
	fs := cmd.newFlagSet("daemon", "[options]",
		"Run the backup scheduler and task workers. Configure with BACKUP_ENABLED, BACKUP_SCHEDULE, BACKUP_DIR and BACKUP_KEEP.")
	fs.StringVar(&cmd.cfg.Backup.Dir, "backup-dir", cmd.cfg.Backup.Dir, "Directory for backup files")
	fs.BoolVar(&cmd.BackupNow, "now", false, "Enqueue a backup immediately after start")
	return fs.Parse(args)
}

func (cmd *DaemonCommand) Run() error {
	cmd.cfg.Database.Path = cmd.DatabasePath
	return entrypoint.RunDaemon(cmd.cfg, cmd.version, cmd.BackupNow)
}
