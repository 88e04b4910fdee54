package entrypoint

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrlokans/libcatalog/internal/config"
	"github.com/mrlokans/libcatalog/internal/database"
	"github.com/mrlokans/libcatalog/internal/database/catalog"
	"github.com/mrlokans/libcatalog/internal/scheduler"
	"github.com/mrlokans/libcatalog/internal/services"
	"github.com/mrlokans/libcatalog/internal/tasks"
)

// Daemon runs the task queue and the backup scheduler against one catalog.
type Daemon struct {
	cfg       *config.Config
	db        *database.Database
	service   *services.Service
	tasks     *tasks.Client
	scheduler *scheduler.BackupScheduler

	cancel context.CancelFunc
}

// NewDaemon opens the catalog store and the task queue and wires the backup
// queues. Call Start to begin processing and Shutdown to release everything.
func NewDaemon(cfg *config.Config) (*Daemon, error) {
	db, err := database.NewDatabase(cfg.Database.Path, database.WithLogLevel(database.ParseLogLevel(cfg.Database.LogLevel)))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	service := services.NewService(catalog.NewRepository(db.DB))

	taskClient, err := tasks.NewClient(tasks.QueuePath(cfg.Database.Path), tasks.Config{
		Workers:         cfg.Tasks.Workers,
		ReleaseAfter:    cfg.Tasks.ReleaseAfter,
		CleanupInterval: cfg.Tasks.CleanupInterval,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize task queue: %w", err)
	}

	taskClient.Register(
		tasks.NewBackupCatalogQueue(service, taskClient),
		tasks.NewPruneBackupsQueue(),
	)

	return &Daemon{
		cfg:       cfg,
		db:        db,
		service:   service,
		tasks:     taskClient,
		scheduler: scheduler.NewBackupScheduler(taskClient, cfg.Backup),
	}, nil
}

// Start launches the task workers and the backup scheduler. It does not block.
func (d *Daemon) Start(ctx context.Context) error {
	ctx, d.cancel = context.WithCancel(ctx)

	if err := d.scheduler.Start(ctx); err != nil {
		d.cancel()
		return fmt.Errorf("failed to start backup scheduler: %w", err)
	}

	go d.tasks.Start(ctx)
	return nil
}

// BackupNow enqueues a backup outside the schedule.
func (d *Daemon) BackupNow() (string, error) {
	return d.scheduler.RunNow()
}

// Shutdown stops the scheduler, drains the task queue within ctx and closes
// both databases.
func (d *Daemon) Shutdown(ctx context.Context) {
	d.scheduler.Stop()
	d.tasks.Stop(ctx)
	if d.cancel != nil {
		d.cancel()
	}

	if err := d.tasks.Close(); err != nil {
		log.Printf("Error closing task client: %v", err)
	}
	if err := d.db.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

// RunDaemon runs the daemon until SIGINT or SIGTERM. With backupNow a backup
// is enqueued right after start.
func RunDaemon(cfg *config.Config, version string, backupNow bool) error {
	log.Printf("Starting libcatalog daemon v%s", version)

	daemon, err := NewDaemon(cfg)
	if err != nil {
		return err
	}

	if err := daemon.Start(context.Background()); err != nil {
		daemon.Shutdown(context.Background())
		return err
	}

	if !cfg.Backup.Enabled {
		log.Printf("WARNING: scheduled backups are disabled. Set 'BACKUP_ENABLED=true' to enable them.")
	}

	if backupNow {
		if _, err := daemon.BackupNow(); err != nil {
			log.Printf("Initial backup failed: %v", err)
		}
	}

	// kill (no param) default sends syscall.SIGTERM, kill -2 is syscall.SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	log.Printf("Shutting down, waiting up to %v for running tasks", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	daemon.Shutdown(ctx)

	log.Println("Daemon exiting")
	return nil
}
