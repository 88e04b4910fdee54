package tasks

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/libcatalog/internal/entities"
)

const backupTimeLayout = "20060102-150405.000000000"

// CatalogExporter lists the catalog and writes it as CSV.
type CatalogExporter interface {
	List() ([]entities.Item, error)
	ExportCSV(path string, items []entities.Item) error
}

// Enqueuer adds a follow-up task to the queue.
type Enqueuer interface {
	Enqueue(task backlite.Task) (string, error)
}

// BackupCatalogTask exports the whole catalog to a timestamped CSV file in Dir.
type BackupCatalogTask struct {
	Dir string `json:"dir"`
	// Keep is forwarded to the prune task. Zero keeps every backup.
	Keep int `json:"keep,omitempty"`
}

// Config returns the queue configuration for backup tasks.
func (t BackupCatalogTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "backup_catalog",
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// BackupFileName is the name of the backup taken at t.
func BackupFileName(t time.Time) string {
	return "catalog-" + t.UTC().Format(backupTimeLayout) + ".csv"
}

// BackupCatalogProcessor creates a processor function for BackupCatalogTask.
// When the task carries a Keep limit, a PruneBackupsTask is enqueued after
// a successful export.
func BackupCatalogProcessor(exporter CatalogExporter, enqueuer Enqueuer) backlite.QueueProcessor[BackupCatalogTask] {
	return func(ctx context.Context, task BackupCatalogTask) error {
		if exporter == nil {
			return fmt.Errorf("catalog exporter not configured")
		}
		if task.Dir == "" {
			return fmt.Errorf("backup directory not set")
		}

		if err := os.MkdirAll(task.Dir, 0755); err != nil {
			return fmt.Errorf("create backup directory: %w", err)
		}

		items, err := exporter.List()
		if err != nil {
			return fmt.Errorf("list catalog: %w", err)
		}

		path := filepath.Join(task.Dir, BackupFileName(time.Now()))
		if err := exporter.ExportCSV(path, items); err != nil {
			return fmt.Errorf("backup catalog: %w", err)
		}
		log.Printf("[TASK] Backed up %d items to %s", len(items), path)

		if task.Keep > 0 && enqueuer != nil {
			if _, err := enqueuer.Enqueue(PruneBackupsTask{Dir: task.Dir, Keep: task.Keep}); err != nil {
				log.Printf("[TASK] Failed to schedule backup pruning: %v", err)
			}
		}
		return nil
	}
}

// NewBackupCatalogQueue creates a backlite queue for backup tasks.
func NewBackupCatalogQueue(exporter CatalogExporter, enqueuer Enqueuer) backlite.Queue {
	return backlite.NewQueue(BackupCatalogProcessor(exporter, enqueuer))
}
