package tasks

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/mikestefanello/backlite"
)

// PruneBackupsTask deletes all but the newest Keep backups in Dir.
type PruneBackupsTask struct {
	Dir  string `json:"dir"`
	Keep int    `json:"keep"`
}

// Config returns the queue configuration for prune tasks.
func (t PruneBackupsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "prune_backups",
		MaxAttempts: 2,
		Backoff:     5 * time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: true,
		},
	}
}

// PruneBackups removes the oldest backup files in dir so that at most keep
// remain. Files not named like BackupFileName are left alone. It returns
// the number of files removed.
func PruneBackups(dir string, keep int) (int, error) {
	if keep < 1 {
		return 0, fmt.Errorf("keep must be at least 1, got %d", keep)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "catalog-*.csv"))
	if err != nil {
		return 0, fmt.Errorf("list backups: %w", err)
	}
	if len(matches) <= keep {
		return 0, nil
	}

	// Timestamps in the names sort lexically in time order.
	sort.Sort(sort.Reverse(sort.StringSlice(matches)))

	removed := 0
	for _, path := range matches[keep:] {
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("remove %s: %w", path, err)
		}
		removed++
	}
	return removed, nil
}

// PruneBackupsProcessor creates a processor function for PruneBackupsTask.
func PruneBackupsProcessor() backlite.QueueProcessor[PruneBackupsTask] {
	return func(ctx context.Context, task PruneBackupsTask) error {
		removed, err := PruneBackups(task.Dir, task.Keep)
		if err != nil {
			return fmt.Errorf("prune backups: %w", err)
		}

		log.Printf("[TASK] Pruned %d old backups from %s (keeping %d)", removed, task.Dir, task.Keep)
		return nil
	}
}

// NewPruneBackupsQueue creates a backlite queue for prune tasks.
func NewPruneBackupsQueue() backlite.Queue {
	return backlite.NewQueue(PruneBackupsProcessor())
}
