package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/libcatalog/internal/entities"
)

type fakeExporter struct {
	items   []entities.Item
	listErr error
	paths   []string
}

func (f *fakeExporter) List() ([]entities.Item, error) {
	return f.items, f.listErr
}

func (f *fakeExporter) ExportCSV(path string, items []entities.Item) error {
	f.paths = append(f.paths, path)
	return os.WriteFile(path, []byte("Tipo;Titulo;Anio;FechaAdquisicion;InfoExtra\n"), 0644)
}

type fakeEnqueuer struct {
	tasks []backlite.Task
	err   error
}

func (f *fakeEnqueuer) Enqueue(task backlite.Task) (string, error) {
	f.tasks = append(f.tasks, task)
	return "id", f.err
}

func TestBackupFileName(t *testing.T) {
	at := time.Date(2025, 3, 4, 5, 6, 7, 0, time.FixedZone("X", 3600))
	assert.Equal(t, "catalog-20250304-040607.000000000.csv", BackupFileName(at))

	// Backups taken within the same second get distinct names.
	later := at.Add(1500 * time.Microsecond)
	assert.Equal(t, "catalog-20250304-040607.001500000.csv", BackupFileName(later))
	assert.Less(t, BackupFileName(at), BackupFileName(later))
}

func TestBackupCatalogProcessor(t *testing.T) {
	t.Run("writes a backup and schedules pruning", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "backups")
		exporter := &fakeExporter{}
		enqueuer := &fakeEnqueuer{}

		err := BackupCatalogProcessor(exporter, enqueuer)(context.Background(), BackupCatalogTask{Dir: dir, Keep: 2})
		require.NoError(t, err)

		require.Len(t, exporter.paths, 1)
		assert.Equal(t, dir, filepath.Dir(exporter.paths[0]))
		assert.True(t, strings.HasPrefix(filepath.Base(exporter.paths[0]), "catalog-"))
		_, err = os.Stat(exporter.paths[0])
		assert.NoError(t, err)

		require.Len(t, enqueuer.tasks, 1)
		assert.Equal(t, PruneBackupsTask{Dir: dir, Keep: 2}, enqueuer.tasks[0])
	})

	t.Run("no pruning without a limit", func(t *testing.T) {
		enqueuer := &fakeEnqueuer{}
		err := BackupCatalogProcessor(&fakeExporter{}, enqueuer)(context.Background(), BackupCatalogTask{Dir: t.TempDir()})
		require.NoError(t, err)
		assert.Empty(t, enqueuer.tasks)
	})

	t.Run("enqueue failure does not fail the backup", func(t *testing.T) {
		enqueuer := &fakeEnqueuer{err: errors.New("queue closed")}
		err := BackupCatalogProcessor(&fakeExporter{}, enqueuer)(context.Background(), BackupCatalogTask{Dir: t.TempDir(), Keep: 1})
		assert.NoError(t, err)
	})

	t.Run("list failure", func(t *testing.T) {
		exporter := &fakeExporter{listErr: errors.New("db gone")}
		err := BackupCatalogProcessor(exporter, nil)(context.Background(), BackupCatalogTask{Dir: t.TempDir()})
		assert.ErrorContains(t, err, "db gone")
		assert.Empty(t, exporter.paths)
	})

	t.Run("misconfigured", func(t *testing.T) {
		assert.Error(t, BackupCatalogProcessor(nil, nil)(context.Background(), BackupCatalogTask{Dir: t.TempDir()}))
		assert.Error(t, BackupCatalogProcessor(&fakeExporter{}, nil)(context.Background(), BackupCatalogTask{}))
	})
}

func TestPruneBackups(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"catalog-20250101-000000.csv",
		"catalog-20250103-000000.csv",
		"catalog-20250102-000000.csv",
		"catalog-20250104-000000.csv",
		"notes.csv",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	removed, err := PruneBackups(dir, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	remaining := make([]string, 0, len(entries))
	for _, e := range entries {
		remaining = append(remaining, e.Name())
	}
	assert.ElementsMatch(t, []string{
		"catalog-20250103-000000.csv",
		"catalog-20250104-000000.csv",
		"notes.csv",
	}, remaining)

	t.Run("fewer files than the limit", func(t *testing.T) {
		removed, err := PruneBackups(dir, 5)
		require.NoError(t, err)
		assert.Zero(t, removed)
	})

	t.Run("invalid limit", func(t *testing.T) {
		_, err := PruneBackups(dir, 0)
		assert.Error(t, err)
	})
}

func TestBackupQueues_EndToEnd(t *testing.T) {
	client := newTestClient(t)
	dir := filepath.Join(t.TempDir(), "backups")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog-20000101-000000.csv"), nil, 0644))

	client.Register(
		NewBackupCatalogQueue(&fakeExporter{}, client),
		NewPruneBackupsQueue(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer stopCancel()
		client.Stop(stopCtx)
	}()

	_, err := client.Enqueue(BackupCatalogTask{Dir: dir, Keep: 1})
	require.NoError(t, err)

	// The old backup disappears once the prune task has run.
	assert.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, "catalog-20000101-000000.csv"))
		return os.IsNotExist(err)
	}, 10*time.Second, 50*time.Millisecond)

	matches, err := filepath.Glob(filepath.Join(dir, "catalog-*.csv"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
