package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/libcatalog/internal/config"
	"github.com/mrlokans/libcatalog/internal/tasks"
)

type recordingEnqueuer struct {
	mu    sync.Mutex
	tasks []backlite.Task
	err   error
}

func (r *recordingEnqueuer) Enqueue(task backlite.Task) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return "", r.err
	}
	r.tasks = append(r.tasks, task)
	return "task-1", nil
}

func enabledBackup(schedule string) config.Backup {
	return config.Backup{Enabled: true, Schedule: schedule, Dir: "/backups", Keep: 4}
}

func TestBackupScheduler_Start(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		s := NewBackupScheduler(&recordingEnqueuer{}, config.Backup{Schedule: "0 0 * * *", Dir: "/backups"})
		require.NoError(t, s.Start(context.Background()))
		assert.False(t, s.IsRunning())
		assert.Nil(t, s.GetNextRunTime())
	})

	t.Run("no directory", func(t *testing.T) {
		cfg := enabledBackup("0 0 * * *")
		cfg.Dir = ""
		s := NewBackupScheduler(&recordingEnqueuer{}, cfg)
		require.NoError(t, s.Start(context.Background()))
		assert.False(t, s.IsRunning())
	})

	t.Run("invalid schedule", func(t *testing.T) {
		s := NewBackupScheduler(&recordingEnqueuer{}, enabledBackup("every day"))
		assert.Error(t, s.Start(context.Background()))
		assert.False(t, s.IsRunning())
	})

	t.Run("running until the context ends", func(t *testing.T) {
		s := NewBackupScheduler(&recordingEnqueuer{}, enabledBackup("0 0 * * *"))
		ctx, cancel := context.WithCancel(context.Background())

		require.NoError(t, s.Start(ctx))
		require.NoError(t, s.Start(ctx), "second start is a no-op")
		assert.True(t, s.IsRunning())

		next := s.GetNextRunTime()
		require.NotNil(t, next)
		assert.True(t, next.After(time.Now()))
		assert.Equal(t, 0, next.Hour())
		assert.Equal(t, 0, next.Minute())

		cancel()
		assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
	})
}

func TestBackupScheduler_RunNow(t *testing.T) {
	enqueuer := &recordingEnqueuer{}
	s := NewBackupScheduler(enqueuer, enabledBackup("0 0 * * *"))

	id, err := s.RunNow()
	require.NoError(t, err)
	assert.Equal(t, "task-1", id)
	require.Len(t, enqueuer.tasks, 1)
	assert.Equal(t, tasks.BackupCatalogTask{Dir: "/backups", Keep: 4}, enqueuer.tasks[0])

	t.Run("enqueue failure", func(t *testing.T) {
		s := NewBackupScheduler(&recordingEnqueuer{err: errors.New("closed")}, enabledBackup("0 0 * * *"))
		_, err := s.RunNow()
		assert.ErrorContains(t, err, "closed")
	})

	t.Run("no queue", func(t *testing.T) {
		s := NewBackupScheduler(nil, enabledBackup("0 0 * * *"))
		_, err := s.RunNow()
		assert.Error(t, err)
	})
}

func TestCronHelpers(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("*/5 * * * *"))
	assert.Error(t, ValidateCronSchedule("* * *"))
	assert.Error(t, ValidateCronSchedule("0 0 0 * * *"), "seconds field is not accepted")

	assert.Equal(t, "Daily at midnight", GetCronDescription("0 0 * * *"))
	assert.Equal(t, "Custom schedule: 5 4 * * *", GetCronDescription("5 4 * * *"))

	from := time.Date(2025, 1, 1, 10, 30, 0, 0, time.Local)
	next, err := GetNextRunTime("0 * * * *", from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 11, 0, 0, 0, time.Local), next)

	_, err = GetNextRunTime("nope", from)
	assert.Error(t, err)
}
