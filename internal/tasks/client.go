package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"
)

const queueDSNParams = "?_journal=WAL&_busy_timeout=5000"

// QueuePath returns the queue store kept next to a catalog store:
// catalog.db becomes catalog-tasks.db.
func QueuePath(catalogPath string) string {
	ext := filepath.Ext(catalogPath)
	return strings.TrimSuffix(catalogPath, ext) + "-tasks" + ext
}

// Client runs catalog maintenance tasks on a backlite queue persisted in its
// own SQLite file, apart from the catalog store.
type Client struct {
	queue   *backlite.Client
	db      *sql.DB
	workers int
	running atomic.Bool
}

// NewClient opens (or creates) the queue store at path and installs the
// backlite schema.
func NewClient(path string, cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()

	db, err := sql.Open("sqlite3", path+queueDSNParams)
	if err != nil {
		return nil, fmt.Errorf("failed to open task queue store: %w", err)
	}
	db.SetMaxOpenConns(cfg.Workers + 2)

	queue, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          queueLogger{},
	})
	if err == nil {
		err = queue.Install()
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set up task queue: %w", err)
	}

	return &Client{queue: queue, db: db, workers: cfg.Workers}, nil
}

// Register adds task queues. Call it before Start.
func (c *Client) Register(queues ...backlite.Queue) {
	for _, q := range queues {
		c.queue.Register(q)
	}
}

// Start launches the workers and returns. A second call is ignored.
func (c *Client) Start(ctx context.Context) {
	if !c.running.CompareAndSwap(false, true) {
		return
	}
	log.Printf("Task queue started with %d workers", c.workers)
	c.queue.Start(ctx)
}

// Stop waits for running tasks until ctx is done. It reports whether every
// worker finished in time.
func (c *Client) Stop(ctx context.Context) bool {
	if !c.running.CompareAndSwap(true, false) {
		return true
	}
	if !c.queue.Stop(ctx) {
		log.Println("Task queue stopped before all tasks completed")
		return false
	}
	log.Println("Task queue stopped")
	return true
}

// Close releases the queue store. Call it after Stop.
func (c *Client) Close() error {
	return c.db.Close()
}

// Enqueue saves one task and returns its id.
func (c *Client) Enqueue(task backlite.Task) (string, error) {
	name := task.Config().Name
	ids, err := c.queue.Add(task).Save()
	if err == nil && len(ids) == 0 {
		err = errors.New("no id returned")
	}
	if err != nil {
		return "", fmt.Errorf("failed to enqueue %s: %w", name, err)
	}
	return ids[0], nil
}

type queueLogger struct{}

func (queueLogger) Info(message string, params ...any) {
	log.Printf("[TASK] "+message, params...)
}

func (queueLogger) Error(message string, params ...any) {
	log.Printf("[TASK ERROR] "+message, params...)
}
