package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Database
		Audit
		Backup
		Global
		Tasks
	}

	Database struct {
		Path     string
		LogLevel string // silent, error, warn or info
	}
	Audit struct {
		Dir string // Directory for import reports
	}
	Backup struct {
		Enabled  bool
		Schedule string // Cron format: "0 0 * * *" = daily at midnight
		Dir      string
		Keep     int // Number of newest backup files to keep
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Tasks struct {
		Workers         int
		ReleaseAfter    time.Duration // Stuck tasks are handed to another worker after this
		CleanupInterval time.Duration
	}
)

// NewConfig reads the configuration from the environment, after loading
// DefaultEnvFile when it exists. Variables already set in the environment
// win over the file.
func NewConfig() *Config {
	return load(DefaultEnvFile)
}

func load(envFile string) *Config {
	_ = godotenv.Load(envFile)
	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_log_level", "warn")
	v.SetDefault("audit_dir", "./audit")
	v.SetDefault("shutdown_timeout_in_seconds", 5)

	// Backup defaults
	v.SetDefault("backup_enabled", false)
	v.SetDefault("backup_schedule", "0 0 * * *") // Daily at midnight
	v.SetDefault("backup_dir", "./backups")
	v.SetDefault("backup_keep", 7)

	// Task queue defaults
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	return v
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Audit: Audit{
			Dir: v.GetString("AUDIT_DIR"),
		},
		Backup: Backup{
			Enabled:  v.GetBool("BACKUP_ENABLED"),
			Schedule: v.GetString("BACKUP_SCHEDULE"),
			Dir:      v.GetString("BACKUP_DIR"),
			Keep:     v.GetInt("BACKUP_KEEP"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Tasks: Tasks{
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}
