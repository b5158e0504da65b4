package journal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds configuration for the run journal.
type Config struct {
	// Path is the sqlite database file. An empty path disables the journal.
	Path string `mapstructure:"path" default:"data/journal.db"`
}

// Run is one journaled invocation of the reconcile pipeline.
// The per-stage counters make fairness audits reproducible: every dropped
// or degraded record of a run is accounted for here.
type Run struct {
	ID         string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	StartedAt  time.Time `gorm:"type:DATETIME NOT NULL"`
	FinishedAt time.Time `gorm:"type:DATETIME NOT NULL;index"`
	WeekMarker string    `gorm:"type:TEXT NOT NULL"`

	LootRows         int `gorm:"type:INTEGER NOT NULL"`
	LootMalformed    int `gorm:"type:INTEGER NOT NULL"`
	OffRoster        int `gorm:"type:INTEGER NOT NULL"`
	TrashDropped     int `gorm:"type:INTEGER NOT NULL"`
	SoftresRows      int `gorm:"type:INTEGER NOT NULL"`
	SoftresMalformed int `gorm:"type:INTEGER NOT NULL"`
	EventsFlagged    int `gorm:"type:INTEGER NOT NULL"`

	Published bool `gorm:"type:BOOLEAN NOT NULL"`
}

// TableName implements the GORM tabler interface.
func (Run) TableName() string { return "runs" }

// Journal records reconcile runs in a local sqlite database.
type Journal struct {
	db *gorm.DB
}

// Open opens (or creates) the journal database and migrates its schema.
func Open(cfg Config) (*Journal, error) {
	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create journal dir: %w", err)
		}
	}

	// Suppress GORM logging, the application logger reports outcomes
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, fmt.Errorf("failed to migrate journal schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Record persists a completed run.
func (j *Journal) Record(ctx context.Context, run *Run) error {
	if err := j.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Runs returns all journaled runs, most recent first.
func (j *Journal) Runs(ctx context.Context) ([]Run, error) {
	var runs []Run
	if err := j.db.WithContext(ctx).Order("finished_at DESC").Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}
