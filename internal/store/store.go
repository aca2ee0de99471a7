// Package store persists guess runs for later inspection.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/languoid-cli/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Language string
	Limit    int
	Offset   int
}

// Store defines the persistence interface for guess bookkeeping.
type Store interface {
	RecordRun(ctx context.Context, run *model.GuessRun) error
	ListRuns(ctx context.Context, filter RunFilter) ([]model.GuessRun, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the configured driver.
func Open(driver, dsn string) (Store, error) {
	switch driver {
	case "sqlite":
		return NewSQLite(dsn)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}
