// Package migration owns the versioned ledger schema.
package migration

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/subledger/internal/shared/logger"
)

// ErrSchemaOutdated is returned when the database is older than this build.
var ErrSchemaOutdated = errors.New("database schema is outdated")

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks the goose strategy for driver.
func NewManager(driver string, log logger.Interface) *Manager {
	return NewManagerWithStrategy(NewGooseStrategy(driver, log), log)
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(ctx context.Context, db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(ctx, db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

// RequireVersion refuses a database whose applied schema is below
// RequiredVersion. Newer schemas are accepted so a rollback of the binary
// keeps working against additive migrations.
func RequireVersion(ctx context.Context, db *gorm.DB, driver string, log logger.Interface) error {
	version, err := NewGooseStrategy(driver, log).GetVersion(ctx, db)
	if err != nil {
		return err
	}
	if version < RequiredVersion {
		return fmt.Errorf("%w: have version %d, need %d; run `subledger migrate up`",
			ErrSchemaOutdated, version, RequiredVersion)
	}
	return nil
}
