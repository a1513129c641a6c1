package migration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/orris-inc/subledger/internal/shared/config"
	appLogger "github.com/orris-inc/subledger/internal/shared/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestGooseStrategy_UpStatusDown(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	log := appLogger.NewNop()
	strategy := NewGooseStrategy(config.DriverSQLite, log)

	err := RequireVersion(ctx, db, config.DriverSQLite, log)
	assert.ErrorIs(t, err, ErrSchemaOutdated)

	manager := NewManager(config.DriverSQLite, log)
	assert.Equal(t, "goose", manager.GetStrategy().GetName())
	require.NoError(t, manager.Migrate(ctx, db))

	version, err := strategy.GetVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, RequiredVersion, version)
	require.NoError(t, RequireVersion(ctx, db, config.DriverSQLite, log))

	for _, table := range []string{"registrations", "subscription_variants", "subscriptions",
		"ledger_events", "ledger_sequences", "token_accounts", "token_allowances"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	statuses, err := strategy.Status(ctx, db)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.True(t, statuses[0].Applied)
	assert.Equal(t, int64(1), statuses[0].Version)

	// applying again is a no-op
	require.NoError(t, manager.Migrate(ctx, db))

	require.NoError(t, strategy.MigrateDown(ctx, db, 5))
	version, err = strategy.GetVersion(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, db.Migrator().HasTable("subscriptions"))
}

func TestScriptsFor(t *testing.T) {
	for _, driver := range []string{config.DriverMySQL, config.DriverPostgres, config.DriverSQLite} {
		fsys, _, err := scriptsFor(driver)
		require.NoError(t, err, driver)
		_, err = fsys.Open("00001_init_ledger.sql")
		assert.NoError(t, err, driver)
	}

	_, _, err := scriptsFor("oracle")
	assert.Error(t, err)
}

func TestGormAutoMigrateStrategy(t *testing.T) {
	db := openSQLite(t)
	manager := NewManagerWithStrategy(NewGormAutoMigrateStrategy(appLogger.NewNop()), appLogger.NewNop())

	require.NoError(t, manager.Migrate(context.Background(), db))
	assert.Equal(t, "gorm_auto_migrate", manager.GetStrategy().GetName())
	assert.True(t, db.Migrator().HasTable("ledger_events"))
}
