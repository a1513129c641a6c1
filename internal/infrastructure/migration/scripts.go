package migration

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/orris-inc/subledger/internal/shared/config"
)

//go:embed scripts
var scriptsFS embed.FS

// RequiredVersion is the schema version this build reads and writes. Bump
// it together with every new script.
const RequiredVersion int64 = 1

// scriptsFor returns the migration scripts and goose dialect of a driver.
func scriptsFor(driver string) (fs.FS, goose.Dialect, error) {
	var (
		dir     string
		dialect goose.Dialect
	)
	switch driver {
	case config.DriverMySQL:
		dir, dialect = "scripts/mysql", goose.DialectMySQL
	case config.DriverPostgres:
		dir, dialect = "scripts/postgres", goose.DialectPostgres
	case config.DriverSQLite:
		dir, dialect = "scripts/sqlite", goose.DialectSQLite3
	default:
		return nil, "", fmt.Errorf("no migration scripts for driver %q", driver)
	}

	sub, err := fs.Sub(scriptsFS, dir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", dir, err)
	}
	return sub, dialect, nil
}
