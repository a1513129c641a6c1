package catalog

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainCatalog "github.com/orris-inc/subledger/internal/domain/catalog"
	"github.com/orris-inc/subledger/internal/interfaces/cli/migrate"
)

func writeFixture(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func newConfig(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = writeFixture(t, dir, "config.yaml", `
database:
  driver: sqlite
  database: "`+filepath.ToSlash(filepath.Join(dir, "ledger.db"))+`"
logger:
  level: error
  output_path: stderr
ledger:
  owner: "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"
  service: "0x5fbdb2315678afecb367f032d93f642f64180aa3"
  beneficiary: "0x90f79bf6eb2c4f870365e785982e1f101e93b906"
`)
	return dir, path
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestImportCommand(t *testing.T) {
	dir, cfgPath := newConfig(t)

	_, err := run(t, migrate.NewCommand(), "up", "--config", cfgPath)
	require.NoError(t, err)

	file := writeFixture(t, dir, "variants.yaml", `
- cost: 100
  ttl: 2592000
- cost: 900
  ttl: 31536000
  available: false
`)
	out, err := run(t, NewCommand(), "import", "--config", cfgPath, "--file", file)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"0", "100", "2592000", "true"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"1", "900", "31536000", "false"}, strings.Fields(lines[2]))

	// ids continue from the existing catalog
	out, err = run(t, NewCommand(), "import", "--config", cfgPath, "--file", file)
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "2", strings.Fields(lines[1])[0])
	assert.Equal(t, "3", strings.Fields(lines[2])[0])
}

func TestImportCommand_RequiresMigratedSchema(t *testing.T) {
	dir, cfgPath := newConfig(t)
	file := writeFixture(t, dir, "variants.yaml", "- cost: 1\n  ttl: 1\n")

	_, err := run(t, NewCommand(), "import", "--config", cfgPath, "--file", file)
	assert.Error(t, err)
}

func TestImportCommand_MissingFile(t *testing.T) {
	_, cfgPath := newConfig(t)

	_, err := run(t, NewCommand(), "import", "--config", cfgPath, "--file", "does-not-exist.yaml")
	assert.ErrorContains(t, err, "failed to open variant file")
}

func TestImportCommand_OutOfRangeRejected(t *testing.T) {
	dir, cfgPath := newConfig(t)

	_, err := run(t, migrate.NewCommand(), "up", "--config", cfgPath)
	require.NoError(t, err)

	file := writeFixture(t, dir, "variants.yaml", `
- cost: 100
  ttl: 3600
- cost: 9223372036854775808
  ttl: 3600
`)
	_, err = run(t, NewCommand(), "import", "--config", cfgPath, "--file", file)
	assert.ErrorIs(t, err, domainCatalog.ErrValueOutOfRange)
	assert.ErrorContains(t, err, "import stopped after 0 variants")
}
