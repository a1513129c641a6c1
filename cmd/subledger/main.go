// @title           subledger API
// @version         1.0
// @description     Subscription billing ledger: registry, variant catalog, token settlement and subscription lifecycle.
// @BasePath        /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/subledger/internal/interfaces/cli/auth"
	"github.com/orris-inc/subledger/internal/interfaces/cli/catalog"
	"github.com/orris-inc/subledger/internal/interfaces/cli/migrate"
	"github.com/orris-inc/subledger/internal/interfaces/cli/server"
	"github.com/orris-inc/subledger/internal/shared/constants"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "subledger",
		Short:        "subledger - subscription billing ledger",
		Long:         `subledger sells time-limited subscriptions priced in a fungible token and keeps the ledger of who holds what.`,
		Version:      constants.Version,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		catalog.NewCommand(),
		auth.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
