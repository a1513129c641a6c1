// Package auth issues bearer tokens for operators and local testing.
package auth

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/infrastructure/auth"
	"github.com/orris-inc/subledger/internal/infrastructure/config"
	"github.com/orris-inc/subledger/internal/shared/clock"
)

var (
	env        string
	configPath string
	identity   string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication tools",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(newTokenCommand())
	return cmd
}

func newTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for an identity",
		RunE:  runToken,
	}

	cmd.Flags().StringVarP(&identity, "identity", "i", "", "0x-prefixed identity the token authenticates (required)")
	_ = cmd.MarkFlagRequired("identity")

	return cmd
}

func runToken(cmd *cobra.Command, args []string) error {
	id, err := shared.ParseIdentity(identity)
	if err != nil {
		return err
	}

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	jwtCfg := cfg.Auth.JWT
	token, expiresAt, err := auth.NewJWTService(jwtCfg.Secret, jwtCfg.Issuer, jwtCfg.AccessExpMinutes, clock.SystemClock{}).Generate(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", expiresAt.Format(time.RFC3339))
	return nil
}
