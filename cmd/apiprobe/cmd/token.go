// file: cmd/apiprobe/cmd/token.go
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"apiprobe/internal/logger"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Fetch a bearer token from the issuer and print it",
	Long: `The token command performs a single client-credentials exchange against the
configured issuer and prints the resulting access token to stdout. Useful for
piping into curl or inspecting the token contents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		cache, err := startCache(context.Background(), cfg, logger.NewNopLogger())
		if err != nil {
			return err
		}
		defer cache.Stop()

		fmt.Fprintln(cmd.OutOrStdout(), cache.AccessToken())
		return nil
	},
}
