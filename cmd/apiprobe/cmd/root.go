// file: cmd/apiprobe/cmd/root.go
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"apiprobe/config"
	"apiprobe/internal/logger"
	"apiprobe/internal/token"
)

// AddCommands adds all the subcommands to the root command.
func AddCommands(root *cobra.Command) {
	root.AddCommand(tokenCmd)
	root.AddCommand(userCmd)
	root.AddCommand(checkCmd)
	root.AddCommand(monitorCmd)
}

// loadConfig reads the config file named by the persistent --config flag
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// startCache builds the issuer fetcher and starts the token cache. The
// caller owns the returned cache and must Stop it.
func startCache(ctx context.Context, cfg *config.Config, log *logger.Logger, opts ...token.Option) (*token.Cache, error) {
	fetcher, err := token.NewIssuerFetcher(cfg.Auth)
	if err != nil {
		return nil, err
	}

	opts = append([]token.Option{
		token.WithRefreshBuffer(cfg.Auth.RefreshBuffer),
		token.WithLogger(log),
	}, opts...)

	cache := token.NewCache(fetcher, opts...)
	if err := cache.Start(ctx); err != nil {
		return nil, err
	}
	return cache, nil
}
