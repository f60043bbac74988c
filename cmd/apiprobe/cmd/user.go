// file: cmd/apiprobe/cmd/user.go
package cmd

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"apiprobe/internal/github"
	"apiprobe/internal/logger"
)

var userCmd = &cobra.Command{
	Use:   "user [login]",
	Short: "Fetch a user profile from the API",
	Long: `The user command fetches the profile of the authenticated user, or of the
named user when a login argument is given, and prints it as JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()
		log := logger.NewNopLogger()

		cache, err := startCache(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer cache.Stop()

		client := github.NewClient(cfg.GitHub, cache, log)

		var user *github.User
		if len(args) == 1 {
			user, err = client.User(ctx, args[0])
		} else {
			user, err = client.AuthenticatedUser(ctx)
		}
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(user, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode profile: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}
