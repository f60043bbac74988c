// file: cmd/apiprobe/cmd/check.go
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"apiprobe/internal/logger"
	"apiprobe/internal/probe"
)

var checkCmd = &cobra.Command{
	Use:   "check --plan <plan.yaml>",
	Short: "Run a plan of API checks once and report the results",
	Long: `The check command loads a YAML check plan, executes every check against the
configured API with a fresh bearer token, and prints one line per check. It
exits non-zero if any check fails, which makes it usable from CI pipelines.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		planPath, _ := cmd.Flags().GetString("plan")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		plan, err := probe.LoadPlan(planPath)
		if err != nil {
			return err
		}

		ctx := context.Background()
		log := logger.NewNopLogger()

		cache, err := startCache(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer cache.Stop()

		runner := probe.NewRunner(cfg.GitHub.BaseURL, cfg.GitHub.Client, cache, log, nil)
		results := runner.Run(ctx, plan)

		failures := 0
		for _, result := range results {
			if result.OK() {
				fmt.Fprintf(cmd.OutOrStdout(), "PASS  %-30s %d  %v\n",
					result.Check.Name, result.StatusCode, result.Duration.Round(time.Millisecond))
			} else {
				failures++
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL  %-30s %v\n",
					result.Check.Name, result.Err)
			}
		}

		if failures > 0 {
			return fmt.Errorf("%d of %d checks failed", failures, len(results))
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringP("plan", "p", "", "Path to the check plan file (required)")
	checkCmd.MarkFlagRequired("plan")
}
