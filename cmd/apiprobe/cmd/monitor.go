// file: cmd/apiprobe/cmd/monitor.go
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"apiprobe/internal/logger"
	"apiprobe/internal/probe"
	"apiprobe/internal/token"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor --plan <plan.yaml>",
	Short: "Run a check plan on its cron schedule until interrupted",
	Long: `The monitor command loads a check plan with a schedule, keeps the bearer
token fresh in the background, and executes the plan on every schedule firing.
With metrics enabled in the config, check outcomes and token refresh activity
are exposed on a Prometheus endpoint.`,
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
		if plan.Schedule == "" {
			return fmt.Errorf("plan %s has no schedule; use 'check' for one-shot runs", planPath)
		}

		log, err := logger.NewLogger(&cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer log.Sync()

		log.Info("apiprobe monitor starting",
			"plan", planPath,
			"schedule", plan.Schedule,
			"checks", len(plan.Checks))

		// Metrics
		var tokenMetrics *token.Metrics
		var probeMetrics *probe.Metrics
		if cfg.Metrics.Enabled {
			reg := prometheus.NewRegistry()
			tokenMetrics, err = token.NewMetrics(reg)
			if err != nil {
				return fmt.Errorf("failed to create token metrics: %w", err)
			}
			probeMetrics, err = probe.NewMetrics(reg)
			if err != nil {
				return fmt.Errorf("failed to create probe metrics: %w", err)
			}

			mux := http.NewServeMux()
			mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			metricsServer := &http.Server{Addr: cfg.Metrics.Address, Handler: mux}

			go func() {
				log.Info("starting metrics server", "address", cfg.Metrics.Address)
				if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("metrics server error", "error", err)
				}
			}()
			defer metricsServer.Close()
		} else {
			log.Info("metrics are disabled")
		}

		// Token cache
		cache, err := startCache(context.Background(), cfg, log,
			token.WithMetrics(tokenMetrics),
			token.WithFaultHook(func(err error) {
				log.Warn("token refresh fault, keeping last good token", "error", err)
			}),
		)
		if err != nil {
			return err
		}
		defer cache.Stop()

		// Scheduler
		runner := probe.NewRunner(cfg.GitHub.BaseURL, cfg.GitHub.Client, cache, log, probeMetrics)
		scheduler, err := probe.NewScheduler(plan, runner, log)
		if err != nil {
			return err
		}
		scheduler.Start()

		log.Info("apiprobe monitor running")

		// Wait for shutdown signal
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		log.Info("shutdown signal received, stopping...")

		if err := scheduler.Stop(); err != nil {
			log.Error("error stopping scheduler", "error", err)
		}

		log.Info("shutdown complete")
		return nil
	},
}

func init() {
	monitorCmd.Flags().StringP("plan", "p", "", "Path to the check plan file (required)")
	monitorCmd.MarkFlagRequired("plan")
}
