// Command seed fills a running laurel service with generated awards through
// its admin API and verifies the placement, preview and rotation rules.
package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/redstonehub/laurel/internal/config"
	"github.com/redstonehub/laurel/internal/seeding"
	"github.com/redstonehub/laurel/pkg/logger"
)

const defaultRunTimeout = 5 * time.Minute

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfg        seeding.Config
		logFormat  string
		runTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed and verify a laurel service",
		Long: `Seed generates Hall of Fame and Weekly Best Content submissions for one
month, posts them through the admin API and then checks:

  - at most one first place per (month, category)
  - the opening submission of each group is auto-placed first
  - conflicting first places are rejected
  - month previews stay within the preview size
  - the admin category advances once a group fills`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.InitWithFormat(logFormat); err != nil {
				return err
			}
			if cfg.Verbose {
				_ = logger.SetLevelString("debug")
			}
			if cfg.AdminSecret == "" {
				cfg.AdminSecret = os.Getenv(config.EnvPrefix + "ADMIN_JWT_SECRET")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
			defer cancel()
			_, err := seeding.Run(ctx, cfg)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "Base URL of the service")
	flags.StringVar(&cfg.AdminSecret, "secret", "", "Admin JWT secret (default $"+config.EnvPrefix+"ADMIN_JWT_SECRET)")
	flags.StringVar(&cfg.Month, "month", "", "Month name to seed (default current month)")
	flags.IntVar(&cfg.Year, "year", 0, "Year to seed (default current year)")
	flags.IntVar(&cfg.PerCategory, "per-category", seeding.DefaultPerCategory, "Hall of Fame submissions per category")
	flags.IntVar(&cfg.Weeks, "weeks", seeding.DefaultWeeks, "Weekly Best Content submissions")
	flags.IntVar(&cfg.Threshold, "threshold", seeding.DefaultThreshold, "Group size at which the service advances the category")
	flags.IntVar(&cfg.PreviewSize, "preview", seeding.DefaultPreviewSize, "Month tile preview cap")
	flags.IntVar(&cfg.Workers, "workers", seeding.DefaultWorkers, "Concurrent submissions per group")
	flags.DurationVar(&cfg.Timeout, "timeout", seeding.DefaultTimeout, "HTTP request timeout")
	flags.StringVar(&cfg.OutputFile, "output", "", "Write generated submissions to this file")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&logFormat, "log-format", "text", "Log format (text or json)")
	flags.DurationVar(&runTimeout, "run-timeout", defaultRunTimeout, "Overall run timeout")
	return cmd
}
