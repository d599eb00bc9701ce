// Package cmd holds the jobs CLI commands.
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mltrading-api/internal/backfill"
	"mltrading-api/internal/cli"
	"mltrading-api/internal/config"
	"mltrading-api/internal/svc"
)

var (
	cfgFile      string
	providerName string
)

var rootCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Batch jobs for the stored price history",
	Long: `Batch jobs for the stored price history.

Commands:
    populate    load history for every symbol without stored bars
    update      append the newest trading day for every symbol
    schedule    run update on the configured cron schedule
`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "f", "etc/mltrading.yaml", "the config file")
	rootCmd.PersistentFlags().StringVar(&providerName, "provider", "", "market provider (default: backfill.provider or the market default)")

	rootCmd.AddCommand(populateCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(scheduleCmd)
}

type jobEnv struct {
	cfg    *config.Config
	runner *backfill.Runner
}

func loadJobEnv() (*jobEnv, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cli.LogConfigSummary(cfg)

	sc, err := svc.Build(*cfg)
	if err != nil {
		return nil, err
	}
	name := providerName
	if name == "" {
		name = cfg.Backfill.Provider
	}
	provider, err := sc.Provider(name)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, fmt.Errorf("no market provider selected; set --provider or a market default in %s", sc.MarketConfigPath)
	}

	runner, err := backfill.NewRunner(backfill.Config{
		Provider:    provider,
		Persistence: sc.Persistence,
		Bars:        sc.Repos.Prices,
		Assets:      sc.Universe.Assets(),
		Delay:       cfg.Backfill.Delay,
	})
	if err != nil {
		return nil, err
	}
	return &jobEnv{cfg: cfg, runner: runner}, nil
}

func printReport(w io.Writer, report *backfill.Report) {
	if report == nil {
		return
	}
	for _, line := range report.Lines() {
		fmt.Fprintln(w, line)
	}
}
