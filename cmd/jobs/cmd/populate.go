package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mltrading-api/pkg/market"
)

var (
	populatePeriod string
	assumeYes      bool
)

var populateCmd = &cobra.Command{
	Use:   "populate",
	Short: "Load history for every symbol that has no stored bars",
	Long: `Load history for every symbol that has no stored bars.

Symbols that already have bars are skipped, so an interrupted run can simply be restarted.
Calls are spaced by backfill.delay to stay under the upstream rate limit.`,
	RunE: runPopulate,
}

func init() {
	populateCmd.Flags().StringVar(&populatePeriod, "period", "", "history period (default: backfill.period)")
	populateCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
}

func runPopulate(cmd *cobra.Command, args []string) error {
	env, err := loadJobEnv()
	if err != nil {
		return err
	}
	period := market.Period(populatePeriod)
	if populatePeriod == "" {
		period = market.Period(env.cfg.Backfill.Period)
	}
	if !period.Known() {
		return fmt.Errorf("unknown period %q", period)
	}

	out := cmd.OutOrStdout()
	symbols := env.runner.Symbols()
	estimate := time.Duration(len(symbols)) * env.cfg.Backfill.Delay
	fmt.Fprintf(out, "Stock data population: %d stocks x %s\n", len(symbols), period)
	fmt.Fprintf(out, "Estimated time: ~%s\n", estimate.Round(time.Minute))

	if !assumeYes && !confirm(cmd.InOrStdin(), out, "Start? (y/n): ") {
		fmt.Fprintln(out, "Cancelled.")
		return nil
	}

	report, err := env.runner.Populate(cmd.Context(), period)
	printReport(out, report)
	return err
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}
