package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/zeromicro/go-zero/core/logx"

	"mltrading-api/internal/backfill"
)

const shutdownTimeout = 30 * time.Second

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run update on backfill.updateCron until interrupted",
	RunE:  runSchedule,
}

func runSchedule(cmd *cobra.Command, args []string) error {
	env, err := loadJobEnv()
	if err != nil {
		return err
	}
	loc, err := env.cfg.Backfill.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler, err := backfill.NewScheduler(env.cfg.Backfill.UpdateCron, loc, func(context.Context) {
		report, err := env.runner.Update(ctx)
		for _, line := range reportLines(report) {
			logx.Info(line)
		}
		if err != nil {
			logx.Errorf("scheduled update: %v", err)
		}
	})
	if err != nil {
		return err
	}
	scheduler.Start()
	fmt.Fprintf(cmd.OutOrStdout(), "Scheduled update %q (%s), next run %s\n",
		env.cfg.Backfill.UpdateCron, loc, scheduler.Next().Format(time.RFC3339))

	<-ctx.Done()
	logx.Info("shutting down scheduler")
	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	scheduler.Stop(stopCtx)
	return nil
}

func reportLines(report *backfill.Report) []string {
	if report == nil {
		return nil
	}
	return report.Lines()
}
