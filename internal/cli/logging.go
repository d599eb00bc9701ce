package cli

import (
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"mltrading-api/internal/config"
	"mltrading-api/pkg/confkit"
)

// ConfigSummaryLines returns human readable lines describing the loaded app config.
func ConfigSummaryLines(cfg *config.Config) []string {
	if cfg == nil {
		return []string{"Configuration: <nil>"}
	}

	lines := []string{
		fmt.Sprintf("Environment: %s", cfg.Env),
		fmt.Sprintf("Database: %s (%s)", cfg.Database.Driver, presence(strings.TrimSpace(cfg.Database.DSN) != "")),
		fmt.Sprintf("Redis: %s", redisLine(cfg)),
		fmt.Sprintf("TTL (current/history): %ds / %ds", cfg.TTL.Current, cfg.TTL.History),
		fmt.Sprintf("Resolver: fresh<%dd floor=%d overfetch=%dx tz=%s",
			cfg.Resolver.FreshnessDays, cfg.Resolver.SufficiencyFloor, cfg.Resolver.Overfetch, cfg.Resolver.Timezone),
		fmt.Sprintf("Backfill: period=%s delay=%s cron=%q tz=%s",
			cfg.Backfill.Period, cfg.Backfill.Delay, cfg.Backfill.UpdateCron, cfg.Backfill.Timezone),
		sectionLine("Market config", cfg.Market),
	}

	return lines
}

// LogConfigSummary emits the configuration summary using logx.
func LogConfigSummary(cfg *config.Config) {
	lines := ConfigSummaryLines(cfg)
	if len(lines) == 0 {
		return
	}
	logx.Info("configuration summary")
	for _, line := range lines {
		logx.Infof("config • %s", line)
	}
}

func redisLine(cfg *config.Config) string {
	if strings.TrimSpace(cfg.Redis.Host) == "" {
		return fmt.Sprintf("not configured, in-memory cache (limit %d)", cfg.TTL.MemoryLimit)
	}
	return "configured"
}

func presence(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func sectionLine[T any](name string, section confkit.Section[T]) string {
	switch {
	case strings.TrimSpace(section.File) != "":
		return fmt.Sprintf("%s: %s", name, section.File)
	case section.Value != nil:
		return fmt.Sprintf("%s: inline", name)
	default:
		return fmt.Sprintf("%s: not configured", name)
	}
}
