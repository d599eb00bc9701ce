package cmd

import (
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Append the newest trading day for every symbol",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadJobEnv()
		if err != nil {
			return err
		}
		report, err := env.runner.Update(cmd.Context())
		printReport(cmd.OutOrStdout(), report)
		return err
	},
}
