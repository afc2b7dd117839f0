package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newEvaluateCmd() *cobra.Command {
	var hourly bool

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Trigger an evaluation sweep across all active centers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			run := apiClient.Cron().Evaluate
			if hourly {
				run = apiClient.Cron().HourlyCheck
			}

			resp, err := run(ctx)
			if err != nil {
				return fmt.Errorf("evaluation sweep failed: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(resp)
			}

			r := resp.Result
			fmt.Printf("Sweep completed at %s\n", resp.Timestamp)
			fmt.Printf("Centers:    %d\n", r.CentersChecked)
			fmt.Printf("Rules:      %d\n", r.RulesChecked)
			fmt.Printf("Evaluated:  %d\n", r.Evaluated)
			fmt.Printf("Fired:      %d\n", r.Fired)
			fmt.Printf("Suppressed: %d\n", r.Suppressed)
			fmt.Printf("Skipped:    %d\n", r.Skipped)
			fmt.Printf("Errors:     %d\n", r.Errors)
			return nil
		},
	}

	cmd.Flags().BoolVar(&hourly, "hourly", false, "use the hourly cadence entry point")

	return cmd
}
