package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/centerpulse/centerpulse/pkg/client"
)

func newAlertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "alerts",
		Aliases: []string{"alert"},
		Short:   "Browse and acknowledge sent alerts",
	}

	cmd.AddCommand(newAlertListCmd())
	cmd.AddCommand(newAlertGetCmd())
	cmd.AddCommand(newAlertSummaryCmd())
	cmd.AddCommand(newAlertAckCmd())

	return cmd
}

func newAlertListCmd() *cobra.Command {
	var centerID, alertType string
	var days, page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sent alerts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			result, err := apiClient.Alerts().List(ctx, &client.AlertListOptions{
				ListOptions: client.ListOptions{Page: page, PageSize: pageSize},
				CenterID:    centerID,
				Type:        alertType,
				Days:        days,
			})
			if err != nil {
				return fmt.Errorf("failed to list alerts: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(result)
			}

			t := NewTable("ID", "TYPE", "CENTER", "SENT", "ACK", "MESSAGE")
			for _, a := range result.Data {
				ack := "-"
				if a.AcknowledgedBy != nil {
					ack = *a.AcknowledgedBy
				}
				t.AddRow(
					a.ID,
					a.AlertType,
					a.CenterID,
					a.SentAt.Format("2006-01-02 15:04"),
					ack,
					truncate(a.Message, 50),
				)
			}
			t.Render()
			fmt.Printf("\nPage %d of %d (%d alerts)\n", result.Page, result.TotalPages, result.TotalItems)
			return nil
		},
	}

	cmd.Flags().StringVar(&centerID, "center", "", "filter by center ID")
	cmd.Flags().StringVar(&alertType, "type", "", "filter by alert type")
	cmd.Flags().IntVar(&days, "days", 0, "limit to the trailing number of days")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "page size")

	return cmd
}

func newAlertGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show sent alert details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			a, err := apiClient.Alerts().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get alert: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(a)
			}

			fmt.Printf("ID:        %s\n", a.ID)
			fmt.Printf("Type:      %s\n", a.AlertType)
			fmt.Printf("Center:    %s\n", a.CenterID)
			fmt.Printf("Sent:      %s\n", a.SentAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("Channels:  %s\n", strings.Join(a.ChannelsSent, ", "))
			fmt.Printf("Message:   %s\n", a.Message)
			if a.AcknowledgedBy != nil {
				fmt.Printf("Acked by:  %s at %s\n", *a.AcknowledgedBy, a.AcknowledgedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

func newAlertSummaryCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show alert summary for the trailing window",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			summary, err := apiClient.Alerts().Summary(ctx, days)
			if err != nil {
				return fmt.Errorf("failed to get alert summary: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(summary)
			}

			fmt.Printf("Total:          %d\n", summary.Total)
			fmt.Printf("Acknowledged:   %d\n", summary.Acknowledged)
			fmt.Printf("Unacknowledged: %d\n", summary.Unacknowledged)
			if len(summary.ByType) > 0 {
				fmt.Println("\nBy type:")
				for k, v := range summary.ByType {
					fmt.Printf("  %-28s %d\n", k, v)
				}
			}
			if len(summary.ByCenter) > 0 {
				fmt.Println("\nBy center:")
				for k, v := range summary.ByCenter {
					fmt.Printf("  %-28s %d\n", k, v)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "trailing window in days")

	return cmd
}

func newAlertAckCmd() *cobra.Command {
	var by, action string

	cmd := &cobra.Command{
		Use:   "ack <id>",
		Short: "Acknowledge a sent alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			a, err := apiClient.Alerts().Acknowledge(ctx, args[0], by, action)
			if err != nil {
				return fmt.Errorf("failed to acknowledge alert: %w", err)
			}

			if a.AcknowledgedBy != nil {
				fmt.Printf("Alert %s acknowledged by %s\n", a.ID, *a.AcknowledgedBy)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&by, "by", "", "who is acknowledging (required)")
	cmd.Flags().StringVar(&action, "action", "", "response action taken")
	_ = cmd.MarkFlagRequired("by")

	return cmd
}
