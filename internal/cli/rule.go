package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/centerpulse/centerpulse/pkg/client"
)

func newRuleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rules",
		Aliases: []string{"rule"},
		Short:   "Administer alert rules",
	}

	cmd.AddCommand(newRuleListCmd())
	cmd.AddCommand(newRuleGetCmd())
	cmd.AddCommand(newRuleCreateCmd())
	cmd.AddCommand(newRuleDeleteCmd())

	return cmd
}

func newRuleListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List alert rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			rules, err := apiClient.Rules().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list rules: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(rules)
			}

			t := NewTable("ID", "NAME", "TRIGGER", "THRESHOLD", "PRIORITY", "CHANNELS", "ENABLED")
			for _, r := range rules {
				t.AddRow(
					r.ID,
					truncate(r.Name, 30),
					r.TriggerType,
					strconv.FormatFloat(r.Threshold, 'f', -1, 64),
					formatPriority(r.Priority),
					strings.Join(r.Channels, ","),
					strconv.FormatBool(r.Enabled),
				)
			}
			t.Render()
			return nil
		},
	}
}

func newRuleGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show alert rule details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			r, err := apiClient.Rules().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get rule: %w", err)
			}

			return printOutput(r)
		},
	}
}

func newRuleCreateCmd() *cobra.Command {
	var req client.RuleRequest
	var channels, roles string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an alert rule",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			req.Channels = strings.Split(channels, ",")
			if roles != "" {
				req.RecipientRoles = strings.Split(roles, ",")
			}

			r, err := apiClient.Rules().Create(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to create rule: %w", err)
			}

			fmt.Printf("Rule %s created\n", r.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "rule name (required)")
	cmd.Flags().StringVar(&req.TriggerType, "trigger", "", "trigger type (required)")
	cmd.Flags().Float64Var(&req.Threshold, "threshold", 0, "trigger threshold")
	cmd.Flags().StringVar(&req.Priority, "priority", "medium", "priority: critical, high, medium, low")
	cmd.Flags().StringVar(&channels, "channels", "slack", "comma-separated channels")
	cmd.Flags().StringVar(&roles, "roles", "", "comma-separated recipient roles")
	cmd.Flags().StringVar(&req.MessageTemplate, "template", "", "message template (required)")
	cmd.Flags().StringVar(&req.QuietHoursStart, "quiet-start", "", "quiet hours start (HH:MM)")
	cmd.Flags().StringVar(&req.QuietHoursEnd, "quiet-end", "", "quiet hours end (HH:MM)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("trigger")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

func newRuleDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an alert rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if err := apiClient.Rules().Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete rule: %w", err)
			}

			fmt.Printf("Rule %s deleted\n", args[0])
			return nil
		},
	}
}
