package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/centerpulse/centerpulse/pkg/client"
)

func newCenterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "centers",
		Aliases: []string{"center"},
		Short:   "Administer monitored centers",
	}

	cmd.AddCommand(newCenterListCmd())
	cmd.AddCommand(newCenterCreateCmd())
	cmd.AddCommand(newCenterDeleteCmd())

	return cmd
}

func newCenterListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List centers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			centers, err := apiClient.Centers().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list centers: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(centers)
			}

			t := NewTable("ID", "NAME", "REGION", "DAILY TARGET", "ACTIVE")
			for _, c := range centers {
				t.AddRow(
					c.ID,
					truncate(c.Name, 40),
					c.Region,
					strconv.Itoa(c.DailySalesTarget),
					strconv.FormatBool(c.Active),
				)
			}
			t.Render()
			return nil
		},
	}
}

func newCenterCreateCmd() *cobra.Command {
	var req client.CenterRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a center",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			c, err := apiClient.Centers().Create(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to create center: %w", err)
			}

			fmt.Printf("Center %s created\n", c.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "center name (required)")
	cmd.Flags().StringVar(&req.Region, "region", "", "center region")
	cmd.Flags().StringVar(&req.Location, "location", "", "center location")
	cmd.Flags().IntVar(&req.DailySalesTarget, "target", 0, "daily sales target")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCenterDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a center",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if err := apiClient.Centers().Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete center: %w", err)
			}

			fmt.Printf("Center %s deleted\n", args[0])
			return nil
		},
	}
}
