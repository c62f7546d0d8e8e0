package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pace-rs/pace/internal/domain"
)

// NewListCommand creates the list subcommand.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked activities, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rootOpts.setup()
			if err != nil {
				return err
			}
			defer env.Close()

			activities, err := env.service.Activities(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(activities) == 0 {
				fmt.Fprintln(out, "No activities tracked yet.")
				return nil
			}
			for _, activity := range activities {
				fmt.Fprintln(out, formatActivityLine(activity))
			}
			return nil
		},
	}

	return cmd
}

// formatActivityLine renders one activity as a single history line.
func formatActivityLine(activity domain.Activity) string {
	line := fmt.Sprintf("%s  %-6s  %s", activity.Guid, activity.Status, activity.Description)
	if activity.Category != "" {
		line += fmt.Sprintf(" [%s]", activity.Category)
	}
	line += fmt.Sprintf("  %s", activity.Begin.String())
	if activity.End != nil {
		line += fmt.Sprintf(" - %s", activity.End.String())
	}
	if activity.Duration != nil {
		line += fmt.Sprintf("  worked %s", activity.Duration.String())
	}
	return line
}
