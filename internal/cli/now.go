package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pace-rs/pace/internal/app"
)

// NewNowCommand creates the now subcommand.
func NewNowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "now",
		Short: "Show the current activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rootOpts.setup()
			if err != nil {
				return err
			}
			defer env.Close()

			activity, err := env.service.Current(cmd.Context())
			if err != nil {
				if errors.Is(err, app.ErrNoCurrentActivity) {
					fmt.Fprintln(cmd.OutOrStdout(), "No current activity.")
					return nil
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s since %s (%s)\n",
				activity.Status, activity.Description, activity.Begin.String(), activity.Guid)
			if activity.Category != "" {
				fmt.Fprintf(out, "  category: %s\n", activity.Category)
			}
			if len(activity.Tags) > 0 {
				fmt.Fprintf(out, "  tags: %v\n", activity.Tags)
			}
			if open := activity.OpenIntermission(); open != nil {
				fmt.Fprintf(out, "  on hold since %s", open.Begin.String())
				if open.Reason != "" {
					fmt.Fprintf(out, ": %s", open.Reason)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	return cmd
}
