package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pace-rs/pace/internal/app"
)

// NewEndCommand creates the end subcommand.
func NewEndCommand(rootOpts *RootOptions) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "end",
		Short: "End the current activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rootOpts.setup()
			if err != nil {
				return err
			}
			defer env.Close()

			endTime, err := parseTimeFlag(at, env.zone, time.Now())
			if err != nil {
				return err
			}

			activity, err := env.service.End(cmd.Context(), app.EndOptions{
				EndTime: endTime,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Ended %s, worked %s (%s)\n",
				activity.Description, activity.Duration.String(), activity.Guid)
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "end time (RFC 3339 or HH:MM, default now)")

	return cmd
}
