package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pace-rs/pace/internal/app"
	"github.com/pace-rs/pace/internal/domain"
)

// NewHoldCommand creates the hold subcommand.
func NewHoldCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		at       string
		reason   string
		newBreak bool
	)

	cmd := &cobra.Command{
		Use:   "hold",
		Short: "Pause the current activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rootOpts.setup()
			if err != nil {
				return err
			}
			defer env.Close()

			beginTime, err := parseTimeFlag(at, env.zone, time.Now())
			if err != nil {
				return err
			}

			action := domain.IntermissionExtend
			if newBreak {
				action = domain.IntermissionNew
			}

			activity, err := env.service.Hold(cmd.Context(), app.HoldOptions{
				Action:    action,
				BeginTime: beginTime,
				Reason:    reason,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Held %s (%s)\n", activity.Description, activity.Guid)
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "hold time (RFC 3339 or HH:MM, default now)")
	cmd.Flags().StringVar(&reason, "reason", "", "why the activity is being paused")
	cmd.Flags().BoolVar(&newBreak, "new", false, "record a new intermission even if one is already open")

	return cmd
}
