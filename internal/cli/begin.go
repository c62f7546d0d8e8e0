package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pace-rs/pace/internal/app"
)

// NewBeginCommand creates the begin subcommand.
func NewBeginCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		category string
		tags     []string
		at       string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "begin <description>",
		Short: "Start tracking a new activity",
		Args:  cobra.MinimumNArgs(1),
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

			activity, err := env.service.Begin(cmd.Context(), app.BeginOptions{
				Description: strings.Join(args, " "),
				Category:    category,
				Tags:        tags,
				BeginTime:   beginTime,
				Force:       force,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Began %s at %s (%s)\n",
				activity.Description, activity.Begin.String(), activity.Guid)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "category for the activity")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "tags for the activity (repeatable)")
	cmd.Flags().StringVar(&at, "at", "", "begin time (RFC 3339 or HH:MM, default now)")
	cmd.Flags().BoolVar(&force, "force", false, "end any current activity at the new begin time")

	return cmd
}
