package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pace-rs/pace/internal/app"
)

// NewResumeCommand creates the resume subcommand.
func NewResumeCommand(rootOpts *RootOptions) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume the held activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rootOpts.setup()
			if err != nil {
				return err
			}
			defer env.Close()

			resumeTime, err := parseTimeFlag(at, env.zone, time.Now())
			if err != nil {
				return err
			}

			activity, err := env.service.Resume(cmd.Context(), app.ResumeOptions{
				ResumeTime: resumeTime,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Resumed %s (%s)\n", activity.Description, activity.Guid)
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "resume time (RFC 3339 or HH:MM, default now)")

	return cmd
}
