package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pace-rs/pace/internal/domain"
)

// NewDeleteCommand creates the delete subcommand.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <guid>",
		Short: "Delete an activity and its intermissions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			guid, err := domain.ParseGuid(args[0])
			if err != nil {
				return err
			}

			env, err := rootOpts.setup()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.service.Delete(cmd.Context(), guid); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted activity %s\n", guid)
			return nil
		},
	}

	return cmd
}
