package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand prints the tool version.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "propchain", Version)
		},
	}
}
