package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/Azure/xccover/pkg/cmd.Version=..." at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func newVersionCommand(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "version",
		Short:   "print XCCover's version",
		Example: "xccover version",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "XCCover Version %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "Runtime SHA: %s\n", commit)
			fmt.Fprintf(cmd.OutOrStdout(), "Created At: %s\n", date)
			return nil
		},
	}
	return cmd
}
