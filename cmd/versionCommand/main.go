package versionCommand

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/t-kuni/ngpkgsync/cmd/versionCommand.Version=..."
var Version = "dev"
var Revision = "unknown"

type VersionCommand struct {
	CobraCommand *cobra.Command
}

func NewVersionCommand() *VersionCommand {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of ngpkgsync",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ngpkgsync version %s (rev: %s)\n", Version, Revision)
		},
	}

	return &VersionCommand{
		CobraCommand: cmd,
	}
}
