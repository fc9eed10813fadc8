package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/sky-flux/irt/internal/cli.Version=...".
var Version = "dev"

// VersionInfo is the output of the version command.
type VersionInfo struct {
	Version string `json:"version"`
}

// WriteText prints the version line.
func (v VersionInfo) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "irtcalib %s\n", v.Version)
	return err
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Success(VersionInfo{Version: Version})
		},
	}
}
