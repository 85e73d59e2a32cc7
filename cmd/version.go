// ABOUTME: Version command for the jobboard CLI
// ABOUTME: Prints the build version set via -ldflags

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X github.com/markalston/jobboard/cmd.version=..."
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runVersion(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(w io.Writer) {
	if IsJSONOutput() {
		fmt.Fprintf(w, "{\"version\": %q}\n", version)
		return
	}
	fmt.Fprintf(w, "jobboard %s\n", version)
}
