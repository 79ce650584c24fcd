package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Stamped at build time via -ldflags "-X ...".
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(),
			"clubsite %s (commit %s, built %s, %s %s/%s)\n",
			Version, GitCommit, BuildDate,
			runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}
