package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spigell/offer-matcher/internal/tools"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s (tool protocol %s)\n", app, version, tools.ProtocolVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
