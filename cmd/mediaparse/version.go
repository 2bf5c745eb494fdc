package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"media-parser/internal/startup"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		info := startup.GetBuildInfo()
		fmt.Fprintf(cmd.OutOrStdout(), "mediaparse %s (commit %s, built %s, %s %s/%s)\n",
			info.Version, info.Commit, info.BuildTime, info.GoVersion, info.OS, info.Arch)
	},
}
