package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	flagScratchDir string
	flagRegistry   string
)

var rootCmd = &cobra.Command{
	Use:   "mediaparse",
	Short: "Parse media files the way the document consumer does",
	Long: `mediaparse runs single files through the media parser without a
running service: extract the indexable text excerpt, render a thumbnail,
or inspect the mime-type table.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagScratchDir, "scratch-dir", os.TempDir(), "directory for generated thumbnails")
	rootCmd.PersistentFlags().StringVar(&flagRegistry, "registry", "", "path to the generated mime-types side file")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(thumbnailCmd)
	rootCmd.AddCommand(mimetypesCmd)
	rootCmd.AddCommand(versionCmd)
}
