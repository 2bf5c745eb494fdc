package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"media-parser/internal/parser"
)

var thumbnailCmd = &cobra.Command{
	Use:   "thumbnail <file> [mime-type]",
	Short: "Generate a thumbnail for a file",
	Long: `thumbnail renders the file's thumbnail into the scratch directory and
prints the output path. Videos get a frame grab when ffmpeg is installed;
everything else gets a labeled placeholder tile.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		mimeType := ""
		if len(args) == 2 {
			mimeType = args[1]
		} else {
			mimeType = sniffFile(path)
		}

		p := parser.New(flagScratchDir)
		thumbPath, err := p.GetThumbnail(cmd.Context(), path, mimeType, filepath.Base(path))
		if err != nil {
			return fmt.Errorf("thumbnail generation failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Mime type: %s\n", mimeType)
		fmt.Fprintf(cmd.OutOrStdout(), "Thumbnail: %s\n", thumbPath)
		return nil
	},
}
