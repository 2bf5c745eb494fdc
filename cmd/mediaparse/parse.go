package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"media-parser/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file> [mime-type]",
	Short: "Extract the indexable text excerpt from a file",
	Long: `parse reads the file, detects its mime type (or uses the one given),
and prints the text excerpt the consumer would store for search indexing.
Audio, video, and octet-stream inputs always produce an empty excerpt.`,
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
		text, err := p.Parse(cmd.Context(), path, mimeType, filepath.Base(path))
		if err != nil {
			return fmt.Errorf("parse failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Mime type: %s\n", mimeType)
		fmt.Fprintf(cmd.OutOrStdout(), "Excerpt (%d bytes):\n%s\n", len(text), text)
		return nil
	},
}
