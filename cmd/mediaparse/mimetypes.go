package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"media-parser/internal/mimetypes"
)

var mimetypesCmd = &cobra.Command{
	Use:   "mimetypes",
	Short: "Print the combined mime-type table",
	Long: `mimetypes prints the built-in mime-type mappings followed by any
generated ones from the side file given with --registry, in precedence
order.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var reg *mimetypes.Registry
		if flagRegistry != "" {
			reg = mimetypes.NewRegistry(flagRegistry)
		}
		table := mimetypes.Combined(reg)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, m := range table.Mappings() {
			fmt.Fprintf(w, "%s\t%s\n", m.MimeType, m.Extension)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d mappings\n", table.Len())
		return nil
	},
}
