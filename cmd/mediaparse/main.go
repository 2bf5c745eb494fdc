// mediaparse is a command-line frontend to the parser: extract a text
// excerpt or generate a thumbnail for a single file without running the
// full service.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
