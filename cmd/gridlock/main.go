// Package main provides the gridlock CLI, a thin shell around the
// solving engine in pkg/gridlock.
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
