// Version command for the gridlock CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gridlock/pkg/gridlock"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gridlock version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("gridlock", gridlock.Version)
	},
}
