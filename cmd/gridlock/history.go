// History command for the gridlock CLI.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gridlock/internal/store"
	"github.com/mesh-intelligence/gridlock/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded solves, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}

	st := store.New()
	if err := st.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}); err != nil {
		return err
	}
	defer st.Detach()

	records, err := st.List()
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	return printHistory(cmd.OutOrStdout(), records)
}

func printHistory(w io.Writer, records []store.Record) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "no solves recorded")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-20s  %9s  %9s  %s\n", "WHEN", "PUZZLE", "SOLUTIONS", "NODES", "STATUS")
	for _, rec := range records {
		status := "complete"
		if rec.Truncated {
			status = "truncated"
		}
		fmt.Fprintf(w, "%-20s  %-20s  %9d  %9d  %s\n",
			rec.CreatedAt.Local().Format(time.DateTime),
			abbreviate(rec.Puzzle, 20),
			len(rec.Solutions), rec.Nodes, status)
	}
	return nil
}

// abbreviate shortens s to n characters with a trailing ellipsis.
func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
