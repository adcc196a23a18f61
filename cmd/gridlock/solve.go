// Solve command for the gridlock CLI.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gridlock/internal/store"
	"github.com/mesh-intelligence/gridlock/pkg/gridlock"
	"github.com/mesh-intelligence/gridlock/pkg/types"
)

var (
	flagAll      bool
	flagMax      int
	flagWorkers  int
	flagMaxNodes int64
	flagTimeout  time.Duration
	flagNoStore  bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <puzzle>",
	Short: "Solve an 81-cell Sudoku puzzle",
	Long: `Solve reads a puzzle as 81 cells in row-major order, with 0 or "."
marking empty cells, and prints each solution found. Whitespace in the
puzzle string is ignored.

By default only the first solution is reported; --all enumerates every
solution of an improper puzzle and --max caps the enumeration.`,
	Example: `  gridlock solve 530070000600195000098000060800060003400803001700020006060000280000419005000080079
  gridlock solve --all --max 10 "$(cat puzzle.txt)"`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().BoolVar(&flagAll, "all", false, "enumerate all solutions")
	solveCmd.Flags().IntVar(&flagMax, "max", defaultMaxSolutions, "cap on reported solutions; 0 = unbounded")
	solveCmd.Flags().IntVar(&flagWorkers, "workers", defaultWorkers, "goroutines exploring top-level branches")
	solveCmd.Flags().Int64Var(&flagMaxNodes, "max-nodes", 0, "search node budget; 0 = unbounded")
	solveCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "wall-clock budget; 0 = none")
	solveCmd.Flags().BoolVar(&flagNoStore, "no-store", false, "skip recording the solve in history")
}

func runSolve(cmd *cobra.Command, args []string) error {
	values, err := parseBoard(args[0])
	if err != nil {
		return err
	}

	opts := gridlock.Options{
		MaxSolutions: cfg.GetInt(cfgKeyMaxSolutions),
		Workers:      cfg.GetInt(cfgKeyWorkers),
		MaxNodes:     flagMaxNodes,
		Timeout:      flagTimeout,
	}
	if cmd.Flags().Changed("max") {
		opts.MaxSolutions = flagMax
	}
	if flagAll {
		opts.MaxSolutions = 0
	}
	if cmd.Flags().Changed("workers") {
		opts.Workers = flagWorkers
	}

	res, err := gridlock.Solve(cmd.Context(), values, opts)
	if err != nil {
		return err
	}

	if !flagNoStore && cfg.GetBool(cfgKeyStore) {
		if err := saveResult(puzzleKey(values), res); err != nil {
			log.WithError(err).Warn("could not record solve history")
		}
	}

	if flagJSON {
		return printSolveJSON(cmd.OutOrStdout(), puzzleKey(values), res)
	}
	return printSolveResult(cmd.OutOrStdout(), res)
}

// parseBoard converts a puzzle string into 81 cell values. Digits map
// to themselves, "." to empty; whitespace is dropped. Length and
// consistency are validated by the engine.
func parseBoard(s string) ([]int, error) {
	values := make([]int, 0, types.NumCells)
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			continue
		case r == '.':
			values = append(values, 0)
		case r >= '0' && r <= '9':
			values = append(values, int(r-'0'))
		default:
			return nil, fmt.Errorf("%w: unexpected character %q", types.ErrInvalidInput, r)
		}
	}
	return values, nil
}

// puzzleKey renders the input cells as the 81-digit history key.
func puzzleKey(values []int) string {
	var b strings.Builder
	b.Grow(len(values))
	for _, v := range values {
		b.WriteByte(byte('0' + v))
	}
	return b.String()
}

// saveResult records a solve in the history store.
func saveResult(puzzle string, res *gridlock.Result) error {
	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}

	st := store.New()
	if err := st.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}); err != nil {
		return err
	}
	defer st.Detach()

	_, err = st.Save(puzzle, res)
	return err
}

func printSolveResult(w io.Writer, res *gridlock.Result) error {
	if len(res.Solutions) == 0 {
		if res.Truncated {
			fmt.Fprintln(w, "no solution found within budget (search truncated)")
		} else {
			fmt.Fprintln(w, "no solution exists")
		}
		return nil
	}

	for i, sol := range res.Solutions {
		if len(res.Solutions) > 1 {
			fmt.Fprintf(w, "solution %d:\n", i+1)
		}
		fmt.Fprintln(w, formatGrid(sol))
	}
	if res.Truncated {
		fmt.Fprintln(w, "search truncated; more solutions may exist")
	}
	fmt.Fprintf(w, "%d solution(s) in %s, %d branch nodes\n",
		len(res.Solutions), res.Stats.Duration.Round(time.Microsecond), res.Stats.Nodes)
	return nil
}

// solveOutput is the --json shape of a solve.
type solveOutput struct {
	Puzzle    string   `json:"puzzle"`
	Solutions []string `json:"solutions"`
	Truncated bool     `json:"truncated"`
	Nodes     int64    `json:"nodes"`
	ElapsedMS int64    `json:"elapsed_ms"`
}

func printSolveJSON(w io.Writer, puzzle string, res *gridlock.Result) error {
	out := solveOutput{
		Puzzle:    puzzle,
		Solutions: make([]string, 0, len(res.Solutions)),
		Truncated: res.Truncated,
		Nodes:     res.Stats.Nodes,
		ElapsedMS: res.Stats.Duration.Milliseconds(),
	}
	for _, sol := range res.Solutions {
		out.Solutions = append(out.Solutions, puzzleKey(sol))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
