// Package types defines the Sudoku grid data model, candidate-set
// tracking, unit (row/column/box) index tables, the store Config, and
// standard error types shared across the gridlock packages.
package types
