// Package repl implements the interactive front end: statement parsing,
// meta-commands, and the read-eval-print loop that drives a storage.Table.
package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"btreedb/internal/storage"
)

// REPL drives one interactive session against a single table.
type REPL struct {
	table *storage.Table
	out   io.Writer
	rl    *readline.Instance
}

// New returns a REPL reading from rl and writing statement/row output to
// out. Diagnostics and row results both go to out, matching the
// original's single stdout stream (the CLI driver tests assert against
// exactly that stream).
func New(table *storage.Table, out io.Writer, rl *readline.Instance) *REPL {
	return &REPL{table: table, out: out, rl: rl}
}

// Run reads statements until .exit or EOF, closing the table before it
// returns.
func (r *REPL) Run() error {
	for {
		line, err := r.rl.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if doMetaCommand(line, r.table, r.out) == metaCommandExit {
				break
			}
			continue
		}

		stmt, err := PrepareStatement(line)
		if err != nil {
			fmt.Fprintln(r.out, err.Error())
			continue
		}

		if err := r.execute(stmt); err != nil {
			fmt.Fprintln(r.out, err.Error())
			continue
		}
		fmt.Fprintln(r.out, "Executed.")
	}

	return r.table.Close()
}

func (r *REPL) execute(stmt Statement) error {
	switch stmt.Type {
	case StatementInsert:
		err := r.table.Insert(stmt.RowToInsert)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, storage.ErrDuplicateKey):
			return fmt.Errorf("Error: Duplicate key.")
		case errors.Is(err, storage.ErrTableFull):
			return fmt.Errorf("Error: Table full")
		default:
			return err
		}
	case StatementSelect:
		for _, r2 := range r.table.SelectAll() {
			fmt.Fprintf(r.out, "(%d, %s, %s)\n", r2.ID, r2.Username, r2.Email)
		}
		return nil
	}
	return nil
}
