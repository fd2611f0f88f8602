package repl

import (
	"fmt"
	"io"

	"btreedb/internal/storage"
)

// metaCommandResult tells the REPL loop whether to keep reading input.
type metaCommandResult int

const (
	metaCommandContinue metaCommandResult = iota
	metaCommandExit
)

// doMetaCommand handles a leading-dot command. Anything it doesn't
// recognize is reported with the same wording the original uses.
func doMetaCommand(input string, table *storage.Table, out io.Writer) metaCommandResult {
	switch input {
	case ".exit":
		return metaCommandExit
	case ".btree":
		fmt.Fprintln(out, "Tree:")
		table.PrintTree(out, table.RootPageNum(), 0)
		return metaCommandContinue
	case ".constants":
		fmt.Fprintln(out, "Constants:")
		fmt.Fprint(out, storage.ConstantsString())
		return metaCommandContinue
	default:
		fmt.Fprintf(out, "Unrecognized command: %s\n", input)
		return metaCommandContinue
	}
}
