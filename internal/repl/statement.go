package repl

import (
	"fmt"
	"strconv"
	"strings"

	"btreedb/internal/row"
)

// StatementType distinguishes the two statements the language supports.
type StatementType int

const (
	StatementInsert StatementType = iota
	StatementSelect
)

// Statement is a parsed, validated insert or select.
type Statement struct {
	Type        StatementType
	RowToInsert row.Row
}

// PrepareStatement parses input into a Statement. Errors carry the exact
// diagnostic text the REPL prints to stdout.
func PrepareStatement(input string) (Statement, error) {
	if strings.HasPrefix(input, "insert") {
		return prepareInsert(input)
	}
	if input == "select" {
		return Statement{Type: StatementSelect}, nil
	}
	return Statement{}, fmt.Errorf("Unrecognized keyword at start of '%s'", input)
}

func prepareInsert(input string) (Statement, error) {
	fields := strings.Fields(input)
	if len(fields) != 4 {
		return Statement{}, fmt.Errorf("Syntax error. Could not parse statement.")
	}

	id, err := strconv.ParseInt(fields[1], 10, 32)
	if err != nil {
		return Statement{}, fmt.Errorf("Syntax error. Could not parse statement.")
	}
	if id < 0 {
		return Statement{}, fmt.Errorf("ID must be positive.")
	}

	r := row.Row{ID: uint32(id), Username: fields[2], Email: fields[3]}
	if err := r.Validate(); err != nil {
		return Statement{}, fmt.Errorf("String is too long.")
	}

	return Statement{Type: StatementInsert, RowToInsert: r}, nil
}
