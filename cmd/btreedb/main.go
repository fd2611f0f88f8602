// Command btreedb is the interactive front end for the single-file
// paged-B-tree store: `btreedb <filename>` opens (or creates) a database
// file and drops into a `db > ` prompt.
package main

import (
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/urfave/cli/v2"

	"btreedb/internal/dblog"
	"btreedb/internal/repl"
	"btreedb/internal/storage"
)

func main() {
	app := &cli.App{
		Name:      "btreedb",
		Usage:     "a single-file paged B-tree relational store",
		ArgsUsage: "<database file>",
		Action:    run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("must supply a database filename")
	}
	filename := c.Args().Get(0)

	log, err := dblog.New()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	table, err := storage.Open(filename, log)
	if err != nil {
		return fmt.Errorf("opening %q: %w", filename, err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 "db > ",
		DisableAutoSaveHistory: true,
		Stdin:                  os.Stdin,
		Stdout:                 os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("starting input reader: %w", err)
	}
	defer rl.Close()

	return repl.New(table, os.Stdout, rl).Run()
}
