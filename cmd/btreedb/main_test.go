package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var binPath string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "btreedb-bin")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	binPath = filepath.Join(dir, "btreedb")
	build := exec.Command("go", "build", "-o", binPath, ".")
	build.Dir = "."
	if out, err := build.CombinedOutput(); err != nil {
		panic(string(out) + err.Error())
	}

	os.Exit(m.Run())
}

// runCommands spawns the built binary against a fresh database file in
// t.TempDir(), pipes commands (one per line) to its stdin, and returns
// everything it wrote to stdout.
func runCommands(t *testing.T, commands []string) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	cmd := exec.Command(binPath, dbPath)
	cmd.Stdin = strings.NewReader(strings.Join(commands, "\n") + "\n")

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stdout

	require.NoError(t, cmd.Run())
	return stdout.String()
}

func TestInsertAndSelect(t *testing.T) {
	out := runCommands(t, []string{
		"insert 1 user1 person1@example.com",
		"select",
		".exit",
	})
	require.Contains(t, out, "Executed.")
	require.Contains(t, out, "(1, user1, person1@example.com)")
}

func TestSelectOnEmptyTable(t *testing.T) {
	out := runCommands(t, []string{"select", ".exit"})
	require.NotContains(t, out, "@example.com")
	require.NotContains(t, out, "Error")
}

func TestDuplicateKeyRejected(t *testing.T) {
	out := runCommands(t, []string{
		"insert 1 user1 person1@example.com",
		"insert 1 user1 person1@example.com",
		".exit",
	})
	require.Contains(t, out, "Error: Duplicate key.")
}

func TestIDMustBePositive(t *testing.T) {
	out := runCommands(t, []string{
		"insert -1 cstack foo@bar.com",
		".exit",
	})
	require.Contains(t, out, "ID must be positive.")
}

func TestMaximumLengthStringsAccepted(t *testing.T) {
	longUsername := strings.Repeat("a", 32)
	longEmail := strings.Repeat("a", 255)
	out := runCommands(t, []string{
		"insert 1 " + longUsername + " " + longEmail,
		"select",
		".exit",
	})
	require.Contains(t, out, "Executed.")
	require.Contains(t, out, longUsername)
}

func TestStringTooLongRejected(t *testing.T) {
	longUsername := strings.Repeat("a", 33)
	out := runCommands(t, []string{
		"insert 1 " + longUsername + " foo@bar.com",
		".exit",
	})
	require.Contains(t, out, "String is too long.")
}

func TestUnrecognizedKeyword(t *testing.T) {
	out := runCommands(t, []string{"bogus statement", ".exit"})
	require.Contains(t, out, "Unrecognized keyword at start of 'bogus statement'")
}

func TestUnrecognizedMetaCommand(t *testing.T) {
	out := runCommands(t, []string{".nonsense", ".exit"})
	require.Contains(t, out, "Unrecognized command: .nonsense")
}

func TestPersistenceAcrossRestart(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "persist.db")

	first := exec.Command(binPath, dbPath)
	first.Stdin = strings.NewReader("insert 1 user1 person1@example.com\n.exit\n")
	var firstOut bytes.Buffer
	first.Stdout = &firstOut
	require.NoError(t, first.Run())

	second := exec.Command(binPath, dbPath)
	second.Stdin = strings.NewReader("select\n.exit\n")
	var secondOut bytes.Buffer
	second.Stdout = &secondOut
	require.NoError(t, second.Run())

	require.Contains(t, secondOut.String(), "(1, user1, person1@example.com)")
}

func TestConstantsMetaCommand(t *testing.T) {
	out := runCommands(t, []string{".constants", ".exit"})
	require.Contains(t, out, "ROW_SIZE: 293")
	require.Contains(t, out, "LEAF_NODE_MAX_CELLS: 13")
}

func TestBtreeStructureAfterSplit(t *testing.T) {
	commands := make([]string, 0, 15)
	for i := 1; i <= 14; i++ {
		commands = append(commands, "insert "+strconv.Itoa(i)+" user"+strconv.Itoa(i)+" person"+strconv.Itoa(i)+"@example.com")
	}
	commands = append(commands, ".btree", ".exit")

	out := runCommands(t, commands)
	require.Contains(t, out, "- internal (size 1)")
}
