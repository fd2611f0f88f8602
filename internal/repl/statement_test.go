package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareStatementSelect(t *testing.T) {
	stmt, err := PrepareStatement("select")
	require.NoError(t, err)
	assert.Equal(t, StatementSelect, stmt.Type)
}

func TestPrepareStatementInsert(t *testing.T) {
	stmt, err := PrepareStatement("insert 1 user1 person1@example.com")
	require.NoError(t, err)
	assert.Equal(t, StatementInsert, stmt.Type)
	assert.Equal(t, uint32(1), stmt.RowToInsert.ID)
	assert.Equal(t, "user1", stmt.RowToInsert.Username)
	assert.Equal(t, "person1@example.com", stmt.RowToInsert.Email)
}

func TestPrepareStatementInsertMissingArgs(t *testing.T) {
	_, err := PrepareStatement("insert 1 user1")
	require.Error(t, err)
	assert.Equal(t, "Syntax error. Could not parse statement.", err.Error())
}

func TestPrepareStatementInsertNegativeID(t *testing.T) {
	_, err := PrepareStatement("insert -1 user1 person1@example.com")
	require.Error(t, err)
	assert.Equal(t, "ID must be positive.", err.Error())
}

func TestPrepareStatementInsertStringTooLong(t *testing.T) {
	longEmail := make([]byte, 260)
	for i := range longEmail {
		longEmail[i] = 'a'
	}
	_, err := PrepareStatement("insert 1 user1 " + string(longEmail))
	require.Error(t, err)
	assert.Equal(t, "String is too long.", err.Error())
}

func TestPrepareStatementUnrecognized(t *testing.T) {
	_, err := PrepareStatement("bogus")
	require.Error(t, err)
	assert.Equal(t, "Unrecognized keyword at start of 'bogus'", err.Error())
}
