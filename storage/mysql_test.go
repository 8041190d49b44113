package storage

import (
	"errors"
	"fmt"
	"testing"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func dupEntryErr(value, index string) error {
	return &gomysql.MySQLError{
		Number:  1062,
		Message: fmt.Sprintf("Duplicate entry '%s' for key '%s'", value, index),
	}
}

func TestDuplicateKey(t *testing.T) {
	t.Run("Matches the named index", func(t *testing.T) {
		err := dupEntryErr("0xabc-e1", "idx_votes_voter_election")
		assert.True(t, duplicateKey(err, "idx_votes_voter_election"))
	})

	t.Run("Distinguishes which index fired", func(t *testing.T) {
		err := dupEntryErr("za-100", "idx_voters_national_id")
		assert.True(t, duplicateKey(err, "idx_voters_national_id"))
		assert.False(t, duplicateKey(err, "idx_voters_wallet"))
		assert.False(t, duplicateKey(err, "idx_voters_email"))
	})

	t.Run("Unwraps a wrapped driver error", func(t *testing.T) {
		err := fmt.Errorf("create vote: %w", dupEntryErr("0xabc-e1", "idx_votes_voter_election"))
		assert.True(t, duplicateKey(err, "idx_votes_voter_election"))
	})

	t.Run("Ignores other MySQL errors", func(t *testing.T) {
		err := &gomysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}
		assert.False(t, duplicateKey(err, "idx_votes_voter_election"))
	})

	t.Run("Ignores non-driver errors", func(t *testing.T) {
		assert.False(t, duplicateKey(errors.New("connection refused"), "idx_votes_voter_election"))
	})
}
