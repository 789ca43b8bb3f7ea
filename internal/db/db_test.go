package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/leitnerbox/internal/db"
)

func TestOpen_AppliesMigrations(t *testing.T) {
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	defer database.Close()

	versions, err := database.Migrations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql"}, versions)

	for _, table := range []string{"profiles", "cards", "session_scores", "focus_time"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}
}

func TestOpen_ReopenSkipsAppliedMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leitner.db")

	first, err := db.Open(path)
	require.NoError(t, err)
	_, err = first.Exec(`INSERT INTO profiles (username) VALUES ('ana')`)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := db.Open(path)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.QueryRow(`SELECT COUNT(*) FROM profiles`).Scan(&count))
	assert.Equal(t, 1, count)

	versions, err := second.Migrations(context.Background())
	require.NoError(t, err)
	assert.Len(t, versions, 1)
}

func TestSchema_RejectsInvalidCards(t *testing.T) {
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO profiles (username) VALUES ('ana')`)
	require.NoError(t, err)

	_, err = database.Exec(`INSERT INTO cards (id, profile_id, answer, question_input, box) VALUES ('a', 1, 'x', 'q', 6)`)
	assert.Error(t, err, "box out of range")

	_, err = database.Exec(`INSERT INTO cards (id, profile_id, answer) VALUES ('b', 1, 'x')`)
	assert.Error(t, err, "no question")

	_, err = database.Exec(`INSERT INTO cards (id, profile_id, answer, question_input) VALUES ('c', 99, 'x', 'q')`)
	assert.Error(t, err, "unknown profile")
}
