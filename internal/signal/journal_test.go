package signal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "signals.db")
	migrations, err := filepath.Abs("migrations")
	require.NoError(t, err)
	require.NoError(t, RunMigrations(dbPath, migrations))

	journal, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = journal.Close() })
	return journal
}

func TestEmitRecordsEvents(t *testing.T) {
	t.Parallel()

	journal := openTestJournal(t)

	journal.Emit("appContext: started", nil)
	journal.Emit("userChanged", "jo@example.com")
	journal.Emit("enterView: Home Page", "jo@example.com")
	require.NoError(t, journal.LastError())

	var count int
	require.NoError(t, journal.db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&count))
	require.Equal(t, 3, count)

	var name, value, clientID string
	require.NoError(t, journal.db.QueryRow(
		`SELECT name, value, client_id FROM events WHERE name = ?`, "userChanged",
	).Scan(&name, &value, &clientID))
	require.Equal(t, "userChanged", name)
	require.Equal(t, `"jo@example.com"`, value)
	require.Equal(t, journal.clientID, clientID)
}

func TestEmitNilValueStoredAsNull(t *testing.T) {
	t.Parallel()

	journal := openTestJournal(t)
	journal.Emit("signOut", nil)

	var value string
	require.NoError(t, journal.db.QueryRow(`SELECT value FROM events`).Scan(&value))
	require.Equal(t, "null", value)
}

func TestMigrationsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "signals.db")
	migrations, err := filepath.Abs("migrations")
	require.NoError(t, err)

	require.NoError(t, RunMigrations(dbPath, migrations))
	require.NoError(t, RunMigrations(dbPath, migrations))
}
