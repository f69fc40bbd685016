// Package signal records diagnostic events in a local sqlite journal. The
// journal must never take the application down: emission failures are
// remembered for inspection but otherwise swallowed.
package signal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Journal implements core.SignalSink over sqlite. Every event carries the
// client instance id so journals from several runs can be told apart.
type Journal struct {
	db       *sql.DB
	clientID string
	lastErr  error
}

// Open opens (or creates) the journal database.
func Open(path string) (*Journal, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	return &Journal{db: db, clientID: uuid.NewString()}, nil
}

// RunMigrations applies all up migrations found at migrationsPath.
func RunMigrations(dbPath, migrationsPath string) error {
	dsn := fmt.Sprintf("file:%s", dbPath)
	m, err := migrate.New(fmt.Sprintf("file://%s", migrationsPath), fmt.Sprintf("sqlite3://%s", dsn))
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Up()
	if err == migrate.ErrNoChange {
		return nil
	}
	return err
}

// RunMigrationsWithDB applies migrations over an existing connection.
func RunMigrationsWithDB(db *sql.DB, migrationsPath string) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsPath), "sqlite3", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err == migrate.ErrNoChange {
		return nil
	}
	return err
}

// Emit records one event. Values are stored as JSON; unencodable values
// degrade to their string form.
func (j *Journal) Emit(name string, value any) {
	payload := "null"
	if value != nil {
		b, err := json.Marshal(value)
		if err != nil {
			b, _ = json.Marshal(fmt.Sprint(value))
		}
		payload = string(b)
	}

	_, err := j.db.Exec(
		`INSERT INTO events (id, client_id, at, name, value) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), j.clientID, time.Now().UTC().Format(time.RFC3339Nano), name, payload,
	)
	if err != nil {
		j.lastErr = err
	}
}

// LastError reports the most recent emission failure, nil when healthy.
func (j *Journal) LastError() error { return j.lastErr }

// Close closes the underlying database.
func (j *Journal) Close() error { return j.db.Close() }
