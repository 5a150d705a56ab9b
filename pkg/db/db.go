package db

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	// use the sqlite db driver.
	_ "github.com/mattn/go-sqlite3"
)

//go:embed base.sql
var baseSQL string

// Database manages the sqlite connection backing the persisted view state.
type Database struct {
	conn *sql.DB
}

// NewDatabase connects to the sqlite database at the given filename and initializes the structure
// if not present.
func NewDatabase(ctx context.Context, filename string) (*Database, error) {
	conn, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("error connecting to sqlite db at %s: %w", filename, err)
	}

	database := Database{conn: conn}

	err = database.initialize(ctx)
	if err != nil {
		conn.Close()

		return nil, err
	}

	return &database, nil
}

func (d *Database) initialize(ctx context.Context) error {
	// run idempotent setup sql to create empty tables if they don't exist
	if _, err := d.conn.ExecContext(ctx, baseSQL); err != nil {
		return fmt.Errorf("error running base sql: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.conn.Close()
}

// Get returns the value stored under key. A missing key is reported with ok == false, not an error.
func (d *Database) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	row := d.conn.QueryRowContext(ctx, `SELECT value FROM view_state WHERE key = $1`, key)

	err = row.Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("error reading key '%s': %w", key, err)
	}

	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (d *Database) Set(ctx context.Context, key, value string) error {
	_, err := d.conn.ExecContext(ctx,
		`INSERT INTO view_state (key, value, updated_datetime) VALUES ($1, $2, $3)
		     ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_datetime = excluded.updated_datetime`,
		key, value, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("error writing key '%s': %w", key, err)
	}

	return nil
}
