package storage

import (
	"context"
	"database/sql"
	"fmt"

	// import the SQLite driver to register it with the database/sql package.
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

type SQLite struct {
	Connection *sql.DB
}

func NewSQLiteStorage(path string) (*SQLite, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = conn.Ping(); err != nil {
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &SQLite{Connection: conn}, nil
}

func (that *SQLite) Init(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS game_history (
		id          TEXT PRIMARY KEY,
		player_x    TEXT NOT NULL,
		player_o    TEXT NOT NULL,
		winner      TEXT NOT NULL,
		moves_count INTEGER NOT NULL,
		mode        TEXT NOT NULL,
		end_time    TEXT NOT NULL
	)`

	if _, err := that.Connection.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	return nil
}

func (that *SQLite) Close() error {
	return that.Connection.Close()
}
