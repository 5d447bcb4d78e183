package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rocketscienceinc/piskvorky-backend/internal/entity"
)

type sqliteHistory struct {
	conn *sql.DB
}

func NewSQLiteHistoryRepository(conn *sql.DB) HistoryRepository {
	return &sqliteHistory{
		conn: conn,
	}
}

func (that *sqliteHistory) Add(ctx context.Context, entry *entity.HistoryEntry) error {
	query := `INSERT INTO game_history (id, player_x, player_o, winner, moves_count, mode, end_time)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		entry.ID, entry.PlayerX, entry.PlayerO, entry.Winner, entry.MovesCount, string(entry.Mode),
		entry.EndTime.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("can't save history entry: %w", err)
	}

	return nil
}

func (that *sqliteHistory) List(ctx context.Context) ([]*entity.HistoryEntry, error) {
	query := `SELECT id, player_x, player_o, winner, moves_count, mode, end_time
		FROM game_history ORDER BY end_time, rowid`

	rows, err := that.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("can't read history: %w", err)
	}
	defer rows.Close()

	var entries []*entity.HistoryEntry
	for rows.Next() {
		var (
			entry   entity.HistoryEntry
			mode    string
			endTime string
		)

		if err = rows.Scan(&entry.ID, &entry.PlayerX, &entry.PlayerO, &entry.Winner, &entry.MovesCount, &mode, &endTime); err != nil {
			return nil, fmt.Errorf("can't scan history entry: %w", err)
		}

		entry.Mode = entity.Mode(mode)
		if entry.EndTime, err = time.Parse(time.RFC3339Nano, endTime); err != nil {
			return nil, fmt.Errorf("can't parse end time %q: %w", endTime, err)
		}

		entries = append(entries, &entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate history: %w", err)
	}

	return entries, nil
}
