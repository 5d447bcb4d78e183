package entity

import (
	"time"

	"github.com/rocketscienceinc/piskvorky-backend/internal/gomoku"
)

const (
	WinnerX    = "X"
	WinnerO    = "O"
	WinnerDraw = "Draw"
)

// HistoryEntry is the record of one finished game.
type HistoryEntry struct {
	ID         string    `json:"id"`
	PlayerX    string    `json:"player_x"`
	PlayerO    string    `json:"player_o"`
	Winner     string    `json:"winner"`
	MovesCount int       `json:"moves_count"`
	Mode       Mode      `json:"mode"`
	EndTime    time.Time `json:"end_time"`
}

func NewHistoryEntry(game *Game, endTime time.Time) *HistoryEntry {
	winner := WinnerDraw
	switch game.Outcome.Winner() {
	case gomoku.First:
		winner = WinnerX
	case gomoku.Second:
		winner = WinnerO
	}

	return &HistoryEntry{
		ID:         game.Round,
		PlayerX:    game.PlayerName(gomoku.First),
		PlayerO:    game.PlayerName(gomoku.Second),
		Winner:     winner,
		MovesCount: game.Board.Count(),
		Mode:       game.Mode,
		EndTime:    endTime.UTC(),
	}
}

type Statistics struct {
	TotalGames       int     `json:"total_games"`
	WinsAgainstPC    int     `json:"wins_against_pc"`
	LossesAgainstPC  int     `json:"losses_against_pc"`
	WinRateAgainstPC float64 `json:"win_rate_against_pc"`
}

func ComputeStatistics(entries []*HistoryEntry) Statistics {
	stats := Statistics{TotalGames: len(entries)}

	for _, entry := range entries {
		if !entry.Mode.IsAgainstComputer() {
			continue
		}

		switch entry.Winner {
		case WinnerX:
			stats.WinsAgainstPC++
		case WinnerO:
			stats.LossesAgainstPC++
		}
	}

	if decided := stats.WinsAgainstPC + stats.LossesAgainstPC; decided > 0 {
		stats.WinRateAgainstPC = float64(stats.WinsAgainstPC) / float64(decided) * 100
	}

	return stats
}
