package ai

import (
	"testing"

	"github.com/rocketscienceinc/piskvorky-backend/internal/gomoku"
	"github.com/stretchr/testify/require"
)

type stone struct {
	row, col int
	mark     gomoku.Mark
}

func x(row, col int) stone { return stone{row: row, col: col, mark: gomoku.First} }
func o(row, col int) stone { return stone{row: row, col: col, mark: gomoku.Second} }

func boardWith(t *testing.T, stones ...stone) gomoku.Board {
	t.Helper()

	board := gomoku.EmptyBoard()
	for _, s := range stones {
		var err error
		board, err = board.Apply(gomoku.Move{Row: s.row, Col: s.col}, s.mark)
		require.NoError(t, err)
	}

	return board
}

func fullBoard(t *testing.T) gomoku.Board {
	t.Helper()

	rows := make([]string, gomoku.Size)
	for i := range rows {
		if i%2 == 0 {
			rows[i] = "XXOOXXOOXXOOXXO"
		} else {
			rows[i] = "OOXXOOXXOOXXOOX"
		}
	}

	board, err := gomoku.ParseBoard(rows...)
	require.NoError(t, err)

	return board
}

// midGame is a position with no immediate win or block for either side.
func midGame(t *testing.T) gomoku.Board {
	t.Helper()

	return boardWith(t,
		x(7, 7), o(7, 8),
		x(6, 6), o(8, 8),
		x(6, 8), o(5, 5),
		x(8, 6),
	)
}
