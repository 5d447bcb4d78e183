package ai

import (
	"fmt"

	"github.com/rocketscienceinc/piskvorky-backend/internal/apperror"
	"github.com/rocketscienceinc/piskvorky-backend/internal/gomoku"
)

// Strategy is one computer difficulty tier. The set of tiers is closed:
// only Easy, Medium and Hard implement it.
type Strategy interface {
	Name() string

	selectMove(board gomoku.Board, me gomoku.Mark) gomoku.Move
}

var (
	_ Strategy = Easy{}
	_ Strategy = Medium{}
	_ Strategy = Hard{}
)

// SelectComputerMove picks the next move for me on board.
func SelectComputerMove(board gomoku.Board, me gomoku.Mark, strategy Strategy) (gomoku.Move, error) {
	if me != gomoku.First && me != gomoku.Second {
		return gomoku.Move{}, fmt.Errorf("%w: computer plays %w", apperror.ErrInvalidMove, gomoku.ErrUnknownMark)
	}

	if board.IsFull() {
		return gomoku.Move{}, apperror.ErrNoLegalMove
	}

	return strategy.selectMove(board, me), nil
}

// immediateMove returns a move that wins for me, or failing that a move that
// blocks an opponent win. Both scans run in row-major order.
func immediateMove(board gomoku.Board, me gomoku.Mark) (gomoku.Move, bool) {
	if move, ok := winningMove(board, me); ok {
		return move, true
	}

	return winningMove(board, me.Opponent())
}

func winningMove(board gomoku.Board, mark gomoku.Mark) (gomoku.Move, bool) {
	work := board
	for row := 0; row < gomoku.Size; row++ {
		for col := 0; col < gomoku.Size; col++ {
			move := gomoku.Move{Row: row, Col: col}
			if work.At(move) != gomoku.Empty {
				continue
			}

			work.Place(move, mark)
			outcome := gomoku.Evaluate(work, move)
			work.Clear(move)

			if outcome.Winner() == mark {
				return move, true
			}
		}
	}

	return gomoku.Move{}, false
}

// Candidates lists the Empty cells that touch an occupied cell, row-major.
func Candidates(board gomoku.Board) []gomoku.Move {
	candidates := make([]gomoku.Move, 0, 32)
	for row := 0; row < gomoku.Size; row++ {
		for col := 0; col < gomoku.Size; col++ {
			move := gomoku.Move{Row: row, Col: col}
			if board.At(move) == gomoku.Empty && hasOccupiedNeighbor(board, move) {
				candidates = append(candidates, move)
			}
		}
	}

	return candidates
}

func hasOccupiedNeighbor(board gomoku.Board, move gomoku.Move) bool {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}

			// At is Empty off the board
			if board.At(gomoku.Move{Row: move.Row + dr, Col: move.Col + dc}) != gomoku.Empty {
				return true
			}
		}
	}

	return false
}

// defaultMove is used when no cell touches a stone: the center if free,
// otherwise the first Empty cell.
func defaultMove(board gomoku.Board) gomoku.Move {
	if board.At(gomoku.Center) == gomoku.Empty {
		return gomoku.Center
	}

	for row := 0; row < gomoku.Size; row++ {
		for col := 0; col < gomoku.Size; col++ {
			move := gomoku.Move{Row: row, Col: col}
			if board.At(move) == gomoku.Empty {
				return move
			}
		}
	}

	return gomoku.Center
}
