package ai

import (
	"math/rand"

	"github.com/rocketscienceinc/piskvorky-backend/internal/gomoku"
)

// Easy plays a uniformly random cell next to an existing stone.
type Easy struct {
	// Intn returns a number in [0, n). Defaults to math/rand.Intn.
	Intn func(n int) int
}

func (that Easy) Name() string {
	return "easy"
}

func (that Easy) selectMove(board gomoku.Board, _ gomoku.Mark) gomoku.Move {
	candidates := Candidates(board)
	if len(candidates) == 0 {
		return defaultMove(board)
	}

	intn := that.Intn
	if intn == nil {
		intn = rand.Intn //nolint: gosec // game randomness
	}

	return candidates[intn(len(candidates))]
}
