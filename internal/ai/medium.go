package ai

import "github.com/rocketscienceinc/piskvorky-backend/internal/gomoku"

// Medium wins or blocks when it can, otherwise plays the Empty cell with the
// highest line score.
type Medium struct{}

func (that Medium) Name() string {
	return "medium"
}

func (that Medium) selectMove(board gomoku.Board, me gomoku.Mark) gomoku.Move {
	// every cell scores 0 on an empty board
	if !board.HasStones() {
		return defaultMove(board)
	}

	if move, ok := immediateMove(board, me); ok {
		return move
	}

	if move, ok := bestScoredMove(board, me); ok {
		return move
	}

	return Easy{}.selectMove(board, me)
}

func bestScoredMove(board gomoku.Board, me gomoku.Mark) (gomoku.Move, bool) {
	opp := me.Opponent()

	var best gomoku.Move
	bestScore, found := 0, false

	for row := 0; row < gomoku.Size; row++ {
		for col := 0; col < gomoku.Size; col++ {
			move := gomoku.Move{Row: row, Col: col}
			if board.At(move) != gomoku.Empty {
				continue
			}

			score := cellScore(board, move, me, opp)
			if !found || score > bestScore {
				best, bestScore, found = move, score, true
			}
		}
	}

	return best, found
}
