package ai

import "github.com/rocketscienceinc/piskvorky-backend/internal/gomoku"

// lineScore counts own and opponent marks within WinLength-1 cells of move
// along dir. A window held by one side only scores the square of its count.
func lineScore(board gomoku.Board, move gomoku.Move, dir gomoku.Direction, own, opp gomoku.Mark) int {
	countOwn, countOpp := 0, 0

	for d := -(gomoku.WinLength - 1); d <= gomoku.WinLength-1; d++ {
		switch board.At(gomoku.Move{Row: move.Row + d*dir.DRow, Col: move.Col + d*dir.DCol}) {
		case own:
			countOwn++
		case opp:
			countOpp++
		}
	}

	score := 0
	if countOwn > 0 && countOpp == 0 {
		score += countOwn * countOwn
	}

	if countOpp > 0 && countOwn == 0 {
		score += countOpp * countOpp
	}

	return score
}

// cellScore sums lineScore over the four directions.
func cellScore(board gomoku.Board, move gomoku.Move, own, opp gomoku.Mark) int {
	score := 0
	for _, dir := range gomoku.Directions {
		score += lineScore(board, move, dir, own, opp)
	}

	return score
}

// staticEval scores a position from me's point of view: cells I own add
// their line score, opponent cells subtract it.
func staticEval(board gomoku.Board, me gomoku.Mark) int {
	opp := me.Opponent()
	score := 0

	for row := 0; row < gomoku.Size; row++ {
		for col := 0; col < gomoku.Size; col++ {
			move := gomoku.Move{Row: row, Col: col}

			switch board.At(move) {
			case me:
				score += cellScore(board, move, me, opp)
			case opp:
				score -= cellScore(board, move, me, opp)
			}
		}
	}

	return score
}
