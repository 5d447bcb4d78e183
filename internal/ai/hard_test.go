package ai

import (
	"math"
	"testing"

	"github.com/rocketscienceinc/piskvorky-backend/internal/gomoku"
	"github.com/stretchr/testify/assert"
)

// plainBest is minimax over the same candidate sets without pruning or
// memoization.
func plainBest(board gomoku.Board, me gomoku.Mark, depth int) gomoku.Move {
	candidates := Candidates(board)

	best, bestValue := candidates[0], math.MinInt
	for _, move := range candidates {
		next, _ := board.Apply(move, me)
		if value := plainMinimax(next, move, depth, false, me); value > bestValue {
			best, bestValue = move, value
		}
	}

	return best
}

func plainMinimax(board gomoku.Board, last gomoku.Move, depth int, maximizing bool, me gomoku.Mark) int {
	if depth == 0 || gomoku.Evaluate(board, last).IsTerminal() {
		return staticEval(board, me)
	}

	mark, best := me.Opponent(), math.MaxInt
	if maximizing {
		mark, best = me, math.MinInt
	}

	for _, child := range Candidates(board) {
		next, _ := board.Apply(child, mark)
		value := plainMinimax(next, child, depth-1, !maximizing, me)

		if maximizing {
			best = max(best, value)
		} else {
			best = min(best, value)
		}
	}

	return best
}

func TestHard_MatchesPlainMinimax(t *testing.T) {
	boards := map[string]gomoku.Board{
		"mid game":     midGame(t),
		"two stones":   boardWith(t, x(7, 7), o(6, 6)),
		"edge cluster": boardWith(t, x(0, 0), o(0, 1), x(1, 1), o(1, 0), x(2, 2)),
	}

	for name, board := range boards {
		t.Run(name, func(t *testing.T) {
			for _, depth := range []int{1, 2} {
				expected := plainBest(board, gomoku.Second, depth)

				move := Hard{Depth: depth}.selectMove(board, gomoku.Second)

				assert.Equal(t, expected, move, "depth %d", depth)
			}
		})
	}
}

func TestHard_Deterministic(t *testing.T) {
	// Given: a position without tactics
	board := midGame(t)

	// When: searching it several times
	first := Hard{}.selectMove(board, gomoku.Second)

	// Then: the same move comes back every time
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, Hard{}.selectMove(board, gomoku.Second))
	}
}

func TestHard_SharedCache(t *testing.T) {
	t.Run("Warm cache gives the same move as a fresh one", func(t *testing.T) {
		board := midGame(t)
		cache := NewTranspositionCache(DefaultCacheSize)

		fresh := Hard{}.selectMove(board, gomoku.Second)
		cold := Hard{Cache: cache}.selectMove(board, gomoku.Second)
		warm := Hard{Cache: cache}.selectMove(board, gomoku.Second)

		assert.Equal(t, fresh, cold)
		assert.Equal(t, fresh, warm)
		assert.Positive(t, cache.Len())
	})

	t.Run("Searching for the other mark is not confused by cached entries", func(t *testing.T) {
		// Given: a cache warmed by a search for Second
		board := midGame(t)
		cache := NewTranspositionCache(DefaultCacheSize)
		Hard{Cache: cache}.selectMove(board, gomoku.Second)

		// When: searching the same position for First
		shared := Hard{Cache: cache}.selectMove(board, gomoku.First)

		// Then: the result matches a search with its own cache
		assert.Equal(t, Hard{}.selectMove(board, gomoku.First), shared)
	})
}

func TestHard_FallsBackToCenter(t *testing.T) {
	assert.Equal(t, gomoku.Center, Hard{}.selectMove(gomoku.EmptyBoard(), gomoku.Second))
}

func TestHard_DefaultDepth(t *testing.T) {
	assert.Equal(t, DefaultDepth, Hard{}.depth())
	assert.Equal(t, DefaultDepth, Hard{Depth: -3}.depth())
	assert.Equal(t, 3, Hard{Depth: 3}.depth())
}
