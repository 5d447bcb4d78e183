package ai

import (
	"math"

	"github.com/rocketscienceinc/piskvorky-backend/internal/gomoku"
)

// DefaultDepth is the number of plies searched below each candidate move.
const DefaultDepth = 1

// Hard runs a depth-limited minimax with alpha-beta pruning over the cells
// next to existing stones, after the same win and block checks as Medium.
type Hard struct {
	Depth int
	// Cache is reused between calls when set. A nil Cache gives every call
	// its own table.
	Cache *TranspositionCache
}

func (that Hard) Name() string {
	return "hard"
}

func (that Hard) depth() int {
	if that.Depth <= 0 {
		return DefaultDepth
	}

	return that.Depth
}

func (that Hard) selectMove(board gomoku.Board, me gomoku.Mark) gomoku.Move {
	if move, ok := immediateMove(board, me); ok {
		return move
	}

	candidates := Candidates(board)
	if len(candidates) == 0 {
		return Easy{}.selectMove(board, me)
	}

	cache := that.Cache
	if cache == nil {
		cache = NewTranspositionCache(DefaultCacheSize)
	}

	s := &searcher{me: me, cache: cache}
	work := board
	depth := that.depth()

	best, bestValue := candidates[0], math.MinInt
	for _, move := range candidates {
		work.Place(move, me)
		value := s.minimax(&work, move, depth, false, math.MinInt, math.MaxInt)
		work.Clear(move)

		if value > bestValue {
			best, bestValue = move, value
		}
	}

	return best
}

type searcher struct {
	me    gomoku.Mark
	cache *TranspositionCache
}

// minimax returns the value of board for s.me after last was played.
// The board is modified in place and restored before returning.
func (s *searcher) minimax(board *gomoku.Board, last gomoku.Move, depth int, maximizing bool, alpha, beta int) int {
	toMove := s.me.Opponent()
	if maximizing {
		toMove = s.me
	}

	key := Fingerprint(*board, toMove, s.me)
	if entry, ok := s.cache.Probe(key); ok && entry.usable(depth, alpha, beta) {
		return entry.Value
	}

	if depth == 0 || gomoku.Evaluate(*board, last).IsTerminal() {
		value := staticEval(*board, s.me)
		s.cache.Store(key, CacheEntry{Value: value, Depth: depth, Bound: BoundExact})

		return value
	}

	children := Candidates(*board)
	if len(children) == 0 {
		return staticEval(*board, s.me)
	}

	alphaOrig, betaOrig := alpha, beta

	best := math.MaxInt
	if maximizing {
		best = math.MinInt
	}

	for _, child := range children {
		board.Place(child, toMove)
		value := s.minimax(board, child, depth-1, !maximizing, alpha, beta)
		board.Clear(child)

		if maximizing {
			best = max(best, value)
			alpha = max(alpha, best)
		} else {
			best = min(best, value)
			beta = min(beta, best)
		}

		if beta <= alpha {
			break
		}
	}

	bound := BoundExact
	switch {
	case best <= alphaOrig:
		bound = BoundUpper
	case best >= betaOrig:
		bound = BoundLower
	}

	s.cache.Store(key, CacheEntry{Value: best, Depth: depth, Bound: bound})

	return best
}
