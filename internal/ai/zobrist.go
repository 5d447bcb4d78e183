package ai

import "github.com/rocketscienceinc/piskvorky-backend/internal/gomoku"

const zobristSeed = 0x9e3779b97f4a7c15

// zobristTable holds one random key per (cell, mark), plus keys for the side
// to move and for the mark the search maximizes for.
type zobristTable struct {
	cells       [gomoku.Size * gomoku.Size][2]uint64
	toMove      [3]uint64
	perspective [3]uint64
}

var zobrist = newZobristTable(zobristSeed)

func newZobristTable(seed uint64) *zobristTable {
	rng := splitmix64{state: seed}
	table := &zobristTable{}

	for i := range table.cells {
		table.cells[i][0] = rng.next()
		table.cells[i][1] = rng.next()
	}

	for i := range table.toMove {
		table.toMove[i] = rng.next()
		table.perspective[i] = rng.next()
	}

	return table
}

// Fingerprint hashes the board contents together with the side to move and
// the perspective of the evaluation. Equal positions reached by different
// move orders share a fingerprint; the same contents with a different mover
// do not.
func Fingerprint(board gomoku.Board, toMove, perspective gomoku.Mark) uint64 {
	return zobrist.hash(board, toMove, perspective)
}

func (that *zobristTable) hash(board gomoku.Board, toMove, perspective gomoku.Mark) uint64 {
	var hash uint64

	for row := 0; row < gomoku.Size; row++ {
		for col := 0; col < gomoku.Size; col++ {
			switch board.At(gomoku.Move{Row: row, Col: col}) {
			case gomoku.First:
				hash ^= that.cells[row*gomoku.Size+col][0]
			case gomoku.Second:
				hash ^= that.cells[row*gomoku.Size+col][1]
			}
		}
	}

	hash ^= that.toMove[toMove%3]
	hash ^= that.perspective[perspective%3]

	return hash
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
