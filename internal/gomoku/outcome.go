package gomoku

import (
	"errors"
	"fmt"
)

type Outcome uint8

const (
	Ongoing Outcome = iota
	FirstWins
	SecondWins
	Draw
)

var ErrUnknownOutcome = errors.New("unknown outcome")

// Direction is a line step through the board.
type Direction struct {
	DRow int
	DCol int
}

// Directions are the four lines checked through every cell:
// horizontal, vertical, main diagonal and anti-diagonal.
var Directions = [4]Direction{
	{DRow: 0, DCol: 1},
	{DRow: 1, DCol: 0},
	{DRow: 1, DCol: 1},
	{DRow: 1, DCol: -1},
}

func (o Outcome) IsTerminal() bool {
	return o != Ongoing
}

// Winner returns the winning mark, or Empty for Ongoing and Draw.
func (o Outcome) Winner() Mark {
	switch o {
	case FirstWins:
		return First
	case SecondWins:
		return Second
	default:
		return Empty
	}
}

func (o Outcome) String() string {
	switch o {
	case FirstWins:
		return "x_wins"
	case SecondWins:
		return "o_wins"
	case Draw:
		return "draw"
	default:
		return "ongoing"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "ongoing", "":
		*o = Ongoing
	case "x_wins":
		*o = FirstWins
	case "o_wins":
		*o = SecondWins
	case "draw":
		*o = Draw
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutcome, text)
	}

	return nil
}

func winFor(mark Mark) Outcome {
	if mark == First {
		return FirstWins
	}

	return SecondWins
}

// Evaluate decides whether the mark placed at last completed five in a row.
// Each line is scanned within WinLength-1 cells on both sides of last.
// A full board without a win is a Draw.
func Evaluate(board Board, last Move) Outcome {
	mark := board.At(last)

	if mark != Empty {
		for _, dir := range Directions {
			if hasRun(board, last, dir, mark) {
				return winFor(mark)
			}
		}
	}

	if board.IsFull() {
		return Draw
	}

	return Ongoing
}

func hasRun(board Board, last Move, dir Direction, mark Mark) bool {
	count := 0
	for d := -(WinLength - 1); d <= WinLength-1; d++ {
		cell := Move{Row: last.Row + d*dir.DRow, Col: last.Col + d*dir.DCol}
		if cell.InBounds() && board.at(cell.Row, cell.Col) == mark {
			count++
		} else {
			count = 0
		}

		if count == WinLength {
			return true
		}
	}

	return false
}

// EvaluateOutcome is Evaluate under the name the orchestrator uses.
func EvaluateOutcome(board Board, last Move) Outcome {
	return Evaluate(board, last)
}
