package gomoku

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/piskvorky-backend/internal/apperror"
)

// Size is the side length of the board.
const Size = 15

// WinLength is the number of consecutive marks that wins the game.
const WinLength = 5

type Mark uint8

const (
	Empty Mark = iota
	First
	Second
)

var (
	ErrUnknownMark = errors.New("unknown mark")
	ErrBadBoard    = errors.New("malformed board")
)

// Opponent returns the other player's mark. Empty stays Empty.
func (m Mark) Opponent() Mark {
	switch m {
	case First:
		return Second
	case Second:
		return First
	default:
		return Empty
	}
}

func (m Mark) String() string {
	switch m {
	case First:
		return "X"
	case Second:
		return "O"
	default:
		return ""
	}
}

func (m Mark) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mark) UnmarshalText(text []byte) error {
	switch string(text) {
	case "X":
		*m = First
	case "O":
		*m = Second
	case "":
		*m = Empty
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMark, text)
	}

	return nil
}

// Move is a board coordinate.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Center is the default move on an empty board.
var Center = Move{Row: Size / 2, Col: Size / 2}

func (m Move) InBounds() bool {
	return m.Row >= 0 && m.Row < Size && m.Col >= 0 && m.Col < Size
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

func (m Move) index() int {
	return m.Row*Size + m.Col
}

// Board is a value: assigning it copies the whole grid, so a search can
// snapshot a position with a single array copy.
type Board struct {
	cells [Size * Size]Mark
}

func EmptyBoard() Board {
	return Board{}
}

// At returns the mark at move, or Empty when move is off the board.
func (that Board) At(move Move) Mark {
	if !move.InBounds() {
		return Empty
	}

	return that.cells[move.index()]
}

func (that Board) at(row, col int) Mark {
	return that.cells[row*Size+col]
}

// Apply returns a copy of the board with mark placed at move.
func (that Board) Apply(move Move, mark Mark) (Board, error) {
	if !move.InBounds() {
		return that, fmt.Errorf("%w: %s is out of bounds", apperror.ErrInvalidMove, move)
	}

	if mark != First && mark != Second {
		return that, fmt.Errorf("%w: cannot place %w", apperror.ErrInvalidMove, ErrUnknownMark)
	}

	if that.cells[move.index()] != Empty {
		return that, fmt.Errorf("%w: cell %s is occupied", apperror.ErrInvalidMove, move)
	}

	that.cells[move.index()] = mark

	return that, nil
}

// Place sets the cell in place. It is meant for search code that owns its
// board copy and undoes the placement with Clear.
func (that *Board) Place(move Move, mark Mark) {
	that.cells[move.index()] = mark
}

func (that *Board) Clear(move Move) {
	that.cells[move.index()] = Empty
}

func (that Board) IsFull() bool {
	for _, cell := range that.cells {
		if cell == Empty {
			return false
		}
	}

	return true
}

// Count returns the number of occupied cells.
func (that Board) Count() int {
	count := 0
	for _, cell := range that.cells {
		if cell != Empty {
			count++
		}
	}

	return count
}

func (that Board) HasStones() bool {
	for _, cell := range that.cells {
		if cell != Empty {
			return true
		}
	}

	return false
}

// String renders the board as Size lines of '.', 'X' and 'O'.
func (that Board) String() string {
	return strings.Join(that.rows(), "\n")
}

func (that Board) rows() []string {
	rows := make([]string, Size)
	for row := 0; row < Size; row++ {
		var sb strings.Builder
		for col := 0; col < Size; col++ {
			switch that.at(row, col) {
			case First:
				sb.WriteByte('X')
			case Second:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		rows[row] = sb.String()
	}

	return rows
}

func (that Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.rows())
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var rows []string
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("failed to unmarshal board rows: %w", err)
	}

	board, err := ParseBoard(rows...)
	if err != nil {
		return err
	}

	*that = board

	return nil
}

// ParseBoard builds a board from Size rows of '.', 'X' and 'O'.
func ParseBoard(rows ...string) (Board, error) {
	var board Board

	if len(rows) != Size {
		return board, fmt.Errorf("%w: %d rows", ErrBadBoard, len(rows))
	}

	for row, line := range rows {
		if len(line) != Size {
			return board, fmt.Errorf("%w: row %d has %d cells", ErrBadBoard, row, len(line))
		}

		for col := 0; col < Size; col++ {
			switch line[col] {
			case '.':
			case 'X':
				board.cells[row*Size+col] = First
			case 'O':
				board.cells[row*Size+col] = Second
			default:
				return board, fmt.Errorf("%w: unexpected %q at %s", ErrBadBoard, line[col], Move{Row: row, Col: col})
			}
		}
	}

	return board, nil
}

// ApplyMove places mark at move on a copy of board.
func ApplyMove(board Board, move Move, mark Mark) (Board, error) {
	return board.Apply(move, mark)
}
