package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/piskvorky-backend/internal/apperror"
	"github.com/rocketscienceinc/piskvorky-backend/internal/gomoku"
)

// Game is one play session. Round changes every time the board is reset,
// so work started for an earlier round can be recognised as stale.
type Game struct {
	ID        string         `json:"id"`
	Round     string         `json:"round"`
	Mode      Mode           `json:"mode"`
	Board     gomoku.Board   `json:"board"`
	Turn      gomoku.Mark    `json:"turn"`
	Outcome   gomoku.Outcome `json:"outcome"`
	Moves     []gomoku.Move  `json:"moves,omitempty"`
	Players   []*Player      `json:"players,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func NewGame(id, round string, mode Mode) *Game {
	return &Game{
		ID:        id,
		Round:     round,
		Mode:      mode,
		Board:     gomoku.EmptyBoard(),
		Turn:      gomoku.First,
		Outcome:   gomoku.Ongoing,
		Players:   newPlayers(mode),
		CreatedAt: time.Now().UTC(),
	}
}

// Reset starts a new round with an empty board.
func (that *Game) Reset(round string, mode Mode) {
	that.Round = round
	that.Mode = mode
	that.Board = gomoku.EmptyBoard()
	that.Turn = gomoku.First
	that.Outcome = gomoku.Ongoing
	that.Moves = nil
	that.Players = newPlayers(mode)
}

func (that *Game) MakeTurn(mark gomoku.Mark, move gomoku.Move) error {
	if that.IsFinished() {
		return apperror.ErrGameOver
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	board, err := gomoku.ApplyMove(that.Board, move, mark)
	if err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	that.Board = board
	that.Moves = append(that.Moves, move)
	that.Outcome = gomoku.EvaluateOutcome(board, move)

	if that.Outcome.IsTerminal() {
		that.Turn = gomoku.Empty
	} else {
		that.Turn = mark.Opponent()
	}

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Outcome.IsTerminal()
}

// ComputerMark is the mark the computer plays, or Empty in a two-player game.
func (that *Game) ComputerMark() gomoku.Mark {
	if that.Mode.IsAgainstComputer() {
		return gomoku.Second
	}

	return gomoku.Empty
}

func (that *Game) IsComputerTurn() bool {
	return !that.IsFinished() && that.Turn != gomoku.Empty && that.Turn == that.ComputerMark()
}

func (that *Game) LastMove() (gomoku.Move, bool) {
	if len(that.Moves) == 0 {
		return gomoku.Move{}, false
	}

	return that.Moves[len(that.Moves)-1], true
}

func (that *Game) PlayerName(mark gomoku.Mark) string {
	for _, player := range that.Players {
		if player.Mark == mark {
			return player.Name
		}
	}

	return ""
}
