package apperror

import "errors"

var (
	ErrInvalidMove       = errors.New("invalid move")
	ErrGameOver          = errors.New("game is already over")
	ErrNoLegalMove       = errors.New("no legal move left")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrComputerThinking  = errors.New("computer move is pending")
	ErrStaleMove         = errors.New("computer move is stale")
	ErrHumanVsHumanGame  = errors.New("game has no computer opponent")
)
