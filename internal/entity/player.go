package entity

import "github.com/rocketscienceinc/piskvorky-backend/internal/gomoku"

const (
	DefaultPlayerX  = "Player X"
	DefaultPlayerO  = "Player O"
	ComputerPlayerO = "Computer"
)

type Player struct {
	Name     string      `json:"name"`
	Mark     gomoku.Mark `json:"mark"`
	Computer bool        `json:"computer,omitempty"`
}

func newPlayers(mode Mode) []*Player {
	second := &Player{Name: DefaultPlayerO, Mark: gomoku.Second}
	if mode.IsAgainstComputer() {
		second = &Player{Name: ComputerPlayerO, Mark: gomoku.Second, Computer: true}
	}

	return []*Player{
		{Name: DefaultPlayerX, Mark: gomoku.First},
		second,
	}
}
