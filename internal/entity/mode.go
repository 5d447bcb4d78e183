package entity

import (
	"errors"
	"fmt"
)

type Mode string

const (
	ModePlayerVsPlayer Mode = "pvp"
	ModeEasy           Mode = "easy"
	ModeMedium         Mode = "medium"
	ModeHard           Mode = "hard"
)

var ErrUnknownMode = errors.New("unknown game mode")

func ParseMode(value string) (Mode, error) {
	switch mode := Mode(value); mode {
	case ModePlayerVsPlayer, ModeEasy, ModeMedium, ModeHard:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, value)
	}
}

func (that Mode) IsAgainstComputer() bool {
	return that == ModeEasy || that == ModeMedium || that == ModeHard
}
