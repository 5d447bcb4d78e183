package usecase

import (
	"encoding/json"
	"errors"

	"github.com/rocketscienceinc/piskvorky-backend/internal/entity"
)

var errGameMissing = errors.New("game missing")

// jsonCopy stores games the way the redis repository does, so tests never
// share pointers with the manager.
func jsonCopy(game *entity.Game) ([]byte, error) {
	return json.Marshal(game)
}

func jsonGame(data []byte) (*entity.Game, error) {
	var game entity.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}

	return &game, nil
}
