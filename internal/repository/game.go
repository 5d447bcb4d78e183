package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/piskvorky-backend/internal/entity"
)

var ErrGameNotFound = errors.New("game not found")

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func gameKey(id string) string {
	return "game:" + id
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.client.Set(ctx, gameKey(game.ID), gameJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, gameKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, gameKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete game by id: %w", err)
	}

	if deleted == 0 {
		return ErrGameNotFound
	}

	return nil
}
