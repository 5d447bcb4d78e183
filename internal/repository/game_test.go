package repository

import (
	"testing"

	"github.com/rocketscienceinc/piskvorky-backend/internal/entity"
	"github.com/rocketscienceinc/piskvorky-backend/internal/gomoku"
	"github.com/rocketscienceinc/piskvorky-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: a new game
	game := entity.NewGame("123", "round-1", entity.ModeHard)

	// When: CreateOrUpdate is called
	err := gameRepo.CreateOrUpdate(ctx, game)

	// Then: no error should be returned, and game is stored
	require.NoError(t, err)
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a game with one move played
		game := entity.NewGame("123", "round-1", entity.ModeMedium)
		require.NoError(t, game.MakeTurn(gomoku.First, gomoku.Center))

		err := gameRepo.CreateOrUpdate(ctx, game)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the retrieved game should match the saved game
		require.NoError(t, err)
		assert.Equal(t, game.ID, retrievedGame.ID)
		assert.Equal(t, game.Round, retrievedGame.Round)
		assert.Equal(t, game.Board, retrievedGame.Board)
		assert.Equal(t, gomoku.Second, retrievedGame.Turn)
		assert.Equal(t, game.Moves, retrievedGame.Moves)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		nonExistentGameID := "9999999"

		// When: GetByID is called with non-existent ID
		retrievedGame, err := gameRepo.GetByID(ctx, nonExistentGameID)

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, ErrGameNotFound)
		assert.Nil(t, retrievedGame)
	})
}

func TestGameRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a stored game
		game := entity.NewGame("123", "round-1", entity.ModePlayerVsPlayer)

		err := gameRepo.CreateOrUpdate(ctx, game)
		require.NoError(t, err)

		// When: DeleteByID is called with existing ID
		err = gameRepo.DeleteByID(ctx, game.ID)

		// Then: no error should be returned and the game is gone
		require.NoError(t, err)

		_, err = gameRepo.GetByID(ctx, game.ID)
		assert.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// When: DeleteByID is called with non-existent ID
		err := gameRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, ErrGameNotFound)
	})
}
