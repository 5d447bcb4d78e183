package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/piskvorky-backend/internal/entity"
	"github.com/rocketscienceinc/piskvorky-backend/internal/gomoku"
)

func (that *Server) handleNewGame(ctx context.Context, args []string) error {
	mode, err := parseModeArg(args)
	if err != nil {
		return err
	}

	game, err := that.uGame.NewGame(ctx, mode)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	that.setGameID(game.ID)
	that.printGame(game)

	return nil
}

func (that *Server) handleSetMode(ctx context.Context, args []string) error {
	gameID, err := that.activeGameID()
	if err != nil {
		return err
	}

	mode, err := parseModeArg(args)
	if err != nil {
		return err
	}

	game, err := that.uGame.SetMode(ctx, gameID, mode)
	if err != nil {
		return fmt.Errorf("failed to change mode: %w", err)
	}

	that.printGame(game)

	return nil
}

func (that *Server) handleReset(ctx context.Context, _ []string) error {
	gameID, err := that.activeGameID()
	if err != nil {
		return err
	}

	game, err := that.uGame.Reset(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to reset game: %w", err)
	}

	that.printGame(game)

	return nil
}

func (that *Server) handleMove(ctx context.Context, args []string) error {
	gameID, err := that.activeGameID()
	if err != nil {
		return err
	}

	if len(args) != 2 {
		return fmt.Errorf("%w: move <row> <col>", ErrBadArguments)
	}

	row, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: row %q", ErrBadArguments, args[0])
	}

	col, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: col %q", ErrBadArguments, args[1])
	}

	game, err := that.uGame.MakeTurn(ctx, gameID, gomoku.Move{Row: row, Col: col})
	if err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	that.printGame(game)

	if game.IsComputerTurn() {
		that.printf("computer is thinking...\n")
	}

	return nil
}

func (that *Server) handleBoard(ctx context.Context, _ []string) error {
	gameID, err := that.activeGameID()
	if err != nil {
		return err
	}

	game, err := that.uGame.GetGame(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}

	that.printGame(game)

	return nil
}

func (that *Server) handleHistory(ctx context.Context, _ []string) error {
	entries, err := that.uGame.History(ctx)
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}

	if len(entries) == 0 {
		that.printf("no finished games\n")
		return nil
	}

	var sb strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&sb, "%s  %-6s  %s vs %s  winner: %s  moves: %d\n",
			entry.EndTime.Format("2006-01-02 15:04"), entry.Mode, entry.PlayerX, entry.PlayerO, entry.Winner, entry.MovesCount)
	}
	that.printf("%s", sb.String())

	return nil
}

func (that *Server) handleStats(ctx context.Context, _ []string) error {
	stats, err := that.uGame.Statistics(ctx)
	if err != nil {
		return fmt.Errorf("failed to get statistics: %w", err)
	}

	that.printf("games: %d  wins vs pc: %d  losses vs pc: %d  win rate: %.1f%%\n",
		stats.TotalGames, stats.WinsAgainstPC, stats.LossesAgainstPC, stats.WinRateAgainstPC)

	return nil
}

func (that *Server) handleHelp(_ context.Context, _ []string) error {
	that.printf("new <pvp|easy|medium|hard>  start a game\n" +
		"move <row> <col>            play a cell, 0-14\n" +
		"mode <mode>                 restart in another mode\n" +
		"reset                       restart in the same mode\n" +
		"board | history | stats | quit\n")

	return nil
}

func (that *Server) printGame(game *entity.Game) {
	var sb strings.Builder

	sb.WriteString("   ")
	for col := 0; col < gomoku.Size; col++ {
		fmt.Fprintf(&sb, "%x", col)
	}
	sb.WriteByte('\n')

	for row, line := range strings.Split(game.Board.String(), "\n") {
		fmt.Fprintf(&sb, "%2d %s\n", row, line)
	}

	if game.IsFinished() {
		fmt.Fprintf(&sb, "result: %s\n", game.Outcome)
	} else {
		fmt.Fprintf(&sb, "mode: %s  turn: %s\n", game.Mode, game.Turn)
	}

	that.printf("%s", sb.String())
}

func parseModeArg(args []string) (entity.Mode, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: expected one mode", ErrBadArguments)
	}

	mode, err := entity.ParseMode(strings.ToLower(args[0]))
	if err != nil {
		return "", fmt.Errorf("invalid mode: %w", err)
	}

	return mode, nil
}
