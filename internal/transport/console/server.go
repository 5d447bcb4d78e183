package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/rocketscienceinc/piskvorky-backend/internal/entity"
	"github.com/rocketscienceinc/piskvorky-backend/internal/gomoku"
	"github.com/rocketscienceinc/piskvorky-backend/internal/usecase"
)

var (
	errQuit          = errors.New("quit")
	ErrNoActiveGame  = errors.New("no active game, use: new <mode>")
	ErrUnknownAction = errors.New("unknown command")
	ErrBadArguments  = errors.New("bad arguments")
)

type uGame interface {
	NewGame(ctx context.Context, mode entity.Mode) (*entity.Game, error)
	SetMode(ctx context.Context, gameID string, mode entity.Mode) (*entity.Game, error)
	Reset(ctx context.Context, gameID string) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, move gomoku.Move) (*entity.Game, error)
	History(ctx context.Context) ([]*entity.HistoryEntry, error)
	Statistics(ctx context.Context) (entity.Statistics, error)
	Events() <-chan usecase.Event
}

type handler func(ctx context.Context, args []string) error

// Server reads one command per line and writes replies to out.
type Server struct {
	logger *slog.Logger
	uGame  uGame

	outMutex sync.Mutex
	out      io.Writer

	gameMutex sync.RWMutex
	gameID    string

	handlers map[string]handler
}

func New(logger *slog.Logger, uGame uGame, out io.Writer) *Server {
	server := &Server{
		logger: logger,
		uGame:  uGame,
		out:    out,

		handlers: make(map[string]handler),
	}

	server.handlers["new"] = server.handleNewGame
	server.handlers["mode"] = server.handleSetMode
	server.handlers["reset"] = server.handleReset
	server.handlers["move"] = server.handleMove
	server.handlers["board"] = server.handleBoard
	server.handlers["history"] = server.handleHistory
	server.handlers["stats"] = server.handleStats
	server.handlers["help"] = server.handleHelp
	server.handlers["quit"] = func(context.Context, []string) error { return errQuit }

	return server
}

// Start serves commands from in until it is exhausted, "quit" is read or ctx
// is done.
func (that *Server) Start(ctx context.Context, in io.Reader) error {
	log := that.logger.With("method", "Start")

	ctx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		that.printEvents(ctx)
	}()

	defer func() {
		cancel()
		wg.Wait()
	}()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	that.printf("commands: new <pvp|easy|medium|hard>, move <row> <col>, mode <mode>, reset, board, history, stats, quit\n")

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			if err != nil {
				return fmt.Errorf("failed to read command: %w", err)
			}
			return nil
		case line := <-lines:
			err := that.handleLine(ctx, line)
			if errors.Is(err, errQuit) {
				return nil
			}

			if err != nil {
				log.Debug("command failed", "line", line, "error", err)
				that.printf("error: %s\n", err)
			}
		}
	}
}

func (that *Server) handleLine(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	handle, ok := that.handlers[strings.ToLower(fields[0])]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, fields[0])
	}

	return handle(ctx, fields[1:])
}

func (that *Server) printEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-that.uGame.Events():
			if !ok {
				return
			}

			if event.GameID != that.currentGameID() {
				continue
			}

			that.printEvent(event)
		}
	}
}

func (that *Server) printEvent(event usecase.Event) {
	if event.Err != nil {
		that.printf("computer move %s dropped: %s\n", event.Move, event.Err)
		return
	}

	that.printf("computer plays %s\n", event.Move)
	that.printGame(event.Game)
}

func (that *Server) currentGameID() string {
	that.gameMutex.RLock()
	defer that.gameMutex.RUnlock()

	return that.gameID
}

func (that *Server) setGameID(id string) {
	that.gameMutex.Lock()
	defer that.gameMutex.Unlock()

	that.gameID = id
}

func (that *Server) activeGameID() (string, error) {
	id := that.currentGameID()
	if id == "" {
		return "", ErrNoActiveGame
	}

	return id, nil
}

func (that *Server) printf(format string, args ...any) {
	that.outMutex.Lock()
	defer that.outMutex.Unlock()

	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}
