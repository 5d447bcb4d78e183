package console

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/piskvorky-backend/internal/entity"
	"github.com/rocketscienceinc/piskvorky-backend/internal/usecase"
)

var errNotFound = errors.New("not found")

type memoryGames struct {
	mu    sync.Mutex
	games map[string][]byte
}

func (that *memoryGames) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()
	that.games[game.ID] = data

	return nil
}

func (that *memoryGames) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	data, ok := that.games[id]
	that.mu.Unlock()

	if !ok {
		return nil, errNotFound
	}

	var game entity.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}

	return &game, nil
}

type memoryHistory struct {
	mu      sync.Mutex
	entries []*entity.HistoryEntry
}

func (that *memoryHistory) Add(_ context.Context, entry *entity.HistoryEntry) error {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.entries = append(that.entries, entry)

	return nil
}

func (that *memoryHistory) List(_ context.Context) ([]*entity.HistoryEntry, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]*entity.HistoryEntry(nil), that.entries...), nil
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (that *syncBuffer) Write(p []byte) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.buf.Write(p)
}

func (that *syncBuffer) String() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.buf.String()
}

func newServer(t *testing.T) (*Server, *syncBuffer) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := usecase.NewGameManager(logger, &memoryGames{games: make(map[string][]byte)}, &memoryHistory{}, usecase.EngineOptions{})
	t.Cleanup(manager.Close)

	out := &syncBuffer{}

	return New(logger, manager, out), out
}

func TestServer_TwoPlayerSession(t *testing.T) {
	// Given: a script for a two-player game won by X
	server, out := newServer(t)
	script := strings.Join([]string{
		"new pvp",
		"move 7 7", "move 0 0",
		"move 7 8", "move 0 1",
		"move 7 8",
		"move 7 9", "move 0 2",
		"move 7 10", "move 0 3",
		"move 7 11",
		"history",
		"stats",
		"quit",
		"board",
	}, "\n")

	// When: the server runs it
	err := server.Start(context.Background(), strings.NewReader(script))

	// Then: moves are played, the occupied cell is refused and the result is stored
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, " 7 .......XX......")
	assert.Contains(t, output, "invalid move")
	assert.Contains(t, output, "result: x_wins")
	assert.Contains(t, output, "winner: X  moves: 9")
	assert.Contains(t, output, "games: 1  wins vs pc: 0")
	assert.Equal(t, 1, strings.Count(output, "result: x_wins"), "nothing runs after quit")
}

func TestServer_Errors(t *testing.T) {
	server, out := newServer(t)
	script := strings.Join([]string{
		"move 1 1",
		"new chess",
		"fly",
		"new easy",
		"move a 1",
		"move 1",
		"move 20 1",
	}, "\n")

	require.NoError(t, server.Start(context.Background(), strings.NewReader(script)))

	output := out.String()
	assert.Contains(t, output, "no active game")
	assert.Contains(t, output, "unknown game mode")
	assert.Contains(t, output, "unknown command: fly")
	assert.Contains(t, output, `bad arguments: row "a"`)
	assert.Contains(t, output, "bad arguments: move <row> <col>")
	assert.Contains(t, output, "out of bounds")
}

func TestServer_ComputerReply(t *testing.T) {
	// Given: a running server fed through a pipe
	server, out := newServer(t)
	reader, writer := io.Pipe()

	done := make(chan error, 1)
	go func() {
		done <- server.Start(context.Background(), reader)
	}()

	// When: the human opens a game against the computer
	_, err := io.WriteString(writer, "new hard\nmove 7 7\n")
	require.NoError(t, err)

	// Then: the computer's move is printed
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "computer plays")
	}, 10*time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), "mode: hard  turn: X")

	require.NoError(t, writer.Close())
	require.NoError(t, <-done)
}
