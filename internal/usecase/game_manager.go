package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/piskvorky-backend/internal/ai"
	"github.com/rocketscienceinc/piskvorky-backend/internal/apperror"
	"github.com/rocketscienceinc/piskvorky-backend/internal/entity"
	"github.com/rocketscienceinc/piskvorky-backend/internal/gomoku"
)

const eventsBuffer = 64

var ErrClosed = errors.New("game manager is closed")

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
}

type historyRepo interface {
	Add(ctx context.Context, entry *entity.HistoryEntry) error
	List(ctx context.Context) ([]*entity.HistoryEntry, error)
}

type moveSelector func(board gomoku.Board, me gomoku.Mark, strategy ai.Strategy) (gomoku.Move, error)

type EngineOptions struct {
	SearchDepth int
	// SharedCache keeps one search cache per game for all of its moves.
	SharedCache bool
	CacheSize   int
}

// Event reports a computer move. Err is set when the move could not be
// applied; ErrStaleMove means the game was reset while the move was computed.
type Event struct {
	GameID string
	Round  string
	Move   gomoku.Move
	Game   *entity.Game
	Err    error
}

type GameManager struct {
	logger      *slog.Logger
	gameRepo    gameRepo
	historyRepo historyRepo
	options     EngineOptions

	newID      func() string
	now        func() time.Time
	selectMove moveSelector

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	closeMutex sync.RWMutex
	closed     bool

	sessionsMutex sync.Mutex
	sessions      map[string]*session

	events chan Event
}

// session serialises everything that touches one game.
type session struct {
	mu      sync.Mutex
	pending *pendingMove
	cache   *ai.TranspositionCache
}

type pendingMove struct {
	round  string
	cancel context.CancelFunc
}

type computerMoveRequest struct {
	gameID   string
	round    string
	board    gomoku.Board
	mark     gomoku.Mark
	strategy ai.Strategy
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, historyRepo historyRepo, options EngineOptions) *GameManager {
	ctx, cancel := context.WithCancel(context.Background())

	return &GameManager{
		logger:      logger,
		gameRepo:    gameRepo,
		historyRepo: historyRepo,
		options:     options,

		newID:      uuid.NewString,
		now:        time.Now,
		selectMove: ai.SelectComputerMove,

		ctx:    ctx,
		cancel: cancel,

		sessions: make(map[string]*session),
		events:   make(chan Event, eventsBuffer),
	}
}

// Events delivers the result of every computer move.
func (that *GameManager) Events() <-chan Event {
	return that.events
}

// Close drops pending computer moves and waits for their goroutines.
func (that *GameManager) Close() {
	that.closeMutex.Lock()
	if that.closed {
		that.closeMutex.Unlock()
		return
	}
	that.closed = true
	that.cancel()
	that.closeMutex.Unlock()

	that.wg.Wait()
	close(that.events)
}

func (that *GameManager) NewGame(ctx context.Context, mode entity.Mode) (*entity.Game, error) {
	game := entity.NewGame(that.newID(), that.newID(), mode)

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.session(game.ID)

	that.logger.Info("game created", "method", "NewGame", "game_id", game.ID, "mode", mode)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// SetMode starts a new round in mode. A computer move still being computed
// for the old round is dropped.
func (that *GameManager) SetMode(ctx context.Context, gameID string, mode entity.Mode) (*entity.Game, error) {
	sess := that.session(gameID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	that.dropPending(sess)

	game.Reset(that.newID(), mode)
	if sess.cache != nil {
		sess.cache.Clear()
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.logger.Info("game reset", "method", "SetMode", "game_id", game.ID, "round", game.Round, "mode", mode)

	return game, nil
}

func (that *GameManager) Reset(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	return that.SetMode(ctx, gameID, game.Mode)
}

// MakeTurn plays move for the side to move. Against the computer the reply
// is computed in the background and reported through Events.
func (that *GameManager) MakeTurn(ctx context.Context, gameID string, move gomoku.Move) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "game_id", gameID)

	sess := that.session(gameID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.pending != nil {
		return nil, apperror.ErrComputerThinking
	}

	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	// the computer's reply was lost, e.g. on restart
	if game.IsComputerTurn() {
		if err = that.requestComputerMove(sess, game); err != nil {
			return nil, err
		}

		return game, apperror.ErrComputerThinking
	}

	if err = game.MakeTurn(game.Turn, move); err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.saveTurn(ctx, game); err != nil {
		return nil, err
	}

	log.Debug("move played", "move", move, "outcome", game.Outcome)

	if game.IsComputerTurn() {
		if err = that.requestComputerMove(sess, game); err != nil {
			return nil, err
		}
	}

	return game, nil
}

func (that *GameManager) History(ctx context.Context) ([]*entity.HistoryEntry, error) {
	entries, err := that.historyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	return entries, nil
}

func (that *GameManager) Statistics(ctx context.Context) (entity.Statistics, error) {
	entries, err := that.History(ctx)
	if err != nil {
		return entity.Statistics{}, err
	}

	return entity.ComputeStatistics(entries), nil
}

func (that *GameManager) session(gameID string) *session {
	that.sessionsMutex.Lock()
	defer that.sessionsMutex.Unlock()

	sess, ok := that.sessions[gameID]
	if !ok {
		sess = &session{}
		if that.options.SharedCache {
			sess.cache = ai.NewTranspositionCache(that.cacheSize())
		}
		that.sessions[gameID] = sess
	}

	return sess
}

func (that *GameManager) cacheSize() int {
	if that.options.CacheSize <= 0 {
		return ai.DefaultCacheSize
	}

	return that.options.CacheSize
}

func (that *GameManager) strategyFor(mode entity.Mode, sess *session) (ai.Strategy, error) {
	switch mode {
	case entity.ModeEasy:
		return ai.Easy{}, nil
	case entity.ModeMedium:
		return ai.Medium{}, nil
	case entity.ModeHard:
		return ai.Hard{Depth: that.options.SearchDepth, Cache: sess.cache}, nil
	case entity.ModePlayerVsPlayer:
		return nil, apperror.ErrHumanVsHumanGame
	default:
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownMode, mode)
	}
}

// dropPending must be called with sess.mu held.
func (that *GameManager) dropPending(sess *session) {
	if sess.pending == nil {
		return
	}

	sess.pending.cancel()
	sess.pending = nil
}

// requestComputerMove must be called with sess.mu held.
func (that *GameManager) requestComputerMove(sess *session, game *entity.Game) error {
	strategy, err := that.strategyFor(game.Mode, sess)
	if err != nil {
		return fmt.Errorf("failed to pick strategy: %w", err)
	}

	that.closeMutex.RLock()
	defer that.closeMutex.RUnlock()

	if that.closed {
		return ErrClosed
	}

	ctx, cancel := context.WithCancel(that.ctx)
	sess.pending = &pendingMove{round: game.Round, cancel: cancel}

	req := computerMoveRequest{
		gameID:   game.ID,
		round:    game.Round,
		board:    game.Board,
		mark:     game.ComputerMark(),
		strategy: strategy,
	}

	that.wg.Add(1)
	go that.runComputerMove(ctx, sess, req)

	return nil
}

func (that *GameManager) runComputerMove(ctx context.Context, sess *session, req computerMoveRequest) {
	defer that.wg.Done()

	log := that.logger.With("method", "runComputerMove", "game_id", req.gameID, "round", req.round)

	started := that.now()
	move, selectErr := that.selectMove(req.board, req.mark, req.strategy)

	game, err := that.applyComputerMove(ctx, sess, req, move, selectErr)
	switch {
	case errors.Is(err, apperror.ErrStaleMove):
		log.Info("dropped stale computer move", "move", move)
	case err != nil:
		log.Error("failed to apply computer move", "error", err)
	default:
		log.Debug("computer moved", "move", move, "strategy", req.strategy.Name(), "took", that.now().Sub(started))
	}

	that.publish(Event{GameID: req.gameID, Round: req.round, Move: move, Game: game, Err: err})
}

func (that *GameManager) applyComputerMove(
	ctx context.Context,
	sess *session,
	req computerMoveRequest,
	move gomoku.Move,
	selectErr error,
) (*entity.Game, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if ctx.Err() != nil || sess.pending == nil || sess.pending.round != req.round {
		return nil, apperror.ErrStaleMove
	}

	that.dropPending(sess)

	if selectErr != nil {
		return nil, fmt.Errorf("failed to select computer move: %w", selectErr)
	}

	game, err := that.gameRepo.GetByID(that.ctx, req.gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if game.Round != req.round {
		return nil, apperror.ErrStaleMove
	}

	if err = game.MakeTurn(req.mark, move); err != nil {
		return game, fmt.Errorf("failed to make computer turn: %w", err)
	}

	if err = that.saveTurn(that.ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// saveTurn stores the game and, once it is over, its history entry.
func (that *GameManager) saveTurn(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	if !game.IsFinished() {
		return nil
	}

	if err := that.historyRepo.Add(ctx, entity.NewHistoryEntry(game, that.now())); err != nil {
		return fmt.Errorf("failed to add game to history: %w", err)
	}

	that.logger.Info("game finished", "method", "saveTurn", "game_id", game.ID, "outcome", game.Outcome, "moves", len(game.Moves))

	return nil
}

func (that *GameManager) publish(event Event) {
	select {
	case that.events <- event:
	case <-that.ctx.Done():
	}
}
