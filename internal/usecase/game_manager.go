package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/megatictactoe/internal/entity"
	"github.com/rocketscienceinc/megatictactoe/internal/metrics"
	"github.com/rocketscienceinc/megatictactoe/internal/tictactoe"
)

// Observer receives a copy of the game after every accepted move.
type Observer interface {
	Notify(ctx context.Context, state *entity.GameState) error
}

// GameManager serializes moves on one game. Every Select runs the whole rule engine
// transition under a single lock.
type GameManager struct {
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu    sync.Mutex
	state *entity.GameState

	observers []Observer
}

func NewGameManager(logger *slog.Logger, state *entity.GameState, gameMetrics *metrics.Metrics, observers ...Observer) *GameManager {
	return &GameManager{
		logger:  logger.With("component", "game_manager", "gameID", state.ID),
		metrics: gameMetrics,

		state: state,

		observers: observers,
	}
}

// Select applies a move for the current player. Observers get the resulting snapshot
// after the lock is released; snapshots carry Moves so they can be ordered.
func (that *GameManager) Select(ctx context.Context, board, cell int) (tictactoe.MoveResult, error) {
	log := that.logger.With("method", "Select", "board", board, "cell", cell)

	that.mu.Lock()
	result, err := tictactoe.ApplyMove(that.state, board, cell)
	if err != nil {
		that.mu.Unlock()

		that.metrics.MoveRejected(err)
		log.Debug("move rejected", "error", err)

		return tictactoe.MoveResult{}, fmt.Errorf("failed make turn: %w", err)
	}
	snapshot := that.state.Clone()
	that.mu.Unlock()

	that.record(log, result)
	that.notify(ctx, snapshot)

	return result, nil
}

// Snapshot returns a copy of the current game for renderers.
func (that *GameManager) Snapshot() *entity.GameState {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state.Clone()
}

func (that *GameManager) record(log *slog.Logger, result tictactoe.MoveResult) {
	that.metrics.MoveAccepted()
	log.Debug("move accepted", "player", result.Player)

	switch {
	case result.Status.IsClaimed():
		that.metrics.BoardClaimed(result.Status.Owner)
		log.Info("mini-board claimed", "player", result.Status.Owner)
	case result.DrawReset:
		that.metrics.BoardDrawReset()
		log.Info("mini-board drawn and reset")
	}
}

func (that *GameManager) notify(ctx context.Context, snapshot *entity.GameState) {
	for _, observer := range that.observers {
		if err := observer.Notify(ctx, snapshot.Clone()); err != nil {
			that.logger.Error("failed to notify observer", "moves", snapshot.Moves, "error", err)
		}
	}
}
