// Package game answers whether the player has a game and creates one.
package game

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/LevanIlashvili/stylish-go-app/internal/board"
	"github.com/LevanIlashvili/stylish-go-app/internal/move"
	"github.com/LevanIlashvili/stylish-go-app/internal/model"
	"github.com/LevanIlashvili/stylish-go-app/internal/notify"
)

// Performer runs actions; *move.Orchestrator implements it.
type Performer interface {
	Perform(ctx context.Context, a move.Action) move.Result
}

// Session tracks the two long-running game-level requests. "Has a game" and
// "game ended" are independent: an ended game still counts as present.
type Session struct {
	conn     board.Handles
	actions  Performer
	notifier notify.Notifier
	logger   *slog.Logger

	checking atomic.Bool
	creating atomic.Bool
}

// NewSession creates a session. Game creation goes through actions so it
// shares the single pending-action slot with moves.
func NewSession(conn board.Handles, actions Performer, notifier notify.Notifier, logger *slog.Logger) *Session {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		conn:     conn,
		actions:  actions,
		notifier: notifier,
		logger:   logger.With("component", "game"),
	}
}

// HasActiveGame asks the contract whether the signer has a game.
func (s *Session) HasActiveGame(ctx context.Context) (bool, error) {
	s.checking.Store(true)
	defer s.checking.Store(false)

	h, err := s.conn.RequireSigner()
	if err != nil {
		return false, model.ContractQueryError("hasGame", err)
	}

	has, err := h.Contract.HasGame(ctx, h.Player())
	if err != nil {
		s.logger.Error("failed to check for active game", "error", err)
		notify.Error(s.notifier, "Contract Error", "Could not check for active game.")
		return false, model.ContractQueryError("hasGame", err)
	}
	return has, nil
}

// CreateGame submits createGame and waits for it to be confirmed.
func (s *Session) CreateGame(ctx context.Context) (bool, move.Result) {
	s.creating.Store(true)
	defer s.creating.Store(false)

	res := s.actions.Perform(ctx, move.CreateGame())
	return res.OK, res
}

// Checking reports whether HasActiveGame is in progress.
func (s *Session) Checking() bool {
	return s.checking.Load()
}

// Creating reports whether CreateGame is in progress.
func (s *Session) Creating() bool {
	return s.creating.Load()
}
