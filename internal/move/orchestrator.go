// Package move turns player intents into confirmed contract transactions and
// reconciles the board afterwards.
package move

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"

	"github.com/LevanIlashvili/stylish-go-app/internal/board"
	"github.com/LevanIlashvili/stylish-go-app/internal/client"
	"github.com/LevanIlashvili/stylish-go-app/internal/model"
	"github.com/LevanIlashvili/stylish-go-app/internal/notify"
)

var (
	// ErrActionPending rejects a request while another transaction is in flight.
	ErrActionPending = errors.New("another action is pending")
	// ErrGameEnded rejects moves and passes once the game is over.
	ErrGameEnded = errors.New("game has ended")
)

// Board is the view the orchestrator reconciles; *board.Syncer implements it.
type Board interface {
	Refresh(ctx context.Context) (board.Snapshot, error)
	Snapshot() board.Snapshot
	Size() int
}

// Orchestrator runs at most one action at a time. Requests arriving while one
// is outstanding are rejected, not queued.
type Orchestrator struct {
	conn           board.Handles
	board          Board
	notifier       notify.Notifier
	logger         *slog.Logger
	confirmTimeout time.Duration

	busy    atomic.Bool
	pending atomic.Pointer[model.PendingAction]
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

func WithNotifier(n notify.Notifier) Option {
	return func(o *Orchestrator) { o.notifier = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithConfirmTimeout bounds the wait for a confirmation. Zero waits forever.
func WithConfirmTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.confirmTimeout = d }
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(conn board.Handles, b Board, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		conn:     conn,
		board:    b,
		notifier: notify.Nop{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.With("component", "move")
	return o
}

// Busy reports whether an action is outstanding.
func (o *Orchestrator) Busy() bool {
	return o.busy.Load()
}

// Pending returns a copy of the outstanding action, or nil.
func (o *Orchestrator) Pending() *model.PendingAction {
	p := o.pending.Load()
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

// Perform submits a, waits for one confirmation and refreshes the board.
// It never panics; every failure is reported in the Result.
func (o *Orchestrator) Perform(ctx context.Context, a Action) (res Result) {
	if !o.busy.CompareAndSwap(false, true) {
		return Result{Kind: a.Kind, Err: ErrActionPending, Message: "Another transaction is still pending."}
	}
	defer func() {
		if p := recover(); p != nil {
			o.logger.Error("action panicked", "kind", a.Kind, "panic", p)
			res = o.fail(Result{Kind: a.Kind}, model.TransactionError(string(a.Kind), fmt.Errorf("panic: %v", p)))
		}
		o.pending.Store(nil)
		o.busy.Store(false)
	}()

	return o.perform(ctx, a)
}

func (o *Orchestrator) perform(ctx context.Context, a Action) Result {
	res := Result{Kind: a.Kind, Submitted: a.Kind}

	if _, ok := kindTexts[a.Kind]; !ok {
		return Result{Kind: a.Kind, Err: fmt.Errorf("unknown action %q", a.Kind), Message: FailureMessage(a.Kind)}
	}

	h, err := o.conn.RequireSigner()
	if err != nil {
		notify.Error(o.notifier, "Action Failed", "Not ready.")
		return Result{Kind: a.Kind, Err: err, Message: FailureMessage(a.Kind)}
	}

	switch a.Kind {
	case model.ActionMove, model.ActionPass, model.ActionAbandon:
		if o.ended(ctx, h.Player()) {
			if a.Kind == model.ActionAbandon {
				res.Submitted = model.ActionNewGame
				break
			}
			return Result{Kind: a.Kind, Err: ErrGameEnded, Message: "The game has ended."}
		}
	}

	var x, y uint8
	if a.Kind == model.ActionMove {
		x, y, err = board.TapToMove(a.Row, a.Col, o.board.Size())
		if err != nil {
			return o.fail(res, model.TransactionError(string(a.Kind), err))
		}
	}

	pending := model.PendingAction{ID: uuid.New(), Kind: res.Submitted, SubmittedAt: time.Now()}
	o.pending.Store(&pending)
	notify.Info(o.notifier, kindTexts[a.Kind].sending, "Sending transaction...")

	tx, err := submit(ctx, h.Contract, res.Submitted, x, y)
	if err != nil {
		return o.fail(res, model.TransactionError("submit "+string(res.Submitted), err))
	}
	res.TxHash = tx.Hash().Hex()
	sent := pending
	sent.TxHash = res.TxHash
	o.pending.Store(&sent)
	o.logger.Info("transaction sent", "kind", res.Submitted, "tx", res.TxHash)
	notify.Info(o.notifier, "Processing", "Waiting for confirmation...")

	if err := o.wait(ctx, h.Contract, tx); err != nil {
		return o.fail(res, model.TransactionError("confirm "+string(res.Submitted), err))
	}
	res.Confirmed = true
	o.logger.Info("transaction confirmed", "kind", res.Submitted, "tx", res.TxHash)

	snap, err := o.board.Refresh(ctx)
	if err != nil {
		o.logger.Warn("confirmed but failed to refresh board", "kind", res.Submitted, "error", err)
		res.Err = err
		res.Snapshot = snap
		res.Message = "Transaction confirmed, but the board could not be refreshed."
		notify.Error(o.notifier, "Sync Failed", res.Message)
		return res
	}

	t := kindTexts[a.Kind]
	if res.Submitted != a.Kind {
		t = kindTexts[res.Submitted]
	}
	res.OK = true
	res.Snapshot = snap
	res.Message = t.doneMsg
	res.NavigateAway = a.Kind == model.ActionAbandon && res.Submitted == model.ActionAbandon
	notify.Success(o.notifier, t.done, t.doneMsg)
	return res
}

// ended reports whether player's game is over. A snapshot taken for another
// identity is refreshed first; if that fails the game is treated as running
// and the contract has the final say.
func (o *Orchestrator) ended(ctx context.Context, player common.Address) bool {
	snap := o.board.Snapshot()
	if snap.Player == player {
		return snap.Ended
	}
	fresh, err := o.board.Refresh(ctx)
	if err != nil || fresh.Player != player {
		o.logger.Warn("could not load board before action", "player", player, "error", err)
		return false
	}
	return fresh.Ended
}

func submit(ctx context.Context, game client.GameContract, kind model.ActionKind, x, y uint8) (*types.Transaction, error) {
	switch kind {
	case model.ActionMove:
		return game.SetPiece(ctx, x, y)
	case model.ActionPass:
		return game.PassTurn(ctx)
	case model.ActionAbandon:
		return game.AbandonGame(ctx)
	case model.ActionNewGame:
		return game.NewGame(ctx)
	case model.ActionCreateGame:
		return game.CreateGame(ctx)
	}
	return nil, fmt.Errorf("unknown action %q", kind)
}

func (o *Orchestrator) wait(ctx context.Context, game client.GameContract, tx *types.Transaction) error {
	if o.confirmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.confirmTimeout)
		defer cancel()
	}
	_, err := game.WaitConfirmed(ctx, tx)
	return err
}

// fail fills the kind-specific message, appending the revert reason when the
// node reported one.
func (o *Orchestrator) fail(res Result, err error) Result {
	res.OK = false
	res.Err = err
	res.Message = FailureMessage(res.Kind)
	if reason := client.RevertReason(err); reason != "" {
		res.Message += " " + reason
	}
	o.logger.Error("action failed", "kind", res.Kind, "submitted", res.Submitted, "tx", res.TxHash, "error", err)
	notify.Error(o.notifier, kindTexts[res.Kind].failed, res.Message)
	return res
}
