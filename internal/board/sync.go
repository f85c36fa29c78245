// Package board mirrors the on-chain board of the active player.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/LevanIlashvili/stylish-go-app/internal/chain"
	"github.com/LevanIlashvili/stylish-go-app/internal/client"
	"github.com/LevanIlashvili/stylish-go-app/internal/model"
)

var errIdentityChanged = errors.New("wallet changed during refresh")

// Handles supplies the signing handle; *chain.Connection implements it.
type Handles interface {
	RequireSigner() (*chain.Handle, error)
}

// Snapshot is one consistent read of the player's game.
type Snapshot struct {
	HasGame   bool
	Board     model.BoardState
	Ended     bool
	Outcome   *model.GameOutcome
	Turn      model.Turn
	Stones    [2]int
	Player    common.Address
	UpdatedAt time.Time
}

// Response converts the snapshot for the HTTP bridge.
func (s Snapshot) Response() model.BoardResponse {
	resp := model.BoardResponse{
		HasGame:   s.HasGame,
		Ended:     s.Ended,
		Outcome:   s.Outcome,
		Turn:      s.Turn,
		Stones:    s.Stones,
		UpdatedAt: s.UpdatedAt,
	}
	if s.Board != nil {
		resp.Board = make([][]int, len(s.Board))
		for y, row := range s.Board {
			resp.Board[y] = make([]int, len(row))
			for x, c := range row {
				resp.Board[y][x] = c.Player()
			}
		}
	}
	return resp
}

// Syncer refreshes snapshots from the contract. Refreshes are serialized and a
// failed refresh never replaces the last good snapshot.
type Syncer struct {
	conn   Handles
	size   int
	logger *slog.Logger

	mu   sync.Mutex
	snap atomic.Pointer[Snapshot]
}

// NewSyncer creates a syncer for a size x size board.
func NewSyncer(conn Handles, size int, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Syncer{
		conn:   conn,
		size:   size,
		logger: logger.With("component", "board"),
	}
	s.snap.Store(&Snapshot{Turn: model.TurnNone})
	return s
}

// Size returns the configured side length.
func (s *Syncer) Size() int {
	return s.size
}

// Snapshot returns a copy of the last published snapshot.
func (s *Syncer) Snapshot() Snapshot {
	snap := *s.snap.Load()
	snap.Board = snap.Board.Clone()
	return snap
}

// Reset publishes an empty snapshot. A refresh already running for the
// previous identity is discarded instead of published.
func (s *Syncer) Reset() {
	s.snap.Store(&Snapshot{Turn: model.TurnNone})
}

// OnWalletChanged is the wallet.Listener that drops the previous player's board.
func (s *Syncer) OnWalletChanged(*model.Wallet) {
	s.Reset()
	s.logger.Debug("board cleared for new identity")
}

// Refresh reads the game from the contract and publishes it.
// On error the previous snapshot is returned alongside a SyncError.
func (s *Syncer) Refresh(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.snap.Load()
	h, err := s.conn.RequireSigner()
	if err != nil {
		return s.Snapshot(), model.SyncError("refresh", err)
	}

	next, err := s.fetch(ctx, h.Contract, h.Player())
	if err != nil {
		s.logger.Warn("failed to refresh board", "error", err)
		return s.Snapshot(), model.SyncError("refresh", err)
	}

	if !s.snap.CompareAndSwap(prev, &next) {
		return s.Snapshot(), model.SyncError("refresh", errIdentityChanged)
	}
	s.logger.Debug("board refreshed", "hasGame", next.HasGame, "ended", next.Ended, "turn", next.Turn)
	return next, nil
}

func (s *Syncer) fetch(ctx context.Context, game client.GameContract, player common.Address) (Snapshot, error) {
	snap := Snapshot{Player: player, Turn: model.TurnNone}

	has, err := game.HasGame(ctx, player)
	if err != nil {
		return Snapshot{}, err
	}
	snap.HasGame = has
	if !has {
		snap.UpdatedAt = time.Now()
		return snap, nil
	}

	grid, err := game.GetBoardAsArray(ctx, player)
	if err != nil {
		return Snapshot{}, err
	}
	snap.Board, err = Decode(grid, s.size)
	if err != nil {
		return Snapshot{}, err
	}
	snap.Stones = countStones(snap.Board)

	snap.Ended, err = game.IsGameEnded(ctx, player)
	if err != nil {
		return Snapshot{}, err
	}
	if snap.Ended {
		result, err := game.GetGameResult(ctx, player)
		if err != nil {
			return Snapshot{}, err
		}
		outcome, err := DecodeOutcome(result)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Outcome = &outcome
	} else {
		snap.Turn = model.Turn(snap.Board.Occupied() % 2)
	}

	snap.UpdatedAt = time.Now()
	return snap, nil
}

// Decode converts the contract grid into a BoardState. The grid must be
// size x size and hold only 0, 1 or 2.
func Decode(grid [][]uint8, size int) (model.BoardState, error) {
	if len(grid) != size {
		return nil, fmt.Errorf("board has %d rows, want %d", len(grid), size)
	}
	out := make(model.BoardState, size)
	for y, row := range grid {
		if len(row) != size {
			return nil, fmt.Errorf("board row %d has %d cells, want %d", y, len(row), size)
		}
		out[y] = make([]model.BoardCell, size)
		for x, v := range row {
			switch v {
			case 0:
				out[y][x] = model.CellEmpty
			case 1:
				out[y][x] = model.CellPlayer0
			case 2:
				out[y][x] = model.CellPlayer1
			default:
				return nil, fmt.Errorf("invalid cell value %d at (%d,%d)", v, y, x)
			}
		}
	}
	return out, nil
}

// DecodeOutcome converts getGameResult output.
func DecodeOutcome(r client.GameResult) (model.GameOutcome, error) {
	if r.Winner > uint8(model.WinnerPlayer1) {
		return model.GameOutcome{}, fmt.Errorf("invalid winner %d", r.Winner)
	}
	return model.GameOutcome{
		Player1Points: r.Player1Points,
		Player2Points: r.Player2Points,
		Winner:        model.Winner(r.Winner),
	}, nil
}

func countStones(b model.BoardState) [2]int {
	var n [2]int
	for _, row := range b {
		for _, c := range row {
			if p := c.Player(); p >= 0 {
				n[p]++
			}
		}
	}
	return n
}

// TapToMove converts a tapped (row, col) into the contract's setPiece(x, y),
// where x is the column and y the row.
func TapToMove(row, col, size int) (x, y uint8, err error) {
	if row < 0 || row >= size || col < 0 || col >= size {
		return 0, 0, fmt.Errorf("position (%d,%d) is off a %dx%d board", row, col, size, size)
	}
	return uint8(col), uint8(row), nil
}
