// Package clienttest provides an in-memory game contract for tests.
package clienttest

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/LevanIlashvili/stylish-go-app/internal/client"
)

// Game is a scriptable client.GameContract. The zero value has no game.
// Errors keyed by ABI method name are returned from the matching call;
// "waitConfirmed" fails the confirmation wait.
type Game struct {
	mu sync.Mutex

	Has       bool
	Board     [][]uint8
	Ended     bool
	Result    client.GameResult
	Points    map[common.Address]uint32
	Top       []common.Address
	TopPoints []uint32
	Rank      uint32
	Total     uint32

	Errs map[string]error

	// Gate, when set, blocks WaitConfirmed until it is closed or ctx ends.
	Gate chan struct{}
	// OnConfirm runs under the lock when a transaction for method is confirmed.
	OnConfirm func(g *Game, method string, args []uint8)

	calls   []string
	nonce   uint64
	pending map[common.Hash]submitted
}

type submitted struct {
	method string
	args   []uint8
}

var _ client.GameContract = (*Game)(nil)

// New returns a game in progress on an empty size x size board.
func New(size int) *Game {
	board := make([][]uint8, size)
	for i := range board {
		board[i] = make([]uint8, size)
	}
	return &Game{Has: true, Board: board}
}

// SetErr makes method fail with err; nil clears it.
func (g *Game) SetErr(method string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Errs == nil {
		g.Errs = map[string]error{}
	}
	if err == nil {
		delete(g.Errs, method)
		return
	}
	g.Errs[method] = err
}

// Update runs fn under the lock.
func (g *Game) Update(fn func(g *Game)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g)
}

// Calls returns the method names invoked so far.
func (g *Game) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

// Count returns how many times method was invoked.
func (g *Game) Count(method string) int {
	n := 0
	for _, c := range g.Calls() {
		if c == method {
			n++
		}
	}
	return n
}

func (g *Game) record(method string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, method)
	return g.Errs[method]
}

func (g *Game) HasGame(context.Context, common.Address) (bool, error) {
	if err := g.record("hasGame"); err != nil {
		return false, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Has, nil
}

func (g *Game) GetBoardAsArray(context.Context, common.Address) ([][]uint8, error) {
	if err := g.record("getBoardAsArray"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([][]uint8, len(g.Board))
	for i, row := range g.Board {
		out[i] = append([]uint8(nil), row...)
	}
	return out, nil
}

func (g *Game) IsGameEnded(context.Context, common.Address) (bool, error) {
	if err := g.record("isGameEnded"); err != nil {
		return false, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Ended, nil
}

func (g *Game) GetGameResult(context.Context, common.Address) (client.GameResult, error) {
	if err := g.record("getGameResult"); err != nil {
		return client.GameResult{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Result, nil
}

func (g *Game) GetPlayerPoints(_ context.Context, player common.Address) (uint32, error) {
	if err := g.record("getPlayerPoints"); err != nil {
		return 0, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Points[player], nil
}

func (g *Game) GetTotalPlayers(context.Context) (uint32, error) {
	if err := g.record("getTotalPlayers"); err != nil {
		return 0, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Total, nil
}

func (g *Game) GetTopPlayers(_ context.Context, n uint32) ([]common.Address, []uint32, error) {
	if err := g.record("getTopPlayers"); err != nil {
		return nil, nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	k := len(g.Top)
	if int(n) < k {
		k = int(n)
	}
	return append([]common.Address(nil), g.Top[:k]...), append([]uint32(nil), g.TopPoints[:k]...), nil
}

func (g *Game) GetPlayerRank(context.Context, common.Address) (uint32, error) {
	if err := g.record("getPlayerRank"); err != nil {
		return 0, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Rank, nil
}

func (g *Game) CreateGame(context.Context) (*types.Transaction, error) {
	return g.submit("createGame")
}

func (g *Game) SetPiece(_ context.Context, x, y uint8) (*types.Transaction, error) {
	return g.submit("setPiece", x, y)
}

func (g *Game) PassTurn(context.Context) (*types.Transaction, error) {
	return g.submit("passTurn")
}

func (g *Game) AbandonGame(context.Context) (*types.Transaction, error) {
	return g.submit("abandonGame")
}

func (g *Game) NewGame(context.Context) (*types.Transaction, error) {
	return g.submit("newGame")
}

func (g *Game) submit(method string, args ...uint8) (*types.Transaction, error) {
	if err := g.record(method); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	tx := types.NewTx(&types.LegacyTx{Nonce: g.nonce, Data: []byte(method)})
	g.nonce++
	if g.pending == nil {
		g.pending = map[common.Hash]submitted{}
	}
	g.pending[tx.Hash()] = submitted{method: method, args: args}
	return tx, nil
}

func (g *Game) WaitConfirmed(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	g.mu.Lock()
	gate := g.Gate
	g.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := g.record("waitConfirmed"); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	sub, ok := g.pending[tx.Hash()]
	delete(g.pending, tx.Hash())
	if ok && g.OnConfirm != nil {
		g.OnConfirm(g, sub.method, sub.args)
	}
	return &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: tx.Hash()}, nil
}

// PlaceStones is an OnConfirm that applies setPiece alternately for both
// players and marks createGame/newGame as a fresh board.
func PlaceStones(g *Game, method string, args []uint8) {
	switch method {
	case "setPiece":
		stones := 0
		for _, row := range g.Board {
			for _, c := range row {
				if c != 0 {
					stones++
				}
			}
		}
		g.Board[args[1]][args[0]] = uint8(stones%2) + 1
	case "createGame", "newGame":
		for _, row := range g.Board {
			clear(row)
		}
		g.Has, g.Ended = true, false
	case "abandonGame":
		g.Has = false
	}
}
