package move_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LevanIlashvili/stylish-go-app/evm"
	"github.com/LevanIlashvili/stylish-go-app/internal/board"
	"github.com/LevanIlashvili/stylish-go-app/internal/chain"
	"github.com/LevanIlashvili/stylish-go-app/internal/chain/chaintest"
	"github.com/LevanIlashvili/stylish-go-app/internal/client"
	"github.com/LevanIlashvili/stylish-go-app/internal/client/clienttest"
	"github.com/LevanIlashvili/stylish-go-app/internal/keystore"
	"github.com/LevanIlashvili/stylish-go-app/internal/model"
	"github.com/LevanIlashvili/stylish-go-app/internal/move"
	"github.com/LevanIlashvili/stylish-go-app/internal/notify"
	"github.com/LevanIlashvili/stylish-go-app/internal/wallet"
)

type fixture struct {
	game *clienttest.Game
	sync *board.Syncer
	feed *notify.Feed
	orch *move.Orchestrator
}

func setup(t *testing.T, game client.GameContract, opts ...move.Option) fixture {
	t.Helper()
	conn, _ := chaintest.Connect(t, game, chaintest.Wallet(t))
	s := board.NewSyncer(conn, 7, nil)
	feed := notify.NewFeed(20)
	o := move.NewOrchestrator(conn, s, append([]move.Option{move.WithNotifier(feed)}, opts...)...)
	fx := fixture{sync: s, feed: feed, orch: o}
	if g, ok := game.(*clienttest.Game); ok {
		fx.game = g
	}
	return fx
}

func newGame() *clienttest.Game {
	g := clienttest.New(7)
	g.OnConfirm = clienttest.PlaceStones
	return g
}

func titles(f *notify.Feed) []string {
	var out []string
	for _, n := range f.Recent() {
		out = append(out, n.Title)
	}
	return out
}

func TestPlaceStone(t *testing.T) {
	fx := setup(t, newGame())

	res := fx.orch.Perform(context.Background(), move.PlaceStone(1, 4))
	require.NoError(t, res.Err)
	assert.True(t, res.OK)
	assert.True(t, res.Confirmed)
	assert.NotEmpty(t, res.TxHash)
	assert.Equal(t, model.ActionMove, res.Submitted)
	assert.False(t, res.NavigateAway)

	assert.Equal(t, model.CellPlayer0, res.Snapshot.Board.At(1, 4))
	assert.Equal(t, model.TurnPlayer1, res.Snapshot.Turn)
	assert.Equal(t, res.Snapshot, fx.sync.Snapshot())
	assert.Equal(t, []string{"Placing Stone", "Processing", "Stone Placed"}, titles(fx.feed))

	assert.False(t, fx.orch.Busy())
	assert.Nil(t, fx.orch.Pending())

	resp := res.Response()
	require.NotNil(t, resp.Board)
	assert.Equal(t, 0, resp.Board.Board[1][4])
}

func TestSubmitFailureLeavesBoardUntouched(t *testing.T) {
	fx := setup(t, newGame())
	fx.game.Board[0][0] = 2
	before, err := fx.sync.Refresh(context.Background())
	require.NoError(t, err)

	fx.game.SetErr("setPiece", errors.New("could not coalesce error"))
	res := fx.orch.Perform(context.Background(), move.PlaceStone(2, 2))

	assert.False(t, res.OK)
	assert.False(t, res.Confirmed)
	assert.Empty(t, res.TxHash)
	assert.Equal(t, "Failed to place stone.", res.Message)
	assert.True(t, model.IsKind(res.Err, model.KindTransaction))
	assert.Equal(t, before, fx.sync.Snapshot())
	assert.False(t, fx.orch.Busy())
	assert.Nil(t, fx.orch.Pending())
	assert.Equal(t, 0, fx.game.Count("waitConfirmed"))

	got := fx.feed.Recent()
	require.NotEmpty(t, got)
	last := got[len(got)-1]
	assert.Equal(t, notify.LevelError, last.Level)
	assert.Equal(t, "Failed to place stone.", last.Text)
}

func TestFailureMessagesPerKind(t *testing.T) {
	tests := []struct {
		action move.Action
		method string
		want   string
	}{
		{move.PlaceStone(0, 0), "setPiece", "Failed to place stone."},
		{move.Pass(), "passTurn", "Failed to pass turn."},
		{move.Abandon(), "abandonGame", "Failed to abandon game."},
		{move.StartNewGame(), "newGame", "Failed to start a new game."},
		{move.CreateGame(), "createGame", "Failed to create game."},
	}
	for _, tt := range tests {
		t.Run(string(tt.action.Kind), func(t *testing.T) {
			fx := setup(t, newGame())
			fx.game.SetErr(tt.method, errors.New("boom"))

			res := fx.orch.Perform(context.Background(), tt.action)
			assert.False(t, res.OK)
			assert.Equal(t, tt.want, res.Message)
			assert.Equal(t, tt.want, move.FailureMessage(tt.action.Kind))
		})
	}
}

func TestRevertReasonIsAppended(t *testing.T) {
	fx := setup(t, newGame())
	fx.game.SetErr("setPiece", errors.New("execution reverted: Cell occupied"))

	res := fx.orch.Perform(context.Background(), move.PlaceStone(3, 3))
	assert.Equal(t, "Failed to place stone. Cell occupied", res.Message)
}

func TestConcurrentActionIsRejected(t *testing.T) {
	game := newGame()
	gate := make(chan struct{})
	game.Gate = gate
	fx := setup(t, game)

	done := make(chan move.Result, 1)
	go func() {
		done <- fx.orch.Perform(context.Background(), move.PlaceStone(0, 0))
	}()

	require.Eventually(t, func() bool {
		p := fx.orch.Pending()
		return p != nil && p.TxHash != ""
	}, time.Second, time.Millisecond)
	assert.True(t, fx.orch.Busy())
	assert.Equal(t, model.ActionMove, fx.orch.Pending().Kind)

	res := fx.orch.Perform(context.Background(), move.Pass())
	assert.ErrorIs(t, res.Err, move.ErrActionPending)
	assert.False(t, res.OK)
	assert.Equal(t, 0, game.Count("passTurn"))

	close(gate)
	first := <-done
	assert.True(t, first.OK)
	assert.False(t, fx.orch.Busy())

	res = fx.orch.Perform(context.Background(), move.Pass())
	assert.True(t, res.OK)
	assert.Equal(t, 1, game.Count("passTurn"))
}

func TestAbandonEndedGameStartsNewGame(t *testing.T) {
	game := newGame()
	game.Board[3][3] = 1
	game.Ended = true
	game.Result = client.GameResult{Player1Points: 40, Player2Points: 35, Winner: 2}
	fx := setup(t, game)

	snap, err := fx.sync.Refresh(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap.Outcome)
	assert.Equal(t, model.WinnerPlayer1, snap.Outcome.Winner)

	res := fx.orch.Perform(context.Background(), move.Abandon())
	require.True(t, res.OK, res.Message)
	assert.Equal(t, model.ActionAbandon, res.Kind)
	assert.Equal(t, model.ActionNewGame, res.Submitted)
	assert.False(t, res.NavigateAway)
	assert.Equal(t, 0, game.Count("abandonGame"))
	assert.Equal(t, 1, game.Count("newGame"))
	assert.False(t, res.Snapshot.Ended)
	assert.Equal(t, 0, res.Snapshot.Board.Occupied())
}

func TestEndedGameRejectsMoveAndPass(t *testing.T) {
	game := newGame()
	game.Ended = true
	fx := setup(t, game)
	_, err := fx.sync.Refresh(context.Background())
	require.NoError(t, err)

	for _, a := range []move.Action{move.PlaceStone(0, 0), move.Pass()} {
		res := fx.orch.Perform(context.Background(), a)
		assert.ErrorIs(t, res.Err, move.ErrGameEnded)
	}
	assert.Equal(t, 0, game.Count("setPiece"))
	assert.Equal(t, 0, game.Count("passTurn"))
	assert.False(t, fx.orch.Busy())
}

func TestAbandonNavigatesAway(t *testing.T) {
	fx := setup(t, newGame())

	res := fx.orch.Perform(context.Background(), move.Abandon())
	require.True(t, res.OK)
	assert.True(t, res.NavigateAway)
	assert.Equal(t, model.ActionAbandon, res.Submitted)
	assert.False(t, res.Snapshot.HasGame)
}

func TestConfirmationFailure(t *testing.T) {
	fx := setup(t, newGame())
	before, err := fx.sync.Refresh(context.Background())
	require.NoError(t, err)
	fx.game.SetErr("waitConfirmed", client.ErrReverted)

	res := fx.orch.Perform(context.Background(), move.Pass())
	assert.False(t, res.OK)
	assert.False(t, res.Confirmed)
	assert.NotEmpty(t, res.TxHash)
	assert.ErrorIs(t, res.Err, client.ErrReverted)
	assert.Equal(t, "Failed to pass turn.", res.Message)
	assert.Equal(t, before, fx.sync.Snapshot())
}

func TestConfirmTimeout(t *testing.T) {
	game := newGame()
	game.Gate = make(chan struct{})
	fx := setup(t, game, move.WithConfirmTimeout(20*time.Millisecond))

	res := fx.orch.Perform(context.Background(), move.PlaceStone(0, 0))
	assert.False(t, res.OK)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
	assert.False(t, fx.orch.Busy())
}

func TestRefreshFailureAfterConfirmation(t *testing.T) {
	game := newGame()
	game.OnConfirm = func(g *clienttest.Game, method string, args []uint8) {
		clienttest.PlaceStones(g, method, args)
		g.Errs = map[string]error{"hasGame": errors.New("rpc down")}
	}
	fx := setup(t, game)

	res := fx.orch.Perform(context.Background(), move.PlaceStone(0, 0))
	assert.False(t, res.OK)
	assert.True(t, res.Confirmed)
	assert.True(t, model.IsKind(res.Err, model.KindSync))
	assert.False(t, fx.orch.Busy())
}

func TestRequiresSigner(t *testing.T) {
	conn, _ := chaintest.Connect(t, newGame(), nil)
	s := board.NewSyncer(conn, 7, nil)
	feed := notify.NewFeed(5)
	o := move.NewOrchestrator(conn, s, move.WithNotifier(feed))

	res := o.Perform(context.Background(), move.Pass())
	assert.ErrorIs(t, res.Err, chain.ErrSignerRequired)
	assert.Equal(t, "Failed to pass turn.", res.Message)
	assert.Equal(t, []string{"Action Failed"}, titles(feed))
	assert.False(t, o.Busy())
}

func TestOffBoardMoveIsNotSubmitted(t *testing.T) {
	fx := setup(t, newGame())

	res := fx.orch.Perform(context.Background(), move.PlaceStone(7, 2))
	assert.False(t, res.OK)
	assert.Equal(t, "Failed to place stone.", res.Message)
	assert.Equal(t, 0, fx.game.Count("setPiece"))
}

type panicky struct {
	*clienttest.Game
}

func (panicky) SetPiece(context.Context, uint8, uint8) (*types.Transaction, error) {
	panic("nil pointer somewhere")
}

func TestPanicClearsPending(t *testing.T) {
	fx := setup(t, panicky{newGame()})

	var res move.Result
	require.NotPanics(t, func() {
		res = fx.orch.Perform(context.Background(), move.PlaceStone(0, 0))
	})
	assert.False(t, res.OK)
	assert.Equal(t, "Failed to place stone.", res.Message)
	assert.False(t, fx.orch.Busy())
	assert.Nil(t, fx.orch.Pending())
}

// perPlayer serves first to the chaintest wallet and rest to any other identity.
func perPlayer(t *testing.T, first, rest *clienttest.Game) *chain.Connection {
	t.Helper()
	owner := common.HexToAddress(chaintest.Wallet(t).Address)
	opts := append(chaintest.Options(nil, &clienttest.Provider{}, notify.Nop{}),
		chain.WithBinder(func(_ common.Address, _ client.Backend, signer *bind.TransactOpts) (client.GameContract, error) {
			if signer != nil && signer.From == owner {
				return first, nil
			}
			return rest, nil
		}),
	)
	return chain.NewConnection(chaintest.Chain, opts...)
}

func TestNewWalletDoesNotInheritEndedGame(t *testing.T) {
	ended := newGame()
	ended.Ended = true
	active := newGame()
	conn := perPlayer(t, ended, active)
	s := board.NewSyncer(conn, 7, nil)
	o := move.NewOrchestrator(conn, s)

	m := wallet.NewManager(keystore.New(keystore.NewMemoryStore(), nil), nil,
		wallet.WithListener(conn.OnWalletChanged),
		wallet.WithListener(s.OnWalletChanged),
	)
	require.NoError(t, m.Initialize())
	_, err := m.Import(chaintest.Mnemonic)
	require.NoError(t, err)
	snap, err := s.Refresh(context.Background())
	require.NoError(t, err)
	require.True(t, snap.Ended)

	require.NoError(t, m.Reset())
	assert.False(t, s.Snapshot().Ended)
	_, err = m.Create()
	require.NoError(t, err)

	res := o.Perform(context.Background(), move.PlaceStone(0, 0))
	require.True(t, res.OK, res.Message)
	assert.Equal(t, 1, active.Count("setPiece"))

	res = o.Perform(context.Background(), move.Abandon())
	require.True(t, res.OK, res.Message)
	assert.Equal(t, model.ActionAbandon, res.Submitted)
	assert.True(t, res.NavigateAway)
	assert.Equal(t, 1, active.Count("abandonGame"))
	assert.Equal(t, 0, active.Count("newGame"))
	assert.Equal(t, 0, ended.Count("newGame"))
}

func TestStaleSnapshotIsReloadedBeforeAction(t *testing.T) {
	ended := newGame()
	ended.Ended = true
	active := newGame()
	conn := perPlayer(t, ended, active)
	s := board.NewSyncer(conn, 7, nil)
	o := move.NewOrchestrator(conn, s)

	require.NoError(t, conn.Rebuild(context.Background(), chaintest.Wallet(t)))
	_, err := s.Refresh(context.Background())
	require.NoError(t, err)
	require.True(t, s.Snapshot().Ended)

	other, err := evm.GenerateWallet()
	require.NoError(t, err)
	require.NoError(t, conn.Rebuild(context.Background(), &other))

	res := o.Perform(context.Background(), move.Abandon())
	require.True(t, res.OK, res.Message)
	assert.Equal(t, model.ActionAbandon, res.Submitted)
	assert.True(t, res.NavigateAway)
	assert.Equal(t, 1, active.Count("abandonGame"))
	assert.Equal(t, common.HexToAddress(other.Address), s.Snapshot().Player)
}
