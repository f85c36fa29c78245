package board_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LevanIlashvili/stylish-go-app/internal/board"
	"github.com/LevanIlashvili/stylish-go-app/internal/chain"
	"github.com/LevanIlashvili/stylish-go-app/internal/chain/chaintest"
	"github.com/LevanIlashvili/stylish-go-app/internal/client"
	"github.com/LevanIlashvili/stylish-go-app/internal/client/clienttest"
	"github.com/LevanIlashvili/stylish-go-app/internal/model"
)

func newSyncer(t *testing.T, game *clienttest.Game) *board.Syncer {
	t.Helper()
	conn, _ := chaintest.Connect(t, game, chaintest.Wallet(t))
	return board.NewSyncer(conn, 7, nil)
}

func TestDecodeSingleStone(t *testing.T) {
	grid := make([][]uint8, 7)
	for i := range grid {
		grid[i] = make([]uint8, 7)
	}
	grid[1][1] = 1

	b, err := board.Decode(grid, 7)
	require.NoError(t, err)
	for y := 0; y < 7; y++ {
		for x := 0; x < 7; x++ {
			if y == 1 && x == 1 {
				assert.Equal(t, model.CellPlayer0, b.At(y, x))
				continue
			}
			assert.Equal(t, model.CellEmpty, b.At(y, x), "cell (%d,%d)", y, x)
		}
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		grid [][]uint8
	}{
		{name: "too few rows", grid: [][]uint8{{0, 0}, {0, 0}}},
		{name: "ragged", grid: [][]uint8{{0, 0, 0}, {0, 0}, {0, 0, 0}}},
		{name: "unknown value", grid: [][]uint8{{0, 0, 0}, {0, 3, 0}, {0, 0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := board.Decode(tt.grid, 3)
			assert.Error(t, err)
		})
	}
}

func TestRefreshNoGame(t *testing.T) {
	game := &clienttest.Game{}
	s := newSyncer(t, game)

	snap, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, snap.HasGame)
	assert.Nil(t, snap.Board)
	assert.Equal(t, model.TurnNone, snap.Turn)
	assert.Equal(t, common.HexToAddress(chaintest.Wallet(t).Address), snap.Player)
	assert.Equal(t, []string{"hasGame"}, game.Calls())
}

func TestRefreshInProgress(t *testing.T) {
	game := clienttest.New(7)
	game.Board[1][1] = 1
	game.Board[3][4] = 2
	game.Board[0][6] = 1
	s := newSyncer(t, game)

	snap, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.HasGame)
	assert.False(t, snap.Ended)
	assert.Nil(t, snap.Outcome)
	assert.Equal(t, model.TurnPlayer1, snap.Turn)
	assert.Equal(t, [2]int{2, 1}, snap.Stones)
	assert.Equal(t, model.CellPlayer1, snap.Board.At(3, 4))
	assert.Equal(t, 0, game.Count("getGameResult"))
	assert.Equal(t, snap, s.Snapshot())

	resp := snap.Response()
	assert.Equal(t, 0, resp.Board[1][1])
	assert.Equal(t, 1, resp.Board[3][4])
	assert.Equal(t, -1, resp.Board[0][0])
}

func TestRefreshEndedGame(t *testing.T) {
	game := clienttest.New(7)
	game.Ended = true
	game.Result = client.GameResult{Player1Points: 40, Player2Points: 35, Winner: 2}
	s := newSyncer(t, game)

	snap, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.Ended)
	require.NotNil(t, snap.Outcome)
	assert.Equal(t, model.GameOutcome{Player1Points: 40, Player2Points: 35, Winner: model.WinnerPlayer1}, *snap.Outcome)
	assert.Equal(t, model.TurnNone, snap.Turn)
}

func TestRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	methods := []string{"hasGame", "getBoardAsArray", "isGameEnded", "getGameResult"}
	for _, method := range methods {
		t.Run(method, func(t *testing.T) {
			game := clienttest.New(7)
			game.Board[2][2] = 1
			s := newSyncer(t, game)

			before, err := s.Refresh(context.Background())
			require.NoError(t, err)

			game.Update(func(g *clienttest.Game) {
				g.Board[2][3] = 2
				g.Ended = true
			})
			game.SetErr(method, errors.New("rpc down"))

			_, err = s.Refresh(context.Background())
			require.Error(t, err)
			assert.True(t, model.IsKind(err, model.KindSync))
			assert.Equal(t, before, s.Snapshot())
		})
	}
}

func TestRefreshDecodeFailure(t *testing.T) {
	game := clienttest.New(5)
	s := newSyncer(t, game)

	_, err := s.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.KindSync))
	assert.False(t, s.Snapshot().HasGame)
}

func TestRefreshWithoutSigner(t *testing.T) {
	conn, _ := chaintest.Connect(t, clienttest.New(7), nil)
	s := board.NewSyncer(conn, 7, nil)

	_, err := s.Refresh(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, chain.ErrSignerRequired)
}

func TestConcurrentRefresh(t *testing.T) {
	game := clienttest.New(7)
	s := newSyncer(t, game)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Refresh(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, game.Count("hasGame"))
	assert.True(t, s.Snapshot().HasGame)
}

func TestTapToMove(t *testing.T) {
	x, y, err := board.TapToMove(1, 4, 7)
	require.NoError(t, err)
	assert.Equal(t, uint8(4), x)
	assert.Equal(t, uint8(1), y)

	_, _, err = board.TapToMove(7, 0, 7)
	assert.Error(t, err)
	_, _, err = board.TapToMove(0, -1, 7)
	assert.Error(t, err)
}

func TestWalletChangeClearsSnapshot(t *testing.T) {
	game := clienttest.New(7)
	game.Board[2][2] = 1
	game.Ended = true
	s := newSyncer(t, game)

	snap, err := s.Refresh(context.Background())
	require.NoError(t, err)
	require.True(t, snap.Ended)

	s.OnWalletChanged(nil)

	got := s.Snapshot()
	assert.Equal(t, board.Snapshot{Turn: model.TurnNone}, got)
	assert.False(t, got.Ended)
	assert.Equal(t, common.Address{}, got.Player)
}

type resetDuringRead struct {
	*clienttest.Game
	s *board.Syncer
}

func (r *resetDuringRead) HasGame(ctx context.Context, player common.Address) (bool, error) {
	r.s.Reset()
	return r.Game.HasGame(ctx, player)
}

func TestRefreshAcrossWalletChangeIsDiscarded(t *testing.T) {
	game := clienttest.New(7)
	game.Ended = true
	wrapped := &resetDuringRead{Game: game}
	conn, _ := chaintest.Connect(t, wrapped, chaintest.Wallet(t))
	s := board.NewSyncer(conn, 7, nil)
	wrapped.s = s

	snap, err := s.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.KindSync))
	assert.False(t, snap.Ended)
	assert.Equal(t, board.Snapshot{Turn: model.TurnNone}, s.Snapshot())
}
