package leaderboard_test

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LevanIlashvili/stylish-go-app/internal/chain"
	"github.com/LevanIlashvili/stylish-go-app/internal/chain/chaintest"
	"github.com/LevanIlashvili/stylish-go-app/internal/client"
	"github.com/LevanIlashvili/stylish-go-app/internal/client/clienttest"
	"github.com/LevanIlashvili/stylish-go-app/internal/leaderboard"
	"github.com/LevanIlashvili/stylish-go-app/internal/model"
	"github.com/LevanIlashvili/stylish-go-app/internal/notify"
)

const player = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

func TestChainSource(t *testing.T) {
	g := &clienttest.Game{
		Top:       []common.Address{common.HexToAddress(player), common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")},
		TopPoints: []uint32{120, 80},
	}
	provider := &clienttest.Provider{Balance: big.NewInt(1_500_000_000_000_000_000)}
	conn := chain.NewConnection(chaintest.Chain, chaintest.Options(g, provider, notify.Nop{})...)
	require.NoError(t, conn.Rebuild(context.Background(), nil))

	src := leaderboard.NewChainSource(conn, 1, "SPN")
	entries, err := src.GetLeaderboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.LeaderboardEntry{{Address: player, Points: 120, Rank: 1}}, entries)

	balance, err := src.GetBalance(context.Background(), player)
	require.NoError(t, err)
	assert.Equal(t, "1.5", balance.Ether)
	assert.Equal(t, "SPN", balance.Symbol)
}

func TestChainSourceNotConnected(t *testing.T) {
	src := leaderboard.NewChainSource(chain.NewConnection(chaintest.Chain), 10, "SPN")
	_, err := src.GetLeaderboard(context.Background())
	assert.Error(t, err)
	_, err = src.GetBalance(context.Background(), player)
	assert.Error(t, err)
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/leaderboard":
			json.NewEncoder(w).Encode(client.LeaderboardPayload{Players: []model.LeaderboardEntry{{Address: player, Points: 7, Rank: 1}}})
		case "/balance/" + player:
			json.NewEncoder(w).Encode(model.BalanceResponse{Address: player, Wei: "0", Ether: "0", Symbol: "SPN"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := leaderboard.NewHTTPSource(srv.URL)
	entries, err := src.GetLeaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, uint32(7), entries[0].Points)

	balance, err := src.GetBalance(context.Background(), player)
	require.NoError(t, err)
	assert.Equal(t, player, balance.Address)

	_, err = src.GetBalance(context.Background(), "not-an-address")
	assert.Error(t, err)
}

type failing struct{}

func (failing) GetLeaderboard(context.Context) ([]model.LeaderboardEntry, error) {
	return nil, errors.New("down")
}

func (failing) GetBalance(context.Context, string) (*model.BalanceResponse, error) {
	return nil, errors.New("down")
}

func TestFallbackNeverErrors(t *testing.T) {
	f := leaderboard.NewFallback(failing{}, "SPN", nil)

	entries, err := f.GetLeaderboard(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)

	balance, err := f.GetBalance(context.Background(), player)
	require.NoError(t, err)
	assert.Equal(t, &model.BalanceResponse{Address: player, Wei: "0", Ether: "0", Symbol: "SPN"}, balance)
}
