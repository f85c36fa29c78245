// Package leaderboard provides read-only ranking and balance data for the UI.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/LevanIlashvili/stylish-go-app/evm"
	"github.com/LevanIlashvili/stylish-go-app/internal/chain"
	"github.com/LevanIlashvili/stylish-go-app/internal/client"
	"github.com/LevanIlashvili/stylish-go-app/internal/model"
)

// Source is a leaderboard and balance data source.
type Source interface {
	GetLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error)
	GetBalance(ctx context.Context, address string) (*model.BalanceResponse, error)
}

var errNotConnected = errors.New("not connected")

// Handles supplies the current chain handle; *chain.Connection implements it.
type Handles interface {
	Handle() *chain.Handle
}

// ChainSource reads the ranking from the contract and balances from the node.
type ChainSource struct {
	conn   Handles
	size   uint32
	symbol string
}

func NewChainSource(conn Handles, size uint32, symbol string) *ChainSource {
	return &ChainSource{conn: conn, size: size, symbol: symbol}
}

func (s *ChainSource) GetLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	contract := s.conn.Handle().Contract
	if contract == nil {
		return nil, errNotConnected
	}
	addrs, points, err := contract.GetTopPlayers(ctx, s.size)
	if err != nil {
		return nil, model.ContractQueryError("getTopPlayers", err)
	}
	entries := make([]model.LeaderboardEntry, len(addrs))
	for i, addr := range addrs {
		entries[i] = model.LeaderboardEntry{
			Address: addr.Hex(),
			Points:  points[i],
			Rank:    uint32(i + 1),
		}
	}
	return entries, nil
}

func (s *ChainSource) GetBalance(ctx context.Context, address string) (*model.BalanceResponse, error) {
	provider := s.conn.Handle().ReadProvider
	if provider == nil {
		return nil, errNotConnected
	}
	return evm.GetBalance(ctx, provider, address, s.symbol)
}

// HTTPSource reads from the game's REST API.
type HTTPSource struct {
	api *client.LeaderboardClient
}

func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{api: client.NewLeaderboardClient(baseURL)}
}

func (s *HTTPSource) GetLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	return s.api.GetLeaderboard(ctx)
}

func (s *HTTPSource) GetBalance(ctx context.Context, address string) (*model.BalanceResponse, error) {
	if !evm.IsValidAddress(address) {
		return nil, fmt.Errorf("invalid address %q", address)
	}
	return s.api.GetBalance(ctx, address)
}

// Fallback never fails: errors from the wrapped source are logged and
// replaced by an empty leaderboard or a zero balance.
type Fallback struct {
	src    Source
	symbol string
	logger *slog.Logger
}

func NewFallback(src Source, symbol string, logger *slog.Logger) *Fallback {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fallback{src: src, symbol: symbol, logger: logger.With("component", "leaderboard")}
}

func (f *Fallback) GetLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	entries, err := f.src.GetLeaderboard(ctx)
	if err != nil {
		f.logger.Warn("failed to fetch leaderboard", "error", err)
		return []model.LeaderboardEntry{}, nil
	}
	return entries, nil
}

func (f *Fallback) GetBalance(ctx context.Context, address string) (*model.BalanceResponse, error) {
	balance, err := f.src.GetBalance(ctx, address)
	if err != nil {
		f.logger.Warn("failed to fetch balance", "address", address, "error", err)
		return &model.BalanceResponse{Address: address, Wei: "0", Ether: "0", Symbol: f.symbol}, nil
	}
	return balance, nil
}
