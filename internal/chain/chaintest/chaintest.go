// Package chaintest wires a chain.Connection to in-memory fakes.
package chaintest

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/LevanIlashvili/stylish-go-app/evm"
	"github.com/LevanIlashvili/stylish-go-app/internal/chain"
	"github.com/LevanIlashvili/stylish-go-app/internal/client"
	"github.com/LevanIlashvili/stylish-go-app/internal/client/clienttest"
	"github.com/LevanIlashvili/stylish-go-app/internal/config"
	"github.com/LevanIlashvili/stylish-go-app/internal/model"
	"github.com/LevanIlashvili/stylish-go-app/internal/notify"
)

// Mnemonic is the well-known development phrase.
const Mnemonic = "test test test test test test test test test test test junk"

// Chain is a valid network configuration that is never dialed.
var Chain = config.Chain{
	RPCURL:          "http://127.0.0.1:8545",
	ChainID:         98985,
	ContractAddress: "0x7d3ed693f76e1495d4206a1e6ef303891c7d652d",
	CurrencySymbol:  "SPN",
	Name:            "Test",
}

// Wallet returns the wallet derived from Mnemonic.
func Wallet(t testing.TB) *model.Wallet {
	t.Helper()
	w, err := evm.WalletFromMnemonic(Mnemonic)
	require.NoError(t, err)
	return &w
}

// Options returns connection options that serve game over provider.
func Options(game client.GameContract, provider *clienttest.Provider, n notify.Notifier) []chain.Option {
	return []chain.Option{
		chain.WithDialer(func(context.Context, string) (chain.Provider, error) {
			return provider, nil
		}),
		chain.WithBinder(func(common.Address, client.Backend, *bind.TransactOpts) (client.GameContract, error) {
			return game, nil
		}),
		chain.WithNotifier(n),
	}
}

// Connect returns a connection for w (nil for read-only) backed by game.
func Connect(t testing.TB, game client.GameContract, w *model.Wallet) (*chain.Connection, *clienttest.Provider) {
	t.Helper()
	provider := &clienttest.Provider{}
	conn := chain.NewConnection(Chain, Options(game, provider, notify.Nop{})...)
	require.NoError(t, conn.Rebuild(context.Background(), w))
	return conn, provider
}
