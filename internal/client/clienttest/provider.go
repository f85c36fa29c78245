package clienttest

import (
	"context"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"

	"github.com/LevanIlashvili/stylish-go-app/internal/client"
)

// Provider is a chain provider that never touches the network. Only
// BalanceAt and Close are implemented; the contract calls go through Game.
type Provider struct {
	client.Backend

	Balance    *big.Int
	BalanceErr error

	closed atomic.Int32
}

func (p *Provider) BalanceAt(context.Context, common.Address, *big.Int) (*big.Int, error) {
	if p.BalanceErr != nil {
		return nil, p.BalanceErr
	}
	if p.Balance == nil {
		return new(big.Int), nil
	}
	return new(big.Int).Set(p.Balance), nil
}

func (p *Provider) Close() {
	p.closed.Add(1)
}

// Closed reports how many times Close was called.
func (p *Provider) Closed() int {
	return int(p.closed.Load())
}
