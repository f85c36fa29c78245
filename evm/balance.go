package evm

import (
	"context"
	"fmt"
	"math/big"

	"github.com/LevanIlashvili/stylish-go-app/internal/common"
	"github.com/LevanIlashvili/stylish-go-app/internal/model"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// BalanceReader is the subset of an RPC client needed for balances.
type BalanceReader interface {
	BalanceAt(ctx context.Context, account ethcommon.Address, blockNumber *big.Int) (*big.Int, error)
}

// GetBalance gets the native balance of address at the latest block
func GetBalance(ctx context.Context, reader BalanceReader, address, symbol string) (*model.BalanceResponse, error) {
	if !IsValidAddress(address) {
		return nil, fmt.Errorf("invalid address %q", address)
	}

	wei, err := reader.BalanceAt(ctx, ethcommon.HexToAddress(address), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	return &model.BalanceResponse{
		Address: address,
		Wei:     wei.String(),
		Ether:   common.TrimAmount(common.WeiToEther(wei)),
		Symbol:  symbol,
	}, nil
}
