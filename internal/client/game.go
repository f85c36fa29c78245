package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	// ErrReadOnly is returned by write calls on a contract bound without a signer.
	ErrReadOnly = errors.New("contract is bound read-only: signer required")
	// ErrReverted is returned when a mined transaction has a failed status.
	ErrReverted = errors.New("transaction reverted")
)

// GameResult is the raw return of getGameResult.
type GameResult struct {
	Player1Points uint32
	Player2Points uint32
	Winner        uint8
}

// GameContract is the typed surface of the game contract consumed by the core.
type GameContract interface {
	HasGame(ctx context.Context, player common.Address) (bool, error)
	GetBoardAsArray(ctx context.Context, player common.Address) ([][]uint8, error)
	IsGameEnded(ctx context.Context, player common.Address) (bool, error)
	GetGameResult(ctx context.Context, player common.Address) (GameResult, error)
	GetPlayerPoints(ctx context.Context, player common.Address) (uint32, error)
	GetTotalPlayers(ctx context.Context) (uint32, error)
	GetTopPlayers(ctx context.Context, n uint32) ([]common.Address, []uint32, error)
	GetPlayerRank(ctx context.Context, player common.Address) (uint32, error)

	CreateGame(ctx context.Context) (*types.Transaction, error)
	SetPiece(ctx context.Context, x, y uint8) (*types.Transaction, error)
	PassTurn(ctx context.Context) (*types.Transaction, error)
	AbandonGame(ctx context.Context) (*types.Transaction, error)
	NewGame(ctx context.Context) (*types.Transaction, error)

	// WaitConfirmed blocks until tx is mined and fails if it reverted.
	WaitConfirmed(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

// Backend is what a bound game contract needs from an RPC connection.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// GameClient is a client for the game contract over a JSON-RPC backend
type GameClient struct {
	backend  Backend
	contract *bind.BoundContract
	signer   *bind.TransactOpts // nil when read-only
}

var _ GameContract = (*GameClient)(nil)

var parsedGameABI = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(GameABI))
	if err != nil {
		panic(fmt.Sprintf("invalid game ABI: %v", err))
	}
	return parsed
}()

// NewGameClient binds the contract at address. signer may be nil for a read-only handle.
func NewGameClient(address common.Address, backend Backend, signer *bind.TransactOpts) (*GameClient, error) {
	if backend == nil {
		return nil, errors.New("backend is required")
	}
	if address == (common.Address{}) {
		return nil, errors.New("contract address is empty")
	}
	return &GameClient{
		backend:  backend,
		contract: bind.NewBoundContract(address, parsedGameABI, backend, backend, backend),
		signer:   signer,
	}, nil
}

func (c *GameClient) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	opts := &bind.CallOpts{Context: ctx}
	if c.signer != nil {
		opts.From = c.signer.From
	}
	var out []interface{}
	if err := c.contract.Call(opts, &out, method, args...); err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}
	return out, nil
}

func (c *GameClient) transact(ctx context.Context, method string, args ...interface{}) (*types.Transaction, error) {
	if c.signer == nil {
		return nil, ErrReadOnly
	}
	opts := *c.signer
	opts.Context = ctx
	tx, err := c.contract.Transact(&opts, method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", method, err)
	}
	return tx, nil
}

func (c *GameClient) HasGame(ctx context.Context, player common.Address) (bool, error) {
	out, err := c.call(ctx, "hasGame", player)
	if err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (c *GameClient) GetBoardAsArray(ctx context.Context, player common.Address) ([][]uint8, error) {
	out, err := c.call(ctx, "getBoardAsArray", player)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([][]uint8)).(*[][]uint8), nil
}

func (c *GameClient) IsGameEnded(ctx context.Context, player common.Address) (bool, error) {
	out, err := c.call(ctx, "isGameEnded", player)
	if err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (c *GameClient) GetGameResult(ctx context.Context, player common.Address) (GameResult, error) {
	out, err := c.call(ctx, "getGameResult", player)
	if err != nil {
		return GameResult{}, err
	}
	return GameResult{
		Player1Points: *abi.ConvertType(out[0], new(uint32)).(*uint32),
		Player2Points: *abi.ConvertType(out[1], new(uint32)).(*uint32),
		Winner:        *abi.ConvertType(out[2], new(uint8)).(*uint8),
	}, nil
}

func (c *GameClient) GetPlayerPoints(ctx context.Context, player common.Address) (uint32, error) {
	out, err := c.call(ctx, "getPlayerPoints", player)
	if err != nil {
		return 0, err
	}
	return *abi.ConvertType(out[0], new(uint32)).(*uint32), nil
}

func (c *GameClient) GetTotalPlayers(ctx context.Context) (uint32, error) {
	out, err := c.call(ctx, "getTotalPlayers")
	if err != nil {
		return 0, err
	}
	return *abi.ConvertType(out[0], new(uint32)).(*uint32), nil
}

func (c *GameClient) GetTopPlayers(ctx context.Context, n uint32) ([]common.Address, []uint32, error) {
	out, err := c.call(ctx, "getTopPlayers", n)
	if err != nil {
		return nil, nil, err
	}
	addrs := *abi.ConvertType(out[0], new([]common.Address)).(*[]common.Address)
	points := *abi.ConvertType(out[1], new([]uint32)).(*[]uint32)
	if len(addrs) != len(points) {
		return nil, nil, fmt.Errorf("getTopPlayers returned %d addresses and %d scores", len(addrs), len(points))
	}
	return addrs, points, nil
}

func (c *GameClient) GetPlayerRank(ctx context.Context, player common.Address) (uint32, error) {
	out, err := c.call(ctx, "getPlayerRank", player)
	if err != nil {
		return 0, err
	}
	return *abi.ConvertType(out[0], new(uint32)).(*uint32), nil
}

func (c *GameClient) CreateGame(ctx context.Context) (*types.Transaction, error) {
	return c.transact(ctx, "createGame")
}

// SetPiece places a stone at column x, row y.
func (c *GameClient) SetPiece(ctx context.Context, x, y uint8) (*types.Transaction, error) {
	return c.transact(ctx, "setPiece", x, y)
}

func (c *GameClient) PassTurn(ctx context.Context) (*types.Transaction, error) {
	return c.transact(ctx, "passTurn")
}

func (c *GameClient) AbandonGame(ctx context.Context) (*types.Transaction, error) {
	return c.transact(ctx, "abandonGame")
}

func (c *GameClient) NewGame(ctx context.Context) (*types.Transaction, error) {
	return c.transact(ctx, "newGame")
}

func (c *GameClient) WaitConfirmed(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%s: %w", tx.Hash().Hex(), ErrReverted)
	}
	return receipt, nil
}

// RevertReason extracts the contract's revert message from an RPC error, if any.
func RevertReason(err error) string {
	if err == nil {
		return ""
	}
	const marker = "execution reverted"
	msg := err.Error()
	i := strings.Index(msg, marker)
	if i < 0 {
		return ""
	}
	reason := strings.TrimPrefix(msg[i+len(marker):], ":")
	return strings.TrimSpace(reason)
}
