// Package chain keeps the RPC provider, signer and contract binding in step
// with the active wallet.
package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/LevanIlashvili/stylish-go-app/evm"
	"github.com/LevanIlashvili/stylish-go-app/internal/client"
	"github.com/LevanIlashvili/stylish-go-app/internal/config"
	"github.com/LevanIlashvili/stylish-go-app/internal/model"
	"github.com/LevanIlashvili/stylish-go-app/internal/notify"
)

// ErrSignerRequired is returned when a write or a player-scoped read is
// attempted without an active wallet.
var ErrSignerRequired = errors.New("signer required: no active wallet")

// Provider is a read connection to the chain.
type Provider interface {
	client.Backend
	evm.BalanceReader
	Close()
}

// Dialer opens a Provider for an RPC URL.
type Dialer func(ctx context.Context, rawURL string) (Provider, error)

// Binder binds the game contract to a backend; signer is nil for read-only.
type Binder func(address common.Address, backend client.Backend, signer *bind.TransactOpts) (client.GameContract, error)

// DialEthclient is the default Dialer.
func DialEthclient(ctx context.Context, rawURL string) (Provider, error) {
	cl, err := ethclient.DialContext(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return cl, nil
}

// BindGameClient is the default Binder.
func BindGameClient(address common.Address, backend client.Backend, signer *bind.TransactOpts) (client.GameContract, error) {
	c, err := client.NewGameClient(address, backend, signer)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Handle is one consistent generation of provider, signer and contract.
// Signer is non-nil iff a wallet was active when the handle was built.
type Handle struct {
	ReadProvider Provider
	Signer       *bind.TransactOpts
	Contract     client.GameContract
}

// Player returns the signer's address, or the zero address when read-only.
func (h *Handle) Player() common.Address {
	if h == nil || h.Signer == nil {
		return common.Address{}
	}
	return h.Signer.From
}

// Connection publishes the current Handle. Rebuilds are serialized; readers
// never block and always see a whole generation.
type Connection struct {
	cfg         config.Chain
	dial        Dialer
	bind        Binder
	notifier    notify.Notifier
	logger      *slog.Logger
	dialTimeout time.Duration

	mu     sync.Mutex
	handle atomic.Pointer[Handle]
}

// Option configures a Connection.
type Option func(*Connection)

func WithDialer(d Dialer) Option {
	return func(c *Connection) { c.dial = d }
}

func WithBinder(b Binder) Option {
	return func(c *Connection) { c.bind = b }
}

func WithNotifier(n notify.Notifier) Option {
	return func(c *Connection) { c.notifier = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Connection) { c.logger = l }
}

// NewConnection creates an empty connection. Nothing is dialed until the first
// wallet change.
func NewConnection(cfg config.Chain, opts ...Option) *Connection {
	c := &Connection{
		cfg:         cfg,
		dial:        DialEthclient,
		bind:        BindGameClient,
		notifier:    notify.Nop{},
		logger:      slog.Default(),
		dialTimeout: 15 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "chain")
	return c
}

// OnWalletChanged is the wallet.Listener that rebuilds the handle.
func (c *Connection) OnWalletChanged(w *model.Wallet) {
	ctx, cancel := context.WithTimeout(context.Background(), c.dialTimeout)
	defer cancel()
	_ = c.Rebuild(ctx, w)
}

// Rebuild replaces the handle for wallet w (nil for read-only). On failure the
// handle is cleared, a ConnectionError is returned and the user is notified.
func (c *Connection) Rebuild(ctx context.Context, w *model.Wallet) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.build(ctx, w)
	if err != nil {
		c.logger.Error("failed to initialize chain connection", "error", err)
		c.swap(nil)
		notify.Error(c.notifier, "Initialization Error", "Could not connect to game services.")
		return model.ConnectionError("rebuild", err)
	}

	c.swap(next)
	c.logger.Info("chain connection ready", "rpc", c.cfg.RPCURL, "signer", next.Signer != nil, "player", next.Player().Hex())
	return nil
}

func (c *Connection) swap(next *Handle) {
	old := c.handle.Swap(next)
	if old != nil && old.ReadProvider != nil {
		old.ReadProvider.Close()
	}
}

func (c *Connection) build(ctx context.Context, w *model.Wallet) (*Handle, error) {
	if c.cfg.ChainID <= 0 {
		return nil, fmt.Errorf("invalid chain id %d", c.cfg.ChainID)
	}
	if !common.IsHexAddress(c.cfg.ContractAddress) {
		return nil, fmt.Errorf("invalid contract address %q", c.cfg.ContractAddress)
	}

	var signer *bind.TransactOpts
	if w != nil {
		key, err := evm.KeyFromPrivateHex(w.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load signing key: %w", err)
		}
		signer, err = bind.NewKeyedTransactorWithChainID(key, big.NewInt(c.cfg.ChainID))
		if err != nil {
			return nil, fmt.Errorf("failed to create signer: %w", err)
		}
	}

	provider, err := c.dial(ctx, c.cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", c.cfg.RPCURL, err)
	}

	contract, err := c.bind(common.HexToAddress(c.cfg.ContractAddress), provider, signer)
	if err != nil {
		provider.Close()
		return nil, fmt.Errorf("failed to bind contract: %w", err)
	}

	return &Handle{ReadProvider: provider, Signer: signer, Contract: contract}, nil
}

// Handle returns the current generation. It is never nil; fields are nil when
// no connection could be built.
func (c *Connection) Handle() *Handle {
	if h := c.handle.Load(); h != nil {
		return h
	}
	return &Handle{}
}

// Contract returns the current contract binding, or nil.
func (c *Connection) Contract() client.GameContract {
	return c.Handle().Contract
}

// Signer returns the current signer, or nil.
func (c *Connection) Signer() *bind.TransactOpts {
	return c.Handle().Signer
}

// RequireSigner returns the current handle if it can sign.
func (c *Connection) RequireSigner() (*Handle, error) {
	h := c.Handle()
	if h.Signer == nil || h.Contract == nil {
		return nil, ErrSignerRequired
	}
	return h, nil
}

// Close releases the current provider.
func (c *Connection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.swap(nil)
}
