// Package wallet owns the in-memory wallet identity and its persisted record.
package wallet

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/LevanIlashvili/stylish-go-app/evm"
	"github.com/LevanIlashvili/stylish-go-app/internal/keystore"
	"github.com/LevanIlashvili/stylish-go-app/internal/model"
)

// Store is the persistence the manager needs; *keystore.KeyStore implements it.
type Store interface {
	Put(record model.PersistedWalletRecord) error
	Exists() bool
	Get() (*model.PersistedWalletRecord, error)
	Clear() error
}

// Listener is invoked synchronously after every identity change, including
// the initial load. w is nil when there is no wallet. Listeners must not call
// back into mutating Manager methods.
type Listener func(w *model.Wallet)

var (
	// ErrNoWallet is returned by operations that need an active wallet.
	ErrNoWallet = errors.New("no wallet")
	// ErrWalletExists rejects Create and Import while a wallet is active or
	// persisted. The current wallet has to be reset first.
	ErrWalletExists = errors.New("wallet already exists")
)

// Manager is the sole mutator of wallet identity.
type Manager struct {
	store    Store
	logger   *slog.Logger
	generate func() (model.Wallet, error)

	initMu sync.Mutex
	opMu   sync.Mutex // serializes Create/Import/SetActive/Reset

	mu        sync.RWMutex
	loaded    bool
	wallet    *model.Wallet
	key       *ecdsa.PrivateKey
	listeners []Listener
}

// Option configures a Manager.
type Option func(*Manager)

// WithGenerator replaces the fresh-wallet generator.
func WithGenerator(fn func() (model.Wallet, error)) Option {
	return func(m *Manager) { m.generate = fn }
}

// WithListener registers a listener at construction time.
func WithListener(fn Listener) Option {
	return func(m *Manager) { m.listeners = append(m.listeners, fn) }
}

// NewManager creates a manager over store. Call Initialize once at startup.
func NewManager(store Store, logger *slog.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		store:    store,
		logger:   logger.With("component", "wallet"),
		generate: evm.GenerateWallet,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OnWalletChanged registers fn for identity changes.
func (m *Manager) OnWalletChanged(fn Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Initialize loads the persisted wallet. Failures are reported but leave the
// session in the "no wallet" state; WalletLoaded is true when it returns.
// Calling it again after a load is a no-op.
func (m *Manager) Initialize() error {
	m.initMu.Lock()
	defer m.initMu.Unlock()

	if m.Loaded() {
		return nil
	}

	w, key, err := m.load()
	if err != nil {
		m.logger.Warn("failed to load wallet, starting without one", "error", err)
		w, key = nil, nil
	} else if w != nil {
		m.logger.Info("wallet loaded", "address", w.Address)
	} else {
		m.logger.Info("no stored wallet")
	}

	m.mu.Lock()
	m.wallet, m.key = w, key
	m.loaded = true
	m.mu.Unlock()

	m.emit()
	return err
}

func (m *Manager) load() (*model.Wallet, *ecdsa.PrivateKey, error) {
	record, err := m.store.Get()
	if err != nil {
		return nil, nil, err
	}
	if record == nil {
		return nil, nil, nil
	}

	w, err := keystore.DecodeWallet(*record)
	if err != nil {
		return nil, nil, model.StorageError("decode", err)
	}
	key, err := evm.VerifyWallet(w)
	if err != nil {
		return nil, nil, model.StorageError("derive", err)
	}
	return &w, key, nil
}

// Create generates, persists and activates a new wallet.
// It fails with ErrWalletExists unless the session has no wallet. If persistence
// fails the in-memory wallet is left as it was.
func (m *Manager) Create() (model.Wallet, error) {
	w, err := m.generate()
	if err != nil {
		return model.Wallet{}, fmt.Errorf("failed to generate wallet: %w", err)
	}
	if err := m.persistAndActivate(w); err != nil {
		return model.Wallet{}, err
	}
	m.logger.Info("wallet created", "address", w.Address)
	return w, nil
}

// Import restores a wallet from its recovery phrase, persists and activates it.
func (m *Manager) Import(mnemonic string) (model.Wallet, error) {
	w, err := evm.WalletFromMnemonic(mnemonic)
	if err != nil {
		return model.Wallet{}, err
	}
	if err := m.persistAndActivate(w); err != nil {
		return model.Wallet{}, err
	}
	m.logger.Info("wallet imported", "address", w.Address)
	return w, nil
}

func (m *Manager) persistAndActivate(w model.Wallet) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if m.Wallet() != nil || m.store.Exists() {
		return ErrWalletExists
	}

	key, err := evm.VerifyWallet(w)
	if err != nil {
		return err
	}
	record, err := keystore.EncodeWallet(w)
	if err != nil {
		return model.StorageError("encode", err)
	}
	if err := m.store.Put(record); err != nil {
		// nothing was stored before this call, so a half-written record can go
		if clearErr := m.store.Clear(); clearErr != nil {
			m.logger.Warn("failed to roll back partial wallet record", "error", clearErr)
		}
		return err
	}

	m.set(&w, key)
	return nil
}

// SetActive replaces the in-memory wallet. A non-nil wallet has its signing key
// re-derived from PrivateKey (never from the phrase); nil clears key material.
// Nothing is persisted.
func (m *Manager) SetActive(w *model.Wallet) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if w == nil {
		m.set(nil, nil)
		return nil
	}
	key, err := evm.VerifyWallet(*w)
	if err != nil {
		return err
	}
	cp := *w
	m.set(&cp, key)
	return nil
}

// Reset deletes the persisted record and then clears memory.
// If deletion fails the in-memory wallet stays and the error is returned.
func (m *Manager) Reset() error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.logger.Error("failed to reset wallet", "error", err)
		return err
	}
	m.set(nil, nil)
	m.logger.Info("wallet reset")
	return nil
}

func (m *Manager) set(w *model.Wallet, key *ecdsa.PrivateKey) {
	m.mu.Lock()
	m.wallet, m.key = w, key
	m.mu.Unlock()
	m.emit()
}

func (m *Manager) emit() {
	m.mu.RLock()
	listeners := append([]Listener(nil), m.listeners...)
	w := m.walletLocked()
	m.mu.RUnlock()

	for _, fn := range listeners {
		fn(w)
	}
}

func (m *Manager) walletLocked() *model.Wallet {
	if m.wallet == nil {
		return nil
	}
	cp := *m.wallet
	return &cp
}

// Loaded reports whether Initialize has finished.
func (m *Manager) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded
}

// Wallet returns a copy of the active wallet, or nil.
func (m *Manager) Wallet() *model.Wallet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.walletLocked()
}

// State returns the observable session state.
func (m *Manager) State() model.SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return model.SessionState{WalletLoaded: m.loaded, Wallet: m.walletLocked()}
}

// SigningKey returns the key of the active wallet, or nil.
func (m *Manager) SigningKey() *ecdsa.PrivateKey {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.key
}

// HasWallet reports whether a wallet is persisted.
func (m *Manager) HasWallet() bool {
	return m.store.Exists()
}
