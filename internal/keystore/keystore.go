package keystore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/LevanIlashvili/stylish-go-app/internal/model"
)

// Storage keys. Both are written on Put and removed on Clear.
const (
	WalletInfoKey   = "wallet_info"
	WalletExistsKey = "wallet_exists"
)

var (
	// ErrAddressMismatch is returned when the record's address disagrees with the embedded wallet.
	ErrAddressMismatch = errors.New("record address does not match wallet address")
	// ErrIncompleteWallet is returned when the embedded wallet is missing a field.
	ErrIncompleteWallet = errors.New("wallet record is incomplete")
)

// KeyStore persists the single wallet record on top of a SecureStore.
// There is no cross-key transaction: every read tolerates either key being absent.
type KeyStore struct {
	store  SecureStore
	logger *slog.Logger
}

// New creates a KeyStore over the given secure storage.
func New(store SecureStore, logger *slog.Logger) *KeyStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &KeyStore{store: store, logger: logger.With("component", "keystore")}
}

// Put writes the record and then raises the existence flag.
func (k *KeyStore) Put(record model.PersistedWalletRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return model.StorageError("put", fmt.Errorf("failed to marshal record: %w", err))
	}
	if err := k.store.SetItem(WalletInfoKey, string(data)); err != nil {
		return model.StorageError("put", err)
	}
	if err := k.store.SetItem(WalletExistsKey, "true"); err != nil {
		return model.StorageError("put", err)
	}
	return nil
}

// Exists reports whether a wallet is flagged as stored. Any read error means "no wallet".
func (k *KeyStore) Exists() bool {
	v, ok, err := k.store.GetItem(WalletExistsKey)
	if err != nil {
		k.logger.Warn("failed to read wallet flag", "error", err)
		return false
	}
	return ok && v == "true"
}

// Get returns the stored record, or nil when either key is absent.
func (k *KeyStore) Get() (*model.PersistedWalletRecord, error) {
	if !k.Exists() {
		return nil, nil
	}
	data, ok, err := k.store.GetItem(WalletInfoKey)
	if err != nil {
		return nil, model.StorageError("get", err)
	}
	if !ok || data == "" {
		return nil, nil
	}

	var record model.PersistedWalletRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, model.StorageError("get", fmt.Errorf("failed to unmarshal record: %w", err))
	}
	return &record, nil
}

// Clear removes both keys. Both deletions are attempted even if the first fails.
func (k *KeyStore) Clear() error {
	errInfo := k.store.DeleteItem(WalletInfoKey)
	errFlag := k.store.DeleteItem(WalletExistsKey)
	if err := errors.Join(errInfo, errFlag); err != nil {
		return model.StorageError("clear", err)
	}
	return nil
}

// EncodeWallet builds the persisted form of w.
func EncodeWallet(w model.Wallet) (model.PersistedWalletRecord, error) {
	if err := validate(w); err != nil {
		return model.PersistedWalletRecord{}, err
	}
	data, err := json.Marshal(w)
	if err != nil {
		return model.PersistedWalletRecord{}, fmt.Errorf("failed to marshal wallet: %w", err)
	}
	return model.PersistedWalletRecord{
		Address:         w.Address,
		EncryptedWallet: string(data),
	}, nil
}

// DecodeWallet restores the wallet embedded in a record.
func DecodeWallet(record model.PersistedWalletRecord) (model.Wallet, error) {
	var w model.Wallet
	if err := json.Unmarshal([]byte(record.EncryptedWallet), &w); err != nil {
		return model.Wallet{}, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}
	if err := validate(w); err != nil {
		return model.Wallet{}, err
	}
	if !strings.EqualFold(record.Address, w.Address) {
		return model.Wallet{}, ErrAddressMismatch
	}
	return w, nil
}

func validate(w model.Wallet) error {
	if w.Address == "" || w.PrivateKey == "" || w.Mnemonic == "" {
		return ErrIncompleteWallet
	}
	return nil
}
