package evm

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/LevanIlashvili/stylish-go-app/internal/model"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/skip2/go-qrcode"
	"github.com/tyler-smith/go-bip39"
)

const (
	entropyBits = 128 // 12 words
	qrSize      = 256
)

// ErrInvalidMnemonic is returned for a phrase that fails the BIP-39 checksum.
var ErrInvalidMnemonic = errors.New("invalid recovery phrase")

// GenerateWallet creates a new wallet from fresh entropy.
func GenerateWallet() (model.Wallet, error) {
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return model.Wallet{}, fmt.Errorf("failed to generate entropy: %w", err)
	}
	defer clear(entropy)

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return model.Wallet{}, fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return WalletFromMnemonic(mnemonic)
}

// WalletFromMnemonic derives the first account (m/44'/60'/0'/0/0) of a recovery phrase.
func WalletFromMnemonic(mnemonic string) (model.Wallet, error) {
	mnemonic = NormalizeMnemonic(mnemonic)
	if !bip39.IsMnemonicValid(mnemonic) {
		return model.Wallet{}, ErrInvalidMnemonic
	}

	key, err := deriveKey(mnemonic, accounts.DefaultBaseDerivationPath)
	if err != nil {
		return model.Wallet{}, err
	}

	return model.Wallet{
		Address:    ethcrypto.PubkeyToAddress(key.PublicKey).Hex(),
		PrivateKey: hexutil.Encode(ethcrypto.FromECDSA(key)),
		Mnemonic:   mnemonic,
	}, nil
}

// NormalizeMnemonic lowercases the phrase and collapses whitespace.
func NormalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
}

func deriveKey(mnemonic string, path accounts.DerivationPath) (*ecdsa.PrivateKey, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("failed to derive seed: %w", err)
	}
	defer clear(seed)

	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}
	for _, n := range path {
		key, err = key.Derive(n)
		if err != nil {
			return nil, fmt.Errorf("failed to derive %s: %w", path, err)
		}
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("failed to extract private key: %w", err)
	}
	raw := priv.Serialize()
	defer clear(raw)

	return ethcrypto.ToECDSA(raw)
}

// KeyFromPrivateHex parses a 0x-prefixed (or bare) hex private key.
func KeyFromPrivateHex(privateKey string) (*ecdsa.PrivateKey, error) {
	key, err := ethcrypto.HexToECDSA(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}

// VerifyWallet re-derives the signing key from the stored private key and
// checks that it reproduces the stored address.
func VerifyWallet(w model.Wallet) (*ecdsa.PrivateKey, error) {
	key, err := KeyFromPrivateHex(w.PrivateKey)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(ethcrypto.PubkeyToAddress(key.PublicKey).Hex(), w.Address) {
		return nil, errors.New("private key does not match address")
	}
	return key, nil
}

// AddressQR renders the address as a PNG QR code.
func AddressQR(address string) ([]byte, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}
	return png, nil
}
