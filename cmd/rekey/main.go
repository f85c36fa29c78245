// Rekey re-encrypts the keystore under a new password.
// Usage: go run ./cmd/rekey
package main

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/LevanIlashvili/stylish-go-app/internal/config"
	"github.com/LevanIlashvili/stylish-go-app/internal/crypto"
	"github.com/LevanIlashvili/stylish-go-app/internal/keystore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Init(); err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	current, err := config.ReadPassword("Current password: ")
	if err != nil {
		return err
	}
	defer clear(current)

	files, err := keystore.NewFileStore(config.GetKeystoreDir(), current, crypto.DefaultParams, logger)
	if err != nil {
		return err
	}
	defer files.Close()

	if !keystore.New(files, logger).Exists() {
		return errors.New("no wallet stored, or the password is wrong")
	}

	next, err := config.ReadPassword("New password: ")
	if err != nil {
		return err
	}
	defer clear(next)
	confirm, err := config.ReadPassword("Repeat new password: ")
	if err != nil {
		return err
	}
	defer clear(confirm)
	if !bytes.Equal(next, confirm) {
		return errors.New("passwords do not match")
	}

	if err := files.Rekey(next, keystore.WalletInfoKey, keystore.WalletExistsKey); err != nil {
		return fmt.Errorf("failed to re-encrypt keystore: %w", err)
	}
	fmt.Fprintln(os.Stderr, "keystore re-encrypted")
	return nil
}
