package model

// Wallet is the player's self-custodied account.
// Address and PrivateKey are always derivable from Mnemonic.
type Wallet struct {
	Address    string `json:"address"`
	PrivateKey string `json:"privateKey"` // 0x-prefixed hex, 32 bytes
	Mnemonic   string `json:"mnemonic"`
}

// PersistedWalletRecord represents the wallet_info storage entry.
// EncryptedWallet holds the JSON-serialized Wallet.
type PersistedWalletRecord struct {
	Address         string `json:"address"`
	EncryptedWallet string `json:"encryptedWallet"`
}

// SessionState is what the UI may observe about the wallet.
// Wallet must not be read before WalletLoaded is true.
type SessionState struct {
	WalletLoaded bool    `json:"walletLoaded"`
	Wallet       *Wallet `json:"-"`
}

// WalletResponse represents response for GET /wallet and wallet mutations.
// It never carries key material.
type WalletResponse struct {
	Loaded  bool   `json:"loaded"`
	Address string `json:"address,omitempty"`
	Short   string `json:"short,omitempty"`
}

// ImportRequest represents request for POST /wallet/import
type ImportRequest struct {
	Mnemonic string `json:"mnemonic"`
}

// BackupResponse represents response for GET /wallet/backup
type BackupResponse struct {
	Address  string `json:"address"`
	Mnemonic string `json:"mnemonic"`
}
