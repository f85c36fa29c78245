package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, 7, c.BoardSize)
	assert.Equal(t, time.Duration(0), c.ConfirmTimeout)
	assert.Equal(t, int64(98985), c.Chain.ChainID)
	assert.Equal(t, "https://testnet-rpc.superposition.so/", c.Chain.RPCURL)
	assert.Equal(t, "SPN", c.Chain.CurrencySymbol)
	assert.Equal(t, slog.LevelInfo, c.SlogLevel())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STYLISH_RPC_URL", "http://127.0.0.1:8545")
	t.Setenv("STYLISH_CHAIN_ID", "1337")
	t.Setenv("STYLISH_CONFIRM_TIMEOUT", "90s")
	t.Setenv("STYLISH_LOG_LEVEL", "debug")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8545", c.Chain.RPCURL)
	assert.Equal(t, int64(1337), c.Chain.ChainID)
	assert.Equal(t, 90*time.Second, c.ConfirmTimeout)
	assert.Equal(t, slog.LevelDebug, c.SlogLevel())
}

func TestLoadRejectsBadBoardSize(t *testing.T) {
	t.Setenv("STYLISH_BOARD_SIZE", "0")

	_, err := Load()
	require.Error(t, err)
}

func TestGetKeystorePasswordBytesReturnsCopy(t *testing.T) {
	passwordBytes = []byte("secret")
	t.Cleanup(func() { passwordBytes = nil })

	got, err := GetKeystorePasswordBytes()
	require.NoError(t, err)
	clear(got)

	again, err := GetKeystorePasswordBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), again)
}
