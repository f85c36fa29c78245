package evm

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	hardhatMnemonic = "test test test test test test test test test test test junk"
	hardhatAddress  = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	hardhatKey      = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
)

func TestWalletFromMnemonicKnownVector(t *testing.T) {
	w, err := WalletFromMnemonic(hardhatMnemonic)
	require.NoError(t, err)

	assert.Equal(t, hardhatAddress, w.Address)
	assert.Equal(t, hardhatKey, w.PrivateKey)
	assert.Equal(t, hardhatMnemonic, w.Mnemonic)
}

func TestWalletFromMnemonicNormalizes(t *testing.T) {
	w, err := WalletFromMnemonic("  TEST test\ttest test test test test test test test test   JUNK ")
	require.NoError(t, err)
	assert.Equal(t, hardhatAddress, w.Address)
	assert.Equal(t, hardhatMnemonic, w.Mnemonic)
}

func TestWalletFromMnemonicRejectsBadChecksum(t *testing.T) {
	_, err := WalletFromMnemonic(strings.Repeat("abandon ", 12))
	assert.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestGenerateWallet(t *testing.T) {
	w, err := GenerateWallet()
	require.NoError(t, err)

	assert.Len(t, strings.Fields(w.Mnemonic), 12)
	assert.True(t, IsValidAddress(w.Address))

	again, err := WalletFromMnemonic(w.Mnemonic)
	require.NoError(t, err)
	assert.Equal(t, w, again, "address and key must be derivable from the phrase")

	other, err := GenerateWallet()
	require.NoError(t, err)
	assert.NotEqual(t, w.Address, other.Address)
}

func TestVerifyWallet(t *testing.T) {
	w, err := WalletFromMnemonic(hardhatMnemonic)
	require.NoError(t, err)

	key, err := VerifyWallet(w)
	require.NoError(t, err)
	assert.NotNil(t, key)

	w.Address = "0x0000000000000000000000000000000000000001"
	_, err = VerifyWallet(w)
	assert.Error(t, err)

	w.PrivateKey = "0xzz"
	_, err = VerifyWallet(w)
	assert.Error(t, err)
}

func TestKeyFromPrivateHexAcceptsBareHex(t *testing.T) {
	a, err := KeyFromPrivateHex(hardhatKey)
	require.NoError(t, err)
	b, err := KeyFromPrivateHex(strings.TrimPrefix(hardhatKey, "0x"))
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestFormatAddress(t *testing.T) {
	assert.Equal(t, "0xf39F...2266", FormatAddress(hardhatAddress))
	assert.Equal(t, "", FormatAddress(""))
	assert.Equal(t, "0x12", FormatAddress("0x12"))
}

func TestAddressQR(t *testing.T) {
	png, err := AddressQR(hardhatAddress)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

type stubBalance struct {
	wei *big.Int
	err error
}

func (s stubBalance) BalanceAt(context.Context, ethcommon.Address, *big.Int) (*big.Int, error) {
	return s.wei, s.err
}

func TestGetBalance(t *testing.T) {
	wei, _ := new(big.Int).SetString("2500000000000000000", 10)
	resp, err := GetBalance(context.Background(), stubBalance{wei: wei}, hardhatAddress, "SPN")
	require.NoError(t, err)
	assert.Equal(t, "2.5", resp.Ether)
	assert.Equal(t, "2500000000000000000", resp.Wei)
	assert.Equal(t, "SPN", resp.Symbol)

	_, err = GetBalance(context.Background(), stubBalance{err: errors.New("rpc down")}, hardhatAddress, "SPN")
	assert.Error(t, err)

	_, err = GetBalance(context.Background(), stubBalance{wei: wei}, "nope", "SPN")
	assert.Error(t, err)
}
