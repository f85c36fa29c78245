package common

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeiToEther(t *testing.T) {
	tests := []struct {
		name string
		wei  *big.Int
		want string
	}{
		{name: "zero", wei: big.NewInt(0), want: "0.000000000000000000"},
		{name: "nil", wei: nil, want: "0.000000000000000000"},
		{name: "one wei", wei: big.NewInt(1), want: "0.000000000000000001"},
		{name: "one ether", wei: new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil), want: "1.000000000000000000"},
		{name: "mixed", wei: big.NewInt(1_500_000_000_000_000_000), want: "1.500000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeiToEther(tt.wei))
		})
	}
}

func TestEtherToWei(t *testing.T) {
	got, err := EtherToWei("1.5")
	require.NoError(t, err)
	assert.Equal(t, "1500000000000000000", got.String())

	got, err = EtherToWei("2")
	require.NoError(t, err)
	assert.Equal(t, "2000000000000000000", got.String())

	_, err = EtherToWei("")
	assert.Error(t, err)

	_, err = EtherToWei("1.2.3")
	assert.Error(t, err)

	_, err = EtherToWei("abc")
	assert.Error(t, err)
}

func TestTrimAmount(t *testing.T) {
	assert.Equal(t, "1.5", TrimAmount("1.500000000000000000"))
	assert.Equal(t, "2", TrimAmount("2.000"))
	assert.Equal(t, "0", TrimAmount("0.000000000000000000"))
	assert.Equal(t, "42", TrimAmount("42"))
}
