package evm

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
)

// IsValidAddress validates a hex account address
func IsValidAddress(address string) bool {
	return ethcommon.IsHexAddress(address)
}

// FormatAddress shortens an address for display: 0x1234...abcd
func FormatAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
