package crypto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testParams = Params{N: 1 << 10, R: 8, P: 1}

func TestSealOpen(t *testing.T) {
	sealed, err := Seal([]byte(`{"address":"0xabc"}`), []byte("hunter2"), testParams)
	require.NoError(t, err)

	plain, err := Open(sealed, []byte("hunter2"))
	require.NoError(t, err)
	assert.Equal(t, `{"address":"0xabc"}`, string(plain))
}

func TestOpenWrongPassword(t *testing.T) {
	sealed, err := Seal([]byte("payload"), []byte("right"), testParams)
	require.NoError(t, err)

	_, err = Open(sealed, []byte("wrong"))
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestSealUsesFreshSaltAndNonce(t *testing.T) {
	a, err := Seal([]byte("payload"), []byte("pw"), testParams)
	require.NoError(t, err)
	b, err := Seal([]byte("payload"), []byte("pw"), testParams)
	require.NoError(t, err)

	var ea, eb Envelope
	require.NoError(t, json.Unmarshal(a, &ea))
	require.NoError(t, json.Unmarshal(b, &eb))
	assert.NotEqual(t, ea.Salt, eb.Salt)
	assert.NotEqual(t, ea.Nonce, eb.Nonce)
	assert.Equal(t, testParams, ea.Params)
}

func TestOpenRejectsGarbage(t *testing.T) {
	_, err := Open(nil, []byte("pw"))
	assert.Error(t, err)

	_, err = Open([]byte("not json"), []byte("pw"))
	assert.Error(t, err)

	_, err = Open([]byte(`{"version":9}`), []byte("pw"))
	assert.Error(t, err)
}

func TestOpenSkipsBOM(t *testing.T) {
	sealed, err := Seal([]byte("payload"), []byte("pw"), testParams)
	require.NoError(t, err)

	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, sealed...)
	plain, err := Open(withBOM, []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(plain))
}

func TestSealRejectsEmptyPassword(t *testing.T) {
	_, err := Seal([]byte("payload"), nil, testParams)
	assert.Error(t, err)
}
