package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	envelopeVersion = 1
	saltLen         = 32
	nonceLen        = 12
	keyLen          = 32
)

// Params are the scrypt cost parameters.
type Params struct {
	N int `json:"n"`
	R int `json:"r"`
	P int `json:"p"`
}

// DefaultParams keeps key material expensive to brute force.
//
// N=2^18 (~256MB RAM, 0.5-2s) is the highest cost that still fits the per-app
// memory limits of mobile devices.
var DefaultParams = Params{N: 1 << 18, R: 8, P: 1}

// Envelope is the at-rest representation of one sealed value.
type Envelope struct {
	Version    int    `json:"version"`
	Params     Params `json:"params"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// ErrInvalidPassword is returned when the envelope does not open with the given password.
var ErrInvalidPassword = errors.New("invalid password")

// Seal encrypts plaintext with a key derived from password and returns the JSON envelope.
// password must be []byte for security (caller should zero it after use)
func Seal(plaintext, password []byte, params Params) ([]byte, error) {
	if len(password) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	// Generate salt and nonce
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(password, salt, params)
	if err != nil {
		return nil, err
	}

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	env := Envelope{
		Version:    envelopeVersion,
		Params:     params,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}

	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return data, nil
}

// newGCM derives the AES-256 key from password and builds the AEAD.
func newGCM(password, salt []byte, params Params) (cipher.AEAD, error) {
	key, err := scrypt.Key(password, salt, params.N, params.R, params.P, keyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
