package secret

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var (
	ErrInvalidKey        = errors.New("encryption key must be 32 bytes encoded as hex or base64")
	ErrMalformedSealed   = errors.New("sealed value is malformed")
	ErrDecryptionFailure = errors.New("sealed value could not be opened")
)

// Box encrypts short strings such as bank account numbers with NaCl secretbox.
// Sealed values are base64(nonce || ciphertext).
type Box struct {
	key [32]byte
}

// NewBox accepts a 32-byte key as 64 hex characters or standard base64.
func NewBox(encodedKey string) (*Box, error) {
	encodedKey = strings.TrimSpace(encodedKey)

	raw, err := hex.DecodeString(encodedKey)
	if err != nil || len(raw) != 32 {
		raw, err = base64.StdEncoding.DecodeString(encodedKey)
		if err != nil || len(raw) != 32 {
			return nil, ErrInvalidKey
		}
	}

	b := &Box{}
	copy(b.key[:], raw)
	return b, nil
}

func (b *Box) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &b.key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (b *Box) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}

	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrMalformedSealed
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])

	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &b.key)
	if !ok {
		return "", ErrDecryptionFailure
	}
	return string(plain), nil
}

// Mask keeps the last four characters visible.
func Mask(account string) string {
	if len(account) <= 4 {
		return account
	}
	return strings.Repeat("X", len(account)-4) + account[len(account)-4:]
}
