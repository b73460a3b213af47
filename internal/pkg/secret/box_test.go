package secret

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestBox_SealOpen(t *testing.T) {
	box, err := NewBox(testKey)
	require.NoError(t, err)

	sealed, err := box.Seal("123456789012")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "123456789012")

	again, err := box.Seal("123456789012")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce must differ per seal")

	plain, err := box.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "123456789012", plain)
}

func TestBox_EmptyPassesThrough(t *testing.T) {
	box, err := NewBox(testKey)
	require.NoError(t, err)

	sealed, err := box.Seal("")
	require.NoError(t, err)
	assert.Empty(t, sealed)

	plain, err := box.Open("")
	require.NoError(t, err)
	assert.Empty(t, plain)
}

func TestBox_WrongKey(t *testing.T) {
	box, err := NewBox(testKey)
	require.NoError(t, err)
	other, err := NewBox(strings.Repeat("ff", 32))
	require.NoError(t, err)

	sealed, err := box.Seal("secret")
	require.NoError(t, err)

	_, err = other.Open(sealed)
	assert.ErrorIs(t, err, ErrDecryptionFailure)

	_, err = box.Open("not-base64!")
	assert.ErrorIs(t, err, ErrMalformedSealed)
}

func TestNewBox_InvalidKey(t *testing.T) {
	_, err := NewBox("short")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "XXXXXXXX9012", Mask("123456789012"))
	assert.Equal(t, "123", Mask("123"))
}
