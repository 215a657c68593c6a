package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedURLRoundTrip(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Minute)

	token, expiresAt, err := signer.Generate("42", "registros/42/foto.png")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	recordID, relPath, _, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "42", recordID)
	assert.Equal(t, "registros/42/foto.png", relPath)
}

func TestSignedURLRejectsTamperedToken(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Minute)

	token, _, err := signer.Generate("42", "registros/42/foto.png")
	require.NoError(t, err)

	_, _, _, err = signer.Parse(token + "x")
	assert.Error(t, err)
}

func TestSignedURLRejectsExpiredToken(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Minute)
	signer.ttl = -time.Minute

	token, _, err := signer.Generate("42", "registros/42/foto.png")
	require.NoError(t, err)

	_, _, _, err = signer.Parse(token)
	assert.Error(t, err)
}

func TestSignedURLRejectsWrongSecret(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Minute)
	other := NewSignedURLSigner("another", time.Minute)

	token, _, err := signer.Generate("42", "registros/42/foto.png")
	require.NoError(t, err)

	_, _, _, err = other.Parse(token)
	assert.Error(t, err)
}
