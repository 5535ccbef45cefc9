package monero

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyDerivation(t *testing.T) {
	// generate_key_derivation vector from Monero's crypto tests.
	require := require.New(t)
	var pub PublicKey
	require.NoError(pub.Set(
		"fdfd97d2ea9f1c25df773ff2c973d885653a3ee643157eb0ae2b6dd98f0b6984"))
	secret, err := hex.DecodeString(
		"eb2bd1cf0c5e074f9dbf38ebbc99c316f54e21803048c687a3bb359f7a713b02")
	require.NoError(err)
	var priv PrivateKey
	copy(priv[:], secret)

	a, err := priv.scalar()
	require.NoError(err)
	R, err := pub.point()
	require.NoError(err)
	assert.Equal(t,
		"4e0bd2c41325a1b89a9f7413d4d05e0a5a4936f241dccc3c7d0c539ffe00ef67",
		hex.EncodeToString(keyDerivation(a, R)))
}
