package timestamp_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical-ledgers/xmrts/monero"
	"github.com/canonical-ledgers/xmrts/timestamp"
)

// SHA-512 of the empty string.
const emptyDigest = "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce" +
	"47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e"

func TestDigest(t *testing.T) {
	assert.Equal(t, emptyDigest, timestamp.DigestData(nil).String())

	// Larger than a single read.
	large := bytes.Repeat([]byte("xmrts"), 100000)
	expected := timestamp.DigestData(large)
	d, err := timestamp.DigestReader(bytes.NewReader(large))
	require.NoError(t, err)
	assert.Equal(t, expected, d)

	path := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(path, large, 0600))
	d, err = timestamp.DigestFile(path)
	require.NoError(t, err)
	assert.Equal(t, expected, d)

	_, err = timestamp.DigestFile(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDigestSet(t *testing.T) {
	d, err := timestamp.ParseDigest(emptyDigest)
	require.NoError(t, err)
	assert.Equal(t, timestamp.DigestData(nil), d)

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, emptyDigest, string(text))

	_, err = timestamp.ParseDigest(emptyDigest[:64])
	assert.ErrorIs(t, err, monero.ErrInvalidInputLength)
	_, err = timestamp.ParseDigest(strings.Repeat("zz", 64))
	assert.Error(t, err)
}

func TestSpendKeySet(t *testing.T) {
	var s timestamp.SpendKey
	require.NoError(t, s.Set("view"))
	assert.Equal(t, timestamp.SpendKeyView, s)
	require.NoError(t, s.Set("Zero"))
	assert.Equal(t, timestamp.SpendKeyZero, s)
	assert.Error(t, s.Set("spend"))
	_, err := timestamp.SpendKey(5).MarshalText()
	assert.Error(t, err)

	view := monero.PublicKey{1}
	assert.Equal(t, view, timestamp.SpendKeyView.Key(view))
	assert.Equal(t, monero.ZeroPublicKey, timestamp.SpendKeyZero.Key(view))
}
