package monero

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase58EncodedLen(t *testing.T) {
	for size, encSize := range encodedBlockSizes {
		assert.Equal(t, encSize, base58EncodedLen(size))
		assert.Equal(t, encSize, len(base58Encode(make([]byte, size))))
	}
	assert.Equal(t, 95, base58EncodedLen(69))
	assert.Equal(t, 95, AddressStrLen)
}

func TestBase58Blocks(t *testing.T) {
	for size := 1; size <= 3*fullBlockSize; size++ {
		data := make([]byte, size)
		for i := range data {
			data[i] = byte(255 - i*7)
		}
		enc := base58Encode(data)
		dec, err := base58Decode(enc)
		require.NoError(t, err, size)
		assert.Equal(t, data, dec, size)

		zero := make([]byte, size)
		dec, err = base58Decode(base58Encode(zero))
		require.NoError(t, err, size)
		assert.Equal(t, zero, dec, size)
	}
	// An encoded length of 1, 4 or 8 modulo 11 is never produced.
	for _, n := range []int{1, 4, 8, 12} {
		_, err := base58Decode(base58Alphabet[1 : 1+n])
		assert.ErrorIs(t, err, ErrAddressLength, n)
	}
}

func payloadWithChecksum(tag byte, spend, view PublicKey) string {
	buf := append([]byte{tag}, spend[:]...)
	buf = append(buf, view[:]...)
	checksum := Keccak256(buf)
	return base58Encode(append(buf, checksum[:addressChecksumSize]...))
}

func TestParseAddressPayload(t *testing.T) {
	valid := PublicKey{1}
	notAPoint := PublicKey{2}

	_, err := ParseAddress(payloadWithChecksum(19, valid, valid))
	assert.ErrorIs(t, err, ErrAddressNetwork, "integrated address tag")

	_, err = ParseAddress(payloadWithChecksum(mainnetAddressTag, notAPoint,
		valid))
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = ParseAddress(payloadWithChecksum(mainnetAddressTag, valid,
		notAPoint))
	assert.ErrorIs(t, err, ErrInvalidKey)

	adrStr := payloadWithChecksum(testnetAddressTag, valid, ZeroPublicKey)
	adr, err := ParseAddress(adrStr)
	require.NoError(t, err)
	assert.Equal(t, Address{Network: Testnet, SpendKey: valid}, adr)

	buf := append([]byte{stagenetAddressTag}, valid[:]...)
	buf = append(buf, valid[:]...)
	buf = append(buf, 1, 2, 3, 4)
	_, err = ParseAddress(base58Encode(buf))
	assert.ErrorIs(t, err, ErrAddressChecksum)
}
