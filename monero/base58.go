package monero

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Factom-Asset-Tokens/base58"
)

// Monero's base58 splits its input into 8 byte blocks and encodes each block
// independently as a fixed width big-endian base58 number, so the encoded
// length only depends on the input length. The alphabet is the same as
// Bitcoin's.
const (
	base58Alphabet  = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	fullBlockSize   = 8
	fullEncodedSize = 11
)

// encodedBlockSizes maps a block size in bytes to its encoded size.
var encodedBlockSizes = [fullBlockSize + 1]int{0, 2, 3, 5, 6, 7, 9, 10, 11}

// decodedBlockSize returns the block size in bytes for an encoded block size.
func decodedBlockSize(encodedSize int) (int, bool) {
	for size, encSize := range encodedBlockSizes {
		if encSize == encodedSize && size > 0 {
			return size, true
		}
	}
	return 0, false
}

// base58EncodedLen returns the length of the encoding of n bytes.
func base58EncodedLen(n int) int {
	return n/fullBlockSize*fullEncodedSize +
		encodedBlockSizes[n%fullBlockSize]
}

// base58Encode encodes data using Monero's block base58.
func base58Encode(data []byte) string {
	var enc strings.Builder
	enc.Grow(base58EncodedLen(len(data)))
	for len(data) > 0 {
		size := fullBlockSize
		if len(data) < size {
			size = len(data)
		}
		block := base58.Encode(data[:size])
		// Left pad with the zero digit to the fixed block width.
		enc.WriteString(strings.Repeat(base58Alphabet[:1],
			encodedBlockSizes[size]-len(block)))
		enc.WriteString(block)
		data = data[size:]
	}
	return enc.String()
}

// base58Decode decodes a Monero block base58 string.
func base58Decode(str string) ([]byte, error) {
	for i, r := range str {
		if !strings.ContainsRune(base58Alphabet, r) {
			return nil, fmt.Errorf("%w: %q at position %v",
				ErrAddressCharacter, r, i)
		}
	}
	lastSize, ok := decodedBlockSize(len(str) % fullEncodedSize)
	if !ok && len(str)%fullEncodedSize != 0 {
		return nil, fmt.Errorf("%w: %v characters", ErrAddressLength, len(str))
	}
	data := make([]byte, 0, len(str)/fullEncodedSize*fullBlockSize+lastSize)
	for len(str) > 0 {
		encSize := fullEncodedSize
		if len(str) < encSize {
			encSize = len(str)
		}
		size := fullBlockSize
		if encSize < fullEncodedSize {
			size = lastSize
		}
		block, err := decodeBlock(str[:encSize], size)
		if err != nil {
			return nil, err
		}
		data = append(data, block...)
		str = str[encSize:]
	}
	return data, nil
}

// decodeBlock decodes a single block of encoded data into exactly size bytes.
func decodeBlock(encBlock string, size int) ([]byte, error) {
	// Leading zero digits decode to leading zero bytes. Strip them so
	// only the value remains.
	value := bytes.TrimLeft(base58.Decode(encBlock), "\x00")
	if len(value) > size {
		return nil, fmt.Errorf("%w: %q", ErrAddressBlock, encBlock)
	}
	block := make([]byte, size)
	copy(block[size-len(value):], value)
	return block, nil
}
