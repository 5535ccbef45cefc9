// Package varint implements the variable length integers used by Monero's
// binary serialization.
//
// Each byte carries 7 bits of the number, least significant group first. The
// top bit (0x80) of each byte is the continuation bit. If this bit is set,
// continue to read the next byte. This is the same layout as the unsigned
// varints of package encoding/binary, but decoding here is strict: an encoding
// must be canonical, so a final zero byte after the first is rejected, as is
// anything that does not fit in 64 bits.
package varint

import (
	"math/bits"
)

const continuationBitMask = 0x80

// MaxLen is the maximum length of an encoded uint64.
const MaxLen = 10

// Len returns the number of bytes needed to encode x.
func Len(x uint64) int {
	bitlen := bits.Len64(x)
	buflen := bitlen / 7
	if bitlen == 0 || bitlen%7 > 0 {
		buflen++
	}
	return buflen
}

// Encode x into varint bytes.
func Encode(x uint64) []byte {
	return Append(make([]byte, 0, Len(x)), x)
}

// Append the varint encoding of x to buf and return the extended buffer.
func Append(buf []byte, x uint64) []byte {
	for x >= continuationBitMask {
		buf = append(buf, continuationBitMask|uint8(x))
		x >>= 7
	}
	return append(buf, uint8(x))
}

// Decode varint bytes into a uint64 and return the number of bytes used.
//
// If buf ends before the last byte of the varint, 0 and 0 are returned. If buf
// encodes a number larger than 64 bits, or the encoding is not canonical, 0
// and -1 are returned.
func Decode(buf []byte) (uint64, int) {
	var x uint64
	for i, b := range buf {
		if i == MaxLen {
			return 0, -1
		}
		// The tenth byte may only hold the single remaining bit.
		if i == MaxLen-1 && b > 1 {
			return 0, -1
		}
		x |= uint64(b&^continuationBitMask) << uint(i*7)
		if b&continuationBitMask == 0 {
			if b == 0 && i > 0 {
				return 0, -1
			}
			return x, i + 1
		}
	}
	return 0, 0
}
