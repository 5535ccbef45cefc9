// MIT License
//
// Copyright 2018 Canonical Ledgers, LLC
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package timestamp

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/canonical-ledgers/xmrts/monero"
)

// chunkSize is the size of the reads used to hash streams.
const chunkSize = 64 * 1024

// Digest is the SHA-512 hash of the timestamped data.
type Digest [monero.DigestSize]byte

// DigestData returns the Digest of data.
func DigestData(data []byte) Digest {
	return sha512.Sum512(data)
}

// DigestReader returns the Digest of all data read from r until io.EOF.
func DigestReader(r io.Reader) (Digest, error) {
	h := sha512.New()
	if _, err := io.CopyBuffer(h, r, make([]byte, chunkSize)); err != nil {
		return Digest{}, err
	}
	var d Digest
	h.Sum(d[:0])
	return d, nil
}

// DigestFile returns the Digest of the contents of the file at path.
func DigestFile(path string) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Digest{}, err
	}
	defer f.Close()
	d, err := DigestReader(f)
	if err != nil {
		return Digest{}, fmt.Errorf("%v: %w", path, err)
	}
	return d, nil
}

// ParseDigest decodes exactly 64 bytes of hex encoded data.
func ParseDigest(hexStr string) (Digest, error) {
	var d Digest
	if err := d.Set(hexStr); err != nil {
		return Digest{}, err
	}
	return d, nil
}

// String returns the hex encoded data of d.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Set decodes exactly 64 bytes of hex encoded data into d.
func (d *Digest) Set(hexStr string) error {
	if len(hexStr) != hex.EncodedLen(len(d)) {
		return fmt.Errorf("%w: digest must be %v hex characters, got %v",
			monero.ErrInvalidInputLength, hex.EncodedLen(len(d)),
			len(hexStr))
	}
	var tmp Digest
	if _, err := hex.Decode(tmp[:], []byte(hexStr)); err != nil {
		return err
	}
	*d = tmp
	return nil
}

// Type returns "Digest" for use with pflag.
func (Digest) Type() string {
	return "Digest"
}

// MarshalText encodes d as hex.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes hex encoded text using Set.
func (d *Digest) UnmarshalText(text []byte) error {
	return d.Set(string(text))
}
