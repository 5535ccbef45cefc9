package monero

import (
	"encoding/hex"
	"fmt"
)

// Hash is a 32 byte Keccak-256 hash, such as a transaction ID. It implements
// json.Marshaler, json.Unmarshaler and pflag.Value using hex encoded data.
type Hash [32]byte

// String returns the hex encoded data of h.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Set decodes exactly 32 bytes of hex encoded data into h.
func (h *Hash) Set(hexStr string) error {
	return decodeHex32((*[32]byte)(h), []byte(hexStr))
}

// Type returns "Hash" for use with pflag.
func (Hash) Type() string {
	return "Hash"
}

// UnmarshalJSON unmarshals a string with exactly 32 bytes of hex encoded data.
func (h *Hash) UnmarshalJSON(data []byte) error {
	return unmarshalJSONHex32((*[32]byte)(h), data)
}

// MarshalJSON marshals h into hex encoded data.
func (h Hash) MarshalJSON() ([]byte, error) {
	return bytesMarshalJSON(h[:])
}

// Bytes implements json.Marshaler and json.Unmarshaler to encode and decode
// strings with hex encoded data, such as raw transaction blobs.
type Bytes []byte

// String returns the hex encoded data of b.
func (b Bytes) String() string {
	return hex.EncodeToString(b[:])
}

// UnmarshalJSON unmarshals a string of hex encoded data.
func (b *Bytes) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid type")
	}
	data = data[1 : len(data)-1]
	*b = make(Bytes, hex.DecodedLen(len(data)))
	if _, err := hex.Decode(*b, data); err != nil {
		return err
	}
	return nil
}

// MarshalJSON marshals b into hex encoded data.
func (b Bytes) MarshalJSON() ([]byte, error) {
	return bytesMarshalJSON(b)
}

func unmarshalJSONHex32(b *[32]byte, data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid type")
	}
	return decodeHex32(b, data[1:len(data)-1])
}

func decodeHex32(b *[32]byte, data []byte) error {
	if len(data) != len(b)*2 {
		return fmt.Errorf("%w: expected %v hex characters, got %v",
			ErrInvalidInputLength, len(b)*2, len(data))
	}
	var tmp [32]byte
	if _, err := hex.Decode(tmp[:], data); err != nil {
		return err
	}
	*b = tmp
	return nil
}

// bytesMarshalJSON marshals b into hex encoded data.
func bytesMarshalJSON(b []byte) ([]byte, error) {
	l := hex.EncodedLen(len(b)) + 2
	data := make([]byte, l)
	hex.Encode(data[1:], b[:])
	data[0] = '"'
	data[len(data)-1] = '"'
	return data, nil
}
