package monero

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Address is a standard Monero address: a network and the public spend and
// view keys of its owner.
type Address struct {
	Network  Network
	SpendKey PublicKey
	ViewKey  PublicKey
}

const (
	addressChecksumSize = 4
	// tag + spend key + view key
	addressPayloadSize = 1 + KeySize + KeySize
	addressSize        = addressPayloadSize + addressChecksumSize
)

// AddressStrLen is the length of an encoded standard address.
var AddressStrLen = base58EncodedLen(addressSize)

// NewAddress returns the Address for network with the given keys.
func NewAddress(network Network, spend, view PublicKey) Address {
	return Address{Network: network, SpendKey: spend, ViewKey: view}
}

// Payload returns the binary form of adr: the network tag, the spend key, the
// view key and the first four bytes of the Keccak-256 hash of the preceding
// bytes.
func (adr Address) Payload() []byte {
	buf := make([]byte, 0, addressSize)
	buf = append(buf, adr.Network.AddressTag())
	buf = append(buf, adr.SpendKey[:]...)
	buf = append(buf, adr.ViewKey[:]...)
	checksum := Keccak256(buf)
	return append(buf, checksum[:addressChecksumSize]...)
}

// String encodes adr into its human readable form using Monero's base58.
func (adr Address) String() string {
	return base58Encode(adr.Payload())
}

// ParseAddress decodes a standard Monero address. The returned error wraps
// ErrInvalidAddress and one of the more specific ErrAddress* kinds.
func ParseAddress(adrStr string) (Address, error) {
	if len(adrStr) != AddressStrLen {
		return Address{}, fmt.Errorf("%w: expected %v characters, got %v",
			ErrAddressLength, AddressStrLen, len(adrStr))
	}
	data, err := base58Decode(adrStr)
	if err != nil {
		return Address{}, err
	}
	if len(data) != addressSize {
		return Address{}, fmt.Errorf("%w: decoded %v bytes",
			ErrAddressLength, len(data))
	}
	payload, checksum := data[:addressPayloadSize], data[addressPayloadSize:]
	expected := Keccak256(payload)
	if !bytes.Equal(checksum, expected[:addressChecksumSize]) {
		return Address{}, ErrAddressChecksum
	}
	network, ok := networkFromTag(payload[0])
	if !ok {
		return Address{}, fmt.Errorf("%w: %v", ErrAddressNetwork, payload[0])
	}
	adr := Address{Network: network}
	copy(adr.SpendKey[:], payload[1:1+KeySize])
	copy(adr.ViewKey[:], payload[1+KeySize:])
	if !adr.SpendKey.IsValid() {
		return Address{}, fmt.Errorf("%w: spend key: %w",
			ErrInvalidAddress, ErrInvalidKey)
	}
	if !adr.ViewKey.IsValid() {
		return Address{}, fmt.Errorf("%w: view key: %w",
			ErrInvalidAddress, ErrInvalidKey)
	}
	return adr, nil
}

// Set decodes adrStr into adr using ParseAddress.
func (adr *Address) Set(adrStr string) error {
	a, err := ParseAddress(adrStr)
	if err != nil {
		return err
	}
	*adr = a
	return nil
}

// Type returns "Address" for use with pflag.
func (Address) Type() string {
	return "Address"
}

// MarshalJSON encodes adr as a JSON string using adr.String().
func (adr Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(adr.String())
}

// UnmarshalJSON decodes a JSON string with a human readable address into adr.
func (adr *Address) UnmarshalJSON(data []byte) error {
	var adrStr string
	if err := json.Unmarshal(data, &adrStr); err != nil {
		return fmt.Errorf("%T: expected JSON string", adr)
	}
	return adr.Set(adrStr)
}
