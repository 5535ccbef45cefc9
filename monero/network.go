package monero

import (
	"fmt"
	"strings"
)

// Network identifies one of the three Monero networks, numbered 0 mainnet,
// 1 stagenet, 2 testnet.
type Network uint8

const (
	Mainnet Network = iota
	Stagenet
	Testnet
)

// Standard address tags. Integrated and subaddress tags are not supported.
const (
	mainnetAddressTag  = 18
	stagenetAddressTag = 24
	testnetAddressTag  = 53
)

// Networks lists all valid networks.
var Networks = []Network{Mainnet, Stagenet, Testnet}

// AddressTag returns the standard address tag byte for n.
func (n Network) AddressTag() byte {
	switch n {
	case Mainnet:
		return mainnetAddressTag
	case Stagenet:
		return stagenetAddressTag
	case Testnet:
		return testnetAddressTag
	}
	panic(fmt.Sprintf("invalid network: %d", uint8(n)))
}

// networkFromTag returns the Network for a standard address tag.
func networkFromTag(tag byte) (Network, bool) {
	switch tag {
	case mainnetAddressTag:
		return Mainnet, true
	case stagenetAddressTag:
		return Stagenet, true
	case testnetAddressTag:
		return Testnet, true
	}
	return 0, false
}

// IsValid returns true if n is one of Mainnet, Stagenet or Testnet.
func (n Network) IsValid() bool {
	return n <= Testnet
}

func (n Network) String() string {
	switch n {
	case Mainnet:
		return "mainnet"
	case Stagenet:
		return "stagenet"
	case Testnet:
		return "testnet"
	default:
		return fmt.Sprintf("invalid(%d)", uint8(n))
	}
}

// Set parses a network name such as "mainnet", "main", "stagenet" or "test".
// The names returned by monerod's get_info "nettype" are accepted.
func (n *Network) Set(name string) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mainnet", "main", "0":
		*n = Mainnet
	case "stagenet", "stage", "1":
		*n = Stagenet
	case "testnet", "test", "2":
		*n = Testnet
	default:
		return fmt.Errorf("%w: %q", ErrInvalidNetwork, name)
	}
	return nil
}

// Type returns "Network" for use with pflag.
func (Network) Type() string {
	return "Network"
}

// MarshalText encodes n as its name.
func (n Network) MarshalText() ([]byte, error) {
	if !n.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNetwork, uint8(n))
	}
	return []byte(n.String()), nil
}

// UnmarshalText decodes a network name using Set.
func (n *Network) UnmarshalText(text []byte) error {
	return n.Set(string(text))
}
