package monero

import (
	"errors"
	"fmt"
)

// Error kinds returned by this package. All returned errors wrap one of
// these, so callers should test with errors.Is.
var (
	// ErrInvalidInputLength is returned when a digest, key or hash does
	// not have the required size.
	ErrInvalidInputLength = errors.New("invalid input length")

	// ErrMalformedTransaction is returned when transaction bytes are
	// truncated, have trailing data, or contain an invalid varint, tag or
	// length.
	ErrMalformedTransaction = errors.New("malformed transaction")

	// ErrInvalidKey is returned when 32 bytes do not encode a curve point
	// or a canonical scalar.
	ErrInvalidKey = errors.New("invalid key")

	// ErrTransport is returned by Client when monerod cannot be reached
	// or returns an unusable response.
	ErrTransport = errors.New("transport failure")

	// ErrTransactionNotFound is returned by Client when monerod does not
	// know the requested transaction.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidNetwork is returned for a Network other than Mainnet,
	// Stagenet or Testnet, and for unknown network names.
	ErrInvalidNetwork = errors.New("invalid network")
)

// ErrInvalidAddress is wrapped by all address decoding errors.
var ErrInvalidAddress = errors.New("invalid address encoding")

// Address decoding error kinds.
var (
	ErrAddressLength    = fmt.Errorf("%w: invalid length", ErrInvalidAddress)
	ErrAddressCharacter = fmt.Errorf("%w: invalid base58 character",
		ErrInvalidAddress)
	ErrAddressBlock    = fmt.Errorf("%w: base58 block overflow", ErrInvalidAddress)
	ErrAddressChecksum = fmt.Errorf("%w: checksum mismatch", ErrInvalidAddress)
	ErrAddressNetwork  = fmt.Errorf("%w: unknown network tag", ErrInvalidAddress)
)

func malformedf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format,
		append([]interface{}{ErrMalformedTransaction}, args...)...)
}
