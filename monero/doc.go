// Package monero implements the subset of the Monero ledger needed to publish
// and check data timestamps.
//
// The key derivation and output scanning functions reproduce Monero's stealth
// address scheme for a single view key: Params.DeriveKeys reduces a 64 byte
// digest to a private view key, and Params.Scan recognizes transaction outputs
// paid to an address built from it.
//
// The Address type encodes and decodes standard Monero addresses using
// Monero's block based base58 variant.
//
// The Transaction type decodes Monero's binary transaction format,
// structurally validating all of it, including the RingCT signature data that
// is otherwise ignored.
//
// The Client type fetches raw transactions and chain information from a
// monerod node.
package monero
