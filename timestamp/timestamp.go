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

// Package timestamp proves that data existed at a point in time using
// payments on the Monero ledger.
//
// The digest of the data deterministically derives a private view key. The
// address with the derived public view key is the commitment: a payment to
// it embeds the digest in a transaction that anyone holding the data can
// later find by scanning its outputs with the same view key. The height of
// the block containing the payment is the timestamp.
package timestamp

import (
	"context"
	"errors"
	"fmt"
	"time"

	_log "github.com/canonical-ledgers/xmrts/log"
	"github.com/canonical-ledgers/xmrts/monero"
)

var log = _log.New("timestamp")

// ErrTransactionPending is returned when a transaction was found but is not
// yet included in a block, so it has no timestamp yet.
var ErrTransactionPending = errors.New("transaction pending")

// Stamper commits to digests and verifies payments to them. The zero value
// is not usable, use New.
type Stamper struct {
	Params   monero.Params
	SpendKey SpendKey

	// KeyRange and OutputRange restrict which transaction public keys and
	// which outputs are scanned. Commitments are always paid to output 0
	// using the first transaction public key.
	KeyRange    monero.Range
	OutputRange monero.Range
}

// New returns a Stamper using the Ed25519 parameters and spend that only
// scans the first transaction public key and output 0.
func New(spend SpendKey) Stamper {
	return Stamper{
		Params:      monero.Ed25519,
		SpendKey:    spend,
		KeyRange:    monero.FirstOnly,
		OutputRange: monero.FirstOnly,
	}
}

// Keys derives the private view key of digest and returns it with the
// public spend and view keys of the timestamp address.
func (s Stamper) Keys(digest []byte) (view monero.PrivateKey,
	spendPub, viewPub monero.PublicKey, err error) {
	view, viewPub, err = s.Params.DeriveKeys(digest)
	if err != nil {
		return
	}
	spendPub = s.SpendKey.Key(viewPub)
	return
}

// Commit returns the address on network that commits to digest. Any payment
// to this address timestamps the data with the given digest.
func (s Stamper) Commit(network monero.Network, digest []byte) (monero.Address, error) {
	if !network.IsValid() {
		return monero.Address{}, fmt.Errorf("%w: %v", monero.ErrInvalidNetwork,
			network)
	}
	_, spend, view, err := s.Keys(digest)
	if err != nil {
		return monero.Address{}, err
	}
	return monero.NewAddress(network, spend, view), nil
}

// Result is the outcome of scanning a transaction for a payment to a
// commitment.
type Result struct {
	Matched bool  `json:"matched"`
	Outputs []int `json:"outputs,omitempty"`
}

// Verify decodes txBytes and scans it for a payment to the commitment to
// digest. A transaction without such a payment is not an error and returns a
// Result with Matched false.
func (s Stamper) Verify(digest, txBytes []byte) (Result, error) {
	view, spend, _, err := s.Keys(digest)
	if err != nil {
		return Result{}, err
	}
	tx, err := monero.DecodeTransaction(txBytes)
	if err != nil {
		return Result{}, err
	}
	return s.scan(view, spend, &tx)
}

// VerifyDecoded scans an already decoded transaction for a payment to the
// commitment to digest.
func (s Stamper) VerifyDecoded(digest []byte, tx *monero.Transaction) (Result, error) {
	view, spend, _, err := s.Keys(digest)
	if err != nil {
		return Result{}, err
	}
	return s.scan(view, spend, tx)
}

func (s Stamper) scan(view monero.PrivateKey, spend monero.PublicKey,
	tx *monero.Transaction) (Result, error) {
	outputs, err := s.Params.Scan(view, spend, tx, s.KeyRange, s.OutputRange)
	if err != nil {
		return Result{}, err
	}
	return Result{Matched: len(outputs) > 0, Outputs: outputs}, nil
}

// Fetcher looks up transactions by ID. monero.Client is a Fetcher.
type Fetcher interface {
	GetTransaction(ctx context.Context, txID monero.Hash) (monero.TxLookup, error)
}

// Timestamp is the result of verifying a transaction fetched from a node.
type Timestamp struct {
	TxID monero.Hash `json:"txid"`
	// Height is the height of the block containing the transaction. It is
	// only meaningful if Pending is false.
	Height uint64 `json:"height"`
	// BlockTime is the timestamp of the block containing the transaction,
	// as reported by the node. It is zero if Pending or if unknown.
	BlockTime time.Time `json:"blocktime,omitzero"`
	Pending   bool      `json:"pending,omitempty"`
	Result
}

// VerifyTransaction fetches the transaction txID using f and scans it for a
// payment to the commitment to digest.
//
// If the transaction is not yet in a block, the returned error is
// ErrTransactionPending and the returned Timestamp still holds the scan
// Result. Errors from f are returned as is, so they may wrap
// monero.ErrTransport or monero.ErrTransactionNotFound.
func (s Stamper) VerifyTransaction(ctx context.Context, f Fetcher,
	digest []byte, txID monero.Hash) (Timestamp, error) {
	view, spend, _, err := s.Keys(digest)
	if err != nil {
		return Timestamp{}, err
	}
	l, err := f.GetTransaction(ctx, txID)
	if err != nil {
		return Timestamp{}, err
	}
	tx, err := monero.DecodeTransaction(l.Blob)
	if err != nil {
		return Timestamp{}, fmt.Errorf("tx %v: %w", txID, err)
	}
	if tx.Hash != txID {
		return Timestamp{}, fmt.Errorf(
			"%w: node returned transaction %v for %v",
			monero.ErrTransport, tx.Hash, txID)
	}
	res, err := s.scan(view, spend, &tx)
	if err != nil {
		return Timestamp{}, err
	}

	ts := Timestamp{TxID: txID, Result: res}
	if l.IsPending() {
		ts.Pending = true
		log.Debugf("tx %v: pending, matched: %v", txID, res.Matched)
		return ts, fmt.Errorf("%w: %v", ErrTransactionPending, txID)
	}
	ts.Height = *l.Height
	ts.BlockTime = l.BlockTime
	log.Debugf("tx %v: height: %v, time: %v, matched: %v",
		txID, ts.Height, ts.BlockTime, res.Matched)
	return ts, nil
}
