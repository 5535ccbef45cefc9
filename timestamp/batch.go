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
	"context"
	"errors"
	"fmt"

	"go.uber.org/ratelimit"
	"golang.org/x/sync/errgroup"

	"github.com/canonical-ledgers/xmrts/monero"
)

// DefaultRequestRate is the default limit on node requests per second made
// by VerifyTransactions.
const DefaultRequestRate = 10

// maxConcurrent limits the number of requests in flight at once.
const maxConcurrent = 8

// VerifyTransactions verifies each of txIDs concurrently, making at most rate
// requests per second to f. A rate of zero or less uses DefaultRequestRate.
//
// Pending transactions are not an error: their Timestamp has Pending set.
// Any other error cancels the remaining lookups and is returned. The
// returned Timestamps are in the order of txIDs.
func (s Stamper) VerifyTransactions(ctx context.Context, f Fetcher,
	digest []byte, txIDs []monero.Hash, rate int) ([]Timestamp, error) {
	if len(digest) != monero.DigestSize {
		return nil, fmt.Errorf("%w: digest must be %v bytes, got %v",
			monero.ErrInvalidInputLength, monero.DigestSize, len(digest))
	}
	if rate <= 0 {
		rate = DefaultRequestRate
	}
	limiter := ratelimit.New(rate)

	timestamps := make([]Timestamp, len(txIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for i, txID := range txIDs {
		if gctx.Err() != nil {
			break
		}
		limiter.Take()
		g.Go(func() error {
			ts, err := s.VerifyTransaction(gctx, f, digest, txID)
			if err != nil && !errors.Is(err, ErrTransactionPending) {
				return err
			}
			timestamps[i] = ts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return timestamps, nil
}

// Earliest returns the matched, confirmed Timestamp with the lowest height.
// It returns false if no Timestamp matched in a block.
func Earliest(timestamps []Timestamp) (Timestamp, bool) {
	var earliest Timestamp
	var found bool
	for _, ts := range timestamps {
		if !ts.Matched || ts.Pending {
			continue
		}
		if !found || ts.Height < earliest.Height {
			earliest = ts
			found = true
		}
	}
	return earliest, found
}
