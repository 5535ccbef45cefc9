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

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/posener/complete"
	"github.com/spf13/cobra"

	"github.com/canonical-ledgers/xmrts/monero"
	"github.com/canonical-ledgers/xmrts/timestamp"
)

var (
	verifySource DataSource
	verifyTxIDs  TxIDList
	verifyTxHex  TxHex
	verifyAll    bool
	verifyRate   int
)

// verifyCmd represents the verify command
var verifyCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use: `
verify --data DATA | --file FILE | --digest DIGEST
        --txid TXID [--txid TXID]... | --tx-hex HEX
        [--spend-key zero|view] [--all-outputs]`[1:],
		Short: "Verify the timestamp of some data",
		Long: `
Verify that a Monero transaction pays the commitment address of some data.

With --txid, each transaction is fetched from monerod and the height and time
of its block are printed. A transaction still in the pool is reported as
pending whether or not it pays the address. If more than one --txid is given, the earliest timestamp is
reported last.

With --tx-hex, the raw transaction is scanned offline. No block height is
known in that case.

Only output 0 is scanned unless --all-outputs is given.
`[1:],
		Args:    cobra.ExactArgs(0),
		PreRunE: validateVerifyFlags,
		RunE:    runVerify,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["verify"] = verifyCmplCmd
	rootCmplCmd.Sub["help"].Sub["verify"] = complete.Command{Sub: complete.Commands{}}

	flags := cmd.Flags()
	flags.AddFlagSet(verifySource.Flags())
	flags.VarP(&verifyTxIDs, "txid", "t",
		"Transaction ID of a payment to the commitment address")
	flags.Var(&verifyTxHex, "tx-hex", "Hex encoded raw transaction")
	flags.BoolVar(&verifyAll, "all-outputs", false,
		"Scan all outputs and all tx public keys")
	flags.IntVar(&verifyRate, "rate", timestamp.DefaultRequestRate,
		"Maximum monerod requests per second")
	generateCmplFlags(cmd, verifyCmplCmd.Flags)
	return cmd
}()

var verifyCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags, timestampCmplFlags, dataCmplFlags),
	Sub:   complete.Commands{},
}

func validateVerifyFlags(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	if flags.Changed("txid") == flags.Changed("tx-hex") {
		return fmt.Errorf("exactly one of --txid or --tx-hex is required")
	}
	if flags.Changed("tx-hex") {
		if err := prohibited(flags, "rate"); err != nil {
			return err
		}
	}
	if verifyRate <= 0 {
		return fmt.Errorf("--rate must be positive")
	}
	return nil
}

func runVerify(cmd *cobra.Command, _ []string) error {
	digest, err := verifySource.Get(cmd.Flags())
	if err != nil {
		return err
	}
	stamper := timestamp.New(SpendKey)
	if verifyAll {
		stamper.KeyRange = monero.AllIndices
		stamper.OutputRange = monero.AllIndices
	}
	out := cmd.OutOrStdout()

	if len(verifyTxHex) > 0 {
		res, err := stamper.Verify(digest[:], verifyTxHex)
		if err != nil {
			return err
		}
		if !res.Matched {
			return errNoTimestamp
		}
		fmt.Fprintf(out, "timestamp found in outputs %v\n", res.Outputs)
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if len(verifyTxIDs) == 1 {
		return verifyTransaction(ctx, out, stamper, MoneroClient,
			digest, verifyTxIDs[0])
	}
	return verifyTransactions(ctx, out, stamper, MoneroClient,
		digest, verifyTxIDs, verifyRate)
}

var errNoTimestamp = errors.New("no timestamp: the transaction does not pay the commitment address")

// verifyTransaction reports a pending transaction before it reports whether
// it matches, since its outputs may still be replaced.
func verifyTransaction(ctx context.Context, out io.Writer,
	s timestamp.Stamper, f timestamp.Fetcher,
	digest timestamp.Digest, txID monero.Hash) error {
	ts, err := s.VerifyTransaction(ctx, f, digest[:], txID)
	if errors.Is(err, timestamp.ErrTransactionPending) {
		return fmt.Errorf("%w: wait for the transaction to be included in a block",
			err)
	}
	if err != nil {
		return err
	}
	if !ts.Matched {
		return errNoTimestamp
	}
	fmt.Fprintf(out, "timestamped at %v\n", formatBlock(ts))
	return nil
}

func verifyTransactions(ctx context.Context, out io.Writer,
	s timestamp.Stamper, f timestamp.Fetcher,
	digest timestamp.Digest, txIDs []monero.Hash, rate int) error {
	tss, err := s.VerifyTransactions(ctx, f, digest[:], txIDs, rate)
	if err != nil {
		return err
	}
	printTimestamps(out, tss)
	earliest, ok := timestamp.Earliest(tss)
	if !ok {
		return errNoTimestamp
	}
	fmt.Fprintf(out, "timestamped at %v\n", formatBlock(earliest))
	return nil
}

func printTimestamps(out io.Writer, tss []timestamp.Timestamp) {
	for _, ts := range tss {
		switch {
		case ts.Pending:
			fmt.Fprintf(out, "%v: pending\n", ts.TxID)
		case !ts.Matched:
			fmt.Fprintf(out, "%v: no timestamp\n", ts.TxID)
		default:
			fmt.Fprintf(out, "%v: %v\n", ts.TxID, formatBlock(ts))
		}
	}
}

func formatBlock(ts timestamp.Timestamp) string {
	if ts.BlockTime.IsZero() {
		return fmt.Sprintf("block height %v", ts.Height)
	}
	return fmt.Sprintf("block height %v (%v)", ts.Height,
		ts.BlockTime.Format(time.RFC3339))
}
