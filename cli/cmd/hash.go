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
	"fmt"

	"github.com/posener/complete"
	"github.com/spf13/cobra"

	"github.com/canonical-ledgers/xmrts/monero"
	"github.com/canonical-ledgers/xmrts/timestamp"
)

var hashSource DataSource

// hashCmd represents the hash command
var hashCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use: `
hash --data DATA | --file FILE | --digest DIGEST
        [--network NETWORK] [--spend-key zero|view]`[1:],
		Aliases: []string{"commit"},
		Short:   "Derive the commitment address of some data",
		Long: `
Derive the Monero address that commits to some data.

The data is hashed with SHA-512 and the digest is reduced to the private view
key of the address. Paying any amount to the address timestamps the data at
the height of the block containing the payment. A monero: payment URI for the
smallest amount is printed for wallets and QR codes.

The same --spend-key must be used to verify the timestamp later.
`[1:],
		Args: cobra.ExactArgs(0),
		RunE: runHash,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["hash"] = hashCmplCmd
	rootCmplCmd.Sub["help"].Sub["hash"] = complete.Command{Sub: complete.Commands{}}

	cmd.Flags().AddFlagSet(hashSource.Flags())
	generateCmplFlags(cmd, hashCmplCmd.Flags)
	return cmd
}()

var hashCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags, timestampCmplFlags, dataCmplFlags),
	Sub:   complete.Commands{},
}

func runHash(cmd *cobra.Command, _ []string) error {
	digest, err := hashSource.Get(cmd.Flags())
	if err != nil {
		return err
	}
	adr, err := timestamp.New(SpendKey).Commit(Network, digest[:])
	if err != nil {
		return err
	}
	if Debug {
		fmt.Fprintf(cmd.ErrOrStderr(), "digest: %v\n", digest)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "send %v XMR to %v to save the timestamp on chain\n",
		minAmount, adr)
	fmt.Fprintln(out, paymentURI(adr))
	return nil
}

// minAmount is one piconero, the smallest payable amount.
const minAmount = "0.000000000001"

// paymentURI returns a monero: URI that wallets and QR code generators accept.
func paymentURI(adr monero.Address) string {
	return fmt.Sprintf("monero:%v?tx_amount=%v", adr, minAmount)
}
