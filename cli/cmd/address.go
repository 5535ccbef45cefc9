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
)

// addressCmd represents the address command
var addressCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "address ADDRESS",
		Short:                 "Decode a Monero standard address",
		Long: `
Decode a Monero standard address and print its network and public keys.

The spend key of a commitment address is either the zero key or equal to the
view key, depending on the --spend-key used to derive it.
`[1:],
		Args: cobra.ExactArgs(1),
		RunE: runAddress,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["address"] = addressCmplCmd
	rootCmplCmd.Sub["help"].Sub["address"] = complete.Command{Sub: complete.Commands{}}
	generateCmplFlags(cmd, addressCmplCmd.Flags)
	return cmd
}()

var addressCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Sub:   complete.Commands{},
}

func runAddress(cmd *cobra.Command, args []string) error {
	adr, err := monero.ParseAddress(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Network:   %v\n", adr.Network)
	fmt.Fprintf(out, "Spend Key: %v\n", adr.SpendKey)
	fmt.Fprintf(out, "View Key:  %v\n", adr.ViewKey)
	switch adr.SpendKey {
	case monero.ZeroPublicKey:
		fmt.Fprintln(out, "Spend key is zero: this may be a commitment address")
	case adr.ViewKey:
		fmt.Fprintln(out, "Spend key is the view key: this may be a commitment address")
	}
	return nil
}
