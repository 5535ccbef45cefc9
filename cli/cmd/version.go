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

	"github.com/canonical-ledgers/xmrts/api"
)

// versionCmd represents the version command
var versionCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the xmrts version and, with --xmrtsd, the daemon version",
		Args:  cobra.ExactArgs(0),
		RunE:  runVersion,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["version"] = versionCmplCmd
	rootCmplCmd.Sub["help"].Sub["version"] = complete.Command{Sub: complete.Commands{}}
	generateCmplFlags(cmd, versionCmplCmd.Flags)
	return cmd
}()

var versionCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Sub:   complete.Commands{},
}

func runVersion(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "xmrts:   %v\n", Revision)
	if len(XmrtsdClient.XmrtsdServer) == 0 {
		return nil
	}
	var properties api.ResultGetDaemonProperties
	if err := XmrtsdClient.Request("get-daemon-properties", nil,
		&properties); err != nil {
		return err
	}
	fmt.Fprintf(out, "xmrtsd:  %v\n", properties.XmrtsdVersion)
	fmt.Fprintf(out, "API:     %v\n", properties.APIVersion)
	fmt.Fprintf(out, "Network: %v\n", properties.Network)
	fmt.Fprintf(out, "Spend:   %v\n", properties.SpendKey)
	return nil
}
