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
	"github.com/posener/complete"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
)

// Complete runs the CLI completion.
func Complete() bool {
	return completion.Complete()
}

// generateCmplFlags adds completion for all cmd.Flags() not already present in
// cmplFlags.
func generateCmplFlags(cmd *cobra.Command, cmplFlags complete.Flags) {
	// Due to a bug in cobra.Command.Flags(), we must call LocalFlags()
	// first to get any parent flags merged into cmd.Flags().
	// https://github.com/spf13/cobra/issues/412
	cmd.LocalFlags()
	cmd.Flags().VisitAll(func(flg *flag.Flag) {
		name := "--" + flg.Name
		if _, ok := cmplFlags[name]; ok {
			return
		}
		var predict complete.Predictor = complete.PredictAnything
		if flg.Value.Type() == "bool" {
			predict = complete.PredictNothing
		}
		cmplFlags[name] = predict
		if len(flg.Shorthand) > 0 {
			cmplFlags["-"+flg.Shorthand] = predict
		}
	})
}

// mergeFlags returns a new complete.Flags that merges all flgs.
func mergeFlags(flgs ...complete.Flags) complete.Flags {
	var size int
	for _, flg := range flgs {
		size += len(flg)
	}
	f := make(complete.Flags, size)
	for _, flg := range flgs {
		for k, v := range flg {
			f[k] = v
		}
	}
	return f
}
