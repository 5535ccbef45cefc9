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

	"github.com/canonical-ledgers/xmrts/monero"
	"github.com/canonical-ledgers/xmrts/timestamp"
)

var PredictNetwork = func() complete.Predictor {
	names := make([]string, len(monero.Networks))
	for i, n := range monero.Networks {
		names[i] = n.String()
	}
	return complete.PredictSet(names...)
}()

var PredictSpendKey = func() complete.Predictor {
	names := make([]string, len(timestamp.SpendKeys))
	for i, s := range timestamp.SpendKeys {
		names[i] = s.String()
	}
	return complete.PredictSet(names...)
}()

var dataCmplFlags = complete.Flags{
	"--file": complete.PredictFiles("*"),
	"-f":     complete.PredictFiles("*"),
}
