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

package api

import jrpc "github.com/AdamSLevy/jsonrpc2/v11"

var (
	ErrorInvalidAddress = jrpc.Error{Code: -32801, Message: "Invalid Address",
		Data: "address is not a valid standard Monero address"}
	ErrorTransactionNotFound = jrpc.Error{Code: -32802,
		Message: "Transaction Not Found",
		Data:    "no matching txid was found by monerod"}
	ErrorMalformedTransaction = jrpc.Error{Code: -32803,
		Message: "Malformed Transaction"}
	ErrorDaemonUnavailable = jrpc.Error{Code: -32804,
		Message: "Monero Daemon Unavailable"}
	ErrorTransactionPending = jrpc.Error{Code: -32805,
		Message: "Transaction Pending",
		Data:    "transaction is not yet included in a block"}
	ErrorInvalidKey = jrpc.Error{Code: -32806, Message: "Invalid Key"}
)
