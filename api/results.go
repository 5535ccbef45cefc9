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

import (
	"github.com/canonical-ledgers/xmrts/monero"
	"github.com/canonical-ledgers/xmrts/timestamp"
)

const APIVersion = "1"

type ResultCommit struct {
	Address  monero.Address     `json:"address"`
	Digest   timestamp.Digest   `json:"digest"`
	Network  monero.Network     `json:"network"`
	SpendKey timestamp.SpendKey `json:"spendkey"`
}

type ResultVerify struct {
	timestamp.Result
	TxID monero.Hash `json:"txid"`
}

type ResultVerifyTransaction = timestamp.Timestamp

type ResultVerifyTransactions struct {
	Timestamps []timestamp.Timestamp `json:"timestamps"`
	// Earliest is the matched transaction in the lowest block, if any.
	Earliest *timestamp.Timestamp `json:"earliest,omitempty"`
}

type ResultDecodeAddress struct {
	Network  monero.Network   `json:"network"`
	SpendKey monero.PublicKey `json:"spendkey"`
	ViewKey  monero.PublicKey `json:"viewkey"`
}

type ResultGetDaemonProperties struct {
	XmrtsdVersion string             `json:"xmrtsdversion"`
	APIVersion    string             `json:"apiversion"`
	Network       monero.Network     `json:"network"`
	SpendKey      timestamp.SpendKey `json:"spendkey"`
}

type ResultGetSyncStatus struct {
	Height  uint64 `json:"height"`
	Network string `json:"nettype"`
	Synced  bool   `json:"synchronized"`
}
