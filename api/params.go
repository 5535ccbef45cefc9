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

// Package api defines the params, results and errors of the xmrtsd JSON-RPC
// 2.0 API, and a Client for it.
package api

import (
	jrpc "github.com/AdamSLevy/jsonrpc2/v11"

	"github.com/canonical-ledgers/xmrts/monero"
	"github.com/canonical-ledgers/xmrts/timestamp"
)

type Params interface {
	IsValid() error
}

// ParamsData identifies the timestamped data either by the data itself or
// by its SHA-512 digest, and optionally overrides the daemon's default spend
// key.
type ParamsData struct {
	Data     *string             `json:"data,omitempty"`
	Digest   *timestamp.Digest   `json:"digest,omitempty"`
	SpendKey *timestamp.SpendKey `json:"spendkey,omitempty"`
}

func (p ParamsData) IsValid() error {
	if p.Data != nil && p.Digest != nil {
		return jrpc.InvalidParams(`cannot use "data" with "digest"`)
	}
	if p.Data == nil && p.Digest == nil {
		return jrpc.InvalidParams(`required: either "data" or "digest"`)
	}
	return nil
}

// GetDigest returns p.Digest or the digest of p.Data.
func (p ParamsData) GetDigest() timestamp.Digest {
	if p.Digest != nil {
		return *p.Digest
	}
	return timestamp.DigestData([]byte(*p.Data))
}

// GetSpendKey returns p.SpendKey, if set, or dflt.
func (p ParamsData) GetSpendKey(dflt timestamp.SpendKey) timestamp.SpendKey {
	if p.SpendKey != nil {
		return *p.SpendKey
	}
	return dflt
}

// ParamsCommit requests the commitment address of some data. Network
// defaults to the daemon's network.
type ParamsCommit struct {
	ParamsData
	Network *monero.Network `json:"network,omitempty"`
}

// ParamsVerify requests an offline scan of the raw transaction Tx.
type ParamsVerify struct {
	ParamsData
	Tx monero.Bytes `json:"tx"`
}

func (p ParamsVerify) IsValid() error {
	if err := p.ParamsData.IsValid(); err != nil {
		return err
	}
	if len(p.Tx) == 0 {
		return jrpc.InvalidParams(`required: "tx"`)
	}
	return nil
}

// ParamsVerifyTransaction requests that the daemon fetch and scan the
// transaction TxID.
type ParamsVerifyTransaction struct {
	ParamsData
	TxID *monero.Hash `json:"txid"`
}

func (p ParamsVerifyTransaction) IsValid() error {
	if err := p.ParamsData.IsValid(); err != nil {
		return err
	}
	if p.TxID == nil {
		return jrpc.InvalidParams(`required: "txid"`)
	}
	return nil
}

// ParamsVerifyTransactions requests that the daemon fetch and scan all of
// TxIDs.
type ParamsVerifyTransactions struct {
	ParamsData
	TxIDs []monero.Hash `json:"txids"`
}

// MaxTxIDs is the maximum number of txids accepted by verify-transactions.
const MaxTxIDs = 100

func (p ParamsVerifyTransactions) IsValid() error {
	if err := p.ParamsData.IsValid(); err != nil {
		return err
	}
	if len(p.TxIDs) == 0 {
		return jrpc.InvalidParams(`required: "txids"`)
	}
	if len(p.TxIDs) > MaxTxIDs {
		return jrpc.InvalidParams(`"txids" may not exceed 100 entries`)
	}
	return nil
}

type ParamsDecodeAddress struct {
	Address *string `json:"address"`
}

func (p ParamsDecodeAddress) IsValid() error {
	if p.Address == nil {
		return jrpc.InvalidParams(`required: "address"`)
	}
	return nil
}
