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

package srv

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	jrpc "github.com/AdamSLevy/jsonrpc2/v11"

	"github.com/canonical-ledgers/xmrts/api"
	"github.com/canonical-ledgers/xmrts/monero"
	"github.com/canonical-ledgers/xmrts/timestamp"
)

type methods struct {
	Config
}

func (m methods) methodMap() jrpc.MethodMap {
	methods := jrpc.MethodMap{
		"commit":              m.commit,
		"verify":              m.verify,
		"verify-transaction":  m.verifyTransaction,
		"verify-transactions": m.verifyTransactions,
		"decode-address":      decodeAddress,

		"get-daemon-properties": m.getDaemonProperties,
		"get-sync-status":       m.getSyncStatus,
	}
	for name, f := range methods {
		methods[name] = instrument(name, f)
	}
	return methods
}

func (m methods) context() (context.Context, context.CancelFunc) {
	if m.Timeout > 0 {
		return context.WithTimeout(context.Background(), m.Timeout)
	}
	return context.WithCancel(context.Background())
}

func (m methods) commit(data json.RawMessage) interface{} {
	params := api.ParamsCommit{}
	if err := validate(data, &params); err != nil {
		return err
	}
	network := m.Network
	if params.Network != nil {
		network = *params.Network
	}
	spend := params.GetSpendKey(m.SpendKey)
	digest := params.GetDigest()
	adr, err := timestamp.New(spend).Commit(network, digest[:])
	if err != nil {
		return jrpcError(err)
	}
	prometheusCommits.Inc()
	return api.ResultCommit{Address: adr, Digest: digest,
		Network: network, SpendKey: spend}
}

func (m methods) verify(data json.RawMessage) interface{} {
	params := api.ParamsVerify{}
	if err := validate(data, &params); err != nil {
		return err
	}
	tx, err := monero.DecodeTransaction(params.Tx)
	if err != nil {
		return jrpcError(err)
	}
	digest := params.GetDigest()
	s := timestamp.New(params.GetSpendKey(m.SpendKey))
	res, err := s.VerifyDecoded(digest[:], &tx)
	if err != nil {
		return jrpcError(err)
	}
	countResult(res.Matched, false)
	return api.ResultVerify{Result: res, TxID: tx.Hash}
}

func (m methods) verifyTransaction(data json.RawMessage) interface{} {
	params := api.ParamsVerifyTransaction{}
	if err := validate(data, &params); err != nil {
		return err
	}
	ctx, cancel := m.context()
	defer cancel()
	digest := params.GetDigest()
	s := timestamp.New(params.GetSpendKey(m.SpendKey))
	ts, err := s.VerifyTransaction(ctx, m.Node, digest[:], *params.TxID)
	if errors.Is(err, timestamp.ErrTransactionPending) {
		countResult(ts.Matched, true)
		err := api.ErrorTransactionPending
		err.Data = ts
		return err
	}
	if err != nil {
		return jrpcError(err)
	}
	countResult(ts.Matched, false)
	return api.ResultVerifyTransaction(ts)
}

func (m methods) verifyTransactions(data json.RawMessage) interface{} {
	params := api.ParamsVerifyTransactions{}
	if err := validate(data, &params); err != nil {
		return err
	}
	ctx, cancel := m.context()
	defer cancel()
	digest := params.GetDigest()
	s := timestamp.New(params.GetSpendKey(m.SpendKey))
	timestamps, err := s.VerifyTransactions(ctx, m.Node, digest[:],
		params.TxIDs, m.RequestRate)
	if err != nil {
		return jrpcError(err)
	}
	res := api.ResultVerifyTransactions{Timestamps: timestamps}
	for _, ts := range timestamps {
		countResult(ts.Matched, ts.Pending)
	}
	if earliest, ok := timestamp.Earliest(timestamps); ok {
		res.Earliest = &earliest
	}
	return res
}

func decodeAddress(data json.RawMessage) interface{} {
	params := api.ParamsDecodeAddress{}
	if err := validate(data, &params); err != nil {
		return err
	}
	adr, err := monero.ParseAddress(*params.Address)
	if err != nil {
		return jrpcError(err)
	}
	return api.ResultDecodeAddress{Network: adr.Network,
		SpendKey: adr.SpendKey, ViewKey: adr.ViewKey}
}

func (m methods) getDaemonProperties(data json.RawMessage) interface{} {
	if err := validate(data, nil); err != nil {
		return err
	}
	return api.ResultGetDaemonProperties{
		XmrtsdVersion: m.Version,
		APIVersion:    api.APIVersion,
		Network:       m.Network,
		SpendKey:      m.SpendKey,
	}
}

func (m methods) getSyncStatus(data json.RawMessage) interface{} {
	if err := validate(data, nil); err != nil {
		return err
	}
	info, err := m.Node.GetInfo()
	if err != nil {
		return jrpcError(err)
	}
	return api.ResultGetSyncStatus{Height: info.Height,
		Network: info.NetType, Synced: info.Synced}
}

// jrpcError maps the errors of the monero and timestamp packages to JSON-RPC
// errors.
func jrpcError(err error) jrpc.Error {
	var rpcErr jrpc.Error
	var e jrpc.Error
	switch {
	case errors.As(err, &rpcErr):
		// monerod returned an error for a request it could not serve.
		log.Errorf("monerod: %v", rpcErr)
		e = api.ErrorDaemonUnavailable
	case errors.Is(err, monero.ErrInvalidInputLength),
		errors.Is(err, monero.ErrInvalidNetwork):
		return jrpc.InvalidParams(err.Error())
	case errors.Is(err, timestamp.ErrTransactionPending):
		e = api.ErrorTransactionPending
	case errors.Is(err, monero.ErrInvalidAddress):
		e = api.ErrorInvalidAddress
	case errors.Is(err, monero.ErrTransactionNotFound):
		e = api.ErrorTransactionNotFound
	case errors.Is(err, monero.ErrMalformedTransaction):
		e = api.ErrorMalformedTransaction
	case errors.Is(err, monero.ErrTransport):
		log.Errorf("monerod: %v", err)
		e = api.ErrorDaemonUnavailable
	case errors.Is(err, monero.ErrInvalidKey):
		e = api.ErrorInvalidKey
	default:
		log.Errorf("unexpected error: %v", err)
		return jrpc.Error{Code: -32603, Message: "Internal error"}
	}
	e.Data = err.Error()
	return e
}

func validate(data json.RawMessage, params api.Params) error {
	if params == nil {
		if len(data) > 0 && !bytes.Equal(data, []byte("null")) {
			return jrpc.InvalidParams(`no "params" accepted`)
		}
		return nil
	}
	if len(data) == 0 {
		return params.IsValid()
	}
	if err := unmarshalStrict(data, params); err != nil {
		return jrpc.InvalidParams(err.Error())
	}
	return params.IsValid()
}

func unmarshalStrict(data []byte, v interface{}) error {
	b := bytes.NewBuffer(data)
	d := json.NewDecoder(b)
	d.DisallowUnknownFields()
	return d.Decode(v)
}
