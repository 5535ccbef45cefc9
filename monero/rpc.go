package monero

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

// Info is the subset of monerod's get_info result used to identify the node.
type Info struct {
	Height  uint64 `json:"height"`
	NetType string `json:"nettype"`
	Version string `json:"version"`
	Synced  bool   `json:"synchronized"`
	Status  string `json:"status"`
}

// GetInfo queries monerod's get_info JSON-RPC method.
func (c *Client) GetInfo() (Info, error) {
	var info Info
	if err := c.DaemonRequest("get_info", nil, &info); err != nil {
		return Info{}, err
	}
	if info.Status != "" && info.Status != "OK" {
		return Info{}, fmt.Errorf("%w: get_info: status %q",
			ErrTransport, info.Status)
	}
	return info, nil
}

// Network returns the Network reported by the node.
func (info Info) Network() (Network, error) {
	var n Network
	if err := n.Set(info.NetType); err != nil {
		return 0, err
	}
	return n, nil
}

// TxLookup is a transaction returned by monerod along with its position in
// the chain.
type TxLookup struct {
	Hash   Hash
	Blob   Bytes
	Height *uint64
	// BlockTime is the timestamp of the block containing the
	// transaction. It is zero for pending transactions.
	BlockTime time.Time
	InPool    bool
}

// IsPending returns true if the transaction has not yet been included in a
// block.
func (l TxLookup) IsPending() bool {
	return l.InPool || l.Height == nil
}

type getTransactionsRequest struct {
	Hashes       []Hash `json:"txs_hashes"`
	DecodeAsJSON bool   `json:"decode_as_json"`
	Prune        bool   `json:"prune"`
}

type getTransactionsEntry struct {
	Hash           Hash    `json:"tx_hash"`
	AsHex          string  `json:"as_hex"`
	PrunedAsHex    string  `json:"pruned_as_hex"`
	PrunableAsHex  string  `json:"prunable_as_hex"`
	BlockHeight    *uint64 `json:"block_height"`
	BlockTimestamp uint64  `json:"block_timestamp"`
	InPool         bool    `json:"in_pool"`
}

type getTransactionsResponse struct {
	Txs     []getTransactionsEntry `json:"txs"`
	Missed  []Hash                 `json:"missed_tx"`
	Status  string                 `json:"status"`
	Untrust bool                   `json:"untrusted"`
}

func (e getTransactionsEntry) blob() (Bytes, error) {
	hexBlob := e.AsHex
	if len(hexBlob) == 0 {
		// Some nodes only return the pruned and prunable parts.
		hexBlob = e.PrunedAsHex + e.PrunableAsHex
	}
	blob, err := hex.DecodeString(hexBlob)
	if err != nil {
		return nil, fmt.Errorf("%w: tx %v: invalid hex blob: %v",
			ErrTransport, e.Hash, err)
	}
	return blob, nil
}

// GetTransactions fetches the full transaction blobs for hashes from
// monerod's /get_transactions endpoint. Any hash that the node does not know
// results in an error wrapping ErrTransactionNotFound.
func (c *Client) GetTransactions(ctx context.Context,
	hashes ...Hash) ([]TxLookup, error) {
	if len(hashes) == 0 {
		return nil, nil
	}
	var res getTransactionsResponse
	err := c.daemonPost(ctx, "/get_transactions",
		getTransactionsRequest{Hashes: hashes}, &res)
	if err != nil {
		return nil, err
	}
	if len(res.Missed) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrTransactionNotFound, res.Missed[0])
	}
	if res.Status != "OK" {
		return nil, fmt.Errorf("%w: get_transactions: status %q",
			ErrTransport, res.Status)
	}

	found := make(map[Hash]TxLookup, len(res.Txs))
	for _, e := range res.Txs {
		blob, err := e.blob()
		if err != nil {
			return nil, err
		}
		l := TxLookup{Hash: e.Hash, Blob: blob, InPool: e.InPool}
		if e.BlockHeight != nil && *e.BlockHeight != math.MaxUint64 &&
			!e.InPool {
			height := *e.BlockHeight
			l.Height = &height
			if e.BlockTimestamp > 0 {
				l.BlockTime = time.Unix(int64(e.BlockTimestamp), 0).UTC()
			}
		}
		found[e.Hash] = l
	}

	txs := make([]TxLookup, len(hashes))
	for i, hash := range hashes {
		l, ok := found[hash]
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrTransactionNotFound, hash)
		}
		txs[i] = l
	}
	return txs, nil
}

// GetTransaction fetches a single transaction by hash.
func (c *Client) GetTransaction(ctx context.Context, hash Hash) (TxLookup, error) {
	txs, err := c.GetTransactions(ctx, hash)
	if err != nil {
		return TxLookup{}, err
	}
	return txs[0], nil
}

// daemonPost makes a plain JSON POST to one of monerod's non JSON-RPC
// endpoints using the http.Client embedded in c.Daemon.
func (c *Client) daemonPost(ctx context.Context, path string,
	params, result interface{}) error {
	reqBytes, err := json.Marshal(params)
	if err != nil {
		return err
	}
	url := c.DaemonServer + path
	if c.Daemon.DebugRequest {
		fmt.Println("monerod:", url, string(reqBytes))
	}
	_, err = c.execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url,
			bytes.NewReader(reqBytes))
		if err != nil {
			return nil, err
		}
		req.Header.Add("Content-Type", "application/json")
		res, err := c.Daemon.Client.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("http: %v", res.Status)
		}
		resBytes, err := io.ReadAll(res.Body)
		if err != nil {
			return nil, fmt.Errorf("io.ReadAll(http.Response.Body): %v", err)
		}
		if c.Daemon.DebugRequest {
			fmt.Println("monerod:", string(resBytes))
		}
		if err := json.Unmarshal(resBytes, result); err != nil {
			return nil, fmt.Errorf("json.Unmarshal(): %v", err)
		}
		return nil, nil
	})
	return err
}
