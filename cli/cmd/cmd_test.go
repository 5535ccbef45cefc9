package cmd

import (
	"bytes"
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical-ledgers/xmrts/monero"
	"github.com/canonical-ledgers/xmrts/monero/monerotest"
	"github.com/canonical-ledgers/xmrts/timestamp"
)

var data = "hello, xmrts"

func commitment(t *testing.T, network monero.Network) monero.Address {
	digest := timestamp.DigestData([]byte(data))
	adr, err := timestamp.New(timestamp.SpendKeyZero).Commit(network, digest[:])
	require.NoError(t, err)
	return adr
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestHash(t *testing.T) {
	out, err := execute(t, "hash", "--data", data, "--network", "stagenet")
	require.NoError(t, err)
	adr := commitment(t, monero.Stagenet).String()
	assert.Equal(t, "send 0.000000000001 XMR to "+adr+
		" to save the timestamp on chain\n"+
		"monero:"+adr+"?tx_amount=0.000000000001\n", out)
}

type txFetcher map[monero.Hash]monero.TxLookup

func (f txFetcher) GetTransaction(_ context.Context,
	txID monero.Hash) (monero.TxLookup, error) {
	l, ok := f[txID]
	if !ok {
		return monero.TxLookup{}, monero.ErrTransactionNotFound
	}
	return l, nil
}

func (f txFetcher) add(t *testing.T, seed string, height uint64,
	pending bool, paid ...int) monero.Hash {
	adr := commitment(t, monero.Mainnet)
	r := monero.Ed25519.HashToScalar([]byte(seed))
	tx := monerotest.Payment(adr.ViewKey, adr.SpendKey, r, 2, paid...)
	l := monero.TxLookup{Hash: tx.Hash(), Blob: tx.Bytes(), InPool: pending}
	if !pending {
		l.Height = &height
		l.BlockTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	}
	f[l.Hash] = l
	return l.Hash
}

func TestVerifyTransaction(t *testing.T) {
	ctx := context.Background()
	digest := timestamp.DigestData([]byte(data))
	s := timestamp.New(timestamp.SpendKeyZero)
	f := make(txFetcher)

	confirmed := f.add(t, "confirmed", 3100000, false, 0)
	unrelated := f.add(t, "unrelated", 3100001, false)
	pendingMatch := f.add(t, "pending match", 0, true, 0)
	pendingOther := f.add(t, "pending other", 0, true)

	var out bytes.Buffer
	require.NoError(t, verifyTransaction(ctx, &out, s, f, digest, confirmed))
	assert.Equal(t,
		"timestamped at block height 3100000 (2024-05-01T12:00:00Z)\n",
		out.String())

	err := verifyTransaction(ctx, &out, s, f, digest, unrelated)
	assert.ErrorIs(t, err, errNoTimestamp)

	for _, txID := range []monero.Hash{pendingMatch, pendingOther} {
		err := verifyTransaction(ctx, &out, s, f, digest, txID)
		assert.ErrorIs(t, err, timestamp.ErrTransactionPending)
		assert.NotErrorIs(t, err, errNoTimestamp)
	}

	err = verifyTransaction(ctx, &out, s, f, digest, monero.Hash{1})
	assert.ErrorIs(t, err, monero.ErrTransactionNotFound)
}

func TestVerifyTransactions(t *testing.T) {
	ctx := context.Background()
	digest := timestamp.DigestData([]byte(data))
	s := timestamp.New(timestamp.SpendKeyZero)
	f := make(txFetcher)

	txIDs := []monero.Hash{
		f.add(t, "a", 3100005, false, 0),
		f.add(t, "b", 0, true, 0),
		f.add(t, "c", 3100001, false),
		f.add(t, "d", 3100002, false, 0),
	}
	var out bytes.Buffer
	require.NoError(t, verifyTransactions(ctx, &out, s, f, digest, txIDs, 100))
	assert.Equal(t, txIDs[0].String()+
		": block height 3100005 (2024-05-01T12:00:00Z)\n"+
		txIDs[1].String()+": pending\n"+
		txIDs[2].String()+": no timestamp\n"+
		txIDs[3].String()+": block height 3100002 (2024-05-01T12:00:00Z)\n"+
		"timestamped at block height 3100002 (2024-05-01T12:00:00Z)\n",
		out.String())

	out.Reset()
	err := verifyTransactions(ctx, &out, s, f, digest, txIDs[1:3], 100)
	assert.ErrorIs(t, err, errNoTimestamp)
}

func TestFormatBlock(t *testing.T) {
	assert.Equal(t, "block height 7",
		formatBlock(timestamp.Timestamp{Height: 7}))
}

func TestVerifyTxHex(t *testing.T) {
	adr := commitment(t, monero.Mainnet)
	r := monero.Ed25519.HashToScalar([]byte("r"))
	tx := monerotest.Payment(adr.ViewKey, adr.SpendKey, r, 2, 0)

	out, err := execute(t, "verify", "--data", data,
		"--tx-hex", hex.EncodeToString(tx.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "timestamp found in outputs [0]\n", out)
}

func TestAddress(t *testing.T) {
	adr := commitment(t, monero.Testnet)
	out, err := execute(t, "address", adr.String())
	require.NoError(t, err)
	assert.Contains(t, out, "Network:   testnet\n")
	assert.Contains(t, out, "View Key:  "+adr.ViewKey.String())
	assert.Contains(t, out, "Spend key is zero")

	_, err = execute(t, "address", adr.String()[1:])
	assert.ErrorIs(t, err, monero.ErrInvalidAddress)
}

func TestDataSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))
	want := timestamp.DigestData([]byte(data))

	for _, test := range []struct {
		Name  string
		Args  []string
		Error string
	}{{
		Name: "data",
		Args: []string{"--data", data},
	}, {
		Name: "file",
		Args: []string{"-f", path},
	}, {
		Name: "digest",
		Args: []string{"--digest", want.String()},
	}, {
		Name:  "none",
		Error: "one of --data, --file or --digest is required",
	}, {
		Name:  "data and digest",
		Args:  []string{"--data", data, "--digest", want.String()},
		Error: "may not be used together: --data, --digest",
	}, {
		Name:  "missing file",
		Args:  []string{"--file", path + ".missing"},
		Error: "no such file",
	}} {
		t.Run(test.Name, func(t *testing.T) {
			var src DataSource
			flags := src.Flags()
			require.NoError(t, flags.Parse(test.Args))
			digest, err := src.Get(flags)
			if len(test.Error) > 0 {
				require.Error(t, err)
				assert.Contains(t, err.Error(), test.Error)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, want, digest)
		})
	}
}

func TestTxIDList(t *testing.T) {
	a := strings.Repeat("ab", 32)
	b := strings.Repeat("cd", 32)
	var txIDs TxIDList
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.Var(&txIDs, "txid", "")
	require.NoError(t, flags.Parse([]string{"--txid", a + "," + b,
		"--txid", a}))
	require.Len(t, txIDs, 3)
	assert.Equal(t, a+","+b+","+a, txIDs.String())

	assert.Error(t, txIDs.Set("abcd"))
}

func TestTxHex(t *testing.T) {
	var tx TxHex
	require.NoError(t, tx.Set(" 0102ff "))
	assert.Equal(t, TxHex{1, 2, 0xff}, tx)
	assert.Error(t, tx.Set("xyz"))
	assert.Error(t, tx.Set(""))
}
