package monero_test

import (
	"crypto/sha512"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical-ledgers/xmrts/monero"
	"github.com/canonical-ledgers/xmrts/monero/monerotest"
)

type scanKeys struct {
	View      monero.PrivateKey
	ViewPub   monero.PublicKey
	Spend     monero.PublicKey
	TxPrivate monero.PrivateKey
}

func newScanKeys(t *testing.T, data string) scanKeys {
	digest := sha512.Sum512([]byte(data))
	view, viewPub, err := monero.Ed25519.DeriveKeys(digest[:])
	require.NoError(t, err)
	return scanKeys{
		View:      view,
		ViewPub:   viewPub,
		Spend:     monero.ZeroPublicKey,
		TxPrivate: monero.Ed25519.HashToScalar([]byte(data), []byte("tx")),
	}
}

func (k scanKeys) payment(n int, paid ...int) *monero.Transaction {
	tx, err := monero.DecodeTransaction(
		monerotest.Payment(k.ViewPub, k.Spend, k.TxPrivate, n, paid...).Bytes())
	if err != nil {
		panic(err)
	}
	return &tx
}

func TestScan(t *testing.T) {
	p := monero.Ed25519
	k := newScanKeys(t, "scan")

	tests := []struct {
		Name     string
		Tx       *monero.Transaction
		Keys     monero.Range
		Outputs  monero.Range
		Expected []int
	}{{
		Name:     "output 0",
		Tx:       k.payment(2, 0),
		Keys:     monero.FirstOnly,
		Outputs:  monero.FirstOnly,
		Expected: []int{0},
	}, {
		Name:    "no match",
		Tx:      k.payment(2),
		Keys:    monero.AllIndices,
		Outputs: monero.AllIndices,
	}, {
		Name:    "output 1 restricted",
		Tx:      k.payment(2, 1),
		Keys:    monero.FirstOnly,
		Outputs: monero.FirstOnly,
	}, {
		Name:     "output 1 unrestricted",
		Tx:       k.payment(2, 1),
		Keys:     monero.FirstOnly,
		Outputs:  monero.AllIndices,
		Expected: []int{1},
	}, {
		Name:     "many outputs",
		Tx:       k.payment(5, 4, 0, 2),
		Keys:     monero.AllIndices,
		Outputs:  monero.AllIndices,
		Expected: []int{0, 2, 4},
	}, {
		Name:     "output window",
		Tx:       k.payment(5, 4, 0, 2),
		Keys:     monero.AllIndices,
		Outputs:  monero.Range{Start: 1, End: 3},
		Expected: []int{2},
	}, {
		Name:    "empty window",
		Tx:      k.payment(2, 0),
		Keys:    monero.AllIndices,
		Outputs: monero.Range{Start: 5, End: 2},
	}, {
		Name:    "no tx keys selected",
		Tx:      k.payment(2, 0),
		Keys:    monero.Range{Start: 1, End: 2},
		Outputs: monero.AllIndices,
	}, {
		Name:    "no tx public key",
		Tx:      &monero.Transaction{Outputs: k.payment(1, 0).Outputs},
		Keys:    monero.AllIndices,
		Outputs: monero.AllIndices,
	}}
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			matches, err := p.Scan(k.View, k.Spend, test.Tx,
				test.Keys, test.Outputs)
			require.NoError(t, err)
			assert.Equal(t, test.Expected, matches)
		})
	}
}

func TestScanWrongKeys(t *testing.T) {
	p := monero.Ed25519
	k := newScanKeys(t, "owner")
	tx := k.payment(1, 0)

	other := newScanKeys(t, "other")
	matches, err := p.Scan(other.View, k.Spend, tx,
		monero.AllIndices, monero.AllIndices)
	require.NoError(t, err)
	assert.Empty(t, matches)

	// The view key alone is not enough, the spend key must match too.
	matches, err = p.Scan(k.View, k.ViewPub, tx,
		monero.AllIndices, monero.AllIndices)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestScanSpendKey(t *testing.T) {
	k := newScanKeys(t, "spend")
	k.Spend = k.ViewPub
	matches, err := monero.Ed25519.Scan(k.View, k.Spend, k.payment(3, 0),
		monero.FirstOnly, monero.FirstOnly)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, matches)
}

func TestScanSecondTxKey(t *testing.T) {
	p := monero.Ed25519
	k := newScanKeys(t, "second key")
	tx := k.payment(2, 1)
	// Put an unrelated key first, and an invalid one last.
	tx.ExtraFields = append([]monero.ExtraField{
		monero.ExtraTxPublicKey{Key: monerotest.Key(99)}},
		append(tx.ExtraFields, monero.ExtraTxPublicKey{
			Key: monero.PublicKey{2}})...)

	matches, err := p.Scan(k.View, k.Spend, tx,
		monero.FirstOnly, monero.AllIndices)
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = p.Scan(k.View, k.Spend, tx,
		monero.AllIndices, monero.AllIndices)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, matches)
}

func TestScanInvalidKeys(t *testing.T) {
	p := monero.Ed25519
	k := newScanKeys(t, "invalid")
	tx := k.payment(1, 0)

	_, err := p.Scan(monero.PrivateKey(p.Order), k.Spend, tx,
		monero.FirstOnly, monero.FirstOnly)
	assert.ErrorIs(t, err, monero.ErrInvalidKey)

	_, err = p.Scan(k.View, monero.PublicKey{2}, tx,
		monero.FirstOnly, monero.FirstOnly)
	assert.ErrorIs(t, err, monero.ErrInvalidKey)

	// Output keys that are not points never match.
	tx.Outputs[0].Target = monero.TxOutToKey{Key: monero.PublicKey{2}}
	matches, err := p.Scan(k.View, k.Spend, tx,
		monero.FirstOnly, monero.FirstOnly)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestDeriveOutputKey(t *testing.T) {
	p := monero.Ed25519
	k := newScanKeys(t, "derive")
	R, err := p.PublicKey(k.TxPrivate)
	require.NoError(t, err)

	// The receiver's derivation 8*a*R equals the sender's 8*r*A.
	receiver, err := p.DeriveOutputKey(k.View, R, 3, k.Spend)
	require.NoError(t, err)
	sender, err := p.DeriveOutputKey(k.TxPrivate, k.ViewPub, 3, k.Spend)
	require.NoError(t, err)
	assert.Equal(t, receiver, sender)

	other, err := p.DeriveOutputKey(k.View, R, 4, k.Spend)
	require.NoError(t, err)
	assert.NotEqual(t, receiver, other)
}
