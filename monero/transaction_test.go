package monero_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical-ledgers/xmrts/monero"
	"github.com/canonical-ledgers/xmrts/monero/monerotest"
)

func coinbase(ringCT monero.RingCTType) monerotest.Tx {
	return monerotest.Tx{
		Version:    2,
		UnlockTime: 60 + 3000000,
		Inputs:     []monero.TxIn{monero.TxInGen{Height: 3000000}},
		Outputs: []monero.TxOut{{
			Amount: 600000000000,
			Target: monero.TxOutToTaggedKey{Key: monerotest.Key(1),
				ViewTag: 0x7f},
		}},
		Extra:  monerotest.ExtraTxPublicKeys(monerotest.Key(2)),
		RingCT: ringCT,
	}
}

var transactionTests = []struct {
	Name string
	Tx   monerotest.Tx
}{{
	Name: "v2 coinbase",
	Tx:   coinbase(monero.RingCTNull),
}, {
	Name: "v1 coinbase",
	Tx: monerotest.Tx{
		Version:    1,
		UnlockTime: 60,
		Inputs:     []monero.TxIn{monero.TxInGen{Height: 1}},
		Outputs: []monero.TxOut{{
			Amount: 17592186044415,
			Target: monero.TxOutToKey{Key: monerotest.Key(3)},
		}},
		Extra: monerotest.ExtraTxPublicKeys(monerotest.Key(4)),
	},
}, {
	Name: "v1 ring signatures",
	Tx: monerotest.Tx{
		Version: 1,
		Inputs: []monero.TxIn{
			monero.TxInToKey{Amount: 1000, KeyOffsets: []uint64{1, 2, 3},
				KeyImage: monerotest.Key(5)},
			monero.TxInToKey{Amount: 1, KeyOffsets: []uint64{9},
				KeyImage: monerotest.Key(6)},
		},
		Outputs: []monero.TxOut{
			{Amount: 900, Target: monero.TxOutToKey{Key: monerotest.Key(7)}},
			{Amount: 100, Target: monero.TxOutToKey{Key: monerotest.Key(8)}},
		},
		Extra: monerotest.ExtraTxPublicKeys(monerotest.Key(9)),
	},
}, {
	Name: "full",
	Tx: monerotest.Tx{
		Version: 2,
		Inputs:  []monero.TxIn{monerotest.Spend(5, 4), monerotest.Spend(5, 5)},
		Outputs: []monero.TxOut{
			{Target: monero.TxOutToKey{Key: monerotest.Key(18)}},
			{Target: monero.TxOutToKey{Key: monerotest.Key(19)}},
			{Target: monero.TxOutToKey{Key: monerotest.Key(20)}},
		},
		Extra:  monerotest.ExtraTxPublicKeys(monerotest.Key(21)),
		RingCT: monero.RingCTFull,
		Fee:    40000000000,
	},
}, {
	Name: "simple",
	Tx: monerotest.Tx{
		Version: 2,
		Inputs: []monero.TxIn{monerotest.Spend(3, 6), monerotest.Spend(3, 7),
			monerotest.Spend(3, 8)},
		Outputs: []monero.TxOut{
			{Target: monero.TxOutToKey{Key: monerotest.Key(22)}},
			{Target: monero.TxOutToKey{Key: monerotest.Key(23)}},
		},
		Extra:  monerotest.ExtraTxPublicKeys(monerotest.Key(24)),
		RingCT: monero.RingCTSimple,
		Fee:    20000000000,
	},
}, {
	Name: "bulletproof",
	Tx: monerotest.Tx{
		Version: 2,
		Inputs:  []monero.TxIn{monerotest.Spend(7, 9)},
		Outputs: []monero.TxOut{
			{Target: monero.TxOutToKey{Key: monerotest.Key(25)}},
			{Target: monero.TxOutToKey{Key: monerotest.Key(26)}},
		},
		Extra:  monerotest.ExtraTxPublicKeys(monerotest.Key(27)),
		RingCT: monero.RingCTBulletproof,
		Fee:    900000000,
	},
}, {
	Name: "bulletproof2",
	Tx: monerotest.Tx{
		Version: 2,
		Inputs:  []monero.TxIn{monerotest.Spend(11, 1), monerotest.Spend(11, 2)},
		Outputs: []monero.TxOut{
			{Target: monero.TxOutToKey{Key: monerotest.Key(10)}},
			{Target: monero.TxOutToKey{Key: monerotest.Key(11)}},
		},
		Extra:  monerotest.ExtraTxPublicKeys(monerotest.Key(12)),
		RingCT: monero.RingCTBulletproof2,
		Fee:    12345678,
	},
}, {
	Name: "clsag",
	Tx: monerotest.Payment(monerotest.Key(13), monerotest.Key(14),
		monero.Ed25519.HashToScalar([]byte("r")), 2, 0),
}, {
	Name: "bulletproof+",
	Tx: monerotest.Tx{
		Version: 2,
		Inputs:  []monero.TxIn{monerotest.Spend(16, 3)},
		Outputs: []monero.TxOut{
			{Target: monero.TxOutToTaggedKey{Key: monerotest.Key(15), ViewTag: 1}},
			{Target: monero.TxOutToTaggedKey{Key: monerotest.Key(16), ViewTag: 2}},
		},
		Extra:  monerotest.ExtraTxPublicKeys(monerotest.Key(17)),
		RingCT: monero.RingCTBulletproofPlus,
		Fee:    30720000,
	},
}}

func TestDecodeTransaction(t *testing.T) {
	for _, test := range transactionTests {
		t.Run(test.Name, func(t *testing.T) {
			require := require.New(t)
			expected := test.Tx
			tx, err := monero.DecodeTransaction(expected.Bytes())
			require.NoError(err)

			assert := assert.New(t)
			assert.Equal(expected.Version, tx.Version)
			assert.Equal(expected.UnlockTime, tx.UnlockTime)
			assert.Equal(expected.Inputs, tx.Inputs)
			assert.Equal(expected.Outputs, tx.Outputs)
			assert.Equal(monero.Bytes(expected.Extra), tx.Extra)
			assert.Equal(expected.RingCT, tx.RingCT)
			assert.Equal(expected.Fee, tx.Fee)
			assert.Equal(expected.Hash(), tx.Hash)
			assert.Len(tx.TxPublicKeys(), 1)

			keys := tx.OutputKeys()
			require.Len(keys, len(expected.Outputs))
			for i, out := range expected.Outputs {
				assert.Equal(out.Target.OutputKey(), keys[i])
			}
		})
	}
}

func TestDecodeTransactionTruncated(t *testing.T) {
	for _, test := range transactionTests {
		t.Run(test.Name, func(t *testing.T) {
			data := test.Tx.Bytes()
			for n := 0; n < len(data); n++ {
				var tx monero.Transaction
				assert.NotPanics(t, func() {
					err := tx.UnmarshalBinary(data[:n])
					assert.ErrorIsf(t, err,
						monero.ErrMalformedTransaction,
						"length: %v", n)
				})
				assert.Equalf(t, monero.Transaction{}, tx, "length: %v", n)
			}
		})
	}
}

func TestDecodeTransactionTrailingData(t *testing.T) {
	for _, test := range transactionTests {
		data := append(test.Tx.Bytes(), 0)
		_, err := monero.DecodeTransaction(data)
		assert.ErrorIsf(t, err, monero.ErrMalformedTransaction, test.Name)
	}
}

func TestDecodeTransactionInvalid(t *testing.T) {
	valid := coinbase(monero.RingCTNull).Bytes()
	tests := []struct {
		Name string
		Data []byte
	}{{
		Name: "empty",
	}, {
		Name: "version 0",
		Data: append([]byte{0}, valid[1:]...),
	}, {
		Name: "version 3",
		Data: append([]byte{3}, valid[1:]...),
	}, {
		Name: "non-canonical varint",
		Data: append([]byte{0x82, 0x00}, valid[1:]...),
	}, {
		Name: "overlong varint",
		Data: []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
			0xff, 0x01},
	}, {
		Name: "huge input count",
		Data: []byte{2, 0, 0xff, 0xff, 0xff, 0xff, 0x0f},
	}, {
		Name: "unknown input tag",
		Data: []byte{2, 0, 1, 0x03, 0},
	}, {
		Name: "to_script input",
		Data: []byte{2, 0, 1, 0x00, 0},
	}, {
		Name: "empty ring",
		Data: append([]byte{2, 0, 1, 0x02, 0, 0}, make([]byte, 64)...),
	}, {
		Name: "unknown rct type",
		Data: append(append([]byte{}, valid[:len(valid)-1]...), 7),
	}}
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			_, err := monero.DecodeTransaction(test.Data)
			assert.ErrorIs(t, err, monero.ErrMalformedTransaction)
		})
	}
}

func TestDecodeTransactionUnknownOutputTag(t *testing.T) {
	tx := coinbase(monero.RingCTNull)
	data := tx.Bytes()
	// The output tag precedes the key, the view tag, the extra length and
	// the extra field.
	i := len(tx.Prefix()) - len(tx.Extra) - 1 - 1 - monero.KeySize - 1
	require.Equal(t, byte(0x03), data[i])
	data[i] = 0x04
	_, err := monero.DecodeTransaction(data)
	assert.ErrorIs(t, err, monero.ErrMalformedTransaction)
}

// The miner transaction of the mainnet genesis block.
const genesisTx = "013c01ff0001ffffffffffff03029b2e4c0281c0b02e7c53291a94d1d0c" +
	"bff8883f8024f5142ee494ffbbd08807121017767aafcde9be00dcfd098715ebcf7" +
	"f410daebc582fda69d24a28e9d0bc890d1"

func TestDecodeGenesisTransaction(t *testing.T) {
	require := require.New(t)
	data, err := hex.DecodeString(genesisTx)
	require.NoError(err)
	tx, err := monero.DecodeTransaction(data)
	require.NoError(err)

	assert := assert.New(t)
	var txID monero.Hash
	require.NoError(txID.Set(
		"c88ce9783b4f11190d7b9c17a69c1c52200f9faaee8e98dd07e6811175177139"))
	assert.Equal(txID, tx.Hash)
	assert.Equal(uint64(1), tx.Version)
	assert.Equal(uint64(60), tx.UnlockTime)
	assert.Equal([]monero.TxIn{monero.TxInGen{Height: 0}}, tx.Inputs)

	var outKey, txKey monero.PublicKey
	require.NoError(outKey.Set(
		"9b2e4c0281c0b02e7c53291a94d1d0cbff8883f8024f5142ee494ffbbd088071"))
	require.NoError(txKey.Set(
		"7767aafcde9be00dcfd098715ebcf7f410daebc582fda69d24a28e9d0bc890d1"))
	assert.Equal([]monero.TxOut{{Amount: 17592186044415,
		Target: monero.TxOutToKey{Key: outKey}}}, tx.Outputs)
	assert.Equal([]monero.PublicKey{txKey}, tx.TxPublicKeys())
}

func TestRingCTTypeString(t *testing.T) {
	assert.Equal(t, "clsag", monero.RingCTCLSAG.String())
	assert.Equal(t, "bulletproof+", monero.RingCTBulletproofPlus.String())
	assert.Equal(t, "unknown(9)", monero.RingCTType(9).String())
}
