package monero_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical-ledgers/xmrts/monero"
	"github.com/canonical-ledgers/xmrts/monero/monerotest"
)

func TestParseExtra(t *testing.T) {
	key1, key2 := monerotest.Key(1), monerotest.Key(2)
	root := monero.Keccak256([]byte("root"))

	tests := []struct {
		Name     string
		Extra    []byte
		Expected []monero.ExtraField
	}{{
		Name: "empty",
	}, {
		Name:     "tx public key",
		Extra:    monerotest.ExtraTxPublicKeys(key1),
		Expected: []monero.ExtraField{monero.ExtraTxPublicKey{Key: key1}},
	}, {
		Name: "nonce and key",
		Extra: append([]byte{monero.ExtraTagNonce, 9, 0x01, 1, 2, 3, 4, 5,
			6, 7, 8}, monerotest.ExtraTxPublicKeys(key2)...),
		Expected: []monero.ExtraField{
			monero.ExtraNonce{Data: monero.Bytes{0x01, 1, 2, 3, 4, 5, 6, 7, 8}},
			monero.ExtraTxPublicKey{Key: key2},
		},
	}, {
		Name:  "merge mining",
		Extra: append([]byte{monero.ExtraTagMergeMining, 33, 5}, root[:]...),
		Expected: []monero.ExtraField{
			monero.ExtraMergeMining{Depth: 5, MerkleRoot: root}},
	}, {
		Name: "additional public keys",
		Extra: append(append([]byte{monero.ExtraTagAdditionalPublicKeys, 2},
			key1[:]...), key2[:]...),
		Expected: []monero.ExtraField{monero.ExtraAdditionalPublicKeys{
			Keys: []monero.PublicKey{key1, key2}}},
	}, {
		Name:  "minergate",
		Extra: []byte{monero.ExtraTagMinergate, 2, 0xab, 0xcd},
		Expected: []monero.ExtraField{
			monero.ExtraMinergate{Data: monero.Bytes{0xab, 0xcd}}},
	}, {
		Name:  "padding",
		Extra: append(monerotest.ExtraTxPublicKeys(key1), 0, 0, 0),
		Expected: []monero.ExtraField{
			monero.ExtraTxPublicKey{Key: key1},
			monero.ExtraPadding{Size: 3}},
	}, {
		Name: "unknown tag",
		Extra: append(monerotest.ExtraTxPublicKeys(key1),
			0x77, 1, 2, monero.ExtraTagTxPublicKey),
		Expected: []monero.ExtraField{
			monero.ExtraTxPublicKey{Key: key1},
			monero.ExtraUnknown{UnknownTag: 0x77,
				Data: monero.Bytes{1, 2, monero.ExtraTagTxPublicKey}}},
	}}
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			fields, err := monero.ParseExtra(test.Extra)
			require.NoError(t, err)
			assert.Equal(t, test.Expected, fields)
		})
	}
}

func TestParseExtraInvalid(t *testing.T) {
	key := monerotest.Key(1)
	tests := []struct {
		Name  string
		Extra []byte
	}{{
		Name:  "truncated tx public key",
		Extra: monerotest.ExtraTxPublicKeys(key)[:20],
	}, {
		Name:  "truncated nonce",
		Extra: []byte{monero.ExtraTagNonce, 9, 1, 2},
	}, {
		Name:  "nonce too long",
		Extra: append([]byte{monero.ExtraTagNonce, 0x80, 0x02}, make([]byte, 256)...),
	}, {
		Name:  "non-zero padding",
		Extra: []byte{monero.ExtraTagPadding, 0, 1},
	}, {
		Name:  "padding too long",
		Extra: make([]byte, 256),
	}, {
		Name:  "merge mining trailing data",
		Extra: append([]byte{monero.ExtraTagMergeMining, 34, 5}, make([]byte, 33)...),
	}, {
		Name:  "merge mining short",
		Extra: append([]byte{monero.ExtraTagMergeMining, 10, 5}, make([]byte, 9)...),
	}, {
		Name:  "additional public keys count",
		Extra: append([]byte{monero.ExtraTagAdditionalPublicKeys, 2}, key[:]...),
	}}
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			_, err := monero.ParseExtra(test.Extra)
			assert.ErrorIs(t, err, monero.ErrMalformedTransaction)
		})
	}

	// The transaction decode fails with the extra field.
	tx := coinbase(monero.RingCTNull)
	tx.Extra = tests[0].Extra
	_, err := monero.DecodeTransaction(tx.Bytes())
	assert.ErrorIs(t, err, monero.ErrMalformedTransaction)
}

func TestParseExtraMaxPadding(t *testing.T) {
	fields, err := monero.ParseExtra(make([]byte, 255))
	require.NoError(t, err)
	assert.Equal(t, []monero.ExtraField{monero.ExtraPadding{Size: 255}}, fields)
	assert.Equal(t, byte(monero.ExtraTagPadding), fields[0].Tag())
	assert.Equal(t, byte(0x77), monero.ExtraUnknown{UnknownTag: 0x77}.Tag())
}
