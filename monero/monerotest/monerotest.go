// Package monerotest builds raw Monero transactions for use in tests.
//
// Signature data is filled with placeholder bytes of the right size, so the
// transactions decode but would never pass consensus validation.
package monerotest

import (
	"encoding/binary"

	"github.com/canonical-ledgers/xmrts/monero"
	"github.com/canonical-ledgers/xmrts/monero/varint"
)

// Tx describes a transaction to serialize. Inputs may hold monero.TxInGen
// and monero.TxInToKey values and Outputs may use either target type.
//
// Version 2 transactions may use any RingCT type from RingCTNull to
// RingCTBulletproofPlus. Full and Simple types get one Borromean range
// signature per output, and all types before RingCTCLSAG get MLSAGs.
type Tx struct {
	Version    uint64
	UnlockTime uint64
	Inputs     []monero.TxIn
	Outputs    []monero.TxOut
	Extra      []byte
	RingCT     monero.RingCTType
	Fee        uint64
}

// Bytes returns the full binary transaction.
func (tx Tx) Bytes() []byte {
	buf := tx.Prefix()
	if tx.Version == 1 {
		return append(buf, tx.signatures()...)
	}
	buf = append(buf, tx.Base()...)
	return append(buf, tx.Prunable()...)
}

// Hash returns the transaction ID of tx.
func (tx Tx) Hash() monero.Hash {
	if tx.Version == 1 {
		return monero.Keccak256(tx.Bytes())
	}
	var prunable monero.Hash
	if tx.RingCT != monero.RingCTNull {
		prunable = monero.Keccak256(tx.Prunable())
	}
	prefix := monero.Keccak256(tx.Prefix())
	base := monero.Keccak256(tx.Base())
	return monero.Keccak256(prefix[:], base[:], prunable[:])
}

// Prefix returns the serialized transaction prefix.
func (tx Tx) Prefix() []byte {
	buf := varint.Append(nil, tx.Version)
	buf = varint.Append(buf, tx.UnlockTime)

	buf = varint.Append(buf, uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		switch in := in.(type) {
		case monero.TxInGen:
			buf = append(buf, 0xff)
			buf = varint.Append(buf, in.Height)
		case monero.TxInToKey:
			buf = append(buf, 0x02)
			buf = varint.Append(buf, in.Amount)
			buf = varint.Append(buf, uint64(len(in.KeyOffsets)))
			for _, offset := range in.KeyOffsets {
				buf = varint.Append(buf, offset)
			}
			buf = append(buf, in.KeyImage[:]...)
		}
	}

	buf = varint.Append(buf, uint64(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		buf = varint.Append(buf, out.Amount)
		switch target := out.Target.(type) {
		case monero.TxOutToKey:
			buf = append(buf, 0x02)
			buf = append(buf, target.Key[:]...)
		case monero.TxOutToTaggedKey:
			buf = append(buf, 0x03)
			buf = append(buf, target.Key[:]...)
			buf = append(buf, target.ViewTag)
		}
	}

	buf = varint.Append(buf, uint64(len(tx.Extra)))
	return append(buf, tx.Extra...)
}

// Base returns the serialized RingCT base of a version 2 transaction.
func (tx Tx) Base() []byte {
	buf := []byte{byte(tx.RingCT)}
	if tx.RingCT == monero.RingCTNull {
		return buf
	}
	buf = varint.Append(buf, tx.Fee)
	if tx.RingCT == monero.RingCTSimple {
		// Pseudo outputs.
		buf = append(buf, filler(monero.KeySize*len(tx.Inputs), 0x90)...)
	}
	// Encrypted amounts: mask and amount before Bulletproof2, then 8 byte
	// amounts only.
	ecdhSize := 2 * monero.KeySize
	if tx.RingCT >= monero.RingCTBulletproof2 {
		ecdhSize = 8
	}
	buf = append(buf, filler(ecdhSize*len(tx.Outputs), 0xa0)...)
	// Output commitments.
	return append(buf, filler(monero.KeySize*len(tx.Outputs), 0xc0)...)
}

// Prunable returns the serialized prunable RingCT data of a version 2
// transaction.
func (tx Tx) Prunable() []byte {
	if tx.RingCT == monero.RingCTNull {
		return nil
	}
	var buf []byte
	keys := func(n int) {
		buf = append(buf, filler(n*monero.KeySize, byte(len(buf)))...)
	}
	keyVector := func(n int) {
		buf = varint.Append(buf, uint64(n))
		keys(n)
	}
	bulletproof := func() {
		keys(6)
		keyVector(2)
		keyVector(2)
		keys(3)
	}

	// Range proofs: a single aggregated bulletproof, or one Borromean
	// signature of s0[64], s1[64], ee and Ci[64] per output.
	switch tx.RingCT {
	case monero.RingCTFull, monero.RingCTSimple:
		keys((64 + 64 + 1 + 64) * len(tx.Outputs))
	case monero.RingCTBulletproof:
		buf = binary.LittleEndian.AppendUint32(buf, 1)
		bulletproof()
	case monero.RingCTBulletproofPlus:
		buf = varint.Append(buf, 1)
		keys(6)
		keyVector(2)
		keyVector(2)
	default:
		buf = varint.Append(buf, 1)
		bulletproof()
	}

	ring := tx.ringSize()
	switch {
	case tx.RingCT >= monero.RingCTCLSAG:
		// s[ring], c1, D per input.
		for range tx.Inputs {
			keys(ring + 2)
		}
	case tx.RingCT == monero.RingCTFull:
		// One MLSAG with ring rows of inputs+1 keys, then cc.
		keys(ring*(len(tx.Inputs)+1) + 1)
	default:
		// One MLSAG per input with ring rows of 2 keys, then cc.
		for range tx.Inputs {
			keys(2*ring + 1)
		}
	}

	if tx.RingCT >= monero.RingCTBulletproof {
		// Pseudo outputs.
		keys(len(tx.Inputs))
	}
	return buf
}

func (tx Tx) signatures() []byte {
	var buf []byte
	for _, in := range tx.Inputs {
		if in, ok := in.(monero.TxInToKey); ok {
			buf = append(buf, filler(2*monero.KeySize*len(in.KeyOffsets),
				0x5e)...)
		}
	}
	return buf
}

func (tx Tx) ringSize() int {
	if len(tx.Inputs) == 0 {
		return 1
	}
	if in, ok := tx.Inputs[0].(monero.TxInToKey); ok {
		return len(in.KeyOffsets)
	}
	return 1
}

func filler(n int, b byte) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = b + byte(i)
	}
	return buf
}

// ExtraTxPublicKeys returns an extra field holding a tx public key field for
// each key.
func ExtraTxPublicKeys(keys ...monero.PublicKey) []byte {
	var extra []byte
	for _, key := range keys {
		extra = append(extra, monero.ExtraTagTxPublicKey)
		extra = append(extra, key[:]...)
	}
	return extra
}

// Spend returns a to_key input with the given ring size.
func Spend(ring int, seed uint64) monero.TxInToKey {
	in := monero.TxInToKey{KeyOffsets: make([]uint64, ring)}
	for i := range in.KeyOffsets {
		in.KeyOffsets[i] = seed + uint64(i)*1000
	}
	in.KeyImage = Key(seed)
	return in
}

// Key returns a valid public key unique to seed.
func Key(seed uint64) monero.PublicKey {
	var data [8]byte
	binary.LittleEndian.PutUint64(data[:], seed)
	pub, err := monero.Ed25519.PublicKey(monero.Ed25519.HashToScalar(data[:]))
	if err != nil {
		panic(err)
	}
	return pub
}

// Payment returns a CLSAG transaction with n outputs and the tx public key
// r*G. The outputs listed in paid are addressed to the owner of spend and
// the view key with public key view. All other outputs have unrelated keys.
func Payment(view, spend monero.PublicKey, r monero.PrivateKey, n int,
	paid ...int) Tx {
	R, err := monero.Ed25519.PublicKey(r)
	if err != nil {
		panic(err)
	}
	tx := Tx{
		Version: 2,
		Inputs:  []monero.TxIn{Spend(16, 7)},
		Extra:   ExtraTxPublicKeys(R),
		RingCT:  monero.RingCTCLSAG,
		Fee:     30720000,
	}
	for i := 0; i < n; i++ {
		tx.Outputs = append(tx.Outputs, monero.TxOut{
			Target: monero.TxOutToTaggedKey{Key: Key(uint64(1000 + i)),
				ViewTag: byte(i)}})
	}
	for _, i := range paid {
		// The sender computes 8*r*A, which equals the 8*a*R computed
		// by the receiver.
		key, err := monero.Ed25519.DeriveOutputKey(r, view, uint64(i), spend)
		if err != nil {
			panic(err)
		}
		tx.Outputs[i].Target = monero.TxOutToTaggedKey{Key: key}
	}
	return tx
}
