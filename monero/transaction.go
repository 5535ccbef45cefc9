package monero

import (
	"fmt"
)

// Input tags.
const (
	txInGenTag          = 0xff
	txInToScriptTag     = 0x00
	txInToScriptHashTag = 0x01
	txInToKeyTag        = 0x02
)

// Output target tags.
const (
	txOutToScriptTag     = 0x00
	txOutToScriptHashTag = 0x01
	txOutToKeyTag        = 0x02
	txOutToTaggedKeyTag  = 0x03
)

const signatureSize = 2 * KeySize

// Transaction is a decoded Monero transaction. Only the prefix is kept in
// structured form. Signature data is validated structurally and discarded.
type Transaction struct {
	Version    uint64
	UnlockTime uint64
	Inputs     []TxIn
	Outputs    []TxOut
	// Extra is the raw extra field. ExtraFields is its parsed form.
	Extra       Bytes
	ExtraFields []ExtraField

	// RingCT is the RingCT signature type of a version 2 transaction and
	// Fee its fee. Both are zero for version 1 transactions.
	RingCT RingCTType
	Fee    uint64

	// Hash is the transaction ID computed from the decoded bytes.
	Hash Hash
}

// TxIn is one of TxInGen or TxInToKey.
type TxIn interface {
	isTxIn()
}

// TxInGen is the input of a coinbase transaction.
type TxInGen struct {
	Height uint64
}

// TxInToKey spends one of the outputs referenced by KeyOffsets.
type TxInToKey struct {
	Amount     uint64
	KeyOffsets []uint64
	KeyImage   PublicKey
}

func (TxInGen) isTxIn()   {}
func (TxInToKey) isTxIn() {}

// TxOut is a transaction output.
type TxOut struct {
	// Amount is zero for RingCT outputs.
	Amount uint64
	Target TxOutTarget
}

// TxOutTarget is one of TxOutToKey or TxOutToTaggedKey.
type TxOutTarget interface {
	// OutputKey returns the one-time public key of the output.
	OutputKey() PublicKey
}

// TxOutToKey pays the one-time public key Key.
type TxOutToKey struct {
	Key PublicKey
}

// TxOutToTaggedKey pays the one-time public key Key. ViewTag allows wallets to
// skip most outputs without a full key derivation.
type TxOutToTaggedKey struct {
	Key     PublicKey
	ViewTag byte
}

// OutputKey returns t.Key.
func (t TxOutToKey) OutputKey() PublicKey { return t.Key }

// OutputKey returns t.Key.
func (t TxOutToTaggedKey) OutputKey() PublicKey { return t.Key }

// OutputKeys returns the one-time public keys of tx's outputs in order.
func (tx Transaction) OutputKeys() []PublicKey {
	keys := make([]PublicKey, len(tx.Outputs))
	for i, out := range tx.Outputs {
		keys[i] = out.Target.OutputKey()
	}
	return keys
}

// TxPublicKeys returns the transaction public keys found in tx's extra field,
// in order.
func (tx Transaction) TxPublicKeys() []PublicKey {
	var keys []PublicKey
	for _, f := range tx.ExtraFields {
		if f, ok := f.(ExtraTxPublicKey); ok {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// DecodeTransaction decodes a binary Monero transaction.
func DecodeTransaction(data []byte) (Transaction, error) {
	var tx Transaction
	if err := tx.UnmarshalBinary(data); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// UnmarshalBinary decodes data into tx. All of data must be consumed. Any
// error wraps ErrMalformedTransaction, and tx is left unchanged on error.
func (tx *Transaction) UnmarshalBinary(data []byte) error {
	d := decoder{buf: data}
	var t Transaction

	t.Version = d.varint("version")
	if d.err == nil && (t.Version < 1 || t.Version > 2) {
		return malformedf("unsupported version %v", t.Version)
	}
	t.UnlockTime = d.varint("unlock time")
	t.Inputs = d.inputs()
	t.Outputs = d.outputs()
	extraLen := d.count("extra length", 1)
	if extra := d.bytes(extraLen, "extra"); extra != nil {
		t.Extra = append(Bytes{}, extra...)
	}
	if d.err != nil {
		return d.err
	}
	prefixEnd := d.off

	var err error
	if t.ExtraFields, err = ParseExtra(t.Extra); err != nil {
		return err
	}

	if t.Version == 1 {
		d.signatures(t.Inputs)
		d.end()
		if d.err != nil {
			return d.err
		}
		t.Hash = Keccak256(data)
		*tx = t
		return nil
	}

	t.RingCT, t.Fee = d.ringCTBase(len(t.Inputs), len(t.Outputs))
	baseEnd := d.off
	d.ringCTPrunable(t.RingCT, len(t.Inputs), len(t.Outputs), ringSize(t.Inputs))
	d.end()
	if d.err != nil {
		return d.err
	}

	// The ID of a version 2 transaction is the hash of the hashes of its
	// prefix, its RingCT base and its prunable RingCT data.
	var prunableHash Hash
	if t.RingCT != RingCTNull {
		prunableHash = Keccak256(data[baseEnd:])
	}
	prefixHash := Keccak256(data[:prefixEnd])
	baseHash := Keccak256(data[prefixEnd:baseEnd])
	t.Hash = Keccak256(prefixHash[:], baseHash[:], prunableHash[:])

	*tx = t
	return nil
}

func (d *decoder) inputs() []TxIn {
	// The smallest input is a gen tag followed by a single byte varint.
	n := d.count("input count", 2)
	if d.err != nil {
		return nil
	}
	inputs := make([]TxIn, 0, n)
	for i := 0; i < n; i++ {
		field := fmt.Sprintf("input %v", i)
		switch tag := d.byte(field + " tag"); tag {
		case txInGenTag:
			inputs = append(inputs, TxInGen{Height: d.varint(field + " height")})
		case txInToKeyTag:
			in := TxInToKey{Amount: d.varint(field + " amount")}
			offsets := d.count(field+" key offset count", 1)
			if offsets == 0 {
				d.fail("%v: empty ring", field)
			}
			in.KeyOffsets = make([]uint64, offsets)
			for j := range in.KeyOffsets {
				in.KeyOffsets[j] = d.varint(field + " key offset")
			}
			in.KeyImage = d.key(field + " key image")
			inputs = append(inputs, in)
		case txInToScriptTag, txInToScriptHashTag:
			d.fail("%v: unsupported input type %#02x", field, tag)
		default:
			d.fail("%v: unknown input type %#02x", field, tag)
		}
		if d.err != nil {
			return nil
		}
	}
	return inputs
}

func (d *decoder) outputs() []TxOut {
	// The smallest output is a single byte amount, a tag and a key.
	n := d.count("output count", 2+KeySize)
	if d.err != nil {
		return nil
	}
	outputs := make([]TxOut, 0, n)
	for i := 0; i < n; i++ {
		field := fmt.Sprintf("output %v", i)
		out := TxOut{Amount: d.varint(field + " amount")}
		switch tag := d.byte(field + " tag"); tag {
		case txOutToKeyTag:
			out.Target = TxOutToKey{Key: d.key(field + " key")}
		case txOutToTaggedKeyTag:
			out.Target = TxOutToTaggedKey{
				Key:     d.key(field + " key"),
				ViewTag: d.byte(field + " view tag"),
			}
		case txOutToScriptTag, txOutToScriptHashTag:
			d.fail("%v: unsupported output type %#02x", field, tag)
		default:
			d.fail("%v: unknown output type %#02x", field, tag)
		}
		if d.err != nil {
			return nil
		}
		outputs = append(outputs, out)
	}
	return outputs
}

// signatures skips the ring signatures of a version 1 transaction: one
// signature per ring member of each input.
func (d *decoder) signatures(inputs []TxIn) {
	for i, in := range inputs {
		in, ok := in.(TxInToKey)
		if !ok {
			continue
		}
		n := len(in.KeyOffsets)
		if n > d.remaining()/signatureSize {
			d.fail("input %v signatures: unexpected end of data", i)
			return
		}
		d.skip(n*signatureSize, fmt.Sprintf("input %v signatures", i))
	}
}

// ringSize returns the ring size used to serialize RingCT signatures, which
// is taken from the first input.
func ringSize(inputs []TxIn) int {
	if len(inputs) == 0 {
		return 1
	}
	if in, ok := inputs[0].(TxInToKey); ok {
		return len(in.KeyOffsets)
	}
	return 1
}
