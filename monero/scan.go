package monero

import (
	"math"

	"filippo.io/edwards25519"

	"github.com/canonical-ledgers/xmrts/monero/varint"
)

// Range is the half open index range [Start, End).
type Range struct {
	Start, End int
}

var (
	// FirstOnly selects only index 0. Timestamps are always paid to
	// output 0 using the first transaction public key.
	FirstOnly = Range{Start: 0, End: 1}
	// AllIndices selects every index.
	AllIndices = Range{Start: 0, End: math.MaxInt}
)

// clip returns the intersection of r and [0, n) as slice bounds.
func (r Range) clip(n int) (int, int) {
	end := min(r.End, n)
	if end < 0 {
		end = 0
	}
	start := max(r.Start, 0)
	if start > end {
		start = end
	}
	return start, end
}

// Scan returns the indices, in ascending order, of the outputs of tx that are
// paid to the address with the given private view key and public spend key.
//
// Only transaction public keys with an index in keys and outputs with an index
// in outputs are considered. For each transaction public key R and output i,
// the expected one-time key is
//
//	P'_i = H_s(8 * view * R || varint(i)) * G + spend
//
// and output i matches if its key equals P'_i.
//
// A transaction without a public key yields no matches, as do public keys and
// output keys that are not valid curve points. Only an invalid view or spend
// key is an error.
func (p Params) Scan(view PrivateKey, spend PublicKey, tx *Transaction,
	keys, outputs Range) ([]int, error) {
	g, err := p.basePoint()
	if err != nil {
		return nil, err
	}
	a, err := view.scalar()
	if err != nil {
		return nil, err
	}
	B, err := spend.point()
	if err != nil {
		return nil, err
	}

	txKeys := tx.TxPublicKeys()
	matched := make([]bool, len(tx.Outputs))
	keyStart, keyEnd := keys.clip(len(txKeys))
	outStart, outEnd := outputs.clip(len(tx.Outputs))
	for _, txKey := range txKeys[keyStart:keyEnd] {
		R, err := txKey.point()
		if err != nil {
			continue
		}
		derivation := keyDerivation(a, R)
		for i := outStart; i < outEnd; i++ {
			if matched[i] {
				continue
			}
			P, err := tx.Outputs[i].Target.OutputKey().point()
			if err != nil {
				continue
			}
			if derivePublicKey(g, derivation, uint64(i), B).Equal(P) == 1 {
				matched[i] = true
			}
		}
	}

	var indices []int
	for i, m := range matched {
		if m {
			indices = append(indices, i)
		}
	}
	return indices, nil
}

// keyDerivation returns the encoding of the shared secret 8 * a * R.
func keyDerivation(a *edwards25519.Scalar, R *edwards25519.Point) []byte {
	D := new(edwards25519.Point).ScalarMult(a, R)
	return new(edwards25519.Point).MultByCofactor(D).Bytes()
}

// derivePublicKey returns H_s(derivation || varint(index)) * G + B.
func derivePublicKey(g basePoint, derivation []byte, index uint64,
	B *edwards25519.Point) *edwards25519.Point {
	s := hashToScalar(derivation, varint.Encode(index))
	P := g.mul(s)
	return P.Add(P, B)
}

// DeriveOutputKey returns the one-time public key of output index paid by a
// transaction with public key txKey to the address with the given private
// view key and public spend key.
func (p Params) DeriveOutputKey(view PrivateKey, txKey PublicKey, index uint64,
	spend PublicKey) (PublicKey, error) {
	g, err := p.basePoint()
	if err != nil {
		return PublicKey{}, err
	}
	a, err := view.scalar()
	if err != nil {
		return PublicKey{}, err
	}
	R, err := txKey.point()
	if err != nil {
		return PublicKey{}, err
	}
	B, err := spend.point()
	if err != nil {
		return PublicKey{}, err
	}
	return pointKey(derivePublicKey(g, keyDerivation(a, R), index, B)), nil
}
