package monero

import "fmt"

// RingCTType identifies the layout of the RingCT signatures of a version 2
// transaction.
type RingCTType uint8

const (
	RingCTNull RingCTType = iota
	RingCTFull
	RingCTSimple
	RingCTBulletproof
	RingCTBulletproof2
	RingCTCLSAG
	RingCTBulletproofPlus
)

func (t RingCTType) String() string {
	switch t {
	case RingCTNull:
		return "null"
	case RingCTFull:
		return "full"
	case RingCTSimple:
		return "simple"
	case RingCTBulletproof:
		return "bulletproof"
	case RingCTBulletproof2:
		return "bulletproof2"
	case RingCTCLSAG:
		return "clsag"
	case RingCTBulletproofPlus:
		return "bulletproof+"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// compactAmounts returns true if encrypted amounts are 8 bytes with no mask.
func (t RingCTType) compactAmounts() bool {
	return t >= RingCTBulletproof2
}

// hasBulletproofs returns true if range proofs are bulletproofs, with the
// pseudo outputs in the prunable data.
func (t RingCTType) hasBulletproofs() bool {
	return t >= RingCTBulletproof
}

// hasCLSAGs returns true if the input signatures are CLSAGs instead of MLSAGs.
func (t RingCTType) hasCLSAGs() bool {
	return t >= RingCTCLSAG
}

// Number of keys in a single Borromean range signature: s0[64], s1[64], ee and
// Ci[64].
const borromeanKeys = 64 + 64 + 1 + 64

// ringCTBase reads the RingCT type, fee, encrypted amounts and output
// commitments.
func (d *decoder) ringCTBase(inputs, outputs int) (RingCTType, uint64) {
	typ := RingCTType(d.byte("rct type"))
	if d.err != nil || typ == RingCTNull {
		return typ, 0
	}
	if typ > RingCTBulletproofPlus {
		d.fail("unknown RingCT type %v", uint8(typ))
		return typ, 0
	}
	fee := d.varint("rct fee")
	if typ == RingCTSimple {
		d.skipKeys(inputs, "rct pseudo outputs")
	}
	ecdhSize := 2 * KeySize
	if typ.compactAmounts() {
		ecdhSize = 8
	}
	if outputs > d.remaining()/ecdhSize {
		d.fail("rct ecdh info: unexpected end of data")
		return typ, 0
	}
	d.skip(outputs*ecdhSize, "rct ecdh info")
	d.skipKeys(outputs, "rct output commitments")
	return typ, fee
}

// ringCTPrunable reads the range proofs, ring signatures and pseudo outputs.
func (d *decoder) ringCTPrunable(typ RingCTType, inputs, outputs, ring int) {
	if d.err != nil || typ == RingCTNull {
		return
	}

	switch {
	case typ == RingCTBulletproofPlus:
		// A, A1, B, r1, s1, d1, L, R
		n := d.count("bulletproof+ count", 6*KeySize+2)
		if n > outputs {
			d.fail("bulletproof+ count %v exceeds %v outputs", n, outputs)
		}
		for i := 0; i < n && d.err == nil; i++ {
			d.skipKeys(6, "bulletproof+")
			d.skipKeyVector("bulletproof+ L")
			d.skipKeyVector("bulletproof+ R")
		}
	case typ.hasBulletproofs():
		// A, S, T1, T2, taux, mu, L, R, a, b, t
		var n int
		if typ == RingCTBulletproof {
			n = int(d.uint32("bulletproof count"))
		} else {
			n = d.count("bulletproof count", 9*KeySize+2)
		}
		if n > outputs {
			d.fail("bulletproof count %v exceeds %v outputs", n, outputs)
		}
		for i := 0; i < n && d.err == nil; i++ {
			d.skipKeys(6, "bulletproof")
			d.skipKeyVector("bulletproof L")
			d.skipKeyVector("bulletproof R")
			d.skipKeys(3, "bulletproof")
		}
	default:
		if outputs > d.remaining()/(borromeanKeys*KeySize) {
			d.fail("range signatures: unexpected end of data")
			return
		}
		d.skipKeys(outputs*borromeanKeys, "range signatures")
	}

	switch {
	case typ.hasCLSAGs():
		// s[ring], c1, D
		for i := 0; i < inputs && d.err == nil; i++ {
			d.skipKeys(ring, "clsag s")
			d.skipKeys(2, "clsag")
		}
	case typ == RingCTFull:
		// A single MLSAG over all inputs and the output commitments.
		if ring > d.remaining()/((inputs+1)*KeySize) {
			d.fail("mlsag: unexpected end of data")
			return
		}
		d.skipKeys(ring*(inputs+1), "mlsag ss")
		d.skipKeys(1, "mlsag cc")
	default:
		for i := 0; i < inputs && d.err == nil; i++ {
			if ring > d.remaining()/(2*KeySize) {
				d.fail("mlsag: unexpected end of data")
				return
			}
			d.skipKeys(ring*2, "mlsag ss")
			d.skipKeys(1, "mlsag cc")
		}
	}

	if typ.hasBulletproofs() {
		d.skipKeys(inputs, "rct pseudo outputs")
	}
}
