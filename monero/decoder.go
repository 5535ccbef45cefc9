package monero

import (
	"encoding/binary"

	"github.com/canonical-ledgers/xmrts/monero/varint"
)

// decoder reads Monero binary serialization from buf. The first error is
// sticky: once a read fails, all further reads return zero values and err is
// left unchanged.
type decoder struct {
	buf []byte
	off int
	err error
}

func (d *decoder) fail(format string, args ...interface{}) {
	if d.err == nil {
		d.err = malformedf(format, args...)
	}
}

func (d *decoder) remaining() int {
	return len(d.buf) - d.off
}

func (d *decoder) varint(field string) uint64 {
	if d.err != nil {
		return 0
	}
	x, n := varint.Decode(d.buf[d.off:])
	switch {
	case n == 0:
		d.fail("%v: unexpected end of data", field)
		return 0
	case n < 0:
		d.fail("%v: invalid varint", field)
		return 0
	}
	d.off += n
	return x
}

// count reads a varint element count and checks that at least count elements
// of minSize bytes could follow, so that a forged count never causes a large
// allocation.
func (d *decoder) count(field string, minSize int) int {
	n := d.varint(field)
	if d.err != nil {
		return 0
	}
	if n > uint64(d.remaining()/minSize) {
		d.fail("%v: count %v exceeds remaining data", field, n)
		return 0
	}
	return int(n)
}

func (d *decoder) uint32(field string) uint32 {
	b := d.bytes(4, field)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (d *decoder) byte(field string) byte {
	b := d.bytes(1, field)
	if b == nil {
		return 0
	}
	return b[0]
}

// bytes returns the next n bytes of buf without copying them.
func (d *decoder) bytes(n int, field string) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || n > d.remaining() {
		d.fail("%v: unexpected end of data", field)
		return nil
	}
	b := d.buf[d.off : d.off+n : d.off+n]
	d.off += n
	return b
}

func (d *decoder) key(field string) (key [KeySize]byte) {
	copy(key[:], d.bytes(KeySize, field))
	return
}

func (d *decoder) skip(n int, field string) {
	d.bytes(n, field)
}

// skipKeys skips n consecutive 32 byte keys.
func (d *decoder) skipKeys(n int, field string) {
	if n > d.remaining()/KeySize {
		d.fail("%v: unexpected end of data", field)
		return
	}
	d.skip(n*KeySize, field)
}

// skipKeyVector skips a varint prefixed vector of 32 byte keys.
func (d *decoder) skipKeyVector(field string) {
	d.skipKeys(d.count(field, KeySize), field)
}

// end fails unless all of buf has been consumed.
func (d *decoder) end() {
	if d.err == nil && d.remaining() > 0 {
		d.fail("%v trailing bytes", d.remaining())
	}
}
