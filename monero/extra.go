package monero

// Extra field tags.
const (
	ExtraTagPadding              = 0x00
	ExtraTagTxPublicKey          = 0x01
	ExtraTagNonce                = 0x02
	ExtraTagMergeMining          = 0x03
	ExtraTagAdditionalPublicKeys = 0x04
	ExtraTagMinergate            = 0xde
)

const (
	maxExtraPadding = 255
	maxExtraNonce   = 255
)

// ExtraField is a tagged sub-field of a transaction's extra field. It is one of
// ExtraPadding, ExtraTxPublicKey, ExtraNonce, ExtraMergeMining,
// ExtraAdditionalPublicKeys, ExtraMinergate or ExtraUnknown.
type ExtraField interface {
	// Tag returns the tag byte of the field.
	Tag() byte
}

// ExtraPadding is trailing zero padding. Size includes the tag byte.
type ExtraPadding struct {
	Size int
}

// ExtraTxPublicKey holds a transaction public key R.
type ExtraTxPublicKey struct {
	Key PublicKey
}

// ExtraNonce holds arbitrary data, usually an encrypted payment ID.
type ExtraNonce struct {
	Data Bytes
}

// ExtraMergeMining holds a merge mining commitment.
type ExtraMergeMining struct {
	Depth      uint64
	MerkleRoot Hash
}

// ExtraAdditionalPublicKeys holds one transaction public key per output, used
// for payments to subaddresses.
type ExtraAdditionalPublicKeys struct {
	Keys []PublicKey
}

// ExtraMinergate holds the length prefixed data added by the Minergate pool.
type ExtraMinergate struct {
	Data Bytes
}

// ExtraUnknown holds a field with an unknown tag. Since its length is not
// known, Data holds all remaining bytes of the extra field and parsing stops.
type ExtraUnknown struct {
	UnknownTag byte
	Data       Bytes
}

func (ExtraPadding) Tag() byte              { return ExtraTagPadding }
func (ExtraTxPublicKey) Tag() byte          { return ExtraTagTxPublicKey }
func (ExtraNonce) Tag() byte                { return ExtraTagNonce }
func (ExtraMergeMining) Tag() byte          { return ExtraTagMergeMining }
func (ExtraAdditionalPublicKeys) Tag() byte { return ExtraTagAdditionalPublicKeys }
func (ExtraMinergate) Tag() byte            { return ExtraTagMinergate }
func (f ExtraUnknown) Tag() byte            { return f.UnknownTag }

// ParseExtra parses the sub-fields of a transaction's extra field. An error
// wrapping ErrMalformedTransaction is returned if a known field is truncated
// or has an invalid length.
func ParseExtra(extra []byte) ([]ExtraField, error) {
	d := decoder{buf: extra}
	var fields []ExtraField
	for d.remaining() > 0 {
		switch tag := d.byte("extra tag"); tag {
		case ExtraTagPadding:
			// Padding runs to the end of the field and must be
			// all zero.
			size := 1 + d.remaining()
			if size > maxExtraPadding {
				d.fail("extra padding: size %v exceeds %v",
					size, maxExtraPadding)
			}
			for _, b := range d.bytes(d.remaining(), "extra padding") {
				if b != 0 {
					d.fail("extra padding: non-zero byte")
					break
				}
			}
			fields = append(fields, ExtraPadding{Size: size})
		case ExtraTagTxPublicKey:
			fields = append(fields, ExtraTxPublicKey{
				Key: d.key("extra tx public key")})
		case ExtraTagNonce:
			n := d.count("extra nonce length", 1)
			if n > maxExtraNonce {
				d.fail("extra nonce: length %v exceeds %v",
					n, maxExtraNonce)
			}
			fields = append(fields, ExtraNonce{
				Data: append(Bytes{}, d.bytes(n, "extra nonce")...)})
		case ExtraTagMergeMining:
			n := d.count("extra merge mining length", 1)
			mm := decoder{buf: d.bytes(n, "extra merge mining")}
			f := ExtraMergeMining{
				Depth:      mm.varint("extra merge mining depth"),
				MerkleRoot: mm.key("extra merge mining merkle root"),
			}
			mm.end()
			if d.err == nil && mm.err != nil {
				d.err = mm.err
			}
			fields = append(fields, f)
		case ExtraTagAdditionalPublicKeys:
			n := d.count("extra additional public key count", KeySize)
			f := ExtraAdditionalPublicKeys{Keys: make([]PublicKey, n)}
			for i := range f.Keys {
				f.Keys[i] = d.key("extra additional public key")
			}
			fields = append(fields, f)
		case ExtraTagMinergate:
			n := d.count("extra minergate length", 1)
			fields = append(fields, ExtraMinergate{
				Data: append(Bytes{}, d.bytes(n, "extra minergate")...)})
		default:
			fields = append(fields, ExtraUnknown{UnknownTag: tag,
				Data: append(Bytes{}, d.bytes(d.remaining(), "extra")...)})
		}
		if d.err != nil {
			return nil, d.err
		}
	}
	return fields, nil
}
