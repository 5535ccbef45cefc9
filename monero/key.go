package monero

import (
	"encoding/hex"
	"fmt"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/sha3"
)

// DigestSize is the size of the digest accepted by Params.DeriveKeys.
const DigestSize = 64

// KeySize is the size of an encoded scalar or point.
const KeySize = 32

// Params holds the group parameters used for key derivation and output
// scanning. Params values are immutable and safe for concurrent use.
//
// Use Ed25519 or NewParams. A Params whose Base is not a point of order L
// makes every method return ErrInvalidKey.
type Params struct {
	// Base is the encoding of the group generator G.
	Base PublicKey
	// Order is the little-endian encoding of the prime order L of the
	// group generated by Base. It is informational: all reductions use
	// the order of the Ed25519 prime order subgroup, which Base must
	// generate.
	Order [KeySize]byte
}

// L = 2^252 + 27742317777372353535851937790883648493
var order = [KeySize]byte{
	0xed, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
	0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10}

// Ed25519 holds the parameters of the Ed25519 group used by Monero.
var Ed25519 = Params{Base: generator, Order: order}

var generator = pointKey(edwards25519.NewGeneratorPoint())

// NewParams returns the Params with generator base. It returns an error
// wrapping ErrInvalidKey if base does not decode to a point of order L.
func NewParams(base PublicKey) (Params, error) {
	p := Params{Base: base, Order: order}
	if _, err := p.basePoint(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// DeriveKeys reduces a 64 byte digest, read as a little-endian integer,
// modulo L to obtain a private key, and returns it with its public key.
//
// The same digest always yields the same key pair.
func (p Params) DeriveKeys(digest []byte) (PrivateKey, PublicKey, error) {
	if len(digest) != DigestSize {
		return PrivateKey{}, PublicKey{}, fmt.Errorf(
			"%w: digest must be %v bytes, got %v",
			ErrInvalidInputLength, DigestSize, len(digest))
	}
	g, err := p.basePoint()
	if err != nil {
		return PrivateKey{}, PublicKey{}, err
	}
	s, err := edwards25519.NewScalar().SetUniformBytes(digest)
	if err != nil {
		return PrivateKey{}, PublicKey{}, fmt.Errorf("%w: %v",
			ErrInvalidInputLength, err)
	}
	return scalarKey(s), pointKey(g.mul(s)), nil
}

// PublicKey returns the public key of priv, priv * G.
func (p Params) PublicKey(priv PrivateKey) (PublicKey, error) {
	g, err := p.basePoint()
	if err != nil {
		return PublicKey{}, err
	}
	s, err := priv.scalar()
	if err != nil {
		return PublicKey{}, err
	}
	return pointKey(g.mul(s)), nil
}

// HashToScalar returns Keccak-256 of the concatenation of data, reduced modulo
// L. This is Monero's H_s.
func (p Params) HashToScalar(data ...[]byte) PrivateKey {
	return scalarKey(hashToScalar(data...))
}

func hashToScalar(data ...[]byte) *edwards25519.Scalar {
	var wide [DigestSize]byte
	h := Keccak256(data...)
	copy(wide[:], h[:])
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		panic(err)
	}
	return s
}

// basePoint is the generator G. A nil point is the standard Ed25519
// generator, which has a precomputed table.
type basePoint struct {
	point *edwards25519.Point
}

// mul returns s * G.
func (g basePoint) mul(s *edwards25519.Scalar) *edwards25519.Point {
	if g.point == nil {
		return new(edwards25519.Point).ScalarBaseMult(s)
	}
	return new(edwards25519.Point).ScalarMult(s, g.point)
}

func (p Params) basePoint() (basePoint, error) {
	if p.Base == generator {
		return basePoint{}, nil
	}
	g, err := p.Base.point()
	if err != nil {
		return basePoint{}, fmt.Errorf("base point: %w", err)
	}
	// G has order L iff G is not the identity and (L-1)*G + G is.
	identity := edwards25519.NewIdentityPoint()
	lg := new(edwards25519.Point).ScalarMult(minusOne, g)
	lg.Add(lg, g)
	if g.Equal(identity) == 1 || lg.Equal(identity) != 1 {
		return basePoint{}, fmt.Errorf("%w: base point %v does not have order L",
			ErrInvalidKey, p.Base)
	}
	return basePoint{g}, nil
}

// minusOne is L-1.
var minusOne = func() *edwards25519.Scalar {
	one, err := edwards25519.NewScalar().SetCanonicalBytes(
		append([]byte{1}, make([]byte, KeySize-1)...))
	if err != nil {
		panic(err)
	}
	return edwards25519.NewScalar().Negate(one)
}()

// Keccak256 returns the original Keccak-256 hash of the concatenation of data,
// Monero's cn_fast_hash.
func Keccak256(data ...[]byte) Hash {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	var hash Hash
	h.Sum(hash[:0])
	return hash
}

// PrivateKey is a canonical little-endian scalar modulo L.
type PrivateKey [KeySize]byte

// String returns the hex encoded data of priv.
func (priv PrivateKey) String() string {
	return hex.EncodeToString(priv[:])
}

// IsCanonical returns true if priv is reduced modulo L.
func (priv PrivateKey) IsCanonical() bool {
	_, err := priv.scalar()
	return err == nil
}

func (priv PrivateKey) scalar() (*edwards25519.Scalar, error) {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(priv[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return s, nil
}

func scalarKey(s *edwards25519.Scalar) PrivateKey {
	var priv PrivateKey
	copy(priv[:], s.Bytes())
	return priv
}

// PublicKey is the 32 byte compressed encoding of a curve point.
type PublicKey [KeySize]byte

// ZeroPublicKey is the all zero encoding used as the sentinel public spend key
// of timestamp addresses. It decodes to a point of small order.
var ZeroPublicKey PublicKey

// NewPublicKey returns a PublicKey copied from the 32 bytes of data. It
// returns an error if data has the wrong length or does not decode to a curve
// point.
func NewPublicKey(data []byte) (PublicKey, error) {
	var pub PublicKey
	if len(data) != KeySize {
		return pub, fmt.Errorf("%w: public key must be %v bytes, got %v",
			ErrInvalidInputLength, KeySize, len(data))
	}
	copy(pub[:], data)
	if !pub.IsValid() {
		return PublicKey{}, fmt.Errorf("%w: %v is not a curve point",
			ErrInvalidKey, pub)
	}
	return pub, nil
}

// IsValid returns true if pub decodes to a curve point.
func (pub PublicKey) IsValid() bool {
	_, err := pub.point()
	return err == nil
}

// String returns the hex encoded data of pub.
func (pub PublicKey) String() string {
	return hex.EncodeToString(pub[:])
}

// Set decodes exactly 32 bytes of hex encoded data into pub.
func (pub *PublicKey) Set(hexStr string) error {
	return decodeHex32((*[32]byte)(pub), []byte(hexStr))
}

// Type returns "PublicKey" for use with pflag.
func (PublicKey) Type() string {
	return "PublicKey"
}

// UnmarshalJSON unmarshals a string with exactly 32 bytes of hex encoded data.
func (pub *PublicKey) UnmarshalJSON(data []byte) error {
	return unmarshalJSONHex32((*[32]byte)(pub), data)
}

// MarshalJSON marshals pub into hex encoded data.
func (pub PublicKey) MarshalJSON() ([]byte, error) {
	return bytesMarshalJSON(pub[:])
}

func (pub PublicKey) point() (*edwards25519.Point, error) {
	p, err := new(edwards25519.Point).SetBytes(pub[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return p, nil
}

func pointKey(p *edwards25519.Point) PublicKey {
	var pub PublicKey
	copy(pub[:], p.Bytes())
	return pub
}
