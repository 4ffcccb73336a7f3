// Package schema implements the domain value types of §3: typed containers
// over canonical CBOR with a to_cbor_map/from_cbor validation contract
// (§4.B). Every type here is comparable by value, carries no hidden state,
// and rejects malformed input at construction rather than downstream.
package schema

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"

	cborx "github.com/certen/shop-state-engine/pkg/cbor"
)

// Uint256 is an unsigned 256-bit integer. It is encoded as a CBOR unsigned
// integer (shortest form) when it fits a machine word, and as a CBOR bignum
// byte string otherwise; it is never negative and overflow is rejected at
// construction (§3).
type Uint256 struct {
	v uint256.Int
}

// ZeroUint256 is the additive identity.
var ZeroUint256 = Uint256{}

// NewUint256FromUint64 builds a Uint256 from a machine word.
func NewUint256FromUint64(v uint64) Uint256 {
	var u Uint256
	u.v.SetUint64(v)
	return u
}

// NewUint256FromBigEndian builds a Uint256 from its big-endian byte
// representation. Input longer than 32 bytes is rejected.
func NewUint256FromBigEndian(b []byte) (Uint256, error) {
	if len(b) > 32 {
		return Uint256{}, fmt.Errorf("%w: uint256 big-endian input longer than 32 bytes (%d)", cborx.ErrOutOfRange, len(b))
	}
	var u Uint256
	u.v.SetBytes(b)
	return u, nil
}

// Bytes32 returns the 32-byte big-endian representation.
func (u Uint256) Bytes32() [32]byte {
	return u.v.Bytes32()
}

// String renders the decimal value.
func (u Uint256) String() string {
	return u.v.Dec()
}

// Equal reports value equality.
func (u Uint256) Equal(o Uint256) bool {
	return u.v.Eq(&o.v)
}

// IsZero reports whether the value is zero.
func (u Uint256) IsZero() bool {
	return u.v.IsZero()
}

// MarshalCBOR implements cbor.Marshaler, emitting the shortest canonical
// form: a plain unsigned integer when it fits uint64, a bignum otherwise.
func (u Uint256) MarshalCBOR() ([]byte, error) {
	if u.v.IsUint64() {
		return cborx.Encode(u.v.Uint64())
	}
	big := u.v.ToBig()
	return cborx.Encode(big)
}

// UnmarshalCBOR implements cbor.Unmarshaler, accepting either a plain
// unsigned integer or a bignum, per §3.
func (u *Uint256) UnmarshalCBOR(data []byte) error {
	// Try the compact form first: a plain CBOR unsigned integer.
	var asUint uint64
	if err := cborx.Decode(data, &asUint); err == nil {
		u.v.SetUint64(asUint)
		return nil
	}

	big := new(big.Int)
	if err := cborx.Decode(data, big); err != nil {
		return fmt.Errorf("%w: uint256: %v", cborx.ErrInvalidField, err)
	}
	if big.Sign() < 0 {
		return fmt.Errorf("%w: uint256 cannot be negative", cborx.ErrOutOfRange)
	}
	if big.BitLen() > 256 {
		return fmt.Errorf("%w: uint256 exceeds 256 bits", cborx.ErrOutOfRange)
	}
	overflow := u.v.SetFromBig(big)
	if overflow {
		return fmt.Errorf("%w: uint256 exceeds 256 bits", cborx.ErrOutOfRange)
	}
	return nil
}
