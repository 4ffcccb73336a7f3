// Package cbor provides the deterministic byte encoding every other
// component in this module commits to: HAMT node hashes, shop roots, patch
// leaves, and signed headers are all defined over the bytes this package
// produces, not over any particular in-memory representation.
//
// The configuration fixes one canonical dialect (RFC 8949 core deterministic
// encoding): definite-length maps and arrays, shortest-form integers, map
// keys ordered bytewise over their own encoded bytes, and RFC 3339 tagged
// date-time strings in place of any floating point timestamp. Two encode
// calls on logically equal values always produce byte-identical output.
package cbor

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var (
	encMode = mustEncMode()
	decMode = mustDecMode()
)

func mustEncMode() cbor.EncMode {
	opts := cbor.CanonicalEncOptions()
	// Canonical CBOR (RFC 7049) sorts by encoded length then bytes; this
	// module instead pins pure bytewise-lexicographic key order, which is
	// what every other component's spec text assumes.
	opts.Sort = cbor.SortBytewiseLexical
	opts.Time = cbor.TimeRFC3339
	opts.TimeTag = cbor.EncTagRequired
	opts.BigIntConvert = cbor.BigIntConvertShortest
	opts.IndefLength = cbor.IndefLengthForbidden
	opts.NaNConvert = cbor.NaNConvertReject
	opts.InfConvert = cbor.InfConvertReject

	em, err := opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("cbor: build canonical encode mode: %v", err))
	}
	return em
}

func mustDecMode() cbor.DecMode {
	opts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
		TimeTag:     cbor.DecTagRequired,
		BigIntDec:   cbor.BigIntDecodeValue,
	}
	dm, err := opts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("cbor: build canonical decode mode: %v", err))
	}
	return dm
}

// Encode canonically encodes v. Every domain type, patch, and HAMT node in
// this module routes its wire form through this function so that identical
// values always produce identical bytes, regardless of construction order.
func Encode(v any) ([]byte, error) {
	b, err := encMode.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cbor: encode: %w", err)
	}
	return b, nil
}

// Decode decodes canonical CBOR bytes into v. v must be a pointer.
func Decode(data []byte, v any) error {
	if err := decMode.Unmarshal(data, v); err != nil {
		return fmt.Errorf("cbor: decode: %w", err)
	}
	return nil
}

// RawMessage holds an undecoded CBOR value, used for Patch.Value (§6: "Value: any").
type RawMessage = cbor.RawMessage

// Map is the intermediate representation domain types marshal themselves
// into before the final Encode call. Building via this ordered-by-content
// map (rather than a Go struct with fixed field order) is what lets
// to_cbor_map implementations omit absent optional fields entirely instead
// of emitting CBOR null.
type Map map[string]any
