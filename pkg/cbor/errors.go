package cbor

import "errors"

// Domain validation errors raised by the to_cbor_map/from_cbor pair of every
// type in pkg/schema, pkg/patch, and pkg/shop. Validation failures surface at
// the boundary of the component that raised them; this package only names
// the kinds (spec.md §7), it does not decide whether a caller retries.
var (
	ErrMissingRequired = errors.New("cbor: missing required field")
	ErrOutOfRange      = errors.New("cbor: value out of range")
	ErrWrongLength     = errors.New("cbor: wrong byte length")
	ErrInvalidField    = errors.New("cbor: invalid field")
	ErrInvalidState    = errors.New("cbor: invalid state")
	ErrEmptyContainer  = errors.New("cbor: container must be non-empty when present")
)
