package patch

import (
	"fmt"

	cborx "github.com/certen/shop-state-engine/pkg/cbor"
)

// Op is the kind of change a Patch applies to the object at its Path
// (§4.E).
type Op string

const (
	OpAdd       Op = "add"
	OpAppend    Op = "append"
	OpReplace   Op = "replace"
	OpRemove    Op = "remove"
	OpIncrement Op = "increment"
	OpDecrement Op = "decrement"
)

func (o Op) valid() bool {
	switch o {
	case OpAdd, OpAppend, OpReplace, OpRemove, OpIncrement, OpDecrement:
		return true
	default:
		return false
	}
}

// Patch is a single change: apply Op to the object (or sub-field) named by
// Path, with Value carrying whatever payload Op requires. Value is kept as
// opaque canonical CBOR rather than decoded eagerly, so a patch can be
// routed, hashed, and re-signed without its applier needing to understand
// every object's shape (§4.E, §6).
type Patch struct {
	Op    Op
	Path  PatchPath
	Value cborx.RawMessage
}

func (p Patch) validate() error {
	if !p.Op.valid() {
		return fmt.Errorf("%w: Op %q", cborx.ErrInvalidField, p.Op)
	}
	if p.Op == OpRemove && len(p.Value) != 0 {
		return fmt.Errorf("%w: remove patch must not carry a Value", cborx.ErrInvalidState)
	}
	if p.Op != OpRemove && len(p.Value) == 0 {
		return fmt.Errorf("%w: Value", cborx.ErrMissingRequired)
	}
	return nil
}

func (p Patch) MarshalCBOR() ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	m := cborx.Map{"Op": string(p.Op), "Path": p.Path}
	if len(p.Value) != 0 {
		m["Value"] = p.Value
	}
	return cborx.Encode(m)
}

func (p *Patch) UnmarshalCBOR(data []byte) error {
	var raw struct {
		Op    string
		Path  PatchPath
		Value cborx.RawMessage
	}
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: patch: %v", cborx.ErrInvalidField, err)
	}
	out := Patch{Op: Op(raw.Op), Path: raw.Path, Value: raw.Value}
	if err := out.validate(); err != nil {
		return err
	}
	*p = out
	return nil
}
