// Package patch implements the signed patch set format shops exchange to
// propose and commit state changes (§4.E): a PatchPath addresses one object
// inside a shop, a Patch names an operation against that path, and a
// SignedPatchSet bundles a batch of patches under one signature and a root
// hash binding them together.
package patch

import (
	"fmt"

	cborx "github.com/certen/shop-state-engine/pkg/cbor"
	"github.com/certen/shop-state-engine/pkg/schema"
)

// ObjectType discriminates which HAMT (or the manifest) a PatchPath
// addresses (§4.E).
type ObjectType string

const (
	ObjectTypeSchemaVersion ObjectType = "SchemaVersion"
	ObjectTypeManifest      ObjectType = "Manifest"
	ObjectTypeAccount       ObjectType = "Accounts"
	ObjectTypeListing       ObjectType = "Listings"
	ObjectTypeOrder         ObjectType = "Orders"
	ObjectTypeTag           ObjectType = "Tags"
	ObjectTypeInventory     ObjectType = "Inventory"
)

func (t ObjectType) valid() bool {
	switch t {
	case ObjectTypeSchemaVersion, ObjectTypeManifest, ObjectTypeAccount,
		ObjectTypeListing, ObjectTypeOrder, ObjectTypeTag, ObjectTypeInventory:
		return true
	default:
		return false
	}
}

// needsID reports whether t addresses a specific object rather than the
// shop-wide singleton (SchemaVersion, Manifest).
func (t ObjectType) needsID() bool {
	return t != ObjectTypeSchemaVersion && t != ObjectTypeManifest
}

// PatchPath identifies the object a Patch applies to, and optionally a
// sub-path of fields within it (§4.E). Exactly one of ObjectID, AccountAddr,
// or TagName is set, chosen by Type, except for SchemaVersion and Manifest,
// which carry none; Fields is nil when the patch targets the whole object.
type PatchPath struct {
	Type        ObjectType
	ObjectID    *uint64
	AccountAddr *schema.EthereumAddress
	TagName     *string
	Fields      []cborx.RawMessage
}

// NewPatchPath validates and builds a PatchPath. Exactly the identifier
// field matching Type may be non-nil; all others must be nil.
func NewPatchPath(typ ObjectType, objectID *uint64, accountAddr *schema.EthereumAddress, tagName *string, fields []cborx.RawMessage) (PatchPath, error) {
	if !typ.valid() {
		return PatchPath{}, fmt.Errorf("%w: ObjectType %q", cborx.ErrInvalidField, typ)
	}

	p := PatchPath{Type: typ, ObjectID: objectID, AccountAddr: accountAddr, TagName: tagName, Fields: fields}

	switch typ {
	case ObjectTypeSchemaVersion, ObjectTypeManifest:
		if objectID != nil || accountAddr != nil || tagName != nil {
			return PatchPath{}, fmt.Errorf("%w: %s patch must not carry an id", cborx.ErrInvalidState, typ)
		}
	case ObjectTypeAccount:
		if accountAddr == nil {
			return PatchPath{}, fmt.Errorf("%w: account patch needs AccountAddr", cborx.ErrMissingRequired)
		}
		if objectID != nil || tagName != nil {
			return PatchPath{}, fmt.Errorf("%w: account patch must carry only AccountAddr", cborx.ErrInvalidState)
		}
	case ObjectTypeListing, ObjectTypeOrder, ObjectTypeInventory:
		if objectID == nil {
			return PatchPath{}, fmt.Errorf("%w: %s patch needs ObjectID", cborx.ErrMissingRequired, typ)
		}
		if accountAddr != nil || tagName != nil {
			return PatchPath{}, fmt.Errorf("%w: %s patch must carry only ObjectID", cborx.ErrInvalidState, typ)
		}
	case ObjectTypeTag:
		if tagName == nil {
			return PatchPath{}, fmt.Errorf("%w: tag patch needs TagName", cborx.ErrMissingRequired)
		}
		if objectID != nil || accountAddr != nil {
			return PatchPath{}, fmt.Errorf("%w: tag patch must carry only TagName", cborx.ErrInvalidState)
		}
	}
	return p, nil
}

func (p PatchPath) MarshalCBOR() ([]byte, error) {
	if _, err := NewPatchPath(p.Type, p.ObjectID, p.AccountAddr, p.TagName, p.Fields); err != nil {
		return nil, err
	}

	arr := []any{string(p.Type)}
	switch p.Type {
	case ObjectTypeAccount:
		arr = append(arr, *p.AccountAddr)
	case ObjectTypeListing, ObjectTypeOrder, ObjectTypeInventory:
		arr = append(arr, *p.ObjectID)
	case ObjectTypeTag:
		arr = append(arr, *p.TagName)
	}
	for _, f := range p.Fields {
		arr = append(arr, f)
	}
	return cborx.Encode(arr)
}

func (p *PatchPath) UnmarshalCBOR(data []byte) error {
	var elems []cborx.RawMessage
	if err := cborx.Decode(data, &elems); err != nil {
		return fmt.Errorf("%w: patch path: %v", cborx.ErrInvalidField, err)
	}
	if len(elems) == 0 {
		return fmt.Errorf("%w: patch path is empty", cborx.ErrInvalidField)
	}

	var typeStr string
	if err := cborx.Decode(elems[0], &typeStr); err != nil {
		return fmt.Errorf("%w: patch path type: %v", cborx.ErrInvalidField, err)
	}
	typ := ObjectType(typeStr)

	rest := elems[1:]
	var objectID *uint64
	var accountAddr *schema.EthereumAddress
	var tagName *string

	if typ.needsID() {
		if len(rest) == 0 {
			return fmt.Errorf("%w: %s patch needs an id", cborx.ErrMissingRequired, typ)
		}
		switch typ {
		case ObjectTypeAccount:
			var addr schema.EthereumAddress
			if err := cborx.Decode(rest[0], &addr); err != nil {
				return fmt.Errorf("%w: patch path account addr: %v", cborx.ErrInvalidField, err)
			}
			accountAddr = &addr
		case ObjectTypeListing, ObjectTypeOrder, ObjectTypeInventory:
			var id uint64
			if err := cborx.Decode(rest[0], &id); err != nil {
				return fmt.Errorf("%w: patch path object id: %v", cborx.ErrInvalidField, err)
			}
			objectID = &id
		case ObjectTypeTag:
			var name string
			if err := cborx.Decode(rest[0], &name); err != nil {
				return fmt.Errorf("%w: patch path tag name: %v", cborx.ErrInvalidField, err)
			}
			tagName = &name
		}
		rest = rest[1:]
	}

	out, err := NewPatchPath(typ, objectID, accountAddr, tagName, rest)
	if err != nil {
		return err
	}
	*p = out
	return nil
}
