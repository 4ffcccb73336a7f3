package patch

import (
	"fmt"

	cborx "github.com/certen/shop-state-engine/pkg/cbor"
	"github.com/certen/shop-state-engine/pkg/schema"
)

// Value is the decoded form of a Patch's opaque payload: exactly one field
// is set, chosen by the ObjectType of the patch's Path. Wire patches carry
// their value as untyped CBOR (Patch.Value) so a router can forward them
// without decoding; applying a patch to a shop is where Value's concrete
// shape starts to matter, which is what this type is for.
type Value struct {
	SchemaVersion *uint64
	Manifest      *schema.Manifest
	Account       *schema.Account
	Listing       *schema.Listing
	Order         *schema.Order
	Tag           *schema.Tag
	InventoryQty  *uint64
}

// DecodeValue decodes p.Value according to objType, the type named by the
// patch's own Path. An add/replace on the inventory count is carried as a
// bare integer; every other object type decodes into its schema struct.
func (p Patch) DecodeValue(objType ObjectType) (Value, error) {
	var v Value
	if p.Op == OpRemove {
		return v, nil
	}
	switch objType {
	case ObjectTypeSchemaVersion:
		var n uint64
		if err := cborx.Decode(p.Value, &n); err != nil {
			return v, fmt.Errorf("%w: schema version patch value: %v", cborx.ErrInvalidField, err)
		}
		v.SchemaVersion = &n
	case ObjectTypeManifest:
		var m schema.Manifest
		if err := cborx.Decode(p.Value, &m); err != nil {
			return v, fmt.Errorf("%w: manifest patch value: %v", cborx.ErrInvalidField, err)
		}
		v.Manifest = &m
	case ObjectTypeAccount:
		var a schema.Account
		if err := cborx.Decode(p.Value, &a); err != nil {
			return v, fmt.Errorf("%w: account patch value: %v", cborx.ErrInvalidField, err)
		}
		v.Account = &a
	case ObjectTypeListing:
		var l schema.Listing
		if err := cborx.Decode(p.Value, &l); err != nil {
			return v, fmt.Errorf("%w: listing patch value: %v", cborx.ErrInvalidField, err)
		}
		v.Listing = &l
	case ObjectTypeOrder:
		var o schema.Order
		if err := cborx.Decode(p.Value, &o); err != nil {
			return v, fmt.Errorf("%w: order patch value: %v", cborx.ErrInvalidField, err)
		}
		v.Order = &o
	case ObjectTypeTag:
		var t schema.Tag
		if err := cborx.Decode(p.Value, &t); err != nil {
			return v, fmt.Errorf("%w: tag patch value: %v", cborx.ErrInvalidField, err)
		}
		v.Tag = &t
	case ObjectTypeInventory:
		var n uint64
		if err := cborx.Decode(p.Value, &n); err != nil {
			return v, fmt.Errorf("%w: inventory patch value: %v", cborx.ErrInvalidField, err)
		}
		v.InventoryQty = &n
	default:
		return v, fmt.Errorf("%w: ObjectType %q", cborx.ErrInvalidField, objType)
	}
	return v, nil
}
