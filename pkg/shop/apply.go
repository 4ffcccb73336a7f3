package shop

import (
	"errors"
	"fmt"

	"github.com/certen/shop-state-engine/pkg/hamt"
	"github.com/certen/shop-state-engine/pkg/patch"
)

var (
	ErrUnknownObject  = errors.New("shop: patch targets an object that does not exist")
	ErrUnsupportedOp  = errors.New("shop: operation not supported for this object type")
)

// Apply mutates s according to p, dispatching on p.Path.Type and p.Op
// (§4.D, §4.E). It is the only place patch semantics and shop storage
// meet: everything upstream of this treats a patch as an opaque, signed
// instruction.
func (s *Shop) Apply(p patch.Patch) error {
	value, err := p.DecodeValue(p.Path.Type)
	if err != nil {
		return err
	}

	switch p.Path.Type {
	case patch.ObjectTypeSchemaVersion:
		return s.applySchemaVersion(p, value)
	case patch.ObjectTypeManifest:
		return s.applyManifest(p, value)
	case patch.ObjectTypeAccount:
		return s.applyAccount(p, value)
	case patch.ObjectTypeListing:
		return s.applyListing(p, value)
	case patch.ObjectTypeInventory:
		return s.applyInventory(p, value)
	case patch.ObjectTypeTag:
		return s.applyTag(p, value)
	case patch.ObjectTypeOrder:
		return s.applyOrder(p, value)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedOp, p.Path.Type)
	}
}

func (s *Shop) applySchemaVersion(p patch.Patch, v patch.Value) error {
	if p.Op != patch.OpReplace && p.Op != patch.OpAdd {
		return fmt.Errorf("%w: SchemaVersion only supports add/replace", ErrUnsupportedOp)
	}
	s.SchemaVersion = *v.SchemaVersion
	return nil
}

func (s *Shop) applyManifest(p patch.Patch, v patch.Value) error {
	if p.Op != patch.OpReplace && p.Op != patch.OpAdd {
		return fmt.Errorf("%w: Manifest only supports add/replace", ErrUnsupportedOp)
	}
	s.Manifest = *v.Manifest
	return nil
}

func (s *Shop) applyAccount(p patch.Patch, v patch.Value) error {
	key := p.Path.AccountAddr[:]
	switch p.Op {
	case patch.OpAdd, patch.OpReplace:
		s.Accounts.Insert(key, *v.Account)
	case patch.OpRemove:
		if !s.Accounts.Delete(key) {
			return fmt.Errorf("%w: account %x", ErrUnknownObject, key)
		}
	default:
		return fmt.Errorf("%w: Accounts does not support %q", ErrUnsupportedOp, p.Op)
	}
	return nil
}

func (s *Shop) applyListing(p patch.Patch, v patch.Value) error {
	key := hamt.EncodeUint64Key(*p.Path.ObjectID)
	switch p.Op {
	case patch.OpAdd, patch.OpReplace:
		s.Listings.Insert(key, *v.Listing)
	case patch.OpRemove:
		if !s.Listings.Delete(key) {
			return fmt.Errorf("%w: listing %d", ErrUnknownObject, *p.Path.ObjectID)
		}
	default:
		return fmt.Errorf("%w: Listings does not support %q", ErrUnsupportedOp, p.Op)
	}
	return nil
}

func (s *Shop) applyInventory(p patch.Patch, v patch.Value) error {
	key := hamt.EncodeUint64Key(*p.Path.ObjectID)
	switch p.Op {
	case patch.OpAdd, patch.OpReplace:
		s.Inventory.Insert(key, *v.InventoryQty)
	case patch.OpRemove:
		if !s.Inventory.Delete(key) {
			return fmt.Errorf("%w: inventory %d", ErrUnknownObject, *p.Path.ObjectID)
		}
	case patch.OpIncrement, patch.OpDecrement:
		current, _ := s.Inventory.Get(key)
		delta := *v.InventoryQty
		if p.Op == patch.OpIncrement {
			current += delta
		} else {
			if delta > current {
				return fmt.Errorf("shop: inventory %d would go negative", *p.Path.ObjectID)
			}
			current -= delta
		}
		s.Inventory.Insert(key, current)
	default:
		return fmt.Errorf("%w: Inventory does not support %q", ErrUnsupportedOp, p.Op)
	}
	return nil
}

func (s *Shop) applyTag(p patch.Patch, v patch.Value) error {
	key := hamt.EncodeStringKey(*p.Path.TagName)
	switch p.Op {
	case patch.OpAdd, patch.OpReplace:
		s.Tags.Insert(key, *v.Tag)
	case patch.OpRemove:
		if !s.Tags.Delete(key) {
			return fmt.Errorf("%w: tag %q", ErrUnknownObject, *p.Path.TagName)
		}
	default:
		return fmt.Errorf("%w: Tags does not support %q", ErrUnsupportedOp, p.Op)
	}
	return nil
}

func (s *Shop) applyOrder(p patch.Patch, v patch.Value) error {
	key := hamt.EncodeUint64Key(*p.Path.ObjectID)
	switch p.Op {
	case patch.OpAdd, patch.OpReplace:
		if err := v.Order.Validate(); err != nil {
			return err
		}
		s.Orders.Insert(key, *v.Order)
	case patch.OpRemove:
		if !s.Orders.Delete(key) {
			return fmt.Errorf("%w: order %d", ErrUnknownObject, *p.Path.ObjectID)
		}
	default:
		return fmt.Errorf("%w: Orders does not support %q", ErrUnsupportedOp, p.Op)
	}
	return nil
}
