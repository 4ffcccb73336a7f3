// Package shop implements the shop aggregate (§4.D): a manifest plus five
// keyed HAMTs (accounts, listings, inventory, tags, orders), together
// committing to a single root hash that changes whenever any part of the
// shop's state does.
package shop

import (
	"crypto/sha256"
	"fmt"

	cborx "github.com/certen/shop-state-engine/pkg/cbor"
	"github.com/certen/shop-state-engine/pkg/hamt"
	"github.com/certen/shop-state-engine/pkg/schema"
)

// CurrentSchemaVersion is the schema version New assigns to a fresh shop.
// Apply does not check the version carried by a SchemaVersion patch.
const CurrentSchemaVersion = 1

// Shop is the full state of one shop at a point in time.
type Shop struct {
	SchemaVersion uint64
	Manifest      schema.Manifest
	Accounts      *hamt.Trie[schema.Account]
	Listings      *hamt.Trie[schema.Listing]
	Inventory     *hamt.Trie[uint64]
	Tags          *hamt.Trie[schema.Tag]
	Orders        *hamt.Trie[schema.Order]
}

// New returns an empty shop with the given manifest.
func New(manifest schema.Manifest) *Shop {
	return &Shop{
		SchemaVersion: CurrentSchemaVersion,
		Manifest:      manifest,
		Accounts:      hamt.New[schema.Account](),
		Listings:      hamt.New[schema.Listing](),
		Inventory:     hamt.New[uint64](),
		Tags:          hamt.New[schema.Tag](),
		Orders:        hamt.New[schema.Order](),
	}
}

// Copy returns a deep copy sharing no mutable state with s.
func (s *Shop) Copy() *Shop {
	return &Shop{
		SchemaVersion: s.SchemaVersion,
		Manifest:      s.Manifest,
		Accounts:      s.Accounts.Copy(),
		Listings:      s.Listings.Copy(),
		Inventory:     s.Inventory.Copy(),
		Tags:          s.Tags.Copy(),
		Orders:        s.Orders.Copy(),
	}
}

// RootHash is SHA-256 of the canonical CBOR encoding of the shop's schema
// version, manifest, and the five HAMT content hashes (§4.D, §8). Two shops
// with identical state, however their collections were built up, always
// produce the same root.
func (s *Shop) RootHash() ([32]byte, error) {
	accountsHash, err := s.Accounts.Hash()
	if err != nil {
		return [32]byte{}, fmt.Errorf("shop: accounts hash: %w", err)
	}
	listingsHash, err := s.Listings.Hash()
	if err != nil {
		return [32]byte{}, fmt.Errorf("shop: listings hash: %w", err)
	}
	inventoryHash, err := s.Inventory.Hash()
	if err != nil {
		return [32]byte{}, fmt.Errorf("shop: inventory hash: %w", err)
	}
	tagsHash, err := s.Tags.Hash()
	if err != nil {
		return [32]byte{}, fmt.Errorf("shop: tags hash: %w", err)
	}
	ordersHash, err := s.Orders.Hash()
	if err != nil {
		return [32]byte{}, fmt.Errorf("shop: orders hash: %w", err)
	}

	encoded, err := cborx.Encode(cborx.Map{
		"SchemaVersion": s.SchemaVersion,
		"Manifest":      s.Manifest,
		"Accounts":      accountsHash,
		"Listings":      listingsHash,
		"Inventory":     inventoryHash,
		"Tags":          tagsHash,
		"Orders":        ordersHash,
	})
	if err != nil {
		return [32]byte{}, fmt.Errorf("shop: encode root: %w", err)
	}
	return sha256.Sum256(encoded), nil
}
