package hamt

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	cborx "github.com/certen/shop-state-engine/pkg/cbor"
)

// Trie is a persistent, content-addressed map from arbitrary byte-string
// keys to values of type V. It backs every keyed collection inside a shop
// (§4.C, §4.D): accounts by address, listings and inventory by listing ID,
// tags by name, orders by order ID.
type Trie[V any] struct {
	root *node[V]
	size int
}

// New returns an empty trie.
func New[V any]() *Trie[V] {
	return &Trie[V]{root: &node[V]{}}
}

// EncodeUint64Key renders an integer key the way every numeric ID (listing
// ID, order ID) is hashed into the trie: 8 bytes, big-endian.
func EncodeUint64Key(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}

// EncodeStringKey renders a string key as its UTF-8 bytes.
func EncodeStringKey(s string) []byte {
	return []byte(s)
}

// Insert adds or overwrites key. It reports whether key was new.
func (t *Trie[V]) Insert(key []byte, value V) bool {
	if t.root == nil {
		t.root = &node[V]{}
	}
	inserted := t.root.insert(key, value, newHashState(key))
	if inserted {
		t.size++
	}
	return inserted
}

// Get looks up key.
func (t *Trie[V]) Get(key []byte) (V, bool) {
	var zero V
	if t.root == nil {
		return zero, false
	}
	return t.root.find(key)
}

// Has reports whether key is present.
func (t *Trie[V]) Has(key []byte) bool {
	_, ok := t.Get(key)
	return ok
}

// Delete removes key. It reports whether key was present.
func (t *Trie[V]) Delete(key []byte) bool {
	if t.root == nil {
		return false
	}
	deleted := t.root.delete(key, newHashState(key))
	if deleted {
		t.size--
	}
	return deleted
}

// All visits every (key, value) pair in packed trie order, stopping early
// if fn returns false. Order is a function of the trie's internal bitmap
// layout, not insertion order, and is not guaranteed stable across inserts.
func (t *Trie[V]) All(fn func(key []byte, value V) bool) {
	if t.root == nil {
		return
	}
	t.root.all(fn)
}

// Size is the number of leaf entries.
func (t *Trie[V]) Size() int {
	return t.size
}

// Hash is the trie's content digest: SHA-256 of the empty string for an
// empty trie, otherwise the root node's digest (§4.C, §8 invariant
// "identical key/value sets hash identically regardless of insertion
// order").
func (t *Trie[V]) Hash() ([]byte, error) {
	if t.root == nil || len(t.root.entries) == 0 {
		empty := sha256.Sum256(nil)
		return empty[:], nil
	}
	return t.root.digest()
}

// Copy returns a deep copy sharing no mutable state with t.
func (t *Trie[V]) Copy() *Trie[V] {
	return &Trie[V]{root: copyNode(t.root), size: t.size}
}

// MarshalCBOR serializes only the root node; size is not stored and is
// recomputed on decode.
func (t *Trie[V]) MarshalCBOR() ([]byte, error) {
	if t.root == nil {
		return (&node[V]{}).MarshalCBOR()
	}
	return t.root.MarshalCBOR()
}

// UnmarshalCBOR reconstructs the trie from its root node array and
// recomputes size by counting leaves.
func (t *Trie[V]) UnmarshalCBOR(data []byte) error {
	var raw rawNode
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: hamt trie: %v", cborx.ErrInvalidField, err)
	}
	root, err := nodeFromRaw[V](raw)
	if err != nil {
		return err
	}
	if root == nil {
		root = &node[V]{}
	}
	t.root = root
	t.size = countEntries(root)
	return nil
}
