package hamt

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	cborx "github.com/certen/shop-state-engine/pkg/cbor"
)

// nullRaw is the canonical CBOR encoding of null, used to fill the key,
// value, or child slot of a rawEntry that doesn't apply to it.
var nullRaw = cbor.RawMessage{0xf6}

func isNullRaw(r cbor.RawMessage) bool {
	return len(r) == 1 && r[0] == 0xf6
}

func encodeValue(v any) ([]byte, error) {
	return cborx.Encode(v)
}

// rawEntry is the wire form of one entry: a 3-element CBOR array
// [key, value, child], exactly one of (key,value) or child populated and
// the other pair/slot null. This is what gives the trie its compact
// on-disk shape: a leaf costs one array, a branch costs one nested array.
type rawEntry struct {
	_     struct{} `cbor:",toarray"`
	Key   cbor.RawMessage
	Value cbor.RawMessage
	Child cbor.RawMessage
}

// rawNode is the wire form of a node: [bitmap, entries].
type rawNode struct {
	_       struct{} `cbor:",toarray"`
	Bitmap  uint64
	Entries []rawEntry
}

func (n *node[V]) toRaw() (rawNode, error) {
	entries := make([]rawEntry, len(n.entries))
	for i := range n.entries {
		e := &n.entries[i]
		var re rawEntry
		if e.node != nil {
			childRaw, err := e.node.toRaw()
			if err != nil {
				return rawNode{}, err
			}
			childBytes, err := cborx.Encode(childRaw)
			if err != nil {
				return rawNode{}, err
			}
			re.Key = nullRaw
			re.Value = nullRaw
			re.Child = cbor.RawMessage(childBytes)
		} else {
			keyBytes, err := cborx.Encode(e.key)
			if err != nil {
				return rawNode{}, err
			}
			valueBytes, err := encodeValue(e.value)
			if err != nil {
				return rawNode{}, err
			}
			re.Key = cbor.RawMessage(keyBytes)
			re.Value = cbor.RawMessage(valueBytes)
			re.Child = nullRaw
		}
		entries[i] = re
	}
	return rawNode{Bitmap: n.bitmap, Entries: entries}, nil
}

func nodeFromRaw[V any](raw rawNode) (*node[V], error) {
	if raw.Bitmap == 0 && len(raw.Entries) == 0 {
		return nil, nil
	}
	out := &node[V]{bitmap: raw.Bitmap, entries: make([]entry[V], len(raw.Entries))}
	for i := range raw.Entries {
		re := raw.Entries[i]
		if !isNullRaw(re.Child) {
			var childRaw rawNode
			if err := cborx.Decode(re.Child, &childRaw); err != nil {
				return nil, fmt.Errorf("hamt: decode child node: %w", err)
			}
			child, err := nodeFromRaw[V](childRaw)
			if err != nil {
				return nil, err
			}
			out.entries[i] = entry[V]{node: child}
			continue
		}
		var key []byte
		if err := cborx.Decode(re.Key, &key); err != nil {
			return nil, fmt.Errorf("%w: hamt entry key: %v", cborx.ErrInvalidField, err)
		}
		var value V
		if err := cborx.Decode(re.Value, &value); err != nil {
			return nil, fmt.Errorf("%w: hamt entry value: %v", cborx.ErrInvalidField, err)
		}
		out.entries[i] = entry[V]{key: key, value: value}
	}
	return out, nil
}

func (n *node[V]) MarshalCBOR() ([]byte, error) {
	raw, err := n.toRaw()
	if err != nil {
		return nil, err
	}
	return cborx.Encode(raw)
}

func (n *node[V]) UnmarshalCBOR(data []byte) error {
	var raw rawNode
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: hamt node: %v", cborx.ErrInvalidField, err)
	}
	decoded, err := nodeFromRaw[V](raw)
	if err != nil {
		return err
	}
	if decoded == nil {
		*n = node[V]{}
		return nil
	}
	*n = *decoded
	return nil
}
