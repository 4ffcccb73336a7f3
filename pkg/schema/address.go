package schema

import (
	"encoding/hex"
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"

	cborx "github.com/certen/shop-state-engine/pkg/cbor"
)

// AddressSize is the byte length of an Ethereum address (§3).
const AddressSize = 20

// EthereumAddress is a 20-byte address, encoded as a CBOR byte string of
// length 20 (§3). Equality is byte equality.
type EthereumAddress [AddressSize]byte

// NewEthereumAddress validates and wraps a byte slice.
func NewEthereumAddress(b []byte) (EthereumAddress, error) {
	var a EthereumAddress
	if len(b) != AddressSize {
		return a, fmt.Errorf("%w: ethereum address must be %d bytes, got %d", cborx.ErrWrongLength, AddressSize, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// Common converts to the go-ethereum address type, for interop with
// signature recovery (§4.G).
func (a EthereumAddress) Common() ethcommon.Address {
	return ethcommon.Address(a)
}

// FromCommon builds an EthereumAddress from a go-ethereum address.
func FromCommon(a ethcommon.Address) EthereumAddress {
	return EthereumAddress(a)
}

func (a EthereumAddress) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a EthereumAddress) MarshalCBOR() ([]byte, error) {
	return cborx.Encode(a[:])
}

func (a *EthereumAddress) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cborx.Decode(data, &b); err != nil {
		return fmt.Errorf("%w: ethereum address: %v", cborx.ErrInvalidField, err)
	}
	addr, err := NewEthereumAddress(b)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ChainAddress pairs a chain ID with an address on that chain (§3).
type ChainAddress struct {
	ChainID uint64
	Address EthereumAddress
}

// NewChainAddress validates ChainID > 0.
func NewChainAddress(chainID uint64, addr EthereumAddress) (ChainAddress, error) {
	if chainID == 0 {
		return ChainAddress{}, fmt.Errorf("%w: chain id must be greater than 0", cborx.ErrOutOfRange)
	}
	return ChainAddress{ChainID: chainID, Address: addr}, nil
}

func (c ChainAddress) cborMap() cborx.Map {
	return cborx.Map{
		"ChainID": c.ChainID,
		"Address": c.Address,
	}
}

func (c ChainAddress) MarshalCBOR() ([]byte, error) {
	if _, err := NewChainAddress(c.ChainID, c.Address); err != nil {
		return nil, err
	}
	return cborx.Encode(c.cborMap())
}

func (c *ChainAddress) UnmarshalCBOR(data []byte) error {
	var raw struct {
		ChainID uint64
		Address EthereumAddress
	}
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: chain address: %v", cborx.ErrInvalidField, err)
	}
	out, err := NewChainAddress(raw.ChainID, raw.Address)
	if err != nil {
		return err
	}
	*c = out
	return nil
}

// PublicKeySize is the byte length of a compressed SEC1 point (§3).
const PublicKeySize = 33

// PublicKey is a 33-byte compressed SEC1 public key.
type PublicKey [PublicKeySize]byte

func NewPublicKey(b []byte) (PublicKey, error) {
	var k PublicKey
	if len(b) != PublicKeySize {
		return k, fmt.Errorf("%w: public key must be %d bytes, got %d", cborx.ErrWrongLength, PublicKeySize, len(b))
	}
	copy(k[:], b)
	return k, nil
}

func (k PublicKey) MarshalCBOR() ([]byte, error) {
	return cborx.Encode(k[:])
}

func (k *PublicKey) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cborx.Decode(data, &b); err != nil {
		return fmt.Errorf("%w: public key: %v", cborx.ErrInvalidField, err)
	}
	key, err := NewPublicKey(b)
	if err != nil {
		return err
	}
	*k = key
	return nil
}

// Account is a shop account: its key cards and whether it is a guest (§3).
type Account struct {
	KeyCards []PublicKey
	Guest    bool
}

func (a Account) MarshalCBOR() ([]byte, error) {
	return cborx.Encode(cborx.Map{
		"KeyCards": a.KeyCards,
		"Guest":    a.Guest,
	})
}

func (a *Account) UnmarshalCBOR(data []byte) error {
	var raw struct {
		KeyCards []PublicKey
		Guest    bool
	}
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: account: %v", cborx.ErrInvalidField, err)
	}
	a.KeyCards = raw.KeyCards
	a.Guest = raw.Guest
	return nil
}
