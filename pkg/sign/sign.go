// Package sign implements the EIP-191 personal_sign commitment scheme a
// signed patch set is authenticated with (§4.G): a key card's private key
// signs the header's canonical CBOR encoding (which carries the root hash),
// and any keeper of the shop state can
// recover the signer's address from the signature alone and check it
// against the shop's authorized key cards.
package sign

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/certen/shop-state-engine/pkg/schema"
)

var (
	ErrSignatureInvalid   = errors.New("sign: signature has invalid format")
	ErrUnauthorizedSigner = errors.New("sign: recovered address is not an authorized key card")
)

// Sign produces an EIP-191 personal_sign signature over message (typically
// a PatchSetHeader's canonical CBOR encoding) using key.
func Sign(key *ecdsa.PrivateKey, message []byte) ([65]byte, error) {
	var sig [65]byte
	digest := accounts.TextHash(message)
	raw, err := crypto.Sign(digest, key)
	if err != nil {
		return sig, fmt.Errorf("sign: %w", err)
	}
	copy(sig[:], raw)
	return sig, nil
}

// Recover returns the address that produced signature over message.
func Recover(message []byte, signature [65]byte) (schema.EthereumAddress, error) {
	digest := accounts.TextHash(message)
	pub, err := crypto.SigToPub(digest, signature[:])
	if err != nil {
		return schema.EthereumAddress{}, fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}
	return schema.FromCommon(crypto.PubkeyToAddress(*pub)), nil
}

// Verify checks that signature over message was produced by one of the
// addresses in authorized. It returns the recovered address on success.
func Verify(message []byte, signature [65]byte, authorized []schema.EthereumAddress) (schema.EthereumAddress, error) {
	recovered, err := Recover(message, signature)
	if err != nil {
		return schema.EthereumAddress{}, err
	}
	for _, addr := range authorized {
		if addr == recovered {
			return recovered, nil
		}
	}
	return schema.EthereumAddress{}, fmt.Errorf("%w: %s", ErrUnauthorizedSigner, recovered)
}
