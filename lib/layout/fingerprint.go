// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/wirebuf/lib/schema"
)

// Hash is a 32-byte BLAKE3 digest.
type Hash [32]byte

// String returns the hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Short returns the first 12 hex characters, for display.
func (h Hash) Short() string {
	return hex.EncodeToString(h[:6])
}

// ParseHash parses a 64-character hex string.
func ParseHash(hexString string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return hash, fmt.Errorf("parsing layout hash: %w", err)
	}
	if len(decoded) != len(hash) {
		return hash, fmt.Errorf("layout hash is %d bytes, want %d", len(decoded), len(hash))
	}
	copy(hash[:], decoded)
	return hash, nil
}

type domainKey [32]byte

// Domain keys are the ASCII domain name, zero-padded to 32 bytes.
// Changing one invalidates every fingerprint in that domain.
var (
	descriptorDomainKey = domainKey{
		'w', 'i', 'r', 'e', 'b', 'u', 'f', '.', 'l', 'a', 'y', 'o', 'u', 't', '.',
		'd', 'e', 's', 'c', 'r', 'i', 'p', 't', 'o', 'r', 0, 0, 0, 0, 0, 0, 0,
	}

	keySetDomainKey = domainKey{
		'w', 'i', 'r', 'e', 'b', 'u', 'f', '.', 'l', 'a', 'y', 'o', 'u', 't', '.',
		'k', 'e', 'y', 's', 'e', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// Fingerprint returns the descriptor-domain hash of the encoded
// descriptor of s.
func Fingerprint(s *schema.Schema) (Hash, error) {
	data, err := Encode(s)
	if err != nil {
		return Hash{}, err
	}
	return FingerprintBytes(data), nil
}

// FingerprintBytes hashes an already encoded descriptor.
func FingerprintBytes(descriptor []byte) Hash {
	return keyedHash(descriptorDomainKey, descriptor)
}

// KeySetFingerprint hashes the canonical key sequence of s. Each name
// is length-prefixed, so no two distinct sequences share an input.
func KeySetFingerprint(s *schema.Schema) Hash {
	hasher := newHasher(keySetDomainKey)
	var prefix [binary.MaxVarintLen64]byte
	for _, name := range s.CanonicalKeys() {
		n := binary.PutUvarint(prefix[:], uint64(len(name)))
		hasher.Write(prefix[:n])
		hasher.Write([]byte(name))
	}
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}

func keyedHash(key domainKey, data []byte) Hash {
	hasher := newHasher(key)
	hasher.Write(data)
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}

func newHasher(key domainKey) *blake3.Hasher {
	// NewKeyed only fails for keys that are not 32 bytes.
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("layout: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return hasher
}
