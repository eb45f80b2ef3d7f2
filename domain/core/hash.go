package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// HashParts hashes an ordered list of string parts with a separator that
// cannot appear in well-formed parts, so ("ab","c") and ("a","bc") differ.
func HashParts(parts ...string) Hash {
	return NewHash([]byte(strings.Join(parts, "\x1f")))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Fingerprint identifies derived content (a dataset built from the same
// inputs fingerprints identically even though its generated IDs differ).
type Fingerprint Hash

// NewFingerprint computes a fingerprint over ordered string parts
func NewFingerprint(parts ...string) Fingerprint {
	return Fingerprint(HashParts(parts...))
}

// String returns the string representation
func (f Fingerprint) String() string { return Hash(f).String() }
