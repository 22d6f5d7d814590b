// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-pkgtrust.
//
// go-pkgtrust is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package signing implements the Ed25519 signature primitive used by the
// trust engine. Messages are reduced to a digest through pkg/digest before
// signing, so the signature cost is independent of message size; the two
// supported instantiations are SHA-256 and SHA-512.
package signing

import (
	"crypto/ed25519"
	"fmt"
)

// Verifier checks an Ed25519 signature over a message digest.
//
// A (false, nil) return means the signature was cryptographically checked
// and rejected. A non-nil error means verification could not run (malformed
// key or signature structure); callers making access-control decisions must
// treat an error exactly like a rejection.
type Verifier interface {
	// Verify reports whether signature is a valid Ed25519 signature over
	// digest by the holder of pub.
	Verify(pub ed25519.PublicKey, digest, signature []byte) (bool, error)
}

// verify is the production Verifier. It is stateless and safe for
// concurrent use.
type verify struct{}

// NewVerifier creates the production Ed25519 verifier.
func NewVerifier() Verifier {
	return &verify{}
}

// Verify implements the Verifier interface.
func (v *verify) Verify(pub ed25519.PublicKey, digest, signature []byte) (bool, error) {
	if n := len(pub); n != ed25519.PublicKeySize {
		return false, fmt.Errorf("%w: got %d, want %d",
			ErrInvalidPublicKeySize, n, ed25519.PublicKeySize)
	}
	if len(digest) == 0 {
		return false, ErrEmptyDigest
	}
	if n := len(signature); n != ed25519.SignatureSize {
		return false, fmt.Errorf("%w: got %d, want %d",
			ErrInvalidSignatureSize, n, ed25519.SignatureSize)
	}
	return ed25519.Verify(pub, digest, signature), nil
}
