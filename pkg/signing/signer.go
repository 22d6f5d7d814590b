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

package signing

import (
	"crypto/ed25519"
	"fmt"

	"github.com/jeremyhahn/go-pkgtrust/pkg/digest"
)

// Signer produces detached Ed25519 signatures over message digests.
// It is the counterpart of Verifier: a signature created by
// Sign(data, alg) verifies against alg.Sum(data).
type Signer struct {
	priv ed25519.PrivateKey
}

// NewSigner creates a Signer for the provided Ed25519 private key.
func NewSigner(priv ed25519.PrivateKey) (*Signer, error) {
	if priv == nil {
		return nil, ErrPrivateKeyRequired
	}
	if n := len(priv); n != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d",
			ErrInvalidPrivateKeySize, n, ed25519.PrivateKeySize)
	}
	return &Signer{priv: priv}, nil
}

// Public returns the public key corresponding to the signing key.
func (s *Signer) Public() ed25519.PublicKey {
	return s.priv.Public().(ed25519.PublicKey)
}

// Sign reduces data with the given digest algorithm and signs the digest.
// The returned signature is raw Ed25519 signature bytes.
func (s *Signer) Sign(data []byte, alg digest.Algorithm) ([]byte, error) {
	return s.SignDigest(alg.Sum(data))
}

// SignDigest signs a pre-computed message digest.
func (s *Signer) SignDigest(dig []byte) ([]byte, error) {
	if len(dig) == 0 {
		return nil, ErrEmptyDigest
	}
	return ed25519.Sign(s.priv, dig), nil
}
