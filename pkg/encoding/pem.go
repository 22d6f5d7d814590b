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

// Package encoding provides the textual key codecs used by the trust core.
// Trusted public keys are exchanged as PEM-wrapped PKIX (SubjectPublicKeyInfo)
// blocks; publisher signing keys are stored as PKCS#8, optionally encrypted.
// The trust core is single-scheme: only Ed25519 key material is accepted.
package encoding

import (
	"bytes"
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// PEM block types
const (
	PEMTypePublicKey           = "PUBLIC KEY"
	PEMTypePrivateKey          = "PRIVATE KEY"
	PEMTypeEncryptedPrivateKey = "ENCRYPTED PRIVATE KEY"
)

// EncodePublicKeyPEM encodes an Ed25519 public key to a PEM "PUBLIC KEY"
// block wrapping the PKIX DER encoding.
func EncodePublicKeyPEM(publicKey ed25519.PublicKey) ([]byte, error) {
	if publicKey == nil {
		return nil, ErrInvalidPublicKey
	}

	der, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal PKIX public key: %w", err)
	}

	block := &pem.Block{
		Type:  PEMTypePublicKey,
		Bytes: der,
	}

	var buf bytes.Buffer
	if err := pem.Encode(&buf, block); err != nil {
		return nil, fmt.Errorf("failed to encode PEM: %w", err)
	}

	return buf.Bytes(), nil
}

// DecodePublicKeyPEM decodes a PEM "PUBLIC KEY" block to an Ed25519 public
// key. Keys of any other algorithm are rejected with
// ErrUnsupportedKeyAlgorithm.
func DecodePublicKeyPEM(data []byte) (ed25519.PublicKey, error) {
	if len(data) == 0 {
		return nil, ErrInvalidData
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEMEncoding
	}
	if block.Type != PEMTypePublicKey {
		return nil, fmt.Errorf("%w: %q", ErrUnexpectedPEMType, block.Type)
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PKIX public key: %w", err)
	}

	edPub, ok := pub.(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKeyAlgorithm, pub)
	}

	return edPub, nil
}

// MarshalPublicKeyPKIX encodes an Ed25519 public key to PKIX DER. This is
// the canonical key-material encoding fingerprints are derived from.
func MarshalPublicKeyPKIX(publicKey ed25519.PublicKey) ([]byte, error) {
	if publicKey == nil {
		return nil, ErrInvalidPublicKey
	}

	der, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal PKIX public key: %w", err)
	}

	return der, nil
}
