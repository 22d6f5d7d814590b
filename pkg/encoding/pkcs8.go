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

package encoding

import (
	"bytes"
	"crypto/ed25519"
	"encoding/pem"
	"fmt"
	"strings"

	"github.com/youmark/pkcs8"
)

// EncodePrivateKeyPEM encodes an Ed25519 private key to PEM-wrapped PKCS#8.
// If a password is provided the key is encrypted and the block type is
// "ENCRYPTED PRIVATE KEY"; otherwise the key is encoded in the clear.
func EncodePrivateKeyPEM(privateKey ed25519.PrivateKey, password []byte) ([]byte, error) {
	if privateKey == nil {
		return nil, ErrInvalidPrivateKey
	}

	// youmark/pkcs8 handles the PKCS#5 v2 encryption envelope
	der, err := pkcs8.MarshalPrivateKey(privateKey, password, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal PKCS#8: %w", err)
	}

	blockType := PEMTypePrivateKey
	if len(password) > 0 {
		blockType = PEMTypeEncryptedPrivateKey
	}

	block := &pem.Block{
		Type:  blockType,
		Bytes: der,
	}

	var buf bytes.Buffer
	if err := pem.Encode(&buf, block); err != nil {
		return nil, fmt.Errorf("failed to encode PEM: %w", err)
	}

	return buf.Bytes(), nil
}

// DecodePrivateKeyPEM decodes a PEM-wrapped PKCS#8 block to an Ed25519
// private key. If the block is encrypted, a password must be provided.
func DecodePrivateKeyPEM(data, password []byte) (ed25519.PrivateKey, error) {
	if len(data) == 0 {
		return nil, ErrInvalidData
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEMEncoding
	}
	if block.Type != PEMTypePrivateKey && block.Type != PEMTypeEncryptedPrivateKey {
		return nil, fmt.Errorf("%w: %q", ErrUnexpectedPEMType, block.Type)
	}

	var (
		key any
		err error
	)
	if len(password) > 0 {
		key, err = pkcs8.ParsePKCS8PrivateKey(block.Bytes, password)
	} else {
		key, err = pkcs8.ParsePKCS8PrivateKey(block.Bytes)
	}
	if err != nil {
		if isPasswordError(err) {
			return nil, ErrInvalidPassword
		}
		return nil, fmt.Errorf("failed to parse PKCS#8: %w", err)
	}

	edPriv, ok := key.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKeyAlgorithm, key)
	}

	return edPriv, nil
}

// isPasswordError reports whether a pkcs8 parse failure is attributable to a
// wrong or missing decryption password.
func isPasswordError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "password") ||
		strings.Contains(msg, "decrypt") ||
		strings.Contains(msg, "incorrect")
}
