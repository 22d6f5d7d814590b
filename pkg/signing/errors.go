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

import "errors"

var (
	// ErrPrivateKeyRequired indicates a signer was constructed without a private key.
	ErrPrivateKeyRequired = errors.New("signing: private key required")

	// ErrInvalidPrivateKeySize indicates the private key is not a valid Ed25519 key.
	ErrInvalidPrivateKeySize = errors.New("signing: invalid private key size")

	// ErrInvalidPublicKeySize indicates the public key is not a valid Ed25519 key.
	ErrInvalidPublicKeySize = errors.New("signing: invalid public key size")

	// ErrInvalidSignatureSize indicates the signature is structurally malformed.
	ErrInvalidSignatureSize = errors.New("signing: invalid signature size")

	// ErrEmptyDigest indicates an empty message digest was supplied.
	ErrEmptyDigest = errors.New("signing: empty digest")
)
