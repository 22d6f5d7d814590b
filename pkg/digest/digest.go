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

// Package digest adapts the streaming SHA-2 hash implementations behind a
// fixed-output, block-oriented contract so they can be plugged into the
// generic signature routines in pkg/signing.
//
// Exactly two algorithms exist: SHA256 and SHA512. Output and block sizes
// are compile-time constants so callers can allocate exact-size buffers
// without runtime checks.
package digest

import (
	"crypto/sha256"
	"crypto/sha512"
	"strings"
)

// Algorithm identifies one of the supported digest algorithms. The set is
// closed: only SHA256 and SHA512 are ever instantiated.
type Algorithm int

const (
	// SHA256 is the 256-bit SHA-2 algorithm.
	SHA256 Algorithm = iota

	// SHA512 is the 512-bit SHA-2 algorithm.
	SHA512
)

// Static output and block sizes for the supported algorithms.
const (
	// SHA256Size is the SHA-256 output length in bytes.
	SHA256Size = sha256.Size

	// SHA256BlockSize is the SHA-256 block length in bytes.
	SHA256BlockSize = sha256.BlockSize

	// SHA512Size is the SHA-512 output length in bytes.
	SHA512Size = sha512.Size

	// SHA512BlockSize is the SHA-512 block length in bytes.
	SHA512BlockSize = sha512.BlockSize
)

// Algorithm name constants as accepted by ParseAlgorithm.
const (
	NameSHA256 = "sha256"
	NameSHA512 = "sha512"
)

// Digest is a streaming hash in progress. Update may be called any number
// of times; feeding input incrementally is equivalent to feeding the
// concatenation of the same bytes in a single call. Finish consumes the
// digest and returns the final hash value; the Digest must not be used
// after Finish returns.
type Digest interface {
	// Update feeds additional input into the hash state. It never fails.
	Update(p []byte)

	// Finish consumes the digest and returns the final hash value. The
	// returned slice is exactly Size() bytes for the originating Algorithm.
	Finish() []byte
}

// New returns a fresh, empty digest for the algorithm.
func (a Algorithm) New() Digest {
	switch a {
	case SHA512:
		return NewSHA512()
	default:
		return NewSHA256()
	}
}

// Size returns the output length in bytes (32 for SHA256, 64 for SHA512).
func (a Algorithm) Size() int {
	if a == SHA512 {
		return SHA512Size
	}
	return SHA256Size
}

// BlockSize returns the block length in bytes (64 for SHA256, 128 for SHA512).
func (a Algorithm) BlockSize() int {
	if a == SHA512 {
		return SHA512BlockSize
	}
	return SHA256BlockSize
}

// Sum computes the digest of data in a single pass.
func (a Algorithm) Sum(data []byte) []byte {
	d := a.New()
	d.Update(data)
	return d.Finish()
}

// String returns the lowercase algorithm name.
func (a Algorithm) String() string {
	if a == SHA512 {
		return NameSHA512
	}
	return NameSHA256
}

// ParseAlgorithm parses a case-insensitive algorithm name. Both the plain
// ("sha256") and dashed ("sha-256") forms are accepted.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "") {
	case NameSHA256:
		return SHA256, nil
	case NameSHA512:
		return SHA512, nil
	default:
		return 0, ErrUnknownAlgorithm
	}
}
