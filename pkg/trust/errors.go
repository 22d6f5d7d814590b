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

package trust

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKeyEncoding indicates a key-set entry whose public key text
	// could not be parsed. The whole load is rejected.
	ErrInvalidKeyEncoding = errors.New("trust: invalid key encoding")

	// ErrInvalidSignatureEncoding indicates a detached signature whose wire
	// form is malformed.
	ErrInvalidSignatureEncoding = errors.New("trust: invalid signature encoding")

	// ErrSignatureRequired indicates Verify was called without a signature.
	ErrSignatureRequired = errors.New("trust: signature required")
)

// InvalidKeyEncodingError identifies the key-set entry whose key material
// failed to parse. It matches ErrInvalidKeyEncoding under errors.Is.
type InvalidKeyEncodingError struct {
	// EntryIndex is the zero-based position of the offending entry.
	EntryIndex int

	// Err is the underlying parse failure.
	Err error
}

// Error implements the error interface.
func (e *InvalidKeyEncodingError) Error() string {
	return fmt.Sprintf("%v: entry %d: %v", ErrInvalidKeyEncoding, e.EntryIndex, e.Err)
}

// Unwrap returns the underlying parse failure.
func (e *InvalidKeyEncodingError) Unwrap() error {
	return e.Err
}

// Is matches the ErrInvalidKeyEncoding sentinel.
func (e *InvalidKeyEncodingError) Is(target error) bool {
	return target == ErrInvalidKeyEncoding
}
