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

package digest

import (
	"crypto/sha256"
	"hash"
)

// sha256Digest wraps the standard library streaming SHA-256 state.
type sha256Digest struct {
	h hash.Hash
}

// NewSHA256 returns a fresh, empty SHA-256 digest.
func NewSHA256() Digest {
	return &sha256Digest{h: sha256.New()}
}

func (d *sha256Digest) Update(p []byte) {
	// hash.Hash.Write never returns an error
	d.h.Write(p)
}

func (d *sha256Digest) Finish() []byte {
	out := make([]byte, 0, SHA256Size)
	return d.h.Sum(out)
}
