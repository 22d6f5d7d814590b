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
	"crypto/sha512"
	"hash"
)

// sha512Digest wraps the standard library streaming SHA-512 state.
type sha512Digest struct {
	h hash.Hash
}

// NewSHA512 returns a fresh, empty SHA-512 digest.
func NewSHA512() Digest {
	return &sha512Digest{h: sha512.New()}
}

func (d *sha512Digest) Update(p []byte) {
	// hash.Hash.Write never returns an error
	d.h.Write(p)
}

func (d *sha512Digest) Finish() []byte {
	out := make([]byte, 0, SHA512Size)
	return d.h.Sum(out)
}
