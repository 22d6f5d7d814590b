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

import "errors"

var (
	// ErrUnknownAlgorithm is returned when an algorithm name is not one of
	// the supported digest algorithms.
	ErrUnknownAlgorithm = errors.New("digest: unknown algorithm")
)
