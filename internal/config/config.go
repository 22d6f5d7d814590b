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

// Package config loads the on-disk trusted-keys file into the declarative
// entry list consumed by trust.Load. Privilege flags that are omitted from
// an entry stay false; absence of a grant is never promoted to a grant.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-pkgtrust/pkg/digest"
	"github.com/jeremyhahn/go-pkgtrust/pkg/trust"
)

// Config represents the trusted-keys file
type Config struct {
	// Hash optionally selects the message digest algorithm (sha256, sha512).
	// Empty means sha256.
	Hash string `yaml:"hash,omitempty"`

	// Keys is the ordered list of trusted key entries. Order is preserved
	// into the loaded key set.
	Keys []KeyConfig `yaml:"keys"`
}

// KeyConfig is one trusted key entry
type KeyConfig struct {
	// Key is the PEM-encoded Ed25519 public key
	Key string `yaml:"key"`

	// CanCommit grants the publish privilege. Defaults to false.
	CanCommit bool `yaml:"can-commit"`

	// CanRotate grants the key-rotation privilege. Defaults to false.
	CanRotate bool `yaml:"can-rotate"`
}

// Load reads and parses a trusted-keys file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trusted keys file: %w", err)
	}
	return Parse(data)
}

// Parse parses trusted-keys YAML and validates its shape. Key encoding
// validity is deliberately left to trust.Load so the load-time error
// identifies the offending entry.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse trusted keys file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the structural shape of the config.
func (c *Config) Validate() error {
	if c.Hash != "" {
		if _, err := digest.ParseAlgorithm(c.Hash); err != nil {
			return fmt.Errorf("trusted keys file: hash %q: %w", c.Hash, err)
		}
	}
	for i, key := range c.Keys {
		if strings.TrimSpace(key.Key) == "" {
			return fmt.Errorf("trusted keys file: entry %d: missing key", i)
		}
	}
	return nil
}

// Algorithm returns the configured message digest algorithm, defaulting to
// SHA-256 when the file does not name one.
func (c *Config) Algorithm() (digest.Algorithm, error) {
	if c.Hash == "" {
		return digest.SHA256, nil
	}
	return digest.ParseAlgorithm(c.Hash)
}

// Entries converts the file entries into the in-memory shape consumed by
// trust.Load, preserving order.
func (c *Config) Entries() []trust.KeyEntry {
	entries := make([]trust.KeyEntry, 0, len(c.Keys))
	for _, key := range c.Keys {
		entries = append(entries, trust.KeyEntry{
			Key:       key.Key,
			CanCommit: key.CanCommit,
			CanRotate: key.CanRotate,
		})
	}
	return entries
}

// KeySet loads the config into an immutable trusted key set.
func (c *Config) KeySet(opts ...trust.Option) (*trust.TrustedKeySet, error) {
	alg, err := c.Algorithm()
	if err != nil {
		return nil, err
	}
	opts = append([]trust.Option{trust.WithAlgorithm(alg)}, opts...)
	return trust.Load(c.Entries(), opts...)
}
