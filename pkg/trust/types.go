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
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"github.com/jeremyhahn/go-pkgtrust/pkg/digest"
	"github.com/jeremyhahn/go-pkgtrust/pkg/encoding"
)

// FingerprintSize is the length of a key fingerprint in bytes.
const FingerprintSize = 20

// SignatureSize is the length of the raw signature in bytes.
const SignatureSize = ed25519.SignatureSize

// EncodedSignatureSize is the length of a detached signature on the wire:
// the claimed fingerprint followed by the raw signature.
const EncodedSignatureSize = FingerprintSize + SignatureSize

// Fingerprint is a short digest of a public key's PKIX encoding. It is used
// only as a fast-path lookup hint identifying which key created a signature;
// it is never a security boundary and never trusted on its own.
type Fingerprint [FingerprintSize]byte

// String renders the fingerprint as lowercase hex.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// IsZero reports whether the fingerprint is absent (all zero bytes).
func (f Fingerprint) IsZero() bool {
	return f == Fingerprint{}
}

// Privilege is an authorization a trusted key may hold. The set is closed:
// a key may hold zero, one, or both of Commit and Rotate, independently.
type Privilege int

const (
	// PrivilegeCommit authorizes ordinary publish-type actions.
	PrivilegeCommit Privilege = iota

	// PrivilegeRotate authorizes changing the trusted key set itself.
	PrivilegeRotate
)

// String returns the privilege name.
func (p Privilege) String() string {
	switch p {
	case PrivilegeCommit:
		return "commit"
	case PrivilegeRotate:
		return "rotate"
	default:
		return fmt.Sprintf("Privilege(%d)", int(p))
	}
}

// PublicKey is immutable Ed25519 key material together with its derived
// fingerprint. The fingerprint is always derived from the key material,
// never supplied by configuration, so a config author cannot spoof the
// association between a key and its displayed fingerprint.
type PublicKey struct {
	material    ed25519.PublicKey
	fingerprint Fingerprint
}

// NewPublicKey constructs a PublicKey, deriving its fingerprint as the
// leading FingerprintSize bytes of SHA-256 over the PKIX encoding of the
// key material.
func NewPublicKey(pub ed25519.PublicKey) (PublicKey, error) {
	der, err := encoding.MarshalPublicKeyPKIX(pub)
	if err != nil {
		return PublicKey{}, err
	}

	d := digest.SHA256.New()
	d.Update(der)

	var fp Fingerprint
	copy(fp[:], d.Finish())

	material := make(ed25519.PublicKey, len(pub))
	copy(material, pub)

	return PublicKey{material: material, fingerprint: fp}, nil
}

// Material returns the raw Ed25519 public key. Callers must not mutate it.
func (k PublicKey) Material() ed25519.PublicKey {
	return k.material
}

// Fingerprint returns the derived key fingerprint.
func (k PublicKey) Fingerprint() Fingerprint {
	return k.fingerprint
}

// Equal reports whether both keys hold the same key material.
func (k PublicKey) Equal(other PublicKey) bool {
	return bytes.Equal(k.material, other.material)
}

// Signature is a detached signature: the raw signature bytes plus an
// embedded fingerprint claiming which key produced it. The claimed
// fingerprint is untrusted input and may be absent (zero), wrong, or
// adversarial; it only steers the fast path.
type Signature struct {
	raw         []byte
	fingerprint Fingerprint
}

// NewSignature constructs a Signature from raw signature bytes and a
// claimed fingerprint.
func NewSignature(raw []byte, fp Fingerprint) *Signature {
	sig := make([]byte, len(raw))
	copy(sig, raw)
	return &Signature{raw: sig, fingerprint: fp}
}

// ParseSignature decodes the detached wire form: FingerprintSize bytes of
// claimed fingerprint followed by SignatureSize bytes of raw signature.
func ParseSignature(b []byte) (*Signature, error) {
	if len(b) != EncodedSignatureSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d",
			ErrInvalidSignatureEncoding, len(b), EncodedSignatureSize)
	}
	var fp Fingerprint
	copy(fp[:], b[:FingerprintSize])
	return NewSignature(b[FingerprintSize:], fp), nil
}

// Raw returns the raw signature bytes. Callers must not mutate them.
func (s *Signature) Raw() []byte {
	return s.raw
}

// Fingerprint returns the claimed (untrusted) fingerprint.
func (s *Signature) Fingerprint() Fingerprint {
	return s.fingerprint
}

// Encode returns the detached wire form accepted by ParseSignature.
func (s *Signature) Encode() []byte {
	out := make([]byte, 0, EncodedSignatureSize)
	out = append(out, s.fingerprint[:]...)
	return append(out, s.raw...)
}

// TrustRecord is one trusted key and the privileges granted to it. Records
// are owned exclusively by the TrustedKeySet that loaded them and are never
// mutated after load; rotation is modeled as loading a new set.
type TrustRecord struct {
	Key       PublicKey
	CanCommit bool
	CanRotate bool
}

// Privileged reports whether the record holds the given privilege.
func (r TrustRecord) Privileged(p Privilege) bool {
	switch p {
	case PrivilegeCommit:
		return r.CanCommit
	case PrivilegeRotate:
		return r.CanRotate
	default:
		return false
	}
}

// Equal reports structural equality: same key material and same grants.
func (r TrustRecord) Equal(other TrustRecord) bool {
	return r.Key.Equal(other.Key) &&
		r.CanCommit == other.CanCommit &&
		r.CanRotate == other.CanRotate
}

// KeyEntry is one declarative key-set entry as produced by the
// configuration loader: a PEM-encoded public key and its optional grants.
// Omitted grants default to false; absence of a privilege flag must never
// be interpreted as a grant.
type KeyEntry struct {
	Key       string
	CanCommit bool
	CanRotate bool
}
