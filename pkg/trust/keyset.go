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

// Package trust implements the trusted key set: the decision procedure that
// determines whether a detached signature over publish or key-rotation data
// was produced by a configured key holding the required privilege.
//
// Trust is established strictly by cryptographic verification. The
// fingerprint embedded in a signature is an untrusted optimization hint: a
// matching fingerprint selects a single fast-path verification attempt, and
// whenever that attempt does not succeed, every remaining privileged key is
// tried in load order. A wrong or forged hint therefore can neither cause a
// valid signature to be rejected nor cause acceptance on its own.
package trust

import (
	"github.com/google/uuid"

	"github.com/jeremyhahn/go-pkgtrust/pkg/digest"
	"github.com/jeremyhahn/go-pkgtrust/pkg/encoding"
	"github.com/jeremyhahn/go-pkgtrust/pkg/logging"
	"github.com/jeremyhahn/go-pkgtrust/pkg/metrics"
	"github.com/jeremyhahn/go-pkgtrust/pkg/signing"
)

// TrustedKeySet is an ordered, immutable collection of trust records. It is
// built once by Load and is thereafter read-only: any number of goroutines
// may call Verify concurrently without locking. Record order is load order
// and matters only for tie-break determinism in the fallback scan.
//
// An empty set is legal; every verification against it fails closed.
type TrustedKeySet struct {
	id       string
	records  []TrustRecord
	alg      digest.Algorithm
	verifier signing.Verifier
	logger   *logging.Logger
}

// Option configures a TrustedKeySet at load time.
type Option func(*TrustedKeySet)

// WithAlgorithm selects the message digest algorithm signatures are
// verified over. The default is SHA-256.
func WithAlgorithm(alg digest.Algorithm) Option {
	return func(ks *TrustedKeySet) {
		ks.alg = alg
	}
}

// WithLogger sets the logger used for load and verification diagnostics.
func WithLogger(logger *logging.Logger) Option {
	return func(ks *TrustedKeySet) {
		ks.logger = logger
	}
}

// WithVerifier replaces the signature primitive. Intended for tests that
// need to observe or fake primitive invocations.
func WithVerifier(verifier signing.Verifier) Option {
	return func(ks *TrustedKeySet) {
		ks.verifier = verifier
	}
}

// Load constructs an immutable TrustedKeySet from declarative key entries.
//
// Each entry's key material is parsed from its PEM encoding and the record
// fingerprint is derived from the parsed key. A parse failure on any single
// entry aborts the whole load with an *InvalidKeyEncodingError naming the
// entry: a partially loaded trust set is never observable. Privilege flags
// carry over as given; entries that grant nothing yield records that can
// never satisfy a verification.
func Load(entries []KeyEntry, opts ...Option) (*TrustedKeySet, error) {
	ks := &TrustedKeySet{
		id:       uuid.New().String(),
		alg:      digest.SHA256,
		verifier: signing.NewVerifier(),
		logger:   logging.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(ks)
	}

	records := make([]TrustRecord, 0, len(entries))
	for i, entry := range entries {
		pub, err := encoding.DecodePublicKeyPEM([]byte(entry.Key))
		if err != nil {
			metrics.RecordKeySetLoad(metrics.StatusError, 0)
			return nil, &InvalidKeyEncodingError{EntryIndex: i, Err: err}
		}
		key, err := NewPublicKey(pub)
		if err != nil {
			metrics.RecordKeySetLoad(metrics.StatusError, 0)
			return nil, &InvalidKeyEncodingError{EntryIndex: i, Err: err}
		}
		records = append(records, TrustRecord{
			Key:       key,
			CanCommit: entry.CanCommit,
			CanRotate: entry.CanRotate,
		})
	}

	ks.records = records
	metrics.RecordKeySetLoad(metrics.StatusSuccess, len(records))
	ks.logger.Info("trusted key set loaded",
		"keyset_id", ks.id,
		"keys", len(records),
		"hash", ks.alg.String())

	return ks, nil
}

// ID returns the identifier assigned to this key set at load time. It is
// used only for log correlation across reloads.
func (ks *TrustedKeySet) ID() string {
	return ks.id
}

// Len returns the number of trust records in the set.
func (ks *TrustedKeySet) Len() int {
	return len(ks.records)
}

// Algorithm returns the message digest algorithm the set verifies over.
func (ks *TrustedKeySet) Algorithm() digest.Algorithm {
	return ks.alg
}

// Verify reports whether sig is a valid proof that some key holding
// privilege produced data.
//
// The decision procedure:
//
//  1. If no record holds privilege, return (false, nil) without invoking
//     the signature primitive.
//  2. Fast path: the first privileged record (in load order) whose
//     fingerprint equals the signature's claimed fingerprint is verified
//     first; success returns (true, nil) immediately.
//  3. Fallback scan: every other privileged record is verified in load
//     order; the first success returns (true, nil).
//  4. Otherwise (false, nil): checked and rejected.
//
// A primitive error aborts the call; callers must treat it as "not
// verified". (false, nil) is the distinct outcome meaning verification ran
// and rejected the signature.
func (ks *TrustedKeySet) Verify(data []byte, sig *Signature, privilege Privilege) (bool, error) {
	if sig == nil {
		return false, ErrSignatureRequired
	}

	privileged := make([]int, 0, len(ks.records))
	for i, record := range ks.records {
		if record.Privileged(privilege) {
			privileged = append(privileged, i)
		}
	}
	if len(privileged) == 0 {
		metrics.RecordVerification(privilege.String(), metrics.OutcomeRejected)
		return false, nil
	}

	dig := ks.alg.Sum(data)
	hint := sig.Fingerprint()

	matched := -1
	for _, i := range privileged {
		if ks.records[i].Key.Fingerprint() == hint {
			matched = i
			break
		}
	}

	if matched >= 0 {
		metrics.RecordFastPathHit(privilege.String())
		ok, err := ks.check(ks.records[matched], dig, sig)
		if err != nil {
			metrics.RecordVerification(privilege.String(), metrics.OutcomeError)
			return false, err
		}
		if ok {
			metrics.RecordVerification(privilege.String(), metrics.OutcomeAccepted)
			return true, nil
		}
		ks.logger.Debug("fast path verification failed, scanning remaining keys",
			"keyset_id", ks.id,
			"fingerprint", hint.String())
	}

	// A wrong hint must never cause a valid signature from a privileged
	// key to be rejected, so every remaining key is tried in load order.
	if matched < 0 || len(privileged) > 1 {
		metrics.RecordFallbackScan(privilege.String())
	}
	for _, i := range privileged {
		if i == matched {
			continue
		}
		ok, err := ks.check(ks.records[i], dig, sig)
		if err != nil {
			metrics.RecordVerification(privilege.String(), metrics.OutcomeError)
			return false, err
		}
		if ok {
			metrics.RecordVerification(privilege.String(), metrics.OutcomeAccepted)
			return true, nil
		}
	}

	metrics.RecordVerification(privilege.String(), metrics.OutcomeRejected)
	return false, nil
}

// check invokes the signature primitive for one record.
func (ks *TrustedKeySet) check(record TrustRecord, dig []byte, sig *Signature) (bool, error) {
	metrics.RecordSignatureCheck()
	return ks.verifier.Verify(record.Key.Material(), dig, sig.Raw())
}
