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
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-pkgtrust/pkg/digest"
	"github.com/jeremyhahn/go-pkgtrust/pkg/encoding"
	"github.com/jeremyhahn/go-pkgtrust/pkg/signing"
)

// countingVerifier wraps the production verifier and counts primitive
// invocations so tests can observe fast-path and short-circuit behavior.
type countingVerifier struct {
	mu    sync.Mutex
	calls int
	inner signing.Verifier
}

func newCountingVerifier() *countingVerifier {
	return &countingVerifier{inner: signing.NewVerifier()}
}

func (c *countingVerifier) Verify(pub ed25519.PublicKey, dig, sig []byte) (bool, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.inner.Verify(pub, dig, sig)
}

func (c *countingVerifier) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// failingVerifier always returns a scheme-level error.
type failingVerifier struct {
	err error
}

func (f *failingVerifier) Verify(ed25519.PublicKey, []byte, []byte) (bool, error) {
	return false, f.err
}

// testKey bundles a generated keypair with its PEM encoding and derived
// fingerprint.
type testKey struct {
	pub    ed25519.PublicKey
	signer *signing.Signer
	pem    string
	fp     Fingerprint
}

func newTestKey(t *testing.T) *testKey {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	signer, err := signing.NewSigner(priv)
	require.NoError(t, err)

	pemData, err := encoding.EncodePublicKeyPEM(pub)
	require.NoError(t, err)

	key, err := NewPublicKey(pub)
	require.NoError(t, err)

	return &testKey{pub: pub, signer: signer, pem: string(pemData), fp: key.Fingerprint()}
}

func (k *testKey) sign(t *testing.T, data []byte, alg digest.Algorithm, hint Fingerprint) *Signature {
	t.Helper()
	raw, err := k.signer.Sign(data, alg)
	require.NoError(t, err)
	return NewSignature(raw, hint)
}

func TestLoad_EmptySet(t *testing.T) {
	ks, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, ks.Len())

	// every verification against an empty set fails closed
	sig := NewSignature(make([]byte, SignatureSize), Fingerprint{})
	ok, err := ks.Verify([]byte("anything"), sig, PrivilegeCommit)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoad_InvalidKeyEncoding(t *testing.T) {
	a := newTestKey(t)
	b := newTestKey(t)

	entries := []KeyEntry{
		{Key: a.pem, CanCommit: true},
		{Key: b.pem, CanRotate: true},
		{Key: "-----BEGIN PUBLIC KEY-----\ngarbage\n-----END PUBLIC KEY-----\n"},
	}

	ks, err := Load(entries)
	assert.Nil(t, ks, "no partial key set may be observable")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidKeyEncoding)

	var encErr *InvalidKeyEncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, 2, encErr.EntryIndex)
}

func TestLoad_LeastPrivilegeDefault(t *testing.T) {
	key := newTestKey(t)
	counting := newCountingVerifier()

	// no grants on the entry: the record holds the empty privilege set
	ks, err := Load([]KeyEntry{{Key: key.pem}}, WithVerifier(counting))
	require.NoError(t, err)
	require.Equal(t, 1, ks.Len())

	data := []byte("publish example-pkg 1.0.0")
	sig := key.sign(t, data, digest.SHA256, key.fp)

	for _, privilege := range []Privilege{PrivilegeCommit, PrivilegeRotate} {
		ok, err := ks.Verify(data, sig, privilege)
		require.NoError(t, err)
		assert.False(t, ok, "ungranted privilege %s must fail closed", privilege)
	}
	assert.Equal(t, 0, counting.count(),
		"no privileged keys means the primitive must never run")
}

func TestVerify_FastPathOnly(t *testing.T) {
	key := newTestKey(t)
	counting := newCountingVerifier()

	ks, err := Load(
		[]KeyEntry{{Key: key.pem, CanCommit: true, CanRotate: true}},
		WithVerifier(counting))
	require.NoError(t, err)

	data := []byte("publish example-pkg 2.0.0")
	sig := key.sign(t, data, digest.SHA256, key.fp)

	ok, err := ks.Verify(data, sig, PrivilegeCommit)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, counting.count(), "correct hint must verify exactly once")
}

// A message signed by B (Rotate only), carrying a hint pointing at A
// (Commit only): Commit must be rejected, Rotate must be accepted via the
// fallback scan.
func TestVerify_WrongHintScenario(t *testing.T) {
	a := newTestKey(t)
	b := newTestKey(t)

	ks, err := Load([]KeyEntry{
		{Key: a.pem, CanCommit: true},
		{Key: b.pem, CanRotate: true},
	})
	require.NoError(t, err)

	data := []byte("rotate trusted keys")
	sig := b.sign(t, data, digest.SHA256, a.fp)

	ok, err := ks.Verify(data, sig, PrivilegeCommit)
	require.NoError(t, err)
	assert.False(t, ok, "B lacks commit and A never signed the data")

	ok, err = ks.Verify(data, sig, PrivilegeRotate)
	require.NoError(t, err)
	assert.True(t, ok, "fallback scan must reach B despite the wrong hint")
}

// Replacing a valid signature's embedded fingerprint with an arbitrary
// wrong one must not change the decision.
func TestVerify_HintIrrelevance(t *testing.T) {
	a := newTestKey(t)
	b := newTestKey(t)

	ks, err := Load([]KeyEntry{
		{Key: a.pem, CanCommit: true},
		{Key: b.pem, CanCommit: true},
	})
	require.NoError(t, err)

	data := []byte("publish example-pkg 3.1.4")
	raw, err := b.signer.Sign(data, digest.SHA256)
	require.NoError(t, err)

	var bogus Fingerprint
	copy(bogus[:], []byte("completely wrong hint"))

	hints := []Fingerprint{b.fp, a.fp, bogus, {}}
	for _, hint := range hints {
		ok, err := ks.Verify(data, NewSignature(raw, hint), PrivilegeCommit)
		require.NoError(t, err)
		assert.True(t, ok, "hint %s changed the outcome", hint)
	}
}

// A hint alone, without a successful cryptographic verification, must never
// cause acceptance.
func TestVerify_NoHintOnlyAcceptance(t *testing.T) {
	a := newTestKey(t)
	stranger := newTestKey(t)

	ks, err := Load([]KeyEntry{{Key: a.pem, CanCommit: true}})
	require.NoError(t, err)

	data := []byte("publish example-pkg 4.0.0")
	// signed by an untrusted key, but claiming A's fingerprint
	sig := stranger.sign(t, data, digest.SHA256, a.fp)

	ok, err := ks.Verify(data, sig, PrivilegeCommit)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_FallbackLoadOrder(t *testing.T) {
	first := newTestKey(t)
	second := newTestKey(t)
	counting := newCountingVerifier()

	ks, err := Load([]KeyEntry{
		{Key: first.pem, CanCommit: true},
		{Key: second.pem, CanCommit: true},
	}, WithVerifier(counting))
	require.NoError(t, err)

	data := []byte("publish example-pkg 5.0.0")
	// absent hint: zero fingerprint matches no record, so the scan runs in
	// load order and reaches the second key after rejecting the first
	sig := second.sign(t, data, digest.SHA256, Fingerprint{})

	ok, err := ks.Verify(data, sig, PrivilegeCommit)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, counting.count())
}

func TestVerify_FailedFastPathStillScans(t *testing.T) {
	a := newTestKey(t)
	b := newTestKey(t)
	counting := newCountingVerifier()

	ks, err := Load([]KeyEntry{
		{Key: a.pem, CanCommit: true},
		{Key: b.pem, CanCommit: true},
	}, WithVerifier(counting))
	require.NoError(t, err)

	data := []byte("publish example-pkg 6.0.0")
	// valid signature from B but hint pointing at A: fast path fails, the
	// fallback must still accept
	sig := b.sign(t, data, digest.SHA256, a.fp)

	ok, err := ks.Verify(data, sig, PrivilegeCommit)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, counting.count(), "fast path plus one fallback check")
}

func TestVerify_PrimitiveErrorPropagates(t *testing.T) {
	key := newTestKey(t)
	schemeErr := errors.New("scheme-level failure")

	ks, err := Load(
		[]KeyEntry{{Key: key.pem, CanCommit: true}},
		WithVerifier(&failingVerifier{err: schemeErr}))
	require.NoError(t, err)

	data := []byte("publish example-pkg 7.0.0")
	sig := key.sign(t, data, digest.SHA256, key.fp)

	ok, err := ks.Verify(data, sig, PrivilegeCommit)
	assert.False(t, ok)
	assert.ErrorIs(t, err, schemeErr)
}

func TestVerify_NilSignature(t *testing.T) {
	key := newTestKey(t)
	ks, err := Load([]KeyEntry{{Key: key.pem, CanCommit: true}})
	require.NoError(t, err)

	_, err = ks.Verify([]byte("data"), nil, PrivilegeCommit)
	assert.ErrorIs(t, err, ErrSignatureRequired)
}

func TestVerify_SHA512(t *testing.T) {
	key := newTestKey(t)

	ks, err := Load(
		[]KeyEntry{{Key: key.pem, CanCommit: true}},
		WithAlgorithm(digest.SHA512))
	require.NoError(t, err)
	assert.Equal(t, digest.SHA512, ks.Algorithm())

	data := []byte("publish example-pkg 8.0.0")
	sig := key.sign(t, data, digest.SHA512, key.fp)

	ok, err := ks.Verify(data, sig, PrivilegeCommit)
	require.NoError(t, err)
	assert.True(t, ok)

	// a SHA-256 signature must not verify against a SHA-512 set
	mismatched := key.sign(t, data, digest.SHA256, key.fp)
	ok, err = ks.Verify(data, mismatched, PrivilegeCommit)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_Concurrent(t *testing.T) {
	a := newTestKey(t)
	b := newTestKey(t)

	ks, err := Load([]KeyEntry{
		{Key: a.pem, CanCommit: true},
		{Key: b.pem, CanCommit: true, CanRotate: true},
	})
	require.NoError(t, err)

	data := []byte("publish example-pkg 9.0.0")
	good := b.sign(t, data, digest.SHA256, b.fp)
	bad := b.sign(t, []byte("other data"), digest.SHA256, a.fp)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				ok, err := ks.Verify(data, good, PrivilegeCommit)
				assert.NoError(t, err)
				assert.True(t, ok)

				ok, err = ks.Verify(data, bad, PrivilegeRotate)
				assert.NoError(t, err)
				assert.False(t, ok)
			}
		}()
	}
	wg.Wait()
}

func TestTrustedKeySet_ID(t *testing.T) {
	a, err := Load(nil)
	require.NoError(t, err)
	b, err := Load(nil)
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID(), "each load is a distinct key set")
}
