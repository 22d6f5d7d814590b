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

// Package metrics provides Prometheus instrumentation for trust decisions.
// It exposes load and verification counters so operators can watch fast-path
// hit rates, fallback scans, and the accept/reject split per privilege.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the Prometheus namespace for all pkgtrust metrics
	Namespace = "pkgtrust"

	// Label names
	LabelPrivilege = "privilege"
	LabelOutcome   = "outcome"
	LabelStatus    = "status"

	// Status values
	StatusSuccess = "success"
	StatusError   = "error"

	// Outcome values
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

var (
	// KeySetLoadsTotal tracks trusted key set loads by status.
	KeySetLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "keyset_loads_total",
			Help:      "Total number of trusted key set loads by status",
		},
		[]string{LabelStatus},
	)

	// KeySetKeys reports the number of records in the most recently loaded key set.
	KeySetKeys = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "keyset_keys",
			Help:      "Number of records in the most recently loaded trusted key set",
		},
	)

	// VerificationsTotal tracks trust decisions by privilege and outcome.
	// Outcome "error" means the signature primitive failed, which callers
	// must treat as a rejection.
	VerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "verifications_total",
			Help:      "Total number of trust decisions by privilege and outcome",
		},
		[]string{LabelPrivilege, LabelOutcome},
	)

	// FastPathHitsTotal tracks verifications whose fingerprint hint matched
	// a privileged record.
	FastPathHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "fastpath_hits_total",
			Help:      "Total number of verifications where the fingerprint hint matched a privileged key",
		},
		[]string{LabelPrivilege},
	)

	// FallbackScansTotal tracks verifications that entered the exhaustive
	// fallback scan over the remaining privileged keys.
	FallbackScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "fallback_scans_total",
			Help:      "Total number of verifications that entered the fallback scan",
		},
		[]string{LabelPrivilege},
	)

	// SignatureChecksTotal tracks invocations of the signature-math primitive.
	SignatureChecksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "signature_checks_total",
			Help:      "Total number of signature primitive invocations",
		},
	)
)

// RecordKeySetLoad increments the load counter and, on success, updates the
// key gauge with the loaded record count.
func RecordKeySetLoad(status string, keys int) {
	KeySetLoadsTotal.WithLabelValues(status).Inc()
	if status == StatusSuccess {
		KeySetKeys.Set(float64(keys))
	}
}

// RecordVerification increments the decision counter for a privilege/outcome pair.
func RecordVerification(privilege, outcome string) {
	VerificationsTotal.WithLabelValues(privilege, outcome).Inc()
}

// RecordFastPathHit increments the fast-path hit counter.
func RecordFastPathHit(privilege string) {
	FastPathHitsTotal.WithLabelValues(privilege).Inc()
}

// RecordFallbackScan increments the fallback scan counter.
func RecordFallbackScan(privilege string) {
	FallbackScansTotal.WithLabelValues(privilege).Inc()
}

// RecordSignatureCheck increments the signature primitive invocation counter.
func RecordSignatureCheck() {
	SignatureChecksTotal.Inc()
}
