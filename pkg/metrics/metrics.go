// Package metrics exports Prometheus metrics for Nexa operations.
package metrics

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/nexa-assets/nexa/pkg/model"
)

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Registry holds all Nexa metrics on a private Prometheus registry.
type Registry struct {
	reg *prometheus.Registry

	AssetOperations     *prometheus.CounterVec
	OperationDuration   *prometheus.HistogramVec
	AssetsTotal         *prometheus.GaugeVec
	PersistenceFailures *prometheus.CounterVec
	LoginAttempts       *prometheus.CounterVec
	AssistRequests      *prometheus.CounterVec
	JournalAppends      *prometheus.CounterVec
}

// NewRegistry creates a registry with every collector registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Registry{
		reg: reg,

		AssetOperations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexa_asset_operations_total",
				Help: "Total number of asset mutations",
			},
			[]string{"operation", "result"},
		),

		OperationDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nexa_operation_duration_seconds",
				Help:    "Asset mutation duration in seconds, including persistence",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		AssetsTotal: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "nexa_assets",
				Help: "Number of assets by status",
			},
			[]string{"status"},
		),

		PersistenceFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexa_persistence_failures_total",
				Help: "Total number of failed document writes",
			},
			[]string{"key"},
		),

		LoginAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexa_login_attempts_total",
				Help: "Total number of login attempts",
			},
			[]string{"result"},
		),

		AssistRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexa_assist_requests_total",
				Help: "Total number of description generation requests",
			},
			[]string{"result"},
		),

		JournalAppends: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexa_journal_appends_total",
				Help: "Total number of audit journal appends",
			},
			[]string{"result"},
		),
	}
}

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// RecordOperation records an asset mutation.
func (r *Registry) RecordOperation(op string, success bool, duration time.Duration) {
	r.AssetOperations.WithLabelValues(op, result(success)).Inc()
	r.OperationDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordPersistenceFailure records a failed write of key.
func (r *Registry) RecordPersistenceFailure(key string) {
	r.PersistenceFailures.WithLabelValues(key).Inc()
}

// RecordLogin records a login attempt.
func (r *Registry) RecordLogin(success bool) {
	r.LoginAttempts.WithLabelValues(result(success)).Inc()
}

// RecordAssist records a generation request. outcome is one of
// "success", "failure", "disabled" or "skipped".
func (r *Registry) RecordAssist(outcome string) {
	r.AssistRequests.WithLabelValues(outcome).Inc()
}

// RecordJournalAppend records a journal write.
func (r *Registry) RecordJournalAppend(success bool) {
	r.JournalAppends.WithLabelValues(result(success)).Inc()
}

// UpdateAssetCounts sets the per-status gauge. Every known status is set so
// that a status dropping to zero is visible.
func (r *Registry) UpdateAssetCounts(counts map[model.AssetStatus]int) {
	for _, s := range model.AllStatuses {
		r.AssetsTotal.WithLabelValues(string(s)).Set(float64(counts[s]))
	}
	for s, n := range counts {
		if !s.Valid() {
			r.AssetsTotal.WithLabelValues(string(s)).Set(float64(n))
		}
	}
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// WriteText writes all metrics in the Prometheus text exposition format.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
