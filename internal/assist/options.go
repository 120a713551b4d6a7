package assist

import (
	"time"

	"github.com/nexa-assets/nexa/pkg/logging"
	"github.com/nexa-assets/nexa/pkg/metrics"
)

type options struct {
	timeout time.Duration
	log     *logging.Logger
	metrics *metrics.Registry
}

// Option customizes FromConfig.
type Option func(*options)

// WithTimeout bounds each generation call.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger sets the logger for generation failures.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics sets the metrics registry.
func WithMetrics(m *metrics.Registry) Option {
	return func(o *options) { o.metrics = m }
}
