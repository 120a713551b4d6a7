// Package assist generates asset descriptions from keywords with an external
// text model.
package assist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nexa-assets/nexa/pkg/errclass"
	"github.com/nexa-assets/nexa/pkg/logging"
	"github.com/nexa-assets/nexa/pkg/metrics"
)

// Messages shown in place of a description.
const (
	DisabledMessage = "AI functionality is disabled. Please set the API_KEY environment variable."
	FailedMessage   = "Error generating description. Please try again."
)

// DefaultTimeout bounds a single generation call.
const DefaultTimeout = 30 * time.Second

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Prompt builds the instruction sent for keywords.
func Prompt(keywords string) string {
	return fmt.Sprintf("Based on the following keywords, write a concise and professional asset description suitable for an asset management system. Keywords: \"%s\"", keywords)
}

// Assistant wraps a Generator with the fallback messages. A nil generator
// means the feature is disabled.
type Assistant struct {
	gen     Generator
	timeout time.Duration
	log     *logging.Logger
	metrics *metrics.Registry
}

// New creates an Assistant. A non-positive timeout uses DefaultTimeout.
func New(gen Generator, timeout time.Duration, log *logging.Logger, m *metrics.Registry) *Assistant {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logging.Global()
	}
	if m == nil {
		m = metrics.Default()
	}
	return &Assistant{gen: gen, timeout: timeout, log: log, metrics: m}
}

// Enabled reports whether a generator is configured.
func (a *Assistant) Enabled() bool {
	return a.gen != nil
}

// Describe returns a description for keywords. It never fails: a missing
// generator yields DisabledMessage, blank keywords yield "", and any
// generation error or timeout yields FailedMessage. There are no retries.
func (a *Assistant) Describe(ctx context.Context, keywords string) string {
	if a.gen == nil {
		a.metrics.RecordAssist("disabled")
		return DisabledMessage
	}
	if strings.TrimSpace(keywords) == "" {
		a.metrics.RecordAssist("skipped")
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.gen.Generate(ctx, Prompt(keywords))
	if err != nil {
		a.metrics.RecordAssist("failure")
		a.log.Warn("description generation failed", map[string]any{
			"error": errclass.ErrGenerationFailed.WithMessage(err.Error()).Error(),
		})
		return FailedMessage
	}
	a.metrics.RecordAssist("success")
	return strings.TrimSpace(text)
}
