package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/MikeSquared-Agency/Readiness/internal/metrics"
	"github.com/MikeSquared-Agency/Readiness/internal/telemetry"
)

// Retrying wraps a Catalog and retries failed tool lookups with exponential
// backoff. Listing is passed through unchanged.
type Retrying struct {
	next        Catalog
	maxTries    uint
	initial     time.Duration
	maxInterval time.Duration
	logger      *slog.Logger
}

func NewRetrying(next Catalog, maxTries uint, initial time.Duration, logger *slog.Logger) *Retrying {
	if maxTries < 1 {
		maxTries = 1
	}
	if initial <= 0 {
		initial = 100 * time.Millisecond
	}
	return &Retrying{
		next:        next,
		maxTries:    maxTries,
		initial:     initial,
		maxInterval: 2 * time.Second,
		logger:      logger,
	}
}

func (r *Retrying) LookupTools(ctx context.Context, category int) ([]Tool, error) {
	ctx, span := telemetry.StartSpan(ctx, "catalog.LookupTools")
	defer span.End()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initial
	b.MaxInterval = r.maxInterval

	attempts := 0
	tools, err := backoff.Retry(ctx, func() ([]Tool, error) {
		attempts++
		tools, err := r.next.LookupTools(ctx, category)
		if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			return nil, backoff.Permanent(err)
		}
		return tools, err
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(r.maxTries),
		backoff.WithNotify(func(err error, wait time.Duration) {
			metrics.CatalogRetries.Inc()
			r.logger.Warn("tool lookup failed, retrying",
				"category", category, "error", err, "wait", wait)
		}),
	)

	span.SetAttributes(
		attribute.Int("readiness.category", category),
		attribute.Int("catalog.attempts", attempts),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "tool lookup failed")
	}
	return tools, err
}

func (r *Retrying) ListTools(ctx context.Context, filter Filter) ([]Tool, error) {
	return r.next.ListTools(ctx, filter)
}
