package usecase

import (
	"context"
	"time"

	"github.com/allisson/pseudonymizer/internal/metrics"
	"github.com/allisson/pseudonymizer/internal/pseudonym/service"
)

const metricsDomain = "pseudonym"

// pseudonymUseCaseWithMetrics decorates PseudonymUseCase with metrics instrumentation.
type pseudonymUseCaseWithMetrics struct {
	next    PseudonymUseCase
	metrics metrics.BusinessMetrics
}

// NewPseudonymUseCaseWithMetrics wraps a PseudonymUseCase with metrics recording.
func NewPseudonymUseCaseWithMetrics(useCase PseudonymUseCase, m metrics.BusinessMetrics) PseudonymUseCase {
	return &pseudonymUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// AnonymizeField records metrics for field batch operations.
func (p *pseudonymUseCaseWithMetrics) AnonymizeField(
	ctx context.Context,
	field string,
	throwaway bool,
) ([]string, error) {
	start := time.Now()
	out, err := p.next.AnonymizeField(ctx, field, throwaway)
	p.record(ctx, "anonymize_field", start, err)
	if err == nil {
		p.metrics.RecordBatchSize(ctx, metricsDomain, "anonymize_field", len(out))
	}
	return out, err
}

// AnonymizeValues records metrics for caller-supplied batch operations.
func (p *pseudonymUseCaseWithMetrics) AnonymizeValues(
	ctx context.Context,
	field string,
	values []string,
	throwaway bool,
) ([]string, error) {
	start := time.Now()
	out, err := p.next.AnonymizeValues(ctx, field, values, throwaway)
	p.record(ctx, "anonymize_values", start, err)
	if err == nil {
		p.metrics.RecordBatchSize(ctx, metricsDomain, "anonymize_values", len(out))
	}
	return out, err
}

// Pseudonymizer records metrics for pseudonymizer construction.
func (p *pseudonymUseCaseWithMetrics) Pseudonymizer(
	ctx context.Context,
	field string,
	throwaway bool,
) (*service.Pseudonymizer, error) {
	start := time.Now()
	out, err := p.next.Pseudonymizer(ctx, field, throwaway)
	p.record(ctx, "pseudonymizer", start, err)
	return out, err
}

func (p *pseudonymUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	p.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}
