package usecase

import (
	"context"
	"time"

	"github.com/allisson/pseudonymizer/internal/metrics"
	"github.com/allisson/pseudonymizer/internal/pseudonym/domain"
)

// fieldKeyUseCaseWithMetrics decorates FieldKeyUseCase with metrics instrumentation.
type fieldKeyUseCaseWithMetrics struct {
	next    FieldKeyUseCase
	metrics metrics.BusinessMetrics
}

// NewFieldKeyUseCaseWithMetrics wraps a FieldKeyUseCase with metrics recording.
func NewFieldKeyUseCaseWithMetrics(useCase FieldKeyUseCase, m metrics.BusinessMetrics) FieldKeyUseCase {
	return &fieldKeyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for field key creation.
func (f *fieldKeyUseCaseWithMetrics) Create(ctx context.Context, field string) (*domain.FieldKey, error) {
	start := time.Now()
	key, err := f.next.Create(ctx, field)

	status := "success"
	if err != nil {
		status = "error"
	}

	f.metrics.RecordOperation(ctx, metricsDomain, "field_key_create", status)
	f.metrics.RecordDuration(ctx, metricsDomain, "field_key_create", time.Since(start), status)

	return key, err
}

// ListFields records metrics for field key listing.
func (f *fieldKeyUseCaseWithMetrics) ListFields(ctx context.Context) ([]string, error) {
	start := time.Now()
	fields, err := f.next.ListFields(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	f.metrics.RecordOperation(ctx, metricsDomain, "field_key_list", status)
	f.metrics.RecordDuration(ctx, metricsDomain, "field_key_list", time.Since(start), status)

	return fields, err
}
