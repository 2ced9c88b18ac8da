package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/allisson/pseudonymizer/internal/pseudonym/domain"
	"github.com/allisson/pseudonymizer/internal/pseudonym/service"
)

// parallelThreshold is the batch size below which values are anonymized inline.
const parallelThreshold = 512

// Options configures pseudonym output and batch parallelism.
type Options struct {
	TruncateLength int
	Encoding       domain.Encoding
	Concurrency    int
}

type pseudonymUseCase struct {
	keyStore   KeyStore
	dataSource DataSource
	opts       []service.Option
	workers    int
}

// NewPseudonymUseCase creates a PseudonymUseCase over the given collaborators. Zero-valued
// options fall back to the defaults (15 bytes, base64, sequential).
func NewPseudonymUseCase(keyStore KeyStore, dataSource DataSource, o Options) PseudonymUseCase {
	var opts []service.Option
	if o.TruncateLength != 0 {
		opts = append(opts, service.WithTruncateLength(o.TruncateLength))
	}
	if o.Encoding != "" {
		opts = append(opts, service.WithEncoding(o.Encoding))
	}
	workers := o.Concurrency
	if workers < 1 {
		workers = 1
	}

	return &pseudonymUseCase{
		keyStore:   keyStore,
		dataSource: dataSource,
		opts:       opts,
		workers:    workers,
	}
}

// AnonymizeField pseudonymizes every value the DataSource holds for field.
func (p *pseudonymUseCase) AnonymizeField(ctx context.Context, field string, throwaway bool) ([]string, error) {
	if err := domain.ValidateField(field); err != nil {
		return nil, err
	}

	pseudonymizer, err := p.Pseudonymizer(ctx, field, throwaway)
	if err != nil {
		return nil, err
	}

	values, err := p.dataSource.GetValues(ctx, field)
	if err != nil {
		return nil, err
	}

	return p.anonymize(ctx, pseudonymizer, values)
}

// AnonymizeValues pseudonymizes caller-supplied values of field.
func (p *pseudonymUseCase) AnonymizeValues(
	ctx context.Context,
	field string,
	values []string,
	throwaway bool,
) ([]string, error) {
	if err := domain.ValidateField(field); err != nil {
		return nil, err
	}

	pseudonymizer, err := p.Pseudonymizer(ctx, field, throwaway)
	if err != nil {
		return nil, err
	}

	return p.anonymize(ctx, pseudonymizer, values)
}

// Pseudonymizer builds a Pseudonymizer for field. The key fetched from the KeyStore is
// zeroed once the digest engine has been keyed.
func (p *pseudonymUseCase) Pseudonymizer(
	ctx context.Context,
	field string,
	throwaway bool,
) (*service.Pseudonymizer, error) {
	if err := domain.ValidateField(field); err != nil {
		return nil, err
	}

	if throwaway {
		return service.NewThrowawayPseudonymizer(p.opts...)
	}

	key, err := p.keyStore.GetKey(ctx, field)
	if err != nil {
		return nil, err
	}
	defer domain.Zero(key)

	return service.NewPseudonymizer(key, p.opts...)
}

// anonymize maps values in order. Large batches are split into contiguous chunks processed
// by at most p.workers goroutines, each writing only its own slots of the result.
func (p *pseudonymUseCase) anonymize(
	ctx context.Context,
	pseudonymizer *service.Pseudonymizer,
	values []string,
) ([]string, error) {
	if p.workers == 1 || len(values) < parallelThreshold {
		return pseudonymizer.AnonymizeAll(values)
	}

	out := make([]string, len(values))
	chunk := (len(values) + p.workers - 1) / p.workers

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for start := 0; start < len(values); start += chunk {
		end := min(start+chunk, len(values))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				pseudonym, err := pseudonymizer.Anonymize(values[i])
				if err != nil {
					return err
				}
				out[i] = pseudonym
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
