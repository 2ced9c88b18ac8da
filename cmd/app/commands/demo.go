package commands

import (
	"context"
	"fmt"

	pseudonymRepository "github.com/allisson/pseudonymizer/internal/pseudonym/repository"
	pseudonymUseCase "github.com/allisson/pseudonymizer/internal/pseudonym/usecase"
)

// RunDemo runs four demonstrations against the demo key store and data source: the field
// batch, an explicit pseudonymizer, a throwaway batch and a throwaway pseudonymizer. The
// keyed outputs are stable across runs; the throwaway ones change every time.
func RunDemo(ctx context.Context, io IOTuple) error {
	keyStore := pseudonymRepository.NewDemoKeyStore()
	defer func() { _ = keyStore.Close() }()

	useCase := pseudonymUseCase.NewPseudonymUseCase(
		keyStore,
		pseudonymRepository.NewDemoDataSource(),
		pseudonymUseCase.Options{},
	)
	field := pseudonymRepository.DemoField
	values := pseudonymRepository.DemoValues()

	batch, err := useCase.AnonymizeField(ctx, field, false)
	if err != nil {
		return fmt.Errorf("demo field batch: %w", err)
	}

	pseudonymizer, err := useCase.Pseudonymizer(ctx, field, false)
	if err != nil {
		return fmt.Errorf("demo pseudonymizer: %w", err)
	}
	explicit, err := pseudonymizer.AnonymizeAll(values)
	if err != nil {
		return fmt.Errorf("demo pseudonymizer: %w", err)
	}

	throwawayBatch, err := useCase.AnonymizeField(ctx, field, true)
	if err != nil {
		return fmt.Errorf("demo throwaway batch: %w", err)
	}

	throwawayPseudonymizer, err := useCase.Pseudonymizer(ctx, field, true)
	if err != nil {
		return fmt.Errorf("demo throwaway pseudonymizer: %w", err)
	}
	throwawayExplicit, err := throwawayPseudonymizer.AnonymizeAll(values)
	if err != nil {
		return fmt.Errorf("demo throwaway pseudonymizer: %w", err)
	}

	sections := []struct {
		title  string
		output []string
	}{
		{"Field batch (demo key)", batch},
		{"Explicit pseudonymizer (demo key)", explicit},
		{"Throwaway batch", throwawayBatch},
		{"Throwaway pseudonymizer", throwawayExplicit},
	}

	for i, section := range sections {
		if i > 0 {
			fmt.Fprintln(io.Writer)
		}
		fmt.Fprintf(io.Writer, "# %s\n", section.title)
		for j, pseudonym := range section.output {
			fmt.Fprintf(io.Writer, "%s -> %s\n", values[j], pseudonym)
		}
	}

	return nil
}
