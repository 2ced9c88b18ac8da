package commands

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	pseudonymUseCase "github.com/allisson/pseudonymizer/internal/pseudonym/usecase"
)

// pseudonymsOutput is the JSON form of anonymize-field and anonymize output.
type pseudonymsOutput struct {
	Throwaway  bool     `json:"throwaway"`
	Pseudonyms []string `json:"pseudonyms"`
}

// RunAnonymizeField prints the pseudonym of every stored value of field, one per line, in
// data source order. With throwaway set, a fresh random key is used and discarded.
func RunAnonymizeField(
	ctx context.Context,
	useCase pseudonymUseCase.PseudonymUseCase,
	io IOTuple,
	field string,
	throwaway bool,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	pseudonyms, err := useCase.AnonymizeField(ctx, field, throwaway)
	if err != nil {
		return fmt.Errorf("failed to anonymize field: %w", err)
	}

	return writeOutput(io.Writer, format, pseudonyms, pseudonymsOutput{
		Throwaway:  throwaway,
		Pseudonyms: pseudonyms,
	})
}

// RunAnonymize reads values from io.Reader, one per line, and prints their pseudonyms
// under field's key in input order. Blank lines are skipped.
func RunAnonymize(
	ctx context.Context,
	useCase pseudonymUseCase.PseudonymUseCase,
	io IOTuple,
	field string,
	throwaway bool,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	values, err := readValues(io)
	if err != nil {
		return err
	}

	pseudonyms, err := useCase.AnonymizeValues(ctx, field, values, throwaway)
	if err != nil {
		return fmt.Errorf("failed to anonymize values: %w", err)
	}

	return writeOutput(io.Writer, format, pseudonyms, pseudonymsOutput{
		Throwaway:  throwaway,
		Pseudonyms: pseudonyms,
	})
}

func readValues(io IOTuple) ([]string, error) {
	values := []string{}

	scanner := bufio.NewScanner(io.Reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		values = append(values, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read values: %w", err)
	}

	return values, nil
}
