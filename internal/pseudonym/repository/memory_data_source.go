package repository

import (
	"context"
	"slices"

	"github.com/allisson/pseudonymizer/internal/pseudonym/domain"
)

// MemoryDataSource serves field values held in process memory.
type MemoryDataSource struct {
	values map[string][]string
}

// NewMemoryDataSource copies values into a new MemoryDataSource.
func NewMemoryDataSource(values map[string][]string) (*MemoryDataSource, error) {
	ds := &MemoryDataSource{values: make(map[string][]string, len(values))}
	for field, v := range values {
		if err := domain.ValidateField(field); err != nil {
			return nil, err
		}
		ds.values[field] = slices.Clone(v)
	}
	return ds, nil
}

// GetValues returns a copy of the field's values in insertion order, or
// domain.ErrUnknownField.
func (d *MemoryDataSource) GetValues(ctx context.Context, field string) ([]string, error) {
	v, ok := d.values[field]
	if !ok {
		return nil, domain.ErrUnknownField
	}
	return slices.Clone(v), nil
}
