// Package registry holds the static, read-only mapping from category keys to
// ordered operation lists that renderers consume.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-opsform/pkg/operation"
)

var (
	// ErrCategoryNotFound is returned when a category key is unknown.
	ErrCategoryNotFound = errors.New("registry: category not found")
	// ErrOperationNotFound is returned when a category has no operation with
	// the requested name.
	ErrOperationNotFound = errors.New("registry: operation not found")
)

// Registry maps category keys to operations. Operation order within a
// category is preserved; categories are listed sorted. It is immutable after
// construction and safe for concurrent readers.
type Registry struct {
	categories map[string][]operation.Operation
}

// New validates every operation and copies the input so later mutation of
// the caller's slices cannot leak into the registry.
func New(categories map[string][]operation.Operation) (*Registry, error) {
	reg := &Registry{categories: make(map[string][]operation.Operation, len(categories))}
	for key, ops := range categories {
		category := strings.TrimSpace(key)
		if category == "" {
			return nil, errors.New("registry: category key is required")
		}
		if category != key {
			return nil, fmt.Errorf("registry: category %q has surrounding whitespace", key)
		}

		names := make(map[string]struct{}, len(ops))
		for _, op := range ops {
			if err := op.Validate(); err != nil {
				return nil, fmt.Errorf("registry: category %q: %w", category, err)
			}
			if _, dup := names[op.Name]; dup {
				return nil, fmt.Errorf("registry: category %q: duplicate operation %q", category, op.Name)
			}
			names[op.Name] = struct{}{}
		}
		reg.categories[category] = cloneOperations(ops)
	}
	return reg, nil
}

// MustNew panics when New fails. Useful for init-time wiring.
func MustNew(categories map[string][]operation.Operation) *Registry {
	reg, err := New(categories)
	if err != nil {
		panic(err)
	}
	return reg
}

// Lookup returns a deep copy of the operations registered under category,
// in display order.
func (r *Registry) Lookup(category string) ([]operation.Operation, bool) {
	if r == nil {
		return nil, false
	}
	ops, ok := r.categories[category]
	if !ok {
		return nil, false
	}
	return cloneOperations(ops), true
}

func cloneOperations(ops []operation.Operation) []operation.Operation {
	out := make([]operation.Operation, len(ops))
	for i, op := range ops {
		out[i] = op.Clone()
	}
	return out
}

// Find returns the named operation inside category.
func (r *Registry) Find(category, name string) (operation.Operation, bool) {
	if r == nil {
		return operation.Operation{}, false
	}
	for _, op := range r.categories[category] {
		if op.Name == name {
			return op.Clone(), true
		}
	}
	return operation.Operation{}, false
}

// Resolve is Find with a descriptive error.
func (r *Registry) Resolve(category, name string) (operation.Operation, error) {
	if _, ok := r.Lookup(category); !ok {
		return operation.Operation{}, fmt.Errorf("%w: %q", ErrCategoryNotFound, category)
	}
	op, ok := r.Find(category, name)
	if !ok {
		return operation.Operation{}, fmt.Errorf("%w: %q in %q", ErrOperationNotFound, name, category)
	}
	return op, nil
}

// Categories returns the sorted category keys.
func (r *Registry) Categories() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, 0, len(r.categories))
	for key := range r.categories {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len reports the total number of operations.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, ops := range r.categories {
		total += len(ops)
	}
	return total
}

// Each visits every operation, categories sorted, operations in display
// order. Returning an error stops the walk.
func (r *Registry) Each(fn func(category string, op operation.Operation) error) error {
	for _, category := range r.Categories() {
		for _, op := range r.categories[category] {
			if err := fn(category, op.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}
