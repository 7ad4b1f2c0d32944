// Package cycle provides a fixed-list cursor that advances with wrap-around.
// Every clickable status-bar control of the phone shell is one of these.
package cycle

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrInvalidArgument is returned when a Choice is built from an empty list
// or with a start index outside the list.
var ErrInvalidArgument = errors.New("invalid argument")

// Choice is an immutable cursor over a fixed ordered list of values.
// Next returns a new Choice; the receiver is never modified.
type Choice[T any] struct {
	values []T
	index  int
}

// New creates a Choice over values starting at start.
// The values slice is copied so later changes by the caller are not observed.
func New[T any](values []T, start int) (Choice[T], error) {
	if len(values) == 0 {
		return Choice[T]{}, fmt.Errorf("cycle: empty value list: %w", ErrInvalidArgument)
	}
	if start < 0 || start >= len(values) {
		return Choice[T]{}, fmt.Errorf("cycle: start index %d out of range [0,%d): %w", start, len(values), ErrInvalidArgument)
	}

	owned := make([]T, len(values))
	copy(owned, values)
	return Choice[T]{values: owned, index: start}, nil
}

// MustNew is like New but panics on invalid input.
// Intended for package-level lists known at compile time.
func MustNew[T any](values []T, start int) Choice[T] {
	c, err := New(values, start)
	if err != nil {
		panic(err)
	}
	return c
}

// Current returns the value under the cursor.
func (c Choice[T]) Current() T {
	return c.values[c.index]
}

// Index returns the cursor position.
func (c Choice[T]) Index() int {
	return c.index
}

// Len returns the number of values.
func (c Choice[T]) Len() int {
	return len(c.values)
}

// Values returns a copy of the underlying list.
func (c Choice[T]) Values() []T {
	out := make([]T, len(c.values))
	copy(out, c.values)
	return out
}

// Next returns a Choice advanced by one position, wrapping to the start.
func (c Choice[T]) Next() Choice[T] {
	return Choice[T]{values: c.values, index: (c.index + 1) % len(c.values)}
}

// Random returns a uniformly random member of the list.
func (c Choice[T]) Random() T {
	return c.values[rand.IntN(len(c.values))]
}
