// Package merge combines many same-shaped values into one by pairwise
// reduction, halving the number of pending values every round.
package merge

import (
	"fmt"

	"OHLCToolkit/internal/calculator"
	"OHLCToolkit/internal/model"
)

// ErrEmptyInput is returned when there is nothing to combine.
var ErrEmptyInput = fmt.Errorf("merge: empty input: %w", calculator.ErrInvalidArgument)

// ReducePairwise combines items into a single value.
// Each round combines neighbours (0,1), (2,3), ... and carries an unpaired
// last item forward unchanged, so n items need ceil(log2 n) rounds and every
// intermediate result feeds at most log2 n further combines. combine must be
// associative for the result to equal a left fold. items is not modified.
func ReducePairwise[T any](items []T, combine func(a, b T) (T, error)) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmptyInput
	}

	pending := append([]T(nil), items...)
	for round := 0; len(pending) > 1; round++ {
		next := pending[:0]
		for i := 0; i+1 < len(pending); i += 2 {
			v, err := combine(pending[i], pending[i+1])
			if err != nil {
				return zero, fmt.Errorf("merge round %d pair %d: %w", round, i/2, err)
			}
			next = append(next, v)
		}
		if len(pending)%2 == 1 {
			next = append(next, pending[len(pending)-1])
		}
		pending = next
	}
	return pending[0], nil
}

// Reduce folds items with a combine function that cannot fail.
func Reduce[T any](items []T, combine func(a, b T) T) (T, error) {
	return ReducePairwise(items, func(a, b T) (T, error) { return combine(a, b), nil })
}

// ConcatAll row-binds a list of series chunks into one series.
func ConcatAll(chunks []*model.Series) (*model.Series, error) {
	for i, c := range chunks {
		if c == nil {
			return nil, fmt.Errorf("concat: chunk %d is nil: %w", i, calculator.ErrInvalidArgument)
		}
	}
	out, err := ReducePairwise(chunks, model.RBind)
	if err != nil {
		return nil, fmt.Errorf("concat %d chunks: %w", len(chunks), err)
	}
	return out, nil
}
