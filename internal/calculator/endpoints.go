package calculator

import "fmt"

// Endpoints returns the row boundaries splitting length rows into intervals of
// interval rows, shifted by offset.
//
// The result starts at 0 and ends exactly at length. A positive offset adds an
// initial stub interval [0, offset); rows left after the last full interval
// form a final stub. Window k spans rows [ep[k-1], ep[k]).
func Endpoints(length, interval, offset int) ([]int, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("endpoints: interval must be positive, got %d: %w", interval, ErrInvalidArgument)
	}
	if offset < 0 || offset >= interval {
		return nil, fmt.Errorf("endpoints: offset must be in [0, %d), got %d: %w", interval, offset, ErrInvalidArgument)
	}
	if length < 0 {
		return nil, fmt.Errorf("endpoints: negative length %d: %w", length, ErrInvalidArgument)
	}

	ep := make([]int, 0, length/interval+3)
	if offset > 0 {
		ep = append(ep, 0)
	}
	for e := offset; e <= length; e += interval {
		ep = append(ep, e)
	}
	if ep[len(ep)-1] < length {
		ep = append(ep, length)
	}
	return ep, nil
}

// validEndpoints checks that ep is a well-formed boundary vector for n rows.
func validEndpoints(ep []int, n int) error {
	if len(ep) == 0 || ep[0] != 0 {
		return fmt.Errorf("endpoints must start at 0: %w", ErrInvalidArgument)
	}
	for i := 1; i < len(ep); i++ {
		if ep[i] <= ep[i-1] {
			return fmt.Errorf("endpoints not strictly increasing at %d: %w", i, ErrInvalidArgument)
		}
	}
	if ep[len(ep)-1] != n {
		return fmt.Errorf("endpoints end at %d, want %d: %w", ep[len(ep)-1], n, ErrInvalidArgument)
	}
	return nil
}
