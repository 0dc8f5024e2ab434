// Package alu: constraint extraction and the constrained backward search.
package alu

import (
	"context"
	"fmt"
)

// Order selects the direction candidate digits are tried at each input.
// The search is depth-first, so the first accepted branch under
// Descending is the numerically largest answer and under Ascending the
// smallest.
type Order int

const (
	Descending Order = iota
	Ascending
)

var (
	descendingDigits = []int64{9, 8, 7, 6, 5, 4, 3, 2, 1}
	ascendingDigits  = []int64{1, 2, 3, 4, 5, 6, 7, 8, 9}
)

func (o Order) digits() []int64 {
	if o == Ascending {
		return ascendingDigits
	}
	return descendingDigits
}

func (o Order) String() string {
	if o == Ascending {
		return "ascending"
	}
	return "descending"
}

// Analyze runs the forward symbolic pass over the whole program and
// extracts the constraint vector for register finishing at target: per
// comparison id, the outcome that comparison must produce on every
// execution reaching the target. A missing target value means no digit
// sequence reaches it at all, reported as ErrNoSolution.
//
// The returned constraint is necessary but not sufficient; it does not
// encode cross-input feasibility, so callers still search concretely.
func Analyze(p Program, register Register, target int64) (Constraint, error) {
	state := NewSymbolicState()
	state.Run(p)
	crumb, ok := state.Register(register).At(target)
	if !ok {
		return nil, fmt.Errorf("register %s never reaches %d: %w", register, target, ErrNoSolution)
	}
	return crumb.Constraint(), nil
}

// Search performs the constrained depth-first digit search: digits are
// tried in the given order at each input, a branch is abandoned the
// moment a pinned comparison disagrees with the constraint or an
// arithmetic fault occurs, and a branch is accepted when the whole
// program has run and register holds target. Returns the accepted digit
// sequence, or ErrNoSolution when every branch is exhausted.
func Search(ctx context.Context, p Program, c Constraint, order Order, register Register, target int64) ([]int64, error) {
	state, err := run(ctx, p, prunedPolicy{
		constraint: c,
		digits:     order.digits(),
		register:   register,
		target:     target,
	})
	if err != nil {
		return nil, err
	}
	return state.inputs, nil
}

// solve is the shared Analyze+Search pipeline targeting z == 0, the
// conventional acceptance condition for these programs.
func solve(ctx context.Context, p Program, order Order) (int64, error) {
	constraint, err := Analyze(p, Z, 0)
	if err != nil {
		return 0, err
	}
	digits, err := Search(ctx, p, constraint, order, Z, 0)
	if err != nil {
		return 0, err
	}
	return Number(digits), nil
}

// FindLargest returns the largest number whose digits drive register z
// to zero.
func FindLargest(ctx context.Context, p Program) (int64, error) {
	return solve(ctx, p, Descending)
}

// FindSmallest returns the smallest number whose digits drive register z
// to zero.
func FindSmallest(ctx context.Context, p Program) (int64, error) {
	return solve(ctx, p, Ascending)
}

// Number folds a digit sequence into its decimal reading.
func Number(digits []int64) int64 {
	var n int64
	for _, d := range digits {
		n = n*10 + d
	}
	return n
}
