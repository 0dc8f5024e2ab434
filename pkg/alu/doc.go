// Package alu inverts straight-line programs for a small four-register
// arithmetic logic unit. Given a program that consumes a fixed number of
// single-digit inputs and leaves a result in a designated register, the
// package finds the digit sequences that drive that register to a target
// value, and in particular the numerically largest and smallest such
// sequences.
//
// Brute-force enumeration is infeasible (a 14-input program has 9^14
// candidate sequences), so the package works in two phases:
//
//  1. A forward symbolic pass evaluates the program once over exact
//     value sets. Every concrete value a register can reach is paired
//     with a Breadcrumb recording which comparison instructions must
//     have evaluated to which boolean for that value to be reachable.
//  2. A backward concrete search walks the program depth-first, trying
//     candidate digits in the caller's preferred order and abandoning a
//     branch the moment a comparison's concrete outcome disagrees with
//     the requirements extracted from phase 1.
//
// The derived constraint is necessary but not known to be sufficient, so
// phase 2 still verifies every candidate concretely; the constraint is a
// pruning device, not a closed-form answer.
//
// All symbolic values and breadcrumbs are immutable once constructed:
// combining operations return new values, so phase 1 results may be
// shared freely. Concrete states are private to one search branch.
package alu
