// Package alu: the constraint lattice.
// This file defines the four-valued outcome lattice for comparison
// instructions and the Breadcrumb vector that attaches lattice values to
// comparison ids. Breadcrumbs are immutable; every combining operation
// returns a new breadcrumb, so published breadcrumbs may be shared
// between symbolic values without copying.
package alu

import (
	"fmt"
	"strings"
)

// Outcome is the abstract outcome of one comparison instruction along
// one derivation path. It forms a small lattice:
//
//   - OutcomeAny: the comparison is unconstrained
//   - OutcomeTrue / OutcomeFalse: the comparison is pinned to one boolean
//   - OutcomeInvalid: the path requires contradictory outcomes
type Outcome uint8

const (
	OutcomeAny Outcome = iota
	OutcomeTrue
	OutcomeFalse
	OutcomeInvalid
)

// Or joins two outcomes from alternative derivations of the same value.
// Equal outcomes are preserved; OutcomeInvalid is the identity (a dead
// path never weakens a live one); any other disagreement widens to
// OutcomeAny.
func (a Outcome) Or(b Outcome) Outcome {
	switch {
	case a == b:
		return a
	case a == OutcomeInvalid:
		return b
	case b == OutcomeInvalid:
		return a
	}
	return OutcomeAny
}

// And meets two outcomes that must hold simultaneously. OutcomeAny is
// the identity; equal outcomes are preserved; pinned disagreement is a
// contradiction, OutcomeInvalid.
func (a Outcome) And(b Outcome) Outcome {
	switch {
	case a == b:
		return a
	case a == OutcomeAny:
		return b
	case b == OutcomeAny:
		return a
	}
	return OutcomeInvalid
}

// Single reports the boolean this outcome is pinned to, if it is pinned
// to exactly one.
func (a Outcome) Single() (value bool, pinned bool) {
	switch a {
	case OutcomeTrue:
		return true, true
	case OutcomeFalse:
		return false, true
	}
	return false, false
}

func (a Outcome) String() string {
	switch a {
	case OutcomeAny:
		return "any"
	case OutcomeTrue:
		return "true"
	case OutcomeFalse:
		return "false"
	case OutcomeInvalid:
		return "invalid"
	}
	return fmt.Sprintf("outcome(%d)", uint8(a))
}

// Breadcrumb records, per comparison id, the outcome that comparison
// must produce for one concrete value to be reachable. It is a sparse
// vector: positions past the end of the stored slice are implicitly
// OutcomeAny, and trailing OutcomeAny entries are trimmed so equivalent
// breadcrumbs share one canonical length.
//
// The zero value is the empty breadcrumb (every comparison
// unconstrained). Breadcrumbs are immutable after construction.
type Breadcrumb struct {
	outcomes []Outcome
}

// At returns the outcome recorded for a comparison id; ids past the end
// of the vector are OutcomeAny.
func (b Breadcrumb) At(id int) Outcome {
	if id < 0 || id >= len(b.outcomes) {
		return OutcomeAny
	}
	return b.outcomes[id]
}

// Len returns the number of explicitly stored positions.
func (b Breadcrumb) Len() int { return len(b.outcomes) }

// trim drops trailing OutcomeAny entries so that structurally equal
// breadcrumbs compare and print identically.
func trim(outcomes []Outcome) Breadcrumb {
	n := len(outcomes)
	for n > 0 && outcomes[n-1] == OutcomeAny {
		n--
	}
	if n == 0 {
		return Breadcrumb{}
	}
	return Breadcrumb{outcomes: outcomes[:n]}
}

// With returns a copy of the breadcrumb with the given comparison id
// pinned to the given boolean, replacing whatever was recorded there.
func (b Breadcrumb) With(id int, value bool) Breadcrumb {
	n := len(b.outcomes)
	if id >= n {
		n = id + 1
	}
	outcomes := make([]Outcome, n)
	copy(outcomes, b.outcomes)
	if value {
		outcomes[id] = OutcomeTrue
	} else {
		outcomes[id] = OutcomeFalse
	}
	return trim(outcomes)
}

// And combines two breadcrumbs whose requirements must hold
// simultaneously, position-wise via Outcome.And. Used when a binary
// instruction merges the histories of its two operands.
func (b Breadcrumb) And(other Breadcrumb) Breadcrumb {
	// OutcomeAny is the identity for And, so an empty side contributes
	// nothing and the other side can be shared as-is.
	if len(b.outcomes) == 0 {
		return other
	}
	if len(other.outcomes) == 0 {
		return b
	}
	n := len(b.outcomes)
	if len(other.outcomes) > n {
		n = len(other.outcomes)
	}
	outcomes := make([]Outcome, n)
	for i := range outcomes {
		outcomes[i] = b.At(i).And(other.At(i))
	}
	return trim(outcomes)
}

// Or combines two breadcrumbs from alternative derivations of the same
// value, position-wise via Outcome.Or. A position stays pinned only
// where both derivations agree on it.
func (b Breadcrumb) Or(other Breadcrumb) Breadcrumb {
	if len(b.outcomes) == 0 && len(other.outcomes) == 0 {
		return Breadcrumb{}
	}
	n := len(b.outcomes)
	if len(other.outcomes) > n {
		n = len(other.outcomes)
	}
	outcomes := make([]Outcome, n)
	for i := range outcomes {
		outcomes[i] = b.At(i).Or(other.At(i))
	}
	return trim(outcomes)
}

// Constraint extracts the per-comparison requirement vector: for each
// comparison id, the outcome that comparison must produce for the value
// this breadcrumb belongs to. Positions that are not pinned to a single
// boolean (OutcomeAny or OutcomeInvalid) are don't-cares.
func (b Breadcrumb) Constraint() Constraint {
	outcomes := make([]Outcome, len(b.outcomes))
	copy(outcomes, b.outcomes)
	return Constraint(outcomes)
}

// String lists only the constrained positions, e.g. "eql_1:false; eql_4:true".
func (b Breadcrumb) String() string {
	var parts []string
	for id, o := range b.outcomes {
		if o != OutcomeAny {
			parts = append(parts, fmt.Sprintf("eql_%d:%s", id, o))
		}
	}
	return strings.Join(parts, "; ")
}

// Constraint is the requirement vector handed from the forward symbolic
// pass to the backward search: one outcome per comparison id. Ids past
// the end of the vector are unconstrained. The vector is necessary but
// not known to be sufficient, so the search still verifies candidates
// concretely.
type Constraint []Outcome

// Required reports whether the given comparison id is pinned, and to
// which boolean.
func (c Constraint) Required(id int) (value bool, pinned bool) {
	if id < 0 || id >= len(c) {
		return false, false
	}
	return c[id].Single()
}
