package alu

import (
	"testing"
)

var allOutcomes = []Outcome{OutcomeAny, OutcomeTrue, OutcomeFalse, OutcomeInvalid}

func TestOutcomeLaws(t *testing.T) {
	for _, a := range allOutcomes {
		if got := a.Or(a); got != a {
			t.Errorf("Or(%s, %s) = %s, want %s (idempotence)", a, a, got, a)
		}
		if got := a.And(a); got != a {
			t.Errorf("And(%s, %s) = %s, want %s (idempotence)", a, a, got, a)
		}
		if got := OutcomeAny.And(a); got != a {
			t.Errorf("And(any, %s) = %s, want %s (identity)", a, got, a)
		}
		if got := OutcomeInvalid.Or(a); got != a {
			t.Errorf("Or(invalid, %s) = %s, want %s (identity)", a, got, a)
		}
		for _, b := range allOutcomes {
			if a.Or(b) != b.Or(a) {
				t.Errorf("Or(%s, %s) != Or(%s, %s)", a, b, b, a)
			}
			if a.And(b) != b.And(a) {
				t.Errorf("And(%s, %s) != And(%s, %s)", a, b, b, a)
			}
		}
	}
}

func TestOutcomeTables(t *testing.T) {
	tests := []struct {
		a, b    Outcome
		or, and Outcome
	}{
		{OutcomeTrue, OutcomeFalse, OutcomeAny, OutcomeInvalid},
		{OutcomeTrue, OutcomeAny, OutcomeAny, OutcomeTrue},
		{OutcomeFalse, OutcomeAny, OutcomeAny, OutcomeFalse},
		{OutcomeTrue, OutcomeInvalid, OutcomeTrue, OutcomeInvalid},
		{OutcomeFalse, OutcomeInvalid, OutcomeFalse, OutcomeInvalid},
		{OutcomeAny, OutcomeInvalid, OutcomeAny, OutcomeInvalid},
	}

	for _, tt := range tests {
		if got := tt.a.Or(tt.b); got != tt.or {
			t.Errorf("Or(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.or)
		}
		if got := tt.a.And(tt.b); got != tt.and {
			t.Errorf("And(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.and)
		}
	}
}

func TestOutcomeSingle(t *testing.T) {
	tests := []struct {
		o      Outcome
		value  bool
		pinned bool
	}{
		{OutcomeAny, false, false},
		{OutcomeTrue, true, true},
		{OutcomeFalse, false, true},
		{OutcomeInvalid, false, false},
	}

	for _, tt := range tests {
		value, pinned := tt.o.Single()
		if value != tt.value || pinned != tt.pinned {
			t.Errorf("%s.Single() = (%v, %v), want (%v, %v)", tt.o, value, pinned, tt.value, tt.pinned)
		}
	}
}

func TestBreadcrumbWithAndString(t *testing.T) {
	crumb := Breadcrumb{}.With(1, false)
	if got := crumb.String(); got != "eql_1:false" {
		t.Errorf("String() = %q, want %q", got, "eql_1:false")
	}
	crumb = crumb.With(2, false).With(4, true)
	if got := crumb.String(); got != "eql_1:false; eql_2:false; eql_4:true" {
		t.Errorf("String() = %q", got)
	}

	other := Breadcrumb{}.With(2, true)
	combined := crumb.And(other)
	if got := combined.String(); got != "eql_1:false; eql_2:invalid; eql_4:true" {
		t.Errorf("And() = %q, want invalid at the conflicting position", got)
	}
	// inputs are untouched
	if got := crumb.At(2); got != OutcomeFalse {
		t.Errorf("original changed: At(2) = %s", got)
	}
	if got := other.At(2); got != OutcomeTrue {
		t.Errorf("original changed: At(2) = %s", got)
	}
}

func TestBreadcrumbWithReplaces(t *testing.T) {
	crumb := Breadcrumb{}.With(3, true).With(3, false)
	if got := crumb.At(3); got != OutcomeFalse {
		t.Errorf("At(3) = %s, want false", got)
	}
}

func TestBreadcrumbAndKeepsPins(t *testing.T) {
	// And never loses a pinned position unless the inputs conflict there.
	left := Breadcrumb{}.With(0, true).With(3, false)
	right := Breadcrumb{}.With(1, true)
	got := left.And(right)
	want := map[int]Outcome{0: OutcomeTrue, 1: OutcomeTrue, 3: OutcomeFalse}
	for id, outcome := range want {
		if got.At(id) != outcome {
			t.Errorf("At(%d) = %s, want %s", id, got.At(id), outcome)
		}
	}
}

func TestBreadcrumbOrOnlyKeepsAgreement(t *testing.T) {
	// Or pins a position only where both derivations already agreed.
	left := Breadcrumb{}.With(0, true).With(1, true)
	right := Breadcrumb{}.With(0, true).With(1, false)
	got := left.Or(right)
	if got.At(0) != OutcomeTrue {
		t.Errorf("At(0) = %s, want true (both agreed)", got.At(0))
	}
	if got.At(1) != OutcomeAny {
		t.Errorf("At(1) = %s, want any (derivations disagreed)", got.At(1))
	}

	// Or against the empty breadcrumb widens every position.
	widened := left.Or(Breadcrumb{})
	if widened.Len() != 0 {
		t.Errorf("Or with empty: Len() = %d, want 0", widened.Len())
	}
}

func TestBreadcrumbOrInvalidIdentity(t *testing.T) {
	// A dead derivation never weakens a live one.
	dead := Breadcrumb{}.With(0, true).And(Breadcrumb{}.With(0, false))
	if dead.At(0) != OutcomeInvalid {
		t.Fatalf("setup: At(0) = %s, want invalid", dead.At(0))
	}
	live := Breadcrumb{}.With(0, true)
	if got := dead.Or(live); got.At(0) != OutcomeTrue {
		t.Errorf("Or(invalid, true) position = %s, want true", got.At(0))
	}
}

func TestBreadcrumbTrimsTrailingAny(t *testing.T) {
	left := Breadcrumb{}.With(5, true)
	right := Breadcrumb{}.With(5, false)
	if got := left.Or(right); got.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after widening the only position", got.Len())
	}
}

func TestConstraintRequired(t *testing.T) {
	crumb := Breadcrumb{}.With(0, true).With(2, false)
	crumb = crumb.And(Breadcrumb{}.With(3, true)).And(Breadcrumb{}.With(3, false))
	c := crumb.Constraint()

	tests := []struct {
		id     int
		value  bool
		pinned bool
	}{
		{0, true, true},
		{1, false, false},  // never constrained
		{2, false, true},
		{3, false, false},  // contradictory, treated as don't-care
		{99, false, false}, // past the end
	}

	for _, tt := range tests {
		value, pinned := c.Required(tt.id)
		if value != tt.value || pinned != tt.pinned {
			t.Errorf("Required(%d) = (%v, %v), want (%v, %v)", tt.id, value, pinned, tt.value, tt.pinned)
		}
	}
}
