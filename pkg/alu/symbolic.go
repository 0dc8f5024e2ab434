// Package alu: exact set-valued symbolic execution.
// This file implements the forward pass: every register carries a
// SymbolicValue mapping each concrete value it can reach to the
// Breadcrumb of comparison outcomes required to reach it. The pass is
// exact, not approximate: the key set of a register's symbolic value is
// precisely the set of values obtainable by concretely executing the
// program prefix over every admissible digit combination.
package alu

import (
	"fmt"
	"sort"
	"strings"
)

// SymbolicValue is an exact map from a concrete value to the breadcrumb
// describing how that value is reached. Like breadcrumbs, symbolic
// values are immutable once published and may be shared across registers
// and instructions.
type SymbolicValue struct {
	values map[int64]Breadcrumb
}

// Literal builds the symbolic value of a known constant: a single entry
// with no constraints.
func Literal(v int64) *SymbolicValue {
	return &SymbolicValue{values: map[int64]Breadcrumb{v: {}}}
}

// InputDigits builds the symbolic value produced by an input
// instruction: the nine candidate digits, each unconstrained.
func InputDigits() *SymbolicValue {
	values := make(map[int64]Breadcrumb, 9)
	for d := int64(1); d <= 9; d++ {
		values[d] = Breadcrumb{}
	}
	return &SymbolicValue{values: values}
}

// Len returns the number of distinct reachable values.
func (sv *SymbolicValue) Len() int { return len(sv.values) }

// Values returns the reachable concrete values in ascending order.
func (sv *SymbolicValue) Values() []int64 {
	out := make([]int64, 0, len(sv.values))
	for v := range sv.values {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// At returns the breadcrumb attached to a concrete value, if the value
// is reachable.
func (sv *SymbolicValue) At(v int64) (Breadcrumb, bool) {
	crumb, ok := sv.values[v]
	return crumb, ok
}

func (sv *SymbolicValue) String() string {
	parts := make([]string, 0, len(sv.values))
	for _, v := range sv.Values() {
		parts = append(parts, fmt.Sprintf("%d: [%s]", v, sv.values[v]))
	}
	return strings.Join(parts, "; ")
}

// applyFunc computes one concrete binary result; ok is false when the
// operation faults for that pair (for example a zero divisor), in which
// case the pair contributes no value at all.
type applyFunc func(l, r int64) (v int64, ok bool)

// mergeFunc combines the operand breadcrumbs for one (left, right) value
// pair into the breadcrumb of the pair's result.
type mergeFunc func(lv, rv int64, lb, rb Breadcrumb) Breadcrumb

// combine builds a binary instruction's result by crossing every left
// value with every right value. Pairs that land on the same result value
// are alternative derivations and merge via Or.
func combine(left, right *SymbolicValue, apply applyFunc, merge mergeFunc) *SymbolicValue {
	result := &SymbolicValue{values: make(map[int64]Breadcrumb)}
	for lv, lb := range left.values {
		for rv, rb := range right.values {
			v, ok := apply(lv, rv)
			if !ok {
				continue
			}
			crumb := merge(lv, rv, lb, rb)
			if old, exists := result.values[v]; exists {
				result.values[v] = old.Or(crumb)
			} else {
				result.values[v] = crumb
			}
		}
	}
	return result
}

// andMerge requires both operands' histories simultaneously.
func andMerge(_, _ int64, lb, rb Breadcrumb) Breadcrumb { return lb.And(rb) }

// mulMerge is the multiply special case: a zero operand forces the
// product to zero no matter what the other side holds, so only the
// deciding zero's history is required. Taking And unconditionally would
// wrongly pin irrelevant constraints from the non-zero side. When both
// sides are zero, either history alone explains the product.
func mulMerge(lv, rv int64, lb, rb Breadcrumb) Breadcrumb {
	switch {
	case lv == 0 && rv == 0:
		return lb.Or(rb)
	case lv == 0:
		return lb
	case rv == 0:
		return rb
	}
	return lb.And(rb)
}

// divModMerge is the dividend-zero short-circuit shared by divide and
// modulo: a zero dividend yields zero regardless of the divisor, so the
// divisor's history only matters for a non-zero dividend.
func divModMerge(lv, _ int64, lb, rb Breadcrumb) Breadcrumb {
	if lv == 0 {
		return lb
	}
	return lb.And(rb)
}

// SymbolicState carries one symbolic value per register through the
// forward pass. Registers share values freely; evaluation replaces a
// register's pointer, never the value it points at.
type SymbolicState struct {
	pc        int
	registers [NumRegisters]*SymbolicValue
}

// NewSymbolicState returns the initial state: all four registers hold
// the literal zero (one shared value).
func NewSymbolicState() *SymbolicState {
	zero := Literal(0)
	s := &SymbolicState{}
	for i := range s.registers {
		s.registers[i] = zero
	}
	return s
}

// Register returns a register's current symbolic value.
func (s *SymbolicState) Register(r Register) *SymbolicValue {
	return s.registers[r]
}

func (s *SymbolicState) operand(o Operand) *SymbolicValue {
	if o.isReg {
		return s.registers[o.reg]
	}
	return Literal(o.lit)
}

// Step evaluates one instruction symbolically and advances the cursor.
func (s *SymbolicState) Step(in Instruction) {
	left := s.registers[in.Dest]
	switch in.Op {
	case OpInput:
		s.registers[in.Dest] = InputDigits()
	case OpAdd:
		s.registers[in.Dest] = combine(left, s.operand(in.Src),
			func(l, r int64) (int64, bool) { return l + r, true },
			andMerge)
	case OpMul:
		s.registers[in.Dest] = combine(left, s.operand(in.Src),
			func(l, r int64) (int64, bool) { return l * r, true },
			mulMerge)
	case OpDiv:
		s.registers[in.Dest] = combine(left, s.operand(in.Src),
			func(l, r int64) (int64, bool) {
				if r == 0 {
					return 0, false
				}
				return l / r, true
			},
			divModMerge)
	case OpMod:
		s.registers[in.Dest] = combine(left, s.operand(in.Src),
			func(l, r int64) (int64, bool) {
				if l < 0 || r <= 0 {
					return 0, false
				}
				return l % r, true
			},
			divModMerge)
	case OpEqual:
		s.registers[in.Dest] = s.equal(in.Seq, left, s.operand(in.Src))
	}
	s.pc++
}

// equal builds {0, 1} as usual, then stamps the instruction's own
// comparison id into every resulting breadcrumb: reaching a given value
// here means this specific comparison produced that boolean.
func (s *SymbolicState) equal(id int, left, right *SymbolicValue) *SymbolicValue {
	result := combine(left, right,
		func(l, r int64) (int64, bool) {
			if l == r {
				return 1, true
			}
			return 0, true
		},
		andMerge)
	for v, crumb := range result.values {
		result.values[v] = crumb.With(id, v == 1)
	}
	return result
}

// Run evaluates the whole program in order, once. Each instruction costs
// the product of its operands' value-set sizes; the zero short-circuits
// above are what keep accumulator registers bounded in practice.
func (s *SymbolicState) Run(p Program) {
	for s.pc < len(p) {
		s.Step(p[s.pc])
	}
}
