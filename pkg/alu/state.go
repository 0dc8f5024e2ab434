// Package alu: concrete execution engine.
// One iterative executor drives both plain replay of a known digit
// sequence and the constraint-pruned depth-first search; the two modes
// are a closed set of policies over the same machine semantics.
package alu

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoSolution reports that no digit sequence satisfies the request:
// the target value is unreachable, the search space is exhausted, or a
// replay ran out of digits.
var ErrNoSolution = errors.New("no solution")

// State is the concrete machine state of one execution branch: the four
// registers, the digits consumed so far and the program counter. Each
// search branch owns a private copy; nothing is shared across branches.
type State struct {
	registers [NumRegisters]int64
	inputs    []int64
	pc        int
}

// Register returns a register's current value.
func (s *State) Register(r Register) int64 { return s.registers[r] }

// Registers returns the register file in w, x, y, z order.
func (s *State) Registers() [NumRegisters]int64 { return s.registers }

// Inputs returns the digits consumed so far, in consumption order.
func (s *State) Inputs() []int64 { return s.inputs }

// clone deep-copies the state so a child branch can diverge freely.
func (s *State) clone() State {
	inputs := make([]int64, len(s.inputs), len(s.inputs)+1)
	copy(inputs, s.inputs)
	return State{registers: s.registers, inputs: inputs, pc: s.pc}
}

func (s *State) operandValue(o Operand) int64 {
	if o.isReg {
		return s.registers[o.reg]
	}
	return o.lit
}

// step executes one non-input instruction. Arithmetic faults (zero
// divisor; negative dividend or non-positive divisor for modulo) are
// branch failures, not panics.
func (s *State) step(in Instruction) error {
	left := s.registers[in.Dest]
	right := s.operandValue(in.Src)
	var result int64
	switch in.Op {
	case OpAdd:
		result = left + right
	case OpMul:
		result = left * right
	case OpDiv:
		if right == 0 {
			return fmt.Errorf("%s: division by zero", in)
		}
		result = left / right
	case OpMod:
		if left < 0 || right <= 0 {
			return fmt.Errorf("%s: modulo of %d by %d", in, left, right)
		}
		result = left % right
	case OpEqual:
		if left == right {
			result = 1
		}
	default:
		return fmt.Errorf("%s: not a computation", in)
	}
	s.registers[in.Dest] = result
	return nil
}

// policy decides which digits to feed each input instruction, when to
// cut a branch short, and whether a finished state is acceptable.
// Exactly two implementations exist: replayPolicy and prunedPolicy.
type policy interface {
	candidates(seq int) []int64
	abandon(in Instruction, result int64) bool
	accept(s *State) bool
}

// replayPolicy feeds one fixed digit per input and accepts any final
// state; it turns the engine into a plain simulator.
type replayPolicy struct {
	inputs []int64
}

func (p replayPolicy) candidates(seq int) []int64 {
	if seq < len(p.inputs) {
		return p.inputs[seq : seq+1]
	}
	return nil
}

func (p replayPolicy) abandon(Instruction, int64) bool { return false }

func (p replayPolicy) accept(*State) bool { return true }

// prunedPolicy tries every digit in the configured order, abandons a
// branch as soon as a pinned comparison disagrees with its required
// outcome, and accepts only when the target register holds the target
// value.
type prunedPolicy struct {
	constraint Constraint
	digits     []int64
	register   Register
	target     int64
}

func (p prunedPolicy) candidates(int) []int64 { return p.digits }

func (p prunedPolicy) abandon(in Instruction, result int64) bool {
	if in.Op != OpEqual {
		return false
	}
	required, pinned := p.constraint.Required(in.Seq)
	return pinned && required != (result == 1)
}

func (p prunedPolicy) accept(s *State) bool {
	return s.registers[p.register] == p.target
}

// choicePoint remembers the state just before an input instruction and
// which of its candidate digits have been tried.
type choicePoint struct {
	saved  State
	digits []int64
	next   int
}

// run drives the program depth-first under a policy, using an explicit
// choice-point stack instead of recursion. The digit order within each
// choice point follows the policy, so the first accepted branch is the
// extreme one for that order. Cancellation is checked once per choice
// point; straight-line runs between inputs are short.
func run(ctx context.Context, p Program, pol policy) (State, error) {
	var cur State
	var stack []choicePoint
	var lastFault error
	for {
		failed := false
		for cur.pc < len(p) {
			in := p[cur.pc]
			if in.Op == OpInput {
				break
			}
			if err := cur.step(in); err != nil {
				lastFault = err
				failed = true
				break
			}
			if pol.abandon(in, cur.registers[in.Dest]) {
				failed = true
				break
			}
			cur.pc++
		}

		if !failed && cur.pc >= len(p) {
			if pol.accept(&cur) {
				return cur, nil
			}
			failed = true
		}
		if !failed {
			if err := ctx.Err(); err != nil {
				return State{}, err
			}
			in := p[cur.pc]
			stack = append(stack, choicePoint{
				saved:  cur.clone(),
				digits: pol.candidates(in.Seq),
			})
		}

		// Resume from the deepest choice point that still has an
		// untried digit, discarding exhausted ones.
		resumed := false
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(top.digits) {
				digit := top.digits[top.next]
				top.next++
				cur = top.saved.clone()
				in := p[cur.pc]
				cur.registers[in.Dest] = digit
				cur.inputs = append(cur.inputs, digit)
				cur.pc++
				resumed = true
				break
			}
			stack = stack[:len(stack)-1]
		}
		if !resumed {
			if lastFault != nil {
				return State{}, fmt.Errorf("%w (last branch: %v)", ErrNoSolution, lastFault)
			}
			return State{}, ErrNoSolution
		}
	}
}

// Execute runs the program against one fully specified digit sequence
// and returns the final state. It fails when the program consumes more
// digits than supplied or an arithmetic fault occurs.
func Execute(p Program, inputs []int64) (State, error) {
	return run(context.Background(), p, replayPolicy{inputs: inputs})
}
