// Package alu: instruction model and text-format parser.
// This file defines the four-register machine's instruction set and the
// line-oriented assembly grammar it is written in:
//
//	inp <reg>
//	add <reg> <reg|int>
//	mul <reg> <reg|int>
//	div <reg> <reg|int>
//	mod <reg> <reg|int>
//	eql <reg> <reg|int>
package alu

import (
	"fmt"
	"strconv"
	"strings"
)

// Register identifies one of the machine's four registers.
type Register uint8

const (
	W Register = iota
	X
	Y
	Z

	// NumRegisters is the fixed register-file size.
	NumRegisters = 4
)

// ParseRegister parses a register name (w, x, y or z).
func ParseRegister(s string) (Register, error) {
	switch s {
	case "w":
		return W, nil
	case "x":
		return X, nil
	case "y":
		return Y, nil
	case "z":
		return Z, nil
	}
	return 0, fmt.Errorf("unknown register %q", s)
}

func (r Register) String() string {
	switch r {
	case W:
		return "w"
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	}
	return fmt.Sprintf("reg(%d)", uint8(r))
}

// Operand is the right-hand side of a binary instruction: either a
// literal integer or a reference to a register, resolved against a state
// at evaluation time.
type Operand struct {
	reg   Register
	lit   int64
	isReg bool
}

// Lit builds a literal operand.
func Lit(v int64) Operand { return Operand{lit: v} }

// RegRef builds an operand referring to a register.
func RegRef(r Register) Operand { return Operand{reg: r, isReg: true} }

// ParseOperand parses an operand: a register name or a decimal integer.
func ParseOperand(s string) (Operand, error) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Lit(v), nil
	}
	r, err := ParseRegister(s)
	if err != nil {
		return Operand{}, err
	}
	return RegRef(r), nil
}

func (o Operand) String() string {
	if o.isReg {
		return o.reg.String()
	}
	return strconv.FormatInt(o.lit, 10)
}

// Opcode enumerates the six machine operations.
type Opcode uint8

const (
	// OpInput assigns the next external digit to the destination.
	OpInput Opcode = iota
	// OpAdd, OpMul, OpDiv, OpMod and OpEqual each combine the
	// destination register with the source operand and store the result
	// back in the destination.
	OpAdd
	OpMul
	OpDiv
	OpMod
	OpEqual
)

func (op Opcode) String() string {
	switch op {
	case OpInput:
		return "inp"
	case OpAdd:
		return "add"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpMod:
		return "mod"
	case OpEqual:
		return "eql"
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// Instruction is one machine operation. Dest is both an operand and the
// result register. Src is meaningful for every opcode except OpInput.
//
// Seq is a stable 0-based id assigned at parse time: for OpInput it is
// the input's position in the digit sequence, for OpEqual it is the
// comparison id indexing every Breadcrumb. It is zero for the arithmetic
// opcodes.
type Instruction struct {
	Op   Opcode
	Dest Register
	Src  Operand
	Seq  int
}

func (in Instruction) String() string {
	switch in.Op {
	case OpInput:
		return fmt.Sprintf("inp_%d %s", in.Seq, in.Dest)
	case OpEqual:
		return fmt.Sprintf("eql_%d %s %s", in.Seq, in.Dest, in.Src)
	}
	return fmt.Sprintf("%s %s %s", in.Op, in.Dest, in.Src)
}

// Program is a straight-line instruction sequence.
type Program []Instruction

// Parse reads a program in the assembly text format, one instruction per
// line. Input and comparison ids are assigned in order of appearance,
// each starting at zero. Blank lines are skipped; any malformed line is
// a fatal parse error.
func Parse(src string) (Program, error) {
	var prog Program
	nextInput, nextEqual := 0, 0
	for i, line := range strings.Split(src, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		in, err := parseInstruction(words, &nextInput, &nextEqual)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		prog = append(prog, in)
	}
	return prog, nil
}

func parseInstruction(words []string, nextInput, nextEqual *int) (Instruction, error) {
	if len(words) < 2 {
		return Instruction{}, fmt.Errorf("instruction %q needs a register", words[0])
	}
	dest, err := ParseRegister(words[1])
	if err != nil {
		return Instruction{}, err
	}
	if words[0] == "inp" {
		in := Instruction{Op: OpInput, Dest: dest, Seq: *nextInput}
		*nextInput++
		return in, nil
	}

	var op Opcode
	switch words[0] {
	case "add":
		op = OpAdd
	case "mul":
		op = OpMul
	case "div":
		op = OpDiv
	case "mod":
		op = OpMod
	case "eql":
		op = OpEqual
	default:
		return Instruction{}, fmt.Errorf("unknown opcode %q", words[0])
	}
	if len(words) < 3 {
		return Instruction{}, fmt.Errorf("%s %s: missing operand", words[0], words[1])
	}
	src, err := ParseOperand(words[2])
	if err != nil {
		return Instruction{}, err
	}
	in := Instruction{Op: op, Dest: dest, Src: src}
	if op == OpEqual {
		in.Seq = *nextEqual
		*nextEqual++
	}
	return in, nil
}

// NumInputs returns how many digits the program consumes.
func (p Program) NumInputs() int {
	n := 0
	for _, in := range p {
		if in.Op == OpInput {
			n++
		}
	}
	return n
}

// NumComparisons returns how many eql instructions the program contains,
// which is the length of the comparison-id space.
func (p Program) NumComparisons() int {
	n := 0
	for _, in := range p {
		if in.Op == OpEqual {
			n++
		}
	}
	return n
}

func (p Program) String() string {
	lines := make([]string, len(p))
	for i, in := range p {
		lines[i] = in.String()
	}
	return strings.Join(lines, "\n")
}
