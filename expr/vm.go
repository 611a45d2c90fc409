// seehuhn.de/go/colormap - classify raster samples and build colour maps
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package expr

import (
	"errors"
	"math"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

// opCode identifies a bytecode instruction.
type opCode uint8

const (
	opPushNum opCode = iota
	opPushStr
	opPushBool
	opLoad

	// arithmetic
	opAdd
	opSub
	opMul
	opDiv
	opMod
	opNeg
	opToNumber

	// comparison and logic
	opEq
	opNe
	opLt
	opLe
	opGt
	opGe
	opNot
	opToBool

	opCall
	opConcat

	// control flow
	opJumpIfFalse
	opJump
)

// instruction is a single bytecode instruction.
type instruction struct {
	op   opCode
	ival int
	fval float64
	sval string

	// pos is the source offset used in error messages.
	pos int
}

var errStackUnderflow = errors.New("stack underflow")

// Eval runs the program.  Variables are looked up in env, which may be nil.
func (p *Program) Eval(env Env) (Value, error) {
	stack := make([]Value, 0, 8)
	pc := 0
	for pc < len(p.code) {
		inst := p.code[pc]
		pc++

		fail := func(format string, args ...any) (Value, error) {
			return Value{}, newError(p.src, inst.pos, format, args...)
		}

		switch inst.op {
		case opPushNum:
			stack = append(stack, NumberValue(inst.fval))
		case opPushStr:
			stack = append(stack, StringValue(inst.sval))
		case opPushBool:
			stack = append(stack, BoolValue(inst.ival != 0))

		case opLoad:
			v, ok, err := env.Lookup(inst.sval)
			if err != nil {
				return fail("%v", err)
			}
			if !ok {
				return fail("undefined variable %q (known: %s)", inst.sval, strings.Join(env.Names(), ", "))
			}
			stack = append(stack, v)

		case opAdd, opSub, opMul, opDiv, opMod:
			if len(stack) < 2 {
				return Value{}, errStackUnderflow
			}
			a, b := stack[len(stack)-2], stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			r, err := arith(inst.op, a, b)
			if err != nil {
				return fail("%v", err)
			}
			stack[len(stack)-1] = r

		case opNeg, opToNumber:
			if len(stack) < 1 {
				return Value{}, errStackUnderflow
			}
			x, err := stack[len(stack)-1].Float()
			if err != nil {
				return fail("%v", err)
			}
			if inst.op == opNeg {
				x = -x
			}
			stack[len(stack)-1] = NumberValue(x)

		case opEq, opNe, opLt, opLe, opGt, opGe:
			if len(stack) < 2 {
				return Value{}, errStackUnderflow
			}
			a, b := stack[len(stack)-2], stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack[len(stack)-1] = BoolValue(compare(inst.op, a, b))

		case opNot, opToBool:
			if len(stack) < 1 {
				return Value{}, errStackUnderflow
			}
			b, err := stack[len(stack)-1].Truth()
			if err != nil {
				return fail("%v", err)
			}
			if inst.op == opNot {
				b = !b
			}
			stack[len(stack)-1] = BoolValue(b)

		case opCall:
			n := inst.ival
			if len(stack) < n {
				return Value{}, errStackUnderflow
			}
			args := stack[len(stack)-n:]
			r, err := builtins[inst.sval].fn(env, args)
			if err != nil {
				return fail("%s: %v", inst.sval, err)
			}
			stack = append(stack[:len(stack)-n], r)

		case opConcat:
			n := inst.ival
			if len(stack) < n {
				return Value{}, errStackUnderflow
			}
			var sb strings.Builder
			for _, v := range stack[len(stack)-n:] {
				sb.WriteString(v.Text())
			}
			stack = append(stack[:len(stack)-n], StringValue(sb.String()))

		case opJumpIfFalse:
			if len(stack) < 1 {
				return Value{}, errStackUnderflow
			}
			cond, err := stack[len(stack)-1].Truth()
			if err != nil {
				return fail("%v", err)
			}
			stack = stack[:len(stack)-1]
			if !cond {
				pc += inst.ival
			}
		case opJump:
			pc += inst.ival

		default:
			return fail("invalid opcode %d", inst.op)
		}
	}

	if len(stack) != 1 {
		return Value{}, newError(p.src, -1, "expression left %d values", len(stack))
	}
	return stack[0], nil
}

// arith applies an arithmetic operator.  Operands which look like numbers
// are treated as numbers; otherwise "+" concatenates strings.
func arith(op opCode, a, b Value) (Value, error) {
	x, errA := a.Float()
	y, errB := b.Float()
	if errA != nil || errB != nil {
		if op == opAdd && (a.kind == KindString || b.kind == KindString) {
			return StringValue(a.Text() + b.Text()), nil
		}
		if errA != nil {
			return Value{}, errA
		}
		return Value{}, errB
	}

	switch op {
	case opAdd:
		return NumberValue(x + y), nil
	case opSub:
		return NumberValue(x - y), nil
	case opMul:
		return NumberValue(x * y), nil
	case opDiv:
		return NumberValue(x / y), nil
	default:
		return NumberValue(math.Mod(x, y)), nil
	}
}

// compare compares numerically if both operands are numbers, and as
// strings otherwise.
func compare(op opCode, a, b Value) bool {
	var c int
	x, errA := a.Float()
	y, errB := b.Float()
	if a.kind == KindBool || b.kind == KindBool || errA != nil || errB != nil {
		c = strings.Compare(a.Text(), b.Text())
	} else {
		switch {
		case x < y:
			c = -1
		case x > y:
			c = 1
		case x == y:
			c = 0
		default: // NaN
			return op == opNe
		}
	}

	switch op {
	case opEq:
		return c == 0
	case opNe:
		return c != 0
	case opLt:
		return c < 0
	case opLe:
		return c <= 0
	case opGt:
		return c > 0
	default:
		return c >= 0
	}
}

type builtin struct {
	minArgs, maxArgs int // maxArgs < 0 means no limit
	fn               func(env Env, args []Value) (Value, error)
}

func numeric1(f func(float64) float64) builtin {
	return builtin{1, 1, func(_ Env, args []Value) (Value, error) {
		x, err := args[0].Float()
		if err != nil {
			return Value{}, err
		}
		return NumberValue(f(x)), nil
	}}
}

func numericN(f func(float64, float64) float64) builtin {
	return builtin{1, -1, func(_ Env, args []Value) (Value, error) {
		res, err := args[0].Float()
		if err != nil {
			return Value{}, err
		}
		for _, arg := range args[1:] {
			x, err := arg.Float()
			if err != nil {
				return Value{}, err
			}
			res = f(res, x)
		}
		return NumberValue(res), nil
	}}
}

func text1(f func(string) string) builtin {
	return builtin{1, 1, func(_ Env, args []Value) (Value, error) {
		return StringValue(f(args[0].Text())), nil
	}}
}

// builtins lists the available functions, by lower-case name.
var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"abs":            numeric1(math.Abs),
		"ceil":           numeric1(math.Ceil),
		"exp":            numeric1(math.Exp),
		"floor":          numeric1(math.Floor),
		"log":            numeric1(math.Log),
		"round":          numeric1(math.Round),
		"sqrt":           numeric1(math.Sqrt),
		"max":            numericN(math.Max),
		"min":            numericN(math.Min),
		"strtolowercase": text1(strings.ToLower),
		"strtouppercase": text1(strings.ToUpper),
		"strtrim":        text1(strings.TrimSpace),

		"pow": {2, 2, func(_ Env, args []Value) (Value, error) {
			x, err := args[0].Float()
			if err != nil {
				return Value{}, err
			}
			y, err := args[1].Float()
			if err != nil {
				return Value{}, err
			}
			return NumberValue(math.Pow(x, y)), nil
		}},

		"concat": {1, -1, func(_ Env, args []Value) (Value, error) {
			var sb strings.Builder
			for _, arg := range args {
				sb.WriteString(arg.Text())
			}
			return StringValue(sb.String()), nil
		}},

		"env": {1, 2, evalEnv},
	}
}

// evalEnv implements env(name[, default]).
func evalEnv(env Env, args []Value) (Value, error) {
	name := args[0].Text()
	v, ok, err := env.Lookup(name)
	if err != nil {
		return Value{}, err
	}
	if ok {
		return v, nil
	}
	if len(args) > 1 {
		return args[1], nil
	}
	return Value{}, errors.New("undefined variable " + name + " (known: " + strings.Join(env.Names(), ", ") + ")")
}

// Functions returns the names of all functions which can be used in
// expressions, in sorted order.
func Functions() []string {
	names := maps.Keys(builtins)
	names = append(names, "if_then_else")
	slices.Sort(names)
	return names
}
