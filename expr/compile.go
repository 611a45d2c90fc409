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
	"strings"
)

// Program is a compiled expression.
type Program struct {
	src  string
	code []instruction
}

// Compile translates an expression into bytecode.
// If src contains ${...}, it is treated as a template (see the package
// documentation), otherwise the whole of src is one expression.
func Compile(src string) (*Program, error) {
	if !IsTemplate(src) {
		code, err := compileExpr(src, src, 0)
		if err != nil {
			return nil, err
		}
		return &Program{src: src, code: code}, nil
	}

	segs, err := splitTemplate(src)
	if err != nil {
		return nil, err
	}

	// A single ${...} surrounded by white space keeps its type.
	var exprs []segment
	blank := true
	for _, s := range segs {
		if s.isExpr {
			exprs = append(exprs, s)
		} else if strings.TrimSpace(s.text) != "" {
			blank = false
		}
	}
	if blank && len(exprs) == 1 {
		code, err := compileExpr(src, exprs[0].text, exprs[0].pos)
		if err != nil {
			return nil, err
		}
		return &Program{src: src, code: code}, nil
	}

	var code []instruction
	for _, s := range segs {
		if !s.isExpr {
			code = append(code, instruction{op: opPushStr, sval: s.text, pos: s.pos})
			continue
		}
		part, err := compileExpr(src, s.text, s.pos)
		if err != nil {
			return nil, err
		}
		code = append(code, part...)
	}
	code = append(code, instruction{op: opConcat, ival: len(segs), pos: -1})
	return &Program{src: src, code: code}, nil
}

// MustCompile is like [Compile] but panics if the expression cannot be
// compiled.
func MustCompile(src string) *Program {
	p, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return p
}

// Source returns the text the program was compiled from.
func (p *Program) Source() string {
	return p.src
}

func (p *Program) String() string {
	return p.src
}

// Eval compiles and evaluates src in a single step.
func Eval(src string, env Env) (Value, error) {
	p, err := Compile(src)
	if err != nil {
		return Value{}, err
	}
	return p.Eval(env)
}

func compileExpr(full, src string, base int) ([]instruction, error) {
	if strings.TrimSpace(src) == "" {
		return nil, newError(full, base, "empty expression")
	}
	tokens, err := tokenize(full, src, base)
	if err != nil {
		return nil, err
	}
	p := &parser{src: full, tokens: tokens}
	code, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.typ != tokEOF {
		return nil, p.errorf(tok, "unexpected %s", describe(tok))
	}
	return code, nil
}

// parser is a recursive descent parser which emits bytecode directly.
type parser struct {
	src    string
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.typ != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) errorf(tok token, format string, args ...any) *Error {
	return newError(p.src, tok.pos, format, args...)
}

func (p *parser) isKeyword(word string) bool {
	tok := p.peek()
	return tok.typ == tokIdent && strings.EqualFold(tok.sval, word)
}

func (p *parser) parseOr() ([]instruction, error) {
	code, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("or") {
		tok := p.next()
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		// emit: a, jumpIfFalse over (true, jump), true, jump over rhs, rhs, bool
		code = append(code, instruction{op: opJumpIfFalse, ival: 2, pos: tok.pos})
		code = append(code, instruction{op: opPushBool, ival: 1})
		code = append(code, instruction{op: opJump, ival: len(rhs) + 1})
		code = append(code, rhs...)
		code = append(code, instruction{op: opToBool, pos: tok.pos})
	}
	return code, nil
}

func (p *parser) parseAnd() ([]instruction, error) {
	code, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("and") {
		tok := p.next()
		rhs, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		// emit: a, jumpIfFalse over (rhs, bool, jump), rhs, bool, jump over false, false
		code = append(code, instruction{op: opJumpIfFalse, ival: len(rhs) + 2, pos: tok.pos})
		code = append(code, rhs...)
		code = append(code, instruction{op: opToBool, pos: tok.pos})
		code = append(code, instruction{op: opJump, ival: 1})
		code = append(code, instruction{op: opPushBool, ival: 0})
	}
	return code, nil
}

func (p *parser) parseNot() ([]instruction, error) {
	if p.isKeyword("not") {
		tok := p.next()
		code, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return append(code, instruction{op: opNot, pos: tok.pos}), nil
	}
	return p.parseCompare()
}

var compareOps = map[string]opCode{
	"=": opEq, "==": opEq, "!=": opNe, "<>": opNe,
	"<": opLt, "<=": opLe, ">": opGt, ">=": opGe,
}

func (p *parser) parseCompare() ([]instruction, error) {
	code, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	tok := p.peek()
	if tok.typ != tokOp {
		return code, nil
	}
	op, ok := compareOps[tok.sval]
	if !ok {
		return code, nil
	}
	p.next()
	rhs, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	code = append(code, rhs...)
	return append(code, instruction{op: op, pos: tok.pos}), nil
}

func (p *parser) parseAdd() ([]instruction, error) {
	code, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.typ != tokOp || tok.sval != "+" && tok.sval != "-" {
			return code, nil
		}
		p.next()
		rhs, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		code = append(code, rhs...)
		op := opAdd
		if tok.sval == "-" {
			op = opSub
		}
		code = append(code, instruction{op: op, pos: tok.pos})
	}
}

func (p *parser) parseMul() ([]instruction, error) {
	code, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.typ != tokOp {
			return code, nil
		}
		var op opCode
		switch tok.sval {
		case "*":
			op = opMul
		case "/":
			op = opDiv
		case "%":
			op = opMod
		default:
			return code, nil
		}
		p.next()
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		code = append(code, rhs...)
		code = append(code, instruction{op: op, pos: tok.pos})
	}
}

func (p *parser) parseUnary() ([]instruction, error) {
	tok := p.peek()
	if tok.typ == tokOp && (tok.sval == "-" || tok.sval == "+") {
		p.next()
		code, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if tok.sval == "-" {
			code = append(code, instruction{op: opNeg, pos: tok.pos})
		} else {
			code = append(code, instruction{op: opToNumber, pos: tok.pos})
		}
		return code, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() ([]instruction, error) {
	tok := p.next()
	switch tok.typ {
	case tokNumber:
		return []instruction{{op: opPushNum, fval: tok.fval, pos: tok.pos}}, nil
	case tokString:
		return []instruction{{op: opPushStr, sval: tok.sval, pos: tok.pos}}, nil
	case tokOpen:
		code, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closeTok := p.next(); closeTok.typ != tokClose {
			return nil, p.errorf(closeTok, "expected ')', found %s", describe(closeTok))
		}
		return code, nil
	case tokIdent:
		switch strings.ToLower(tok.sval) {
		case "true":
			return []instruction{{op: opPushBool, ival: 1, pos: tok.pos}}, nil
		case "false":
			return []instruction{{op: opPushBool, ival: 0, pos: tok.pos}}, nil
		}
		if p.peek().typ == tokOpen {
			return p.parseCall(tok)
		}
		return []instruction{{op: opLoad, sval: tok.sval, pos: tok.pos}}, nil
	default:
		return nil, p.errorf(tok, "unexpected %s", describe(tok))
	}
}

func (p *parser) parseCall(name token) ([]instruction, error) {
	p.next() // (

	var args [][]instruction
	if p.peek().typ == tokClose {
		p.next()
	} else {
		for {
			arg, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			tok := p.next()
			if tok.typ == tokClose {
				break
			}
			if tok.typ != tokComma {
				return nil, p.errorf(tok, "expected ',' or ')', found %s", describe(tok))
			}
		}
	}

	fname := strings.ToLower(name.sval)
	if fname == "if_then_else" {
		if len(args) != 3 {
			return nil, p.errorf(name, "if_then_else needs 3 arguments, got %d", len(args))
		}
		// emit: cond, jumpIfFalse (skip then + jump), then, jump (skip else), else
		var code []instruction
		code = append(code, args[0]...)
		code = append(code, instruction{op: opJumpIfFalse, ival: len(args[1]) + 1, pos: name.pos})
		code = append(code, args[1]...)
		code = append(code, instruction{op: opJump, ival: len(args[2])})
		code = append(code, args[2]...)
		return code, nil
	}

	fn, ok := builtins[fname]
	if !ok {
		return nil, p.errorf(name, "unknown function %q", name.sval)
	}
	if len(args) < fn.minArgs || fn.maxArgs >= 0 && len(args) > fn.maxArgs {
		return nil, p.errorf(name, "wrong number of arguments for %s: %d", name.sval, len(args))
	}

	var code []instruction
	for _, arg := range args {
		code = append(code, arg...)
	}
	code = append(code, instruction{op: opCall, sval: fname, ival: len(args), pos: name.pos})
	return code, nil
}

func describe(tok token) string {
	switch tok.typ {
	case tokEOF:
		return "end of expression"
	case tokNumber:
		return "number"
	case tokString:
		return "string"
	case tokIdent:
		return "'" + tok.sval + "'"
	case tokOp:
		return "'" + tok.sval + "'"
	case tokOpen:
		return "'('"
	case tokClose:
		return "')'"
	case tokComma:
		return "','"
	default:
		return "token"
	}
}
