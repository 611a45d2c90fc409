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
	"strconv"
	"strings"
)

// token types
const (
	tokEOF    = iota
	tokNumber // fval holds the number
	tokString // sval holds the unquoted string
	tokIdent  // sval holds the name
	tokOp     // sval holds the operator
	tokOpen   // (
	tokClose  // )
	tokComma  // ,
)

type token struct {
	typ  int
	pos  int
	fval float64
	sval string
}

// tokenize splits an expression into tokens.  The offsets in the returned
// tokens are relative to the start of src, shifted by base.
func tokenize(full string, src string, base int) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(src) {
		c := src[i]
		pos := base + i

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f':
			i++

		case c == '(':
			tokens = append(tokens, token{typ: tokOpen, pos: pos})
			i++
		case c == ')':
			tokens = append(tokens, token{typ: tokClose, pos: pos})
			i++
		case c == ',':
			tokens = append(tokens, token{typ: tokComma, pos: pos})
			i++

		case c == '\'' || c == '"':
			// Quotes are escaped by doubling them, as in SQL.
			var sb strings.Builder
			i++
			for {
				if i >= len(src) {
					return nil, newError(full, pos, "unterminated string")
				}
				if src[i] == c {
					if i+1 < len(src) && src[i+1] == c {
						sb.WriteByte(c)
						i += 2
						continue
					}
					i++
					break
				}
				sb.WriteByte(src[i])
				i++
			}
			tokens = append(tokens, token{typ: tokString, pos: pos, sval: sb.String()})

		case isDigit(c) || c == '.' && i+1 < len(src) && isDigit(src[i+1]):
			start := i
			for i < len(src) && (isDigit(src[i]) || src[i] == '.') {
				i++
			}
			if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
				j := i + 1
				if j < len(src) && (src[j] == '+' || src[j] == '-') {
					j++
				}
				if j < len(src) && isDigit(src[j]) {
					i = j
					for i < len(src) && isDigit(src[i]) {
						i++
					}
				}
			}
			x, err := strconv.ParseFloat(src[start:i], 64)
			if err != nil {
				return nil, newError(full, pos, "malformed number %q", src[start:i])
			}
			tokens = append(tokens, token{typ: tokNumber, pos: pos, fval: x})

		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}
			tokens = append(tokens, token{typ: tokIdent, pos: pos, sval: src[start:i]})

		default:
			op := ""
			if i+1 < len(src) {
				switch src[i : i+2] {
				case "<=", ">=", "!=", "<>", "==":
					op = src[i : i+2]
				}
			}
			if op == "" {
				switch c {
				case '+', '-', '*', '/', '%', '<', '>', '=':
					op = string(c)
				default:
					return nil, newError(full, pos, "unexpected character %q", c)
				}
			}
			tokens = append(tokens, token{typ: tokOp, pos: pos, sval: op})
			i += len(op)
		}
	}
	tokens = append(tokens, token{typ: tokEOF, pos: base + len(src)})
	return tokens, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '.'
}

// segment is a part of a template: either literal text or the source of
// an embedded expression.
type segment struct {
	text   string
	isExpr bool
	pos    int
}

// splitTemplate splits src into literal text and ${...} expressions.
func splitTemplate(src string) ([]segment, error) {
	var segs []segment
	i := 0
	for {
		k := strings.Index(src[i:], "${")
		if k < 0 {
			if i < len(src) {
				segs = append(segs, segment{text: src[i:], pos: i})
			}
			return segs, nil
		}
		if k > 0 {
			segs = append(segs, segment{text: src[i : i+k], pos: i})
		}
		start := i + k + 2
		end, err := findClose(src, start)
		if err != nil {
			return nil, err
		}
		segs = append(segs, segment{text: src[start:end], isExpr: true, pos: start})
		i = end + 1
	}
}

// findClose returns the position of the '}' which ends the expression
// starting at start.  Braces inside quoted strings are skipped.
func findClose(src string, start int) (int, error) {
	var quote byte
	for j := start; j < len(src); j++ {
		c := src[j]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '}':
			return j, nil
		}
	}
	return 0, newError(src, start-2, "unterminated ${")
}
